package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	resp "zenjourney/internal/models/response_models"
	"zenjourney/internal/services"
	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

type stubAnalytics struct {
	analytics *resp.Analytics
	err       error
}

func (s *stubAnalytics) RecordCall(context.Context, services.CallRecord) error { return nil }

func (s *stubAnalytics) BuildAnalytics(context.Context) (*resp.Analytics, error) {
	return s.analytics, s.err
}

func newAdminFixture(t *testing.T, stub *stubAnalytics) (*utils.TokenSigner, http.Handler) {
	t.Helper()
	signer := utils.NewTokenSigner("test-secret", time.Hour, 5*time.Minute)
	ctrl := NewAdminController(stub, newTestRenderer(t), zap.NewNop())

	r := newTestEngine(signer)
	r.GET("/admin", middleware.RequireSession("/login"), ctrl.Dashboard)
	api := r.Group("/api/admin", middleware.RequireSessionAPI(), middleware.RoleMiddleware(services.RoleAdmin))
	api.GET("/analytics", ctrl.GetAnalytics)
	return signer, r
}

func TestAdminController_Access(t *testing.T) {
	stub := &stubAnalytics{analytics: &resp.Analytics{
		TotalCalls:      150,
		AverageDuration: 5.5,
		CommonQuestions: []resp.CommonQuestion{{Question: "Best time to visit Rome?", Count: 45}},
	}}
	signer, r := newAdminFixture(t, stub)
	admin := sessionCookie(t, signer, utils.Identity{UserID: uuid.New(), Email: "ops@admin.com", Role: services.RoleAdmin})
	user := sessionCookie(t, signer, utils.Identity{UserID: uuid.New(), Email: "ana@example.com", Role: services.RoleUser})

	tests := []struct {
		name     string
		path     string
		cookie   *http.Cookie
		wantCode int
		wantText string
	}{
		{"page anonymous", "/admin", nil, http.StatusSeeOther, ""},
		{"page non-admin", "/admin", user, http.StatusForbidden, "Access denied"},
		{"page admin", "/admin", admin, http.StatusOK, "Best time to visit Rome?"},
		{"api anonymous", "/api/admin/analytics", nil, http.StatusUnauthorized, ""},
		{"api non-admin", "/api/admin/analytics", user, http.StatusForbidden, ""},
		{"api admin", "/api/admin/analytics", admin, http.StatusOK, `"total_calls":150`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.cookie != nil {
				cookies = append(cookies, tt.cookie)
			}
			w := get(r, tt.path, cookies...)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantText != "" && !strings.Contains(w.Body.String(), tt.wantText) {
				t.Errorf("body missing %q", tt.wantText)
			}
		})
	}

	w := get(r, "/admin")
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login?next=") {
		t.Errorf("Location = %q", loc)
	}
}

func TestAdminController_AnalyticsPayload(t *testing.T) {
	stub := &stubAnalytics{analytics: &resp.Analytics{TotalCalls: 3, AverageDuration: 1.25, CommonQuestions: []resp.CommonQuestion{}}}
	signer, r := newAdminFixture(t, stub)
	admin := sessionCookie(t, signer, utils.Identity{UserID: uuid.New(), Email: "ops@admin.com", Role: services.RoleAdmin})

	w := get(r, "/api/admin/analytics", admin)
	var got resp.Analytics
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.TotalCalls != 3 || got.AverageDuration != 1.25 {
		t.Errorf("analytics = %+v", got)
	}

	stub.err = utils.ErrDatabaseError
	if w := get(r, "/api/admin/analytics", admin); w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
