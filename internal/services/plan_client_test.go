package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	"zenjourney/pkg/utils"
)

const minimalPlanJSON = `{"destination":"Rome","estimated_cost":0,"itinerary":{"Day 1":{"weather":"Sunny"}},"hotel_suggestions":[]}`

func validTrip() request_models.TripRequest {
	return request_models.TripRequest{
		Destination: "Rome",
		StartDate:   "2026-10-17",
		EndDate:     "2026-10-22",
		Budget:      2500,
		Preferences: "food",
	}
}

func newTestPlanClient(url string, timeout time.Duration) *PlanClient {
	return NewPlanClient(url, timeout, nil, zap.NewNop())
}

func TestRequestPlan_Success(t *testing.T) {
	var gotAuth, gotTrace string
	var gotBody request_models.TripRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTrace = r.Header.Get("X-Trace-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(minimalPlanJSON))
	}))
	defer srv.Close()

	client := newTestPlanClient(srv.URL, time.Second)
	ctx := WithTraceID(context.Background(), "trace-1")
	plan, err := client.RequestPlan(ctx, validTrip(), "tok")
	if err != nil {
		t.Fatalf("RequestPlan: %v", err)
	}
	if plan.Destination != "Rome" || len(plan.Itinerary) != 1 {
		t.Errorf("plan = %+v", plan)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotTrace != "trace-1" {
		t.Errorf("X-Trace-ID = %q", gotTrace)
	}
	if gotBody != validTrip() {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestRequestPlan_NoTokenOmitsHeader(t *testing.T) {
	var hadHeader atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header["Authorization"]
		hadHeader.Store(ok)
		_, _ = w.Write([]byte(minimalPlanJSON))
	}))
	defer srv.Close()

	if _, err := newTestPlanClient(srv.URL, time.Second).RequestPlan(context.Background(), validTrip(), ""); err != nil {
		t.Fatalf("RequestPlan: %v", err)
	}
	if hadHeader.Load() {
		t.Error("Authorization header sent without an identity")
	}
}

func TestRequestPlan_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newTestPlanClient(srv.URL, 50*time.Millisecond).RequestPlan(context.Background(), validTrip(), "")
	if !errors.Is(err, utils.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if errors.Is(err, utils.ErrNetwork) {
		t.Error("timeout must not also report as a generic network error")
	}
}

func TestRequestPlan_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("server error"))
	}))
	defer srv.Close()

	plan, err := newTestPlanClient(srv.URL, time.Second).RequestPlan(context.Background(), validTrip(), "")
	if plan != nil {
		t.Errorf("plan = %+v, want nil", plan)
	}
	var upstream *utils.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if upstream.Status != 500 || upstream.Body != "server error" {
		t.Errorf("upstream = %+v", upstream)
	}
}

func TestRequestPlan_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"destination": "Rome", "itinerary": {`},
		{"wrong shape", `{"destination": "Rome", "itinerary": []}`},
		{"missing destination", `{"itinerary": {}, "estimated_cost": 1}`},
		{"mixed hotel shapes", `{"destination":"Rome","itinerary":{},"hotel_suggestions":["a",{"name":"b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			plan, err := newTestPlanClient(srv.URL, time.Second).RequestPlan(context.Background(), validTrip(), "")
			if plan != nil {
				t.Errorf("partial plan returned: %+v", plan)
			}
			var decodeErr *utils.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("err = %v, want DecodeError", err)
			}
		})
	}
}

func TestRequestPlan_ValidationBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	tests := []struct {
		name  string
		mut   func(*request_models.TripRequest)
		field string
	}{
		{"empty destination", func(r *request_models.TripRequest) { r.Destination = "  " }, "destination"},
		{"bad start date", func(r *request_models.TripRequest) { r.StartDate = "17/10/2026" }, "start_date"},
		{"end before start", func(r *request_models.TripRequest) { r.EndDate = "2026-10-01" }, "end_date"},
		{"negative budget", func(r *request_models.TripRequest) { r.Budget = -1 }, "budget"},
	}

	client := newTestPlanClient(srv.URL, time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTrip()
			tt.mut(&in)
			_, err := client.RequestPlan(context.Background(), in, "")
			var verr *utils.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}

	if calls.Load() != 0 {
		t.Errorf("server called %d times for invalid input", calls.Load())
	}
}

func TestRequestPlan_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestPlanClient(url, time.Second).RequestPlan(context.Background(), validTrip(), "")
	if !errors.Is(err, utils.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	if errors.Is(err, utils.ErrTimeout) {
		t.Error("connection refused reported as timeout")
	}
}
