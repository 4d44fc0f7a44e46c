package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zenjourney/internal/web"
	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	r, err := web.NewRenderer(zap.NewNop())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func newTestEngine(signer *utils.TokenSigner) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.SessionMiddleware(signer))
	return r
}

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, signer *utils.TokenSigner, id utils.Identity) *http.Cookie {
	t.Helper()
	token, err := signer.CreateSessionToken(id)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}
