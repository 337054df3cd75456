package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/pkg/helpers"
)

type stubSessions struct{ sid string }

func (s stubSessions) ValidateSession(_ context.Context, _ string, sid string) error {
	if sid != s.sid {
		return errors.New("stale")
	}
	return nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserID)+"|"+c.GetString(CtxRole)+"|"+c.GetString("real_ip"))
	})
	return r
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	token, _, err := jwt.GenerateAccessToken("u1", "s1", string(entity.RoleRecruiter))
	if err != nil {
		t.Fatal(err)
	}
	refresh, _, _ := jwt.GenerateRefreshToken("u1", "s1", string(entity.RoleRecruiter))

	tests := []struct {
		name     string
		sessions SessionValidator
		header   string
		cookie   string
		want     int
		body     string
	}{
		{name: "missing", want: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer " + token, want: http.StatusOK, body: "u1|RECRUITER|"},
		{name: "cookie", cookie: token, want: http.StatusOK, body: "u1|RECRUITER|"},
		{name: "refresh token rejected", header: "Bearer " + refresh, want: http.StatusUnauthorized},
		{name: "live session", sessions: stubSessions{sid: "s1"}, header: "bearer " + token, want: http.StatusOK, body: "u1|RECRUITER|"},
		{name: "rotated session", sessions: stubSessions{sid: "s2"}, header: "Bearer " + token, want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(Auth(jwt, tt.sessions))
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	setRole := func(role entity.Role) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set(CtxRole, string(role)) }
	}
	for _, tt := range []struct {
		role entity.Role
		want int
	}{
		{entity.RoleAdmin, http.StatusOK},
		{entity.RoleRecruiter, http.StatusOK},
		{entity.RoleCandidate, http.StatusForbidden},
		{"", http.StatusForbidden},
	} {
		r := newEngine(setRole(tt.role), RequireRole(entity.RoleAdmin, entity.RoleRecruiter))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != tt.want {
			t.Errorf("role %q: status = %d, want %d", tt.role, w.Code, tt.want)
		}
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"forwarded", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"garbage falls back", map[string]string{"CF-Connecting-IP": "nope"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(RealIP())
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if got := w.Body.String(); got != "||"+tt.want {
				t.Errorf("real_ip = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestIDMiddleware())
	keep := "0b7f2c0e-6a55-4b56-9d8e-4f1c2a3b4c5d"

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, keep)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != keep {
		t.Errorf("incoming id not kept: %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got == "<script>" || got == "" {
		t.Errorf("malformed id should be replaced, got %q", got)
	}
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"127.0.0.1": true, "10.1.2.3": true, "192.168.0.4": true, "8.8.8.8": false, "": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = "203.0.113.9:80"
		c.Set("real_ip", ip)
		if ip == "" {
			c.Request.RemoteAddr = ""
		}
		if got := allow(c); got != want {
			t.Errorf("AllowPrivateIP(%q) = %v, want %v", ip, got, want)
		}
	}
}
