package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(t *testing.T, extra ...gin.HandlerFunc) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "middleware-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "academy-test",
	})
	m := NewAuthMiddleware(jwtService)

	r := gin.New()
	handlers := append([]gin.HandlerFunc{m.RequireAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"userId": CurrentUserID(c)}))
	})
	r.GET("/guarded", handlers...)
	return r, jwtService
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return resp
}

func TestRequireAuthMissingToken(t *testing.T) {
	r, _ := newGuardedRouter(t)

	w := doRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != dto.CodeAuthRequired {
		t.Errorf("expected code %s, got %s", dto.CodeAuthRequired, resp.Code)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "middleware-test-secret",
		TokenExp:    -time.Minute,
		TokenIssuer: "academy-test",
	})
	token, _, err := jwtService.GenerateToken(1, "u1", 4, "STUDENT")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	r, _ := newGuardedRouter(t)
	w := doRequest(r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Code != dto.CodeAuthExpired {
		t.Errorf("expected code %s, got %s", dto.CodeAuthExpired, resp.Code)
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	r, _ := newGuardedRouter(t)

	w := doRequest(r, "not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Code != dto.CodeAuthInvalid {
		t.Errorf("expected code %s, got %s", dto.CodeAuthInvalid, resp.Code)
	}
}

func TestRequireAuthTokenQueryParamFallback(t *testing.T) {
	r, jwtService := newGuardedRouter(t)
	token, _, err := jwtService.GenerateToken(9, "u9", 3, "TEACHER")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/guarded?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via query token, got %d", w.Code)
	}
}

func TestTierAtMost(t *testing.T) {
	tests := []struct {
		name       string
		tier       int
		max        int
		wantStatus int
	}{
		{"tier 1 passes max 2", 1, 2, http.StatusOK},
		{"tier 2 passes max 2", 2, 2, http.StatusOK},
		{"tier 3 blocked by max 2", 3, 2, http.StatusForbidden},
		{"tier 5 blocked by max 1", 5, 1, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := auth.NewJWTService(auth.JWTConfig{
				SecretKey:   "middleware-test-secret",
				TokenExp:    time.Hour,
				TokenIssuer: "academy-test",
			})
			m := NewAuthMiddleware(jwtService)

			r := gin.New()
			r.GET("/guarded", m.RequireAuth(), m.TierAtMost(tt.max), func(c *gin.Context) {
				c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
			})

			token, _, err := jwtService.GenerateToken(1, "u1", tt.tier, "STUDENT")
			if err != nil {
				t.Fatalf("failed to generate token: %v", err)
			}
			w := doRequest(r, token)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusForbidden {
				if resp := decodeEnvelope(t, w); resp.Code != dto.CodePermissionDenied {
					t.Errorf("expected code %s, got %s", dto.CodePermissionDenied, resp.Code)
				}
			}
		})
	}
}

func TestRoleIn(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "middleware-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "academy-test",
	})
	m := NewAuthMiddleware(jwtService)

	r := gin.New()
	r.GET("/guarded", m.RequireAuth(), m.RoleIn("ADMIN", "TEACHER"), func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})

	teacherToken, _, err := jwtService.GenerateToken(1, "t1", 2, "TEACHER")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if w := doRequest(r, teacherToken); w.Code != http.StatusOK {
		t.Fatalf("expected TEACHER to pass, got %d", w.Code)
	}

	studentToken, _, err := jwtService.GenerateToken(2, "s1", 4, "STUDENT")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if w := doRequest(r, studentToken); w.Code != http.StatusForbidden {
		t.Fatalf("expected STUDENT to be blocked, got %d", w.Code)
	}
}
