package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
)

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"not found", apperrors.ErrResourceNotFound, http.StatusNotFound, dto.CodeNotFound},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, dto.CodeNotFound},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.CodeInvalidCredentials},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.CodePermissionDenied},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.CodeValidationError},
		{"conflict", apperrors.ErrUsernameAlreadyExists, http.StatusConflict, dto.CodeConflict},
		{"rate limited", apperrors.ErrRateLimited, http.StatusTooManyRequests, dto.CodeRateLimited},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, dto.CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/fail", func(c *gin.Context) {
				HandleAPIError(c, tt.err)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := decodeEnvelope(t, w)
			if resp.Success {
				t.Error("expected success=false")
			}
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
			}
			if resp.Error == "" {
				t.Error("expected a user-facing error message")
			}
		})
	}
}

func TestHandleAPIErrorSurfacesCustomMessage(t *testing.T) {
	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		HandleAPIError(c, apperrors.NewConflictError("이미 등록된 태그입니다."))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error != "이미 등록된 태그입니다." {
		t.Errorf("expected custom message to be surfaced, got %q", resp.Error)
	}
	if resp.Code != dto.CodeConflict {
		t.Errorf("expected code %s, got %s", dto.CodeConflict, resp.Code)
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		HandleAPIError(c, fmt.Errorf("loading profile: %w", apperrors.ErrUserNotFound))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped sentinel, got %d", w.Code)
	}
}
