package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/auth"
)

// Context keys set by RequireAuth for downstream handlers
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextTier     = "tier"
	ContextRole     = "role"
)

// AuthMiddleware guards routes with JWT authentication and the tier/role
// access axes.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireAuth validates the bearer token and stores the principal on the
// context. Missing, expired and malformed tokens each answer with their own
// code so the frontend can branch.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Websocket upgrades cannot set headers from the browser.
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.CodeAuthRequired, "인증 토큰이 필요합니다."))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.CodeAuthInvalid, "유효하지 않은 토큰입니다."))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.CodeAuthExpired, "토큰이 만료되었습니다. 다시 로그인해 주세요."))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.CodeAuthInvalid, "유효하지 않은 토큰입니다."))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextTier, claims.Tier)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// TierAtMost allows only principals whose tier is numerically at or below
// max. Lower tiers carry more privilege.
func (m *AuthMiddleware) TierAtMost(max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		tier, ok := c.Get(ContextTier)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.CodeAuthRequired, "인증 토큰이 필요합니다."))
			return
		}
		if tier.(int) > max {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.CodePermissionDenied, "접근 권한이 없습니다."))
			return
		}
		c.Next()
	}
}

// RoleIn allows only principals holding one of the given roles
func (m *AuthMiddleware) RoleIn(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.CodeAuthRequired, "인증 토큰이 필요합니다."))
			return
		}
		if _, ok := allowed[role.(string)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.CodePermissionDenied, "접근 권한이 없습니다."))
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated principal's id from the context
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserID); ok {
		return v.(int64)
	}
	return 0
}

// CurrentTier returns the authenticated principal's tier from the context
func CurrentTier(c *gin.Context) int {
	if v, ok := c.Get(ContextTier); ok {
		return v.(int)
	}
	return 0
}
