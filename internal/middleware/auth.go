package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/jwt"
	"github.com/folio-space/core/internal/pkg/response"
)

const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserName  = "user_name"
	ContextKeyUserEmail = "user_email"
	ContextKeyIsAdmin   = "is_admin"
)

// ProfileService materializes and reads the profile behind a verified
// identity. Implemented by the user module.
type ProfileService interface {
	Materialize(ctx context.Context, claims *jwt.Claims) error
	Get(ctx context.Context, id string) (*models.UserModel, error)
}

// ResolveIdentity verifies the bearer token when one is present, mirrors the
// identity into the profile collection, and stashes it on the context.
// Requests without a valid token, or with a deactivated profile, proceed
// anonymously; the guards below decide what that means per route.
func ResolveIdentity(profiles ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if err := profiles.Materialize(ctx, claims); err != nil {
			c.Next()
			return
		}
		u, err := profiles.Get(ctx, claims.UserID)
		if err != nil || !u.IsActive {
			c.Next()
			return
		}

		c.Set(ContextKeyUserID, u.ID)
		c.Set(ContextKeyUserName, u.Name)
		c.Set(ContextKeyUserEmail, u.Email)
		c.Set(ContextKeyIsAdmin, u.IsAdmin())
		c.Next()
	}
}

// RequireAuth blocks requests without a resolved identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin blocks requests whose identity lacks the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentUserName extracts the authenticated display name from context.
func CurrentUserName(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserName)
	name, _ := v.(string)
	return name
}

// IsAuthenticated reports whether the request carries a resolved identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

// IsAdmin reports whether the resolved identity has the admin role.
func IsAdmin(c *gin.Context) bool {
	v, _ := c.Get(ContextKeyIsAdmin)
	admin, _ := v.(bool)
	return admin
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return normalizeToken(auth)
	}
	return normalizeToken(c.Query("token"))
}

// normalizeToken trims spaces and strips an optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[len("bearer "):])
	}
	return token
}
