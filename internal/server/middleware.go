package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/maderas/backend/internal/auth/domain"
	obscontext "github.com/maderas/backend/internal/observability/context"
)

const (
	contextPrincipalKey  = "principal"
	contextRetryAfterKey = "retry_after"
)

// AuthRequired rejects requests without a valid bearer token.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		principal, err := s.authsvc.ValidateToken(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a token is present. A present but
// invalid token is still rejected.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		principal, err := s.authsvc.ValidateToken(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), principal.Rol, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header, header != ""
}

func setPrincipal(c *gin.Context, principal authdomain.Principal) {
	c.Set(contextPrincipalKey, principal)
	ctx := obscontext.WithActor(c.Request.Context(), obscontext.Actor{
		ID:    principal.ID,
		Email: principal.Email,
		Role:  principal.Rol,
	})
	c.Request = c.Request.WithContext(ctx)
}

func principalFrom(c *gin.Context) (authdomain.Principal, bool) {
	v, ok := c.Get(contextPrincipalKey)
	if !ok {
		return authdomain.Principal{}, false
	}
	principal, ok := v.(authdomain.Principal)
	return principal, ok
}

// RequestTimeout bounds every request context.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func CORS(allowed []string) gin.HandlerFunc {
	allowAll := len(allowed) == 0
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		origins[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else if _, ok := origins[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
			c.Header("Access-Control-Expose-Headers", "X-Request-Id, Retry-After")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
