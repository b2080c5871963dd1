package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quickcal/internal/model"
	"quickcal/pkg/response"
)

const (
	scopeKey        = "quickcal.scope"
	requestIDHeader = "X-Request-ID"
)

// Auth verifies the bearer token and stores the resulting Scope on the gin
// context for downstream handlers.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(token)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: token rejected: %v", err)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(scopeKey, model.Scope{UserID: payload.UserID})
		c.Next()
	}
}

// RequestID tags every request with an id, honoring one supplied by the caller.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// ScopeFromContext returns the Scope stored by Auth. The zero Scope means the
// route was not protected.
func ScopeFromContext(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{}
}
