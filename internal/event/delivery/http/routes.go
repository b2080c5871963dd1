package http

import (
	"github.com/gin-gonic/gin"

	"quickcal/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Both routes require a bearer token and count against the daily quota.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	events := rg.Group("/events")
	{
		events.POST("/parse", mw.Auth(), mw.RateLimit(), h.Parse)
		events.POST("", mw.Auth(), mw.RateLimit(), h.Schedule)
	}
}
