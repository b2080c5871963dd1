package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"quickcal/internal/event"
	"quickcal/pkg/response"
)

// respondError translates use-case errors into HTTP responses. Extraction
// failures all collapse to a generic 500; the distinction between timeout,
// upstream outage, and bad model output lives in the server logs only.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, event.ErrEmptyText):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
