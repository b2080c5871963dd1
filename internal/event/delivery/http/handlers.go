package http

import (
	"github.com/gin-gonic/gin"

	"quickcal/internal/middleware"
	"quickcal/pkg/response"
)

// Parse godoc
// @Summary     Parse a natural language event
// @Description Extracts a structured calendar event from free-form text.
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Text plus optional reference instant and defaults"
// @Success     200 {object} parseResp
// @Failure     400 {object} response.Resp "Bad Request - empty text"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests - daily quota"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    BearerAuth
// @Router      /api/v1/events/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	req, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Parse(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Parse: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newParseResp(output))
}

// Schedule godoc
// @Summary     Parse and schedule an event
// @Description Extracts a structured event from text and inserts it into Google Calendar.
// @Tags        Events
// @Accept      json
// @Produce     json
// @Param       body body scheduleReq true "Text plus optional reference instant, defaults, and calendar id"
// @Success     200 {object} scheduleResp
// @Failure     400 {object} response.Resp "Bad Request - empty text"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests - daily quota"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Security    BearerAuth
// @Router      /api/v1/events [POST]
func (h *handler) Schedule(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	req, err := h.processScheduleReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Schedule(ctx, sc, req.toInput(h.calendarID))
	if err != nil {
		h.l.Errorf(ctx, "uc.Schedule: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.newScheduleResp(output))
}
