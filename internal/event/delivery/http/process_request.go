package http

import (
	"github.com/gin-gonic/gin"
)

// processParseReq binds and validates the parse request body.
func (h *handler) processParseReq(c *gin.Context) (parseReq, error) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processScheduleReq binds and validates the schedule request body.
func (h *handler) processScheduleReq(c *gin.Context) (scheduleReq, error) {
	var req scheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
