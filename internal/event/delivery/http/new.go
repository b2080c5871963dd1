package http

import (
	"quickcal/internal/event"
	"quickcal/pkg/log"
)

type handler struct {
	l          log.Logger
	uc         event.UseCase
	calendarID string
}

// New creates a new HTTP handler for the event domain. calendarID is the
// calendar events land in when the request does not name one.
func New(l log.Logger, uc event.UseCase, calendarID string) *handler {
	return &handler{
		l:          l,
		uc:         uc,
		calendarID: calendarID,
	}
}
