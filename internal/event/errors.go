package event

import (
	"errors"
	"fmt"
)

// Domain-specific errors for the event package.
var (
	ErrEmptyText             = errors.New("input text is empty")
	ErrInvalidModelOutput    = errors.New("model output is not valid JSON")
	ErrIncompleteModelOutput = errors.New("model output failed event validation")
	ErrTimeout               = errors.New("extraction timed out")
	ErrUpstreamUnavailable   = errors.New("extraction backend unavailable")
	ErrCalendarNotConfigured = errors.New("google calendar is not configured")
)

// SchemaError reports why a candidate event failed validation. Raw holds the
// offending payload for server-side logging; it must never reach API clients.
type SchemaError struct {
	Field  string
	Reason string
	Raw    string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid event: %s", e.Reason)
	}
	return fmt.Sprintf("invalid event: field %q %s", e.Field, e.Reason)
}
