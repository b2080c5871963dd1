package event

import (
	"context"

	"quickcal/internal/model"
)

// UseCase defines the business logic interface for the event domain.
type UseCase interface {
	// Parse extracts a structured calendar event from natural language text.
	Parse(ctx context.Context, sc model.Scope, input ParseInput) (ParseOutput, error)

	// Schedule parses the text and inserts the resulting event into Google Calendar.
	Schedule(ctx context.Context, sc model.Scope, input ScheduleInput) (ScheduleOutput, error)
}
