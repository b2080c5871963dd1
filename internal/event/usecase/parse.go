package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quickcal/internal/event"
	"quickcal/internal/model"
	"quickcal/pkg/llmprovider"
	"quickcal/pkg/recurrence"
)

const maxOutputTokens = 1024

// Parse extracts a structured calendar event from natural language text.
func (uc *implUseCase) Parse(ctx context.Context, sc model.Scope, input event.ParseInput) (event.ParseOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return event.ParseOutput{}, event.ErrEmptyText
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().In(uc.loc)
	}
	// Relative dates resolve against the user's wall clock, not the server's.
	ref := asWallClock(now)

	policy := event.PolicyFromDefaults(input.Defaults)
	system := event.BuildExtractionPrompt(ref, policy)

	resp, err := uc.llm.Complete(ctx, llmprovider.Request{
		System:      system,
		User:        input.Text,
		Temperature: 0,
		MaxTokens:   maxOutputTokens,
		JSONOutput:  true,
	})
	if err != nil {
		return event.ParseOutput{}, uc.mapBackendError(ctx, err)
	}

	cleaned := sanitizeJSONResponse(resp.Text)

	ev, err := event.Validate([]byte(cleaned))
	if err != nil {
		var schemaErr *event.SchemaError
		if errors.As(err, &schemaErr) {
			uc.l.Errorf(ctx, "event.usecase.Parse: schema failure: %v raw=%q", err, schemaErr.Raw)
			return event.ParseOutput{}, fmt.Errorf("%w: %w", event.ErrIncompleteModelOutput, err)
		}
		uc.l.Errorf(ctx, "event.usecase.Parse: unparsable model output: %v raw=%q", err, resp.Text)
		return event.ParseOutput{}, event.ErrInvalidModelOutput
	}

	ev = uc.normalizeRecurrence(ctx, ev, ref)

	uc.l.Infof(ctx, "event.usecase.Parse: user=%s provider=%s title=%q start=%s",
		sc.UserID, resp.ProviderName, ev.Title, ev.Start)

	return event.ParseOutput{Event: ev, Provider: resp.ProviderName}, nil
}

// mapBackendError folds transport failures into the domain error taxonomy.
func (uc *implUseCase) mapBackendError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", event.ErrTimeout, err)
	}
	uc.l.Errorf(ctx, "event.usecase.Parse: backend failure: %v", err)
	return fmt.Errorf("%w: %v", event.ErrUpstreamUnavailable, err)
}

// normalizeRecurrence advances a recurring event's start to its first future
// occurrence. The backend is told to do this itself; stale starts slip
// through often enough that we correct rather than reject.
func (uc *implUseCase) normalizeRecurrence(ctx context.Context, ev event.ParsedEvent, ref time.Time) event.ParsedEvent {
	if ev.Recurrence == nil {
		return ev
	}

	first, err := recurrence.FirstOccurrence(*ev.Recurrence, ev.StartAt, ref)
	if err != nil {
		uc.l.Warnf(ctx, "event.usecase.Parse: first occurrence of %q failed: %v", *ev.Recurrence, err)
		return ev
	}
	if !first.After(ev.StartAt) {
		return ev
	}

	shift := first.Sub(ev.StartAt)
	ev.StartAt = ev.StartAt.Add(shift)
	ev.EndAt = ev.EndAt.Add(shift)
	ev.Start = ev.StartAt.Format(event.DateTimeLayout)
	ev.End = ev.EndAt.Format(event.DateTimeLayout)
	return ev
}

// asWallClock strips the location from an instant, keeping its wall-clock
// reading. Candidate datetimes are naive, so all comparisons happen in the
// same frame.
func asWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
