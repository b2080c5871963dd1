package usecase

import (
	"context"
	"fmt"

	"quickcal/internal/event"
	"quickcal/internal/model"
	"quickcal/pkg/gcalendar"
)

// Schedule parses the text and inserts the resulting event into Google Calendar.
func (uc *implUseCase) Schedule(ctx context.Context, sc model.Scope, input event.ScheduleInput) (event.ScheduleOutput, error) {
	if uc.calendar == nil {
		return event.ScheduleOutput{}, event.ErrCalendarNotConfigured
	}

	out, err := uc.Parse(ctx, sc, event.ParseInput{
		Text:     input.Text,
		Now:      input.Now,
		Defaults: input.Defaults,
	})
	if err != nil {
		return event.ScheduleOutput{}, err
	}
	ev := out.Event

	req := gcalendar.CreateEventRequest{
		CalendarID: input.CalendarID,
		Summary:    ev.Title,
		StartTime:  ev.StartAt,
		EndTime:    ev.EndAt,
		Timezone:   uc.timezone,
	}
	if ev.Description != nil {
		req.Description = *ev.Description
	}
	if ev.Location != nil {
		req.Location = *ev.Location
	}
	if ev.Recurrence != nil {
		req.Recurrence = *ev.Recurrence
	}

	created, err := uc.calendar.CreateEvent(ctx, req)
	if err != nil {
		uc.l.Errorf(ctx, "event.usecase.Schedule: calendar insert failed: %v", err)
		return event.ScheduleOutput{}, fmt.Errorf("failed to schedule event: %w", err)
	}

	uc.l.Infof(ctx, "event.usecase.Schedule: user=%s event=%s link=%s", sc.UserID, created.ID, created.HtmlLink)

	return event.ScheduleOutput{
		Event:    ev,
		EventID:  created.ID,
		HtmlLink: created.HtmlLink,
	}, nil
}
