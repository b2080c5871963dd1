package http

import (
	"strings"
	"time"

	"quickcal/internal/event"
)

// --- Request DTOs ---

type parseReq struct {
	Text     string              `json:"text"`
	Now      string              `json:"now"` // optional ISO-8601 reference instant
	Defaults *event.UserDefaults `json:"defaults"`

	now time.Time
}

func (r *parseReq) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return event.ErrEmptyText
	}
	if r.Now != "" {
		t, err := parseInstant(r.Now)
		if err != nil {
			return err
		}
		r.now = t
	}
	return nil
}

func (r *parseReq) toInput() event.ParseInput {
	return event.ParseInput{
		Text:     r.Text,
		Now:      r.now,
		Defaults: r.Defaults,
	}
}

type scheduleReq struct {
	parseReq
	CalendarID string `json:"calendarId"`
}

func (r *scheduleReq) toInput(defaultCalendarID string) event.ScheduleInput {
	calendarID := r.CalendarID
	if calendarID == "" {
		calendarID = defaultCalendarID
	}
	return event.ScheduleInput{
		Text:       r.Text,
		Now:        r.now,
		Defaults:   r.Defaults,
		CalendarID: calendarID,
	}
}

// parseInstant accepts both offset-carrying and naive local datetimes.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(event.DateTimeLayout, s)
}

// --- Response DTOs ---

type eventResp struct {
	Title       string  `json:"title"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Recurrence  *string `json:"recurrence"`
}

func newEventResp(ev event.ParsedEvent) eventResp {
	return eventResp{
		Title:       ev.Title,
		Start:       ev.Start,
		End:         ev.End,
		Location:    ev.Location,
		Description: ev.Description,
		Recurrence:  ev.Recurrence,
	}
}

type parseResp struct {
	Event eventResp `json:"event"`
}

func (h *handler) newParseResp(out event.ParseOutput) parseResp {
	return parseResp{Event: newEventResp(out.Event)}
}

type scheduleResp struct {
	Event    eventResp `json:"event"`
	EventID  string    `json:"event_id"`
	HtmlLink string    `json:"html_link"`
}

func (h *handler) newScheduleResp(out event.ScheduleOutput) scheduleResp {
	return scheduleResp{
		Event:    newEventResp(out.Event),
		EventID:  out.EventID,
		HtmlLink: out.HtmlLink,
	}
}
