package event

import "time"

// ParsedEvent is the canonical extraction result. The six JSON fields are the
// wire contract with the model backend; StartAt/EndAt carry the parsed
// wall-clock instants for callers that need time.Time values.
type ParsedEvent struct {
	Title       string  `json:"title"`
	Start       string  `json:"start"` // naive local ISO-8601, e.g. "2026-03-10T14:00:00"
	End         string  `json:"end"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Recurrence  *string `json:"recurrence"` // RRULE body without the "RRULE:" prefix

	StartAt time.Time `json:"-"`
	EndAt   time.Time `json:"-"`
}

// UserDefaults governs fallback behavior when the input text under-specifies
// the event. Absence of UserDefaults implies smart mode.
type UserDefaults struct {
	UseSmartDefaults       bool   `json:"useSmartDefaults"`
	DefaultDurationMinutes int    `json:"defaultDurationMinutes"`
	DefaultStartTime       string `json:"defaultStartTime"` // "HH:MM"
	DefaultLocation        string `json:"defaultLocation"`
}

// ParseInput is the input for extracting an event from natural language.
type ParseInput struct {
	Text     string        // Natural language event description from the user
	Now      time.Time     // Reference instant for relative-date resolution; zero means server now
	Defaults *UserDefaults // Optional fallback policy; nil means smart mode
}

// ParseOutput is the result of an extraction.
type ParseOutput struct {
	Event    ParsedEvent
	Provider string // Backend that produced the candidate, for diagnostics
}

// ScheduleInput is the input for the parse-and-insert flow.
type ScheduleInput struct {
	Text       string
	Now        time.Time
	Defaults   *UserDefaults
	CalendarID string // Empty means the primary calendar
}

// ScheduleOutput is the result of parsing and inserting into Google Calendar.
type ScheduleOutput struct {
	Event    ParsedEvent
	EventID  string
	HtmlLink string
}
