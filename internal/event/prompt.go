package event

import (
	"fmt"
	"strings"
	"time"
)

// PromptVersion identifies the instruction payload revision. Bump it whenever
// the template below changes so contract-test failures can be traced to a
// prompt change rather than a backend regression.
const PromptVersion = "v1"

// DefaultsPolicy supplies the under-specification rules of the instruction
// payload. Two variants exist: InferFromEventType (smart mode) and
// ApplyExplicitDefaults (manual mode).
type DefaultsPolicy interface {
	Instructions() string
}

// InferFromEventType tells the model to pick sensible defaults based on the
// semantic type of the event.
type InferFromEventType struct{}

func (InferFromEventType) Instructions() string {
	return `- If only a single time is given with no end, infer the duration from the type of event (dinner = 90 minutes starting around 19:00, coffee or a quick catch-up = 60 minutes, meetings = 60 minutes). When nothing can be inferred, use 60 minutes.
- If only a date is provided (no time), infer a sensible start time from the type of event; otherwise set start time to 09:00 and end time to 10:00.`
}

// ApplyExplicitDefaults tells the model to apply the caller's configured
// defaults verbatim whenever the text under-specifies the event.
type ApplyExplicitDefaults struct {
	DurationMinutes int
	StartTime       string // "HH:MM"
	Location        string
}

func (p ApplyExplicitDefaults) Instructions() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- If only a single time is given with no end, set end = start + %d minutes.\n", p.DurationMinutes)
	fmt.Fprintf(&b, "- If only a date is provided (no time), set start time to %s and end = start + %d minutes.", p.StartTime, p.DurationMinutes)
	if p.Location != "" {
		fmt.Fprintf(&b, "\n- If no location is mentioned, set \"location\" to %q.", p.Location)
	}
	return b.String()
}

// PolicyFromDefaults maps the caller-supplied UserDefaults onto a
// DefaultsPolicy. Absence of defaults implies smart mode.
func PolicyFromDefaults(d *UserDefaults) DefaultsPolicy {
	if d == nil || d.UseSmartDefaults {
		return InferFromEventType{}
	}
	p := ApplyExplicitDefaults{
		DurationMinutes: d.DefaultDurationMinutes,
		StartTime:       d.DefaultStartTime,
		Location:        d.DefaultLocation,
	}
	if p.DurationMinutes <= 0 {
		p.DurationMinutes = 60
	}
	if p.StartTime == "" {
		p.StartTime = "09:00"
	}
	return p
}

const extractionPromptTemplate = `You are a calendar parsing assistant.
The user will describe a calendar event in natural language.
The current date and time is: %s (%s)

Extract the event and return ONLY a valid JSON object, with no markdown and no explanation, with exactly these fields:
  "title":       string   - short event title, properly capitalized and grammatically clean (e.g. "Dinner with Gabe", not "dinner w/gabe")
  "start":       string   - ISO-8601 local datetime, no timezone offset (e.g. "2026-03-10T14:00:00")
  "end":         string   - ISO-8601 local datetime, no timezone offset
  "location":    string | null
  "description": string | null
  "recurrence":  string | null  - RFC 5545 RRULE string if the event repeats, otherwise null

Rules:
- Resolve relative expressions ("tomorrow", "next Monday", "in 3 days") using the current date above.
- Recognize day abbreviations: sun/Sun = Sunday, mon/Mon = Monday, tues/Tue = Tuesday, wed/Wed = Wednesday, thurs/Thu = Thursday, fri/Fri = Friday, sat/Sat = Saturday.
- If a time range is given (e.g. "4-6", "4-6pm", "2:30-4:30"), use it exactly: set start to the first time and end to the second time.
- If no year is mentioned, assume the nearest future occurrence.
- All times should be interpreted in 12-hour context unless clearly 24-hour (e.g. "4" = 4:00 PM if in the afternoon/evening context, "9" = 9:00 AM if in a morning context).
%s
- For recurring events, set "recurrence" to a valid RRULE string (without the "RRULE:" prefix, just the rule itself, e.g. "FREQ=WEEKLY;BYDAY=TU"). For non-recurring events, set "recurrence" to null.
- Recurrence examples:
    "every Tuesday"                  -> "FREQ=WEEKLY;BYDAY=TU"
    "every Monday and Wednesday"     -> "FREQ=WEEKLY;BYDAY=MO,WE"
    "every weekday"                  -> "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"
    "every weekend"                  -> "FREQ=WEEKLY;BYDAY=SA,SU"
    "every day" / "daily"            -> "FREQ=DAILY"
    "every week" / "weekly"          -> "FREQ=WEEKLY"
    "every month" / "monthly"        -> "FREQ=MONTHLY"
    "every year" / "annually"        -> "FREQ=YEARLY"
    "every other week"               -> "FREQ=WEEKLY;INTERVAL=2"
    "every two weeks"                -> "FREQ=WEEKLY;INTERVAL=2"
    "every first Monday of the month"-> "FREQ=MONTHLY;BYDAY=1MO"
    "every last Friday"              -> "FREQ=MONTHLY;BYDAY=-1FR"
- For "start", use the first (nearest future) occurrence of the recurring day/time.
- Output ONLY the JSON object. Any other text will cause an error.`

// BuildExtractionPrompt renders the system instruction for the given
// reference instant and defaults policy. The weekday name is spelled out so
// the model never has to derive it from the date.
func BuildExtractionPrompt(now time.Time, policy DefaultsPolicy) string {
	return fmt.Sprintf(extractionPromptTemplate,
		now.Format(DateTimeLayout),
		now.Weekday().String(),
		policy.Instructions(),
	)
}
