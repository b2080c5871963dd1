package event

import (
	"encoding/json"
	"time"

	"quickcal/pkg/recurrence"
)

// DateTimeLayout is the naive local datetime format of the wire contract.
const DateTimeLayout = "2006-01-02T15:04:05"

var eventFields = map[string]bool{
	"title":       true,
	"start":       true,
	"end":         true,
	"location":    true,
	"description": true,
	"recurrence":  true,
}

// Validate checks a candidate event payload against the output contract and
// returns the normalized event. Structural failures and semantic failures
// both return a *SchemaError; malformed JSON returns the underlying decode
// error so callers can distinguish the two.
func Validate(raw []byte) (ParsedEvent, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ParsedEvent{}, err
	}

	for name := range fields {
		if !eventFields[name] {
			return ParsedEvent{}, &SchemaError{Field: name, Reason: "is not part of the event contract", Raw: string(raw)}
		}
	}
	for name := range eventFields {
		if _, ok := fields[name]; !ok {
			return ParsedEvent{}, &SchemaError{Field: name, Reason: "is missing", Raw: string(raw)}
		}
	}

	var ev ParsedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return ParsedEvent{}, &SchemaError{Field: typeErr.Field, Reason: "has the wrong type", Raw: string(raw)}
		}
		return ParsedEvent{}, err
	}

	if ev.Title == "" {
		return ParsedEvent{}, &SchemaError{Field: "title", Reason: "is empty", Raw: string(raw)}
	}
	if ev.Start == "" {
		return ParsedEvent{}, &SchemaError{Field: "start", Reason: "is empty", Raw: string(raw)}
	}
	if ev.End == "" {
		return ParsedEvent{}, &SchemaError{Field: "end", Reason: "is empty", Raw: string(raw)}
	}

	start, err := time.Parse(DateTimeLayout, ev.Start)
	if err != nil {
		return ParsedEvent{}, &SchemaError{Field: "start", Reason: "is not a naive local ISO-8601 datetime", Raw: string(raw)}
	}
	end, err := time.Parse(DateTimeLayout, ev.End)
	if err != nil {
		return ParsedEvent{}, &SchemaError{Field: "end", Reason: "is not a naive local ISO-8601 datetime", Raw: string(raw)}
	}
	if !start.Before(end) {
		return ParsedEvent{}, &SchemaError{Field: "end", Reason: "must be after start", Raw: string(raw)}
	}

	if ev.Recurrence != nil {
		if err := recurrence.Validate(*ev.Recurrence); err != nil {
			return ParsedEvent{}, &SchemaError{Field: "recurrence", Reason: "is not a valid RRULE body: " + err.Error(), Raw: string(raw)}
		}
	}

	ev.StartAt = start
	ev.EndAt = end
	return ev, nil
}
