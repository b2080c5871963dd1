// Package recurrence validates RFC 5545 RRULE bodies and computes occurrence
// times. Rules are bare bodies ("FREQ=WEEKLY;BYDAY=TU") — the "RRULE:" prefix
// is only added at the calendar boundary.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var (
	ErrEmptyRule    = errors.New("recurrence rule is empty")
	ErrRulePrefixed = errors.New(`recurrence rule must not carry the "RRULE:" prefix`)
)

// Validate checks that rule is a syntactically valid RRULE body with a
// recognized FREQ value.
func Validate(rule string) error {
	if strings.TrimSpace(rule) == "" {
		return ErrEmptyRule
	}
	if strings.HasPrefix(strings.ToUpper(rule), "RRULE:") {
		return ErrRulePrefixed
	}
	if !strings.Contains(strings.ToUpper(rule), "FREQ=") {
		return errors.New("recurrence rule is missing FREQ")
	}
	if _, err := rrule.StrToRRule(rule); err != nil {
		return fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	return nil
}

// FirstOccurrence returns the first occurrence of the rule, seeded at seed,
// that is not before after. The zero time is returned when the rule never
// fires again.
func FirstOccurrence(rule string, seed, after time.Time) (time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	r.DTStart(seed)
	return r.After(after, true), nil
}
