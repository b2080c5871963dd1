package datemath

import (
	"errors"
	"time"
)

// ErrUnresolvedExpression is returned when an expression carries no date or
// time signal at all. Callers must not fabricate a silent default beyond the
// documented policies.
var ErrUnresolvedExpression = errors.New("cannot resolve time expression")

// Resolution is the concrete outcome of resolving a temporal expression
// against a reference instant. Times are local to the resolver's location.
type Resolution struct {
	Start time.Time
	End   time.Time

	// HasTime is true when the expression stated a clock time.
	HasTime bool
	// HasEnd is true when the expression stated an explicit end (a range).
	HasEnd bool
}

// Policy fills the gaps an expression leaves open: the start time for a bare
// date and the duration for a single time with no end.
type Policy struct {
	DurationMinutes int
	StartTime       string // "HH:MM"
}

// DefaultPolicy mirrors the documented fallback: date-only events start at
// 09:00 and single-time events run for 60 minutes.
var DefaultPolicy = Policy{
	DurationMinutes: 60,
	StartTime:       "09:00",
}
