package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Resolver converts natural-language temporal expressions to absolute local
// datetimes. Resolution is a pure function of (expression, reference instant),
// so repeated calls with the same inputs yield the identical result.
type Resolver struct {
	location *time.Location
}

// NewResolver creates a resolver for the given IANA timezone string,
// e.g. "America/New_York".
func NewResolver(timezone string) (*Resolver, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Resolver{location: loc}, nil
}

// Weekday names and their accepted abbreviations, including the irregular
// "tues" and "thurs" forms. Matching is case-insensitive (input is lowercased).
var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "weds": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// dayPart biases ambiguous hour values toward AM or PM.
type dayPart int

const (
	partUnknown dayPart = iota
	partMorning
	partEvening
)

type clock struct {
	hour, min int
}

func (c clock) duration() time.Duration {
	return time.Duration(c.hour)*time.Hour + time.Duration(c.min)*time.Minute
}

var (
	// "4-6", "4-6pm", "2:30-4:30", "4pm-6pm", "4 to 6pm"
	rangeRe = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*(?:-|to)\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	// "4pm", "2:30", "2:30pm", "16:00" — a colon or an am/pm marker makes it
	// unambiguously a time rather than a day number.
	clockRe = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)?\b|\b(\d{1,2})\s*(am|pm)\b`)
	// "3/5" or "3/5/2027"
	slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{4}))?$`)

	ordinalSuffixRe = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?$`)

	// Standalone words only, so "afternoon" keeps its day-part meaning.
	noonRe     = regexp.MustCompile(`\bnoon\b`)
	midnightRe = regexp.MustCompile(`\bmidnight\b`)
)

// Resolve maps a temporal expression to a concrete Resolution against the
// reference instant. Non-temporal words in the expression are ignored.
// Expressions with no date and no time signal fail with
// ErrUnresolvedExpression.
func (r *Resolver) Resolve(expr string, ref time.Time) (Resolution, error) {
	ref = ref.In(r.location)

	s := strings.ToLower(strings.TrimSpace(expr))
	s = strings.ReplaceAll(s, "–", "-")
	if s == "" {
		return Resolution{}, ErrUnresolvedExpression
	}

	part, s := stripDayPart(s)

	var (
		start, end clock
		hasTime    bool
		hasEnd     bool
	)

	if m := rangeRe.FindStringSubmatch(s); m != nil {
		start, end = resolveRange(m, part)
		s = strings.Replace(s, m[0], " ", 1)
		hasTime, hasEnd = true, true
	} else if m := clockRe.FindStringSubmatch(s); m != nil {
		start = resolveClockMatch(m, part)
		s = strings.Replace(s, m[0], " ", 1)
		hasTime = true
	}

	tokens := strings.Fields(strings.NewReplacer(",", " ", ".", " ").Replace(s))

	day, rest, dayErr := r.resolveDay(tokens, ref)

	// A bare trailing number ("dinner monday 6") is an ambiguous hour, but
	// only once the day tokens have been consumed — before that a number may
	// be a day-of-month.
	if !hasTime && dayErr == nil {
		for _, tok := range rest {
			if h, err := strconv.Atoi(tok); err == nil && h >= 0 && h <= 23 {
				start = resolveAmbiguousHour(h, 0, part)
				hasTime = true
				break
			}
		}
	}

	if dayErr != nil {
		if !hasTime {
			return Resolution{}, ErrUnresolvedExpression
		}
		// Time with no date: today, rolling forward if already past.
		day = r.startOfDay(ref)
		if !day.Add(start.duration()).After(ref) {
			day = day.AddDate(0, 0, 1)
		}
	}

	res := Resolution{HasTime: hasTime, HasEnd: hasEnd}
	res.Start = day.Add(start.duration())
	if hasEnd {
		res.End = day.Add(end.duration())
		if !res.End.After(res.Start) {
			res.End = res.End.AddDate(0, 0, 1)
		}
	}
	return res, nil
}

// Apply completes a Resolution with the active policy: the start-time policy
// for bare dates, and the duration policy for a single time with no end.
func (r *Resolver) Apply(res Resolution, pol Policy) (Resolution, error) {
	if pol.DurationMinutes <= 0 {
		pol.DurationMinutes = DefaultPolicy.DurationMinutes
	}
	if pol.StartTime == "" {
		pol.StartTime = DefaultPolicy.StartTime
	}

	if !res.HasTime {
		t, err := time.Parse("15:04", pol.StartTime)
		if err != nil {
			return res, fmt.Errorf("invalid start time %q: %w", pol.StartTime, err)
		}
		day := r.startOfDay(res.Start)
		res.Start = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		res.HasTime = true
	}
	if !res.HasEnd {
		res.End = res.Start.Add(time.Duration(pol.DurationMinutes) * time.Minute)
		res.HasEnd = true
	}
	return res, nil
}

// resolveDay scans tokens for the first recognizable date expression and
// returns midnight of that day plus the unconsumed tokens.
func (r *Resolver) resolveDay(tokens []string, ref time.Time) (time.Time, []string, error) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok {
		case "today":
			return r.startOfDay(ref), drop(tokens, i, 1), nil
		case "tomorrow":
			return r.startOfDay(ref.AddDate(0, 0, 1)), drop(tokens, i, 1), nil
		case "yesterday":
			return r.startOfDay(ref.AddDate(0, 0, -1)), drop(tokens, i, 1), nil
		}

		// "in N days/weeks/months"
		if tok == "in" {
			if day, ok := r.resolveInDuration(tokens[i+1:], ref); ok {
				return day, drop(tokens, i, 3), nil
			}
		}

		// "next monday", "next tues"
		if tok == "next" && i+1 < len(tokens) {
			if wd, ok := weekdays[tokens[i+1]]; ok {
				return r.nextWeekday(ref, wd, true), drop(tokens, i, 2), nil
			}
			switch tokens[i+1] {
			case "week":
				return r.startOfDay(ref.AddDate(0, 0, 7)), drop(tokens, i, 2), nil
			case "month":
				return r.startOfDay(ref.AddDate(0, 1, 0)), drop(tokens, i, 2), nil
			}
		}

		// "this monday" is the upcoming occurrence, same as a bare weekday.
		if tok == "this" && i+1 < len(tokens) {
			if wd, ok := weekdays[tokens[i+1]]; ok {
				return r.nextWeekday(ref, wd, false), drop(tokens, i, 2), nil
			}
		}

		// Bare weekday, abbreviations included.
		if wd, ok := weekdays[tok]; ok {
			return r.nextWeekday(ref, wd, false), drop(tokens, i, 1), nil
		}

		// "march 5", "mar 5th", "march 5 2027"
		if mon, ok := months[tok]; ok && i+1 < len(tokens) {
			if dm := ordinalSuffixRe.FindStringSubmatch(tokens[i+1]); dm != nil {
				dayNum, _ := strconv.Atoi(dm[1])
				consumed := 2
				year := 0
				if i+2 < len(tokens) {
					if y, err := strconv.Atoi(tokens[i+2]); err == nil && y >= 1900 {
						year = y
						consumed = 3
					}
				}
				return r.monthDay(ref, mon, dayNum, year), drop(tokens, i, consumed), nil
			}
		}

		// "3/5" or "3/5/2027"
		if dm := slashDateRe.FindStringSubmatch(tok); dm != nil {
			monNum, _ := strconv.Atoi(dm[1])
			dayNum, _ := strconv.Atoi(dm[2])
			year := 0
			if dm[3] != "" {
				year, _ = strconv.Atoi(dm[3])
			}
			if monNum >= 1 && monNum <= 12 && dayNum >= 1 && dayNum <= 31 {
				return r.monthDay(ref, time.Month(monNum), dayNum, year), drop(tokens, i, 1), nil
			}
		}
	}

	return time.Time{}, tokens, ErrUnresolvedExpression
}

// resolveInDuration handles the tail of "in N days/weeks/months".
func (r *Resolver) resolveInDuration(tokens []string, ref time.Time) (time.Time, bool) {
	if len(tokens) < 2 {
		return time.Time{}, false
	}
	amount, err := strconv.Atoi(tokens[0])
	if err != nil || amount < 0 {
		return time.Time{}, false
	}
	switch strings.TrimSuffix(tokens[1], "s") {
	case "day":
		return r.startOfDay(ref.AddDate(0, 0, amount)), true
	case "week":
		return r.startOfDay(ref.AddDate(0, 0, amount*7)), true
	case "month":
		return r.startOfDay(ref.AddDate(0, amount, 0)), true
	}
	return time.Time{}, false
}

// nextWeekday returns the upcoming occurrence of the weekday. With strict set
// ("next monday"), a reference already on that weekday jumps a full week.
func (r *Resolver) nextWeekday(ref time.Time, wd time.Weekday, strict bool) time.Time {
	daysUntil := int(wd - ref.Weekday())
	if daysUntil < 0 || (strict && daysUntil == 0) {
		daysUntil += 7
	}
	return r.startOfDay(ref.AddDate(0, 0, daysUntil))
}

// monthDay resolves a month/day to a concrete date. A missing year always
// resolves to the nearest future occurrence.
func (r *Resolver) monthDay(ref time.Time, mon time.Month, day, year int) time.Time {
	if year != 0 {
		return time.Date(year, mon, day, 0, 0, 0, 0, r.location)
	}
	candidate := time.Date(ref.Year(), mon, day, 0, 0, 0, 0, r.location)
	if candidate.Before(r.startOfDay(ref)) {
		candidate = candidate.AddDate(1, 0, 0)
	}
	return candidate
}

func (r *Resolver) startOfDay(t time.Time) time.Time {
	t = t.In(r.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.location)
}

// resolveRange converts a matched time range, honoring the rule that only the
// endpoint lacking an explicit AM/PM marker inherits it from the other one.
func resolveRange(m []string, part dayPart) (clock, clock) {
	h1, _ := strconv.Atoi(m[1])
	min1 := atoiOrZero(m[2])
	mk1 := m[3]
	h2, _ := strconv.Atoi(m[4])
	min2 := atoiOrZero(m[5])
	mk2 := m[6]

	if mk1 == "" && mk2 != "" {
		mk1 = mk2
	} else if mk2 == "" && mk1 != "" {
		mk2 = mk1
	}

	start := resolveHour(h1, min1, mk1, part)
	end := resolveHour(h2, min2, mk2, part)

	// "11-1pm": the inherited marker pushed the start past the end; the start
	// must have been on the other side of noon.
	if end.duration() <= start.duration() && start.hour >= 12 && start.hour-12 < end.hour {
		start.hour -= 12
	}
	return start, end
}

func resolveClockMatch(m []string, part dayPart) clock {
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		return resolveHour(h, atoiOrZero(m[2]), m[3], part)
	}
	h, _ := strconv.Atoi(m[4])
	return resolveHour(h, 0, m[5], part)
}

func resolveHour(h, min int, marker string, part dayPart) clock {
	switch marker {
	case "pm":
		if h < 12 {
			h += 12
		}
		return clock{h, min}
	case "am":
		if h == 12 {
			h = 0
		}
		return clock{h, min}
	}
	return resolveAmbiguousHour(h, min, part)
}

// resolveAmbiguousHour disambiguates an hour with no AM/PM marker. An hour of
// 13 or more (or 0) is already 24-hour. Otherwise the surrounding day-part
// context decides; absent that, small hours are plausible only in the
// afternoon ("4" means 4 PM) while 8-11 read as morning.
func resolveAmbiguousHour(h, min int, part dayPart) clock {
	if h == 0 || h >= 13 {
		return clock{h, min}
	}
	switch part {
	case partMorning:
		if h == 12 {
			h = 0
		}
		return clock{h, min}
	case partEvening:
		if h < 12 {
			h += 12
		}
		return clock{h, min}
	}
	if h >= 1 && h <= 7 {
		return clock{h + 12, min}
	}
	return clock{h, min}
}

// stripDayPart removes day-part context words and reports the bias they imply.
// "noon" and "midnight" are rewritten to explicit clock values instead.
func stripDayPart(s string) (dayPart, string) {
	s = noonRe.ReplaceAllString(s, "12:00pm")
	s = midnightRe.ReplaceAllString(s, "12:00am")

	part := partUnknown
	for _, w := range []string{"morning", "afternoon", "evening", "tonight", "night"} {
		if !strings.Contains(s, w) {
			continue
		}
		if w == "morning" {
			part = partMorning
		} else {
			part = partEvening
		}
		if w == "tonight" {
			// "tonight" also carries the date signal.
			s = strings.ReplaceAll(s, w, "today")
		} else {
			s = strings.ReplaceAll(s, w, " ")
		}
	}
	return part, s
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func drop(tokens []string, i, n int) []string {
	out := make([]string, 0, len(tokens)-n)
	out = append(out, tokens[:i]...)
	out = append(out, tokens[i+n:]...)
	return out
}
