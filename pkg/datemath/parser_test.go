package datemath_test

import (
	"testing"
	"time"

	"quickcal/pkg/datemath"
)

func TestNewResolver(t *testing.T) {
	_, err := datemath.NewResolver("America/New_York")
	if err != nil {
		t.Fatalf("unexpected error creating valid resolver: %v", err)
	}

	_, err = datemath.NewResolver("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestResolve(t *testing.T) {
	r, _ := datemath.NewResolver("UTC")

	// Tuesday, March 10, 2026, 08:00 local
	ref := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	at := func(y int, m time.Month, d, h, min int) time.Time {
		return time.Date(y, m, d, h, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		expr      string
		wantStart time.Time
		wantEnd   time.Time
		wantTime  bool
		wantEnded bool
		wantErr   bool
	}{
		{
			name:      "bare tomorrow",
			expr:      "tomorrow",
			wantStart: at(2026, 3, 11, 0, 0),
		},
		{
			name:      "bare today",
			expr:      "today",
			wantStart: at(2026, 3, 10, 0, 0),
		},
		{
			name:      "in 3 days",
			expr:      "in 3 days",
			wantStart: at(2026, 3, 13, 0, 0),
		},
		{
			name:      "in 2 weeks",
			expr:      "in 2 weeks",
			wantStart: at(2026, 3, 24, 0, 0),
		},
		{
			name:      "next monday from a tuesday",
			expr:      "next monday",
			wantStart: at(2026, 3, 16, 0, 0),
		},
		{
			name:      "bare weekday abbreviation",
			expr:      "mon",
			wantStart: at(2026, 3, 16, 0, 0),
		},
		{
			name:      "irregular tues abbreviation resolves to same day",
			expr:      "tues",
			wantStart: at(2026, 3, 10, 0, 0),
		},
		{
			name:      "irregular thurs with ambiguous morning hour",
			expr:      "thurs 9",
			wantStart: at(2026, 3, 12, 9, 0),
			wantTime:  true,
		},
		{
			name:      "weekday with ambiguous evening hour",
			expr:      "dinner friday at 6",
			wantStart: at(2026, 3, 13, 18, 0),
			wantTime:  true,
		},
		{
			name:      "explicit range with shared pm marker",
			expr:      "today 4-6pm",
			wantStart: at(2026, 3, 10, 16, 0),
			wantEnd:   at(2026, 3, 10, 18, 0),
			wantTime:  true,
			wantEnded: true,
		},
		{
			name:      "bare range defaults to afternoon",
			expr:      "tomorrow 4-6",
			wantStart: at(2026, 3, 11, 16, 0),
			wantEnd:   at(2026, 3, 11, 18, 0),
			wantTime:  true,
			wantEnded: true,
		},
		{
			name:      "range with minutes",
			expr:      "tomorrow at 2:30-4:30",
			wantStart: at(2026, 3, 11, 14, 30),
			wantEnd:   at(2026, 3, 11, 16, 30),
			wantTime:  true,
			wantEnded: true,
		},
		{
			name:      "range straddling noon inherits marker correctly",
			expr:      "today 11-1pm",
			wantStart: at(2026, 3, 10, 11, 0),
			wantEnd:   at(2026, 3, 10, 13, 0),
			wantTime:  true,
			wantEnded: true,
		},
		{
			name:      "month day without year resolves forward",
			expr:      "june 1",
			wantStart: at(2026, 6, 1, 0, 0),
		},
		{
			name:      "past month day rolls to next year",
			expr:      "january 5",
			wantStart: at(2027, 1, 5, 0, 0),
		},
		{
			name:      "slash date in the past rolls to next year",
			expr:      "3/5",
			wantStart: at(2027, 3, 5, 0, 0),
		},
		{
			name:      "month day with explicit year",
			expr:      "march 5 2027",
			wantStart: at(2027, 3, 5, 0, 0),
		},
		{
			name:      "time only later today",
			expr:      "4pm",
			wantStart: at(2026, 3, 10, 16, 0),
			wantTime:  true,
		},
		{
			name:      "time only already past rolls to tomorrow",
			expr:      "7am",
			wantStart: at(2026, 3, 11, 7, 0),
			wantTime:  true,
		},
		{
			name:      "morning context biases ambiguous hour",
			expr:      "tomorrow morning 9",
			wantStart: at(2026, 3, 11, 9, 0),
			wantTime:  true,
		},
		{
			name:      "tonight carries date and evening bias",
			expr:      "tonight 8",
			wantStart: at(2026, 3, 10, 20, 0),
			wantTime:  true,
		},
		{
			name:      "noon is explicit",
			expr:      "tomorrow noon",
			wantStart: at(2026, 3, 11, 12, 0),
			wantTime:  true,
		},
		{
			name:      "afternoon context biases ambiguous hour",
			expr:      "tomorrow afternoon at 3",
			wantStart: at(2026, 3, 11, 15, 0),
			wantTime:  true,
		},
		{
			name:      "afternoon does not fabricate a noon start",
			expr:      "tomorrow afternoon at 10",
			wantStart: at(2026, 3, 11, 22, 0),
			wantTime:  true,
		},
		{
			name:      "afternoon without an hour stays date-only",
			expr:      "tomorrow afternoon",
			wantStart: at(2026, 3, 11, 0, 0),
		},
		{
			name:    "no signal at all",
			expr:    "hello world",
			wantErr: true,
		},
		{
			name:    "empty expression",
			expr:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.expr, ref)
			if tt.wantErr {
				if err != datemath.ErrUnresolvedExpression {
					t.Fatalf("expected ErrUnresolvedExpression, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", got.Start, tt.wantStart)
			}
			if got.HasTime != tt.wantTime {
				t.Errorf("HasTime = %v, want %v", got.HasTime, tt.wantTime)
			}
			if got.HasEnd != tt.wantEnded {
				t.Errorf("HasEnd = %v, want %v", got.HasEnd, tt.wantEnded)
			}
			if tt.wantEnded && !got.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestResolve_FirstFutureTuesday(t *testing.T) {
	r, _ := datemath.NewResolver("UTC")

	// Thursday, January 1, 2026.
	ref := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := r.Resolve("tuesday at 5pm", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 1, 6, 17, 0, 0, 0, time.UTC)
	if !got.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", got.Start, want)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r, _ := datemath.NewResolver("UTC")
	ref := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	first, err := r.Resolve("next friday 4-6pm", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Resolve("next friday 4-6pm", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Start.Equal(second.Start) || !first.End.Equal(second.End) {
		t.Errorf("resolution is not idempotent: %v vs %v", first, second)
	}
}

func TestApply(t *testing.T) {
	r, _ := datemath.NewResolver("UTC")
	ref := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("date only applies start time and duration", func(t *testing.T) {
		res, err := r.Resolve("tomorrow", ref)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		res, err = r.Apply(res, datemath.Policy{DurationMinutes: 60, StartTime: "12:00"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantStart := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC)
		if !res.Start.Equal(wantStart) {
			t.Errorf("Start = %v, want %v", res.Start, wantStart)
		}
		if !res.End.Equal(wantEnd) {
			t.Errorf("End = %v, want %v", res.End, wantEnd)
		}
	})

	t.Run("single time applies duration only", func(t *testing.T) {
		res, _ := r.Resolve("friday 5pm", ref)

		res, err := r.Apply(res, datemath.Policy{DurationMinutes: 90})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantEnd := time.Date(2026, 3, 13, 18, 30, 0, 0, time.UTC)
		if !res.End.Equal(wantEnd) {
			t.Errorf("End = %v, want %v", res.End, wantEnd)
		}
	})

	t.Run("range untouched by policy", func(t *testing.T) {
		res, _ := r.Resolve("today 4-6pm", ref)

		res, err := r.Apply(res, datemath.Policy{DurationMinutes: 30, StartTime: "08:00"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if res.Start.Hour() != 16 || res.End.Hour() != 18 {
			t.Errorf("policy must not override explicit range: %v - %v", res.Start, res.End)
		}
	})

	t.Run("invalid policy start time", func(t *testing.T) {
		res, _ := r.Resolve("tomorrow", ref)

		if _, err := r.Apply(res, datemath.Policy{StartTime: "25:99"}); err == nil {
			t.Fatalf("expected error for invalid start time")
		}
	})
}
