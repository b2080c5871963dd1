package usecase

import (
	"time"

	"quickcal/internal/event"
	"quickcal/pkg/gcalendar"
	"quickcal/pkg/llmprovider"
	pkgLog "quickcal/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	llm      llmprovider.Completer
	calendar *gcalendar.Client
	timezone string
	loc      *time.Location
}

var _ event.UseCase = (*implUseCase)(nil)

// New creates a new event UseCase instance. The timezone names the IANA zone
// events are scheduled in; an unknown name falls back to UTC.
func New(
	l pkgLog.Logger,
	llm llmprovider.Completer,
	calendar *gcalendar.Client,
	timezone string,
) *implUseCase {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
		timezone = "UTC"
	}
	return &implUseCase{
		l:        l,
		llm:      llm,
		calendar: calendar,
		timezone: timezone,
		loc:      loc,
	}
}
