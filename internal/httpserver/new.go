package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"quickcal/internal/event"
	"quickcal/internal/middleware"
	"quickcal/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	middleware middleware.Middleware
	eventUC    event.UseCase
	calendarID string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	Middleware middleware.Middleware
	EventUC    event.UseCase
	CalendarID string
}

// New creates a new HTTPServer instance.
func New(cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           cfg.Logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		middleware:  cfg.Middleware,
		eventUC:     cfg.EventUC,
		calendarID:  cfg.CalendarID,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.eventUC == nil {
		return errors.New("event use case is required")
	}
	return nil
}
