package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickcal/config"
	_ "quickcal/docs" // Swagger docs
	"quickcal/internal/event/usecase"
	"quickcal/internal/httpserver"
	"quickcal/internal/middleware"
	"quickcal/pkg/gcalendar"
	"quickcal/pkg/llmprovider"
	"quickcal/pkg/log"
	"quickcal/pkg/scope"
)

// @title       QuickCal API
// @description Natural language to structured calendar event extraction with Google Calendar scheduling.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting QuickCal...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Generative backends
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}
	requestTimeout, err := time.ParseDuration(cfg.LLM.RequestTimeout)
	if err != nil {
		logger.Warnf(ctx, "Invalid llm.request_timeout %q, using 15s", cfg.LLM.RequestTimeout)
		requestTimeout = 15 * time.Second
	}
	llm := llmprovider.NewManager(providers, len(providers) > 1, requestTimeout, logger)

	// 4. Google Calendar client (optional; parse-only mode without it)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			logger.Warn(ctx, "Run `go run scripts/gcal-auth/main.go` to generate token.json")
			calendarClient = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 5. Event domain
	eventUC := usecase.New(logger, llm, calendarClient, cfg.Parser.Timezone)

	// 6. Middleware: bearer auth + daily quota
	jwtManager := scope.NewJWTManager(cfg.Auth.JWTSecret)
	mw := middleware.New(logger, jwtManager, cfg.RateLimit)

	// 7. HTTP Server
	httpServer, err := httpserver.New(httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware:  mw,
		EventUC:     eventUC,
		CalendarID:  cfg.GoogleCalendar.CalendarID,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
