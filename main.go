package main

import (
	"context"
	"log"
	"os"

	"github.com/VitaliiEv/t1rest/config"
	"github.com/VitaliiEv/t1rest/middleware/requestlog"
	"github.com/VitaliiEv/t1rest/modules/api"
	"github.com/VitaliiEv/t1rest/modules/auth"
	"github.com/VitaliiEv/t1rest/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== t1rest Task API ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Middleware must be registered first to intercept service registrations.
	// Regular modules follow: independent ones first, then the API which
	// depends on task and auth.
	modules := []mono.Module{
		requestlog.New(logger),
		auth.NewModule(auth.Credentials{
			Username: cfg.AuthUsername,
			Password: cfg.AuthPassword,
		}, cfg.BcryptCost, logger),
		task.NewModule(cfg.DBPath, cfg.DBDebug, logger),
		api.NewModule(cfg.HTTPPort, logger),
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register module %s: %v", m.Name(), err)
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	logger.Info("Application started",
		"port", cfg.HTTPPort,
		"database", cfg.DBPath,
		"username", cfg.AuthUsername)
	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d), HTTP Basic auth required:", cfg.HTTPPort)
	log.Println("  GET    /tasks?page=N   - List tasks, 100 per page")
	log.Println("  POST   /tasks          - Create a task")
	log.Println("  GET    /tasks/:id      - Get a task by ID")
	log.Println("  PUT    /tasks/:id      - Partially update a task")
	log.Println("  DELETE /tasks/:id      - Delete a task")
	log.Println("  GET    /health         - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
