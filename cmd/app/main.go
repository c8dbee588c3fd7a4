package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderservice/cmd"
	httpin "orderservice/internal/adapters/in/http"
	postgresadapter "orderservice/internal/adapters/out/postgres"
	"orderservice/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "orderservice",
		Usage: "food delivery order service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "dotenv file loaded before reading the environment",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and background jobs",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("orderservice: %v", err)
	}
}

func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}

func openDB(cfg cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func migrate(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	logger := newLogger()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	if err = postgresadapter.Migrate(c.Context, db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	logger.Info("schema migrated", "database", cfg.DBName)
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return err
	}
	logger := newLogger()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	publisher, err := cmd.NewEventPublisher(cfg)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("failed to close event publisher", "error", closeErr)
		}
	}()

	m := metrics.New(prometheus.DefaultRegisterer)
	root := cmd.NewCompositionRoot(cfg, db, publisher, m, logger)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := httpin.NewRouter(ctx, root.CreateServer(), m, prometheus.DefaultGatherer)
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "port", cfg.HTTPPort, "events_broker", cfg.EventsBroker)
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
