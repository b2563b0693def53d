package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"newsroom/internal/config"
	"newsroom/internal/infrastructure/feed"
	"newsroom/internal/infrastructure/llm"
	"newsroom/internal/infrastructure/scheduler"
	"newsroom/internal/infrastructure/store"
	"newsroom/internal/infrastructure/telegram"
	"newsroom/internal/logging"
	"newsroom/internal/ports"
	"newsroom/internal/server"
	"newsroom/internal/usecase"
)

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	server   *server.Server
	driver   ports.Scheduler
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	documentStore, err := buildStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	documents := store.NewClient(documentStore)

	collector := feed.NewCollector(cfg.Collector.Delay(), baseLogger.With("component", "collector"))
	summarizer := llm.NewGeminiSummarizer(cfg.Gemini)

	var notifier ports.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Documents:  documents,
		Collector:  collector,
		Summarizer: summarizer,
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	srv := server.New(server.Deps{
		Pipeline:   pipeline,
		Feeds:      usecase.NewFeedService(documents),
		Stats:      usecase.NewStatsService(documents),
		Documents:  documents,
		AdminToken: cfg.Server.AdminToken,
		Logger:     baseLogger.With("component", "server"),
	})

	var driver ports.Scheduler
	if cfg.Scheduler.Enabled {
		driver = scheduler.NewIntervalScheduler(cfg.Scheduler.Every())
	}

	return &Application{
		cfg:      cfg,
		pipeline: pipeline,
		server:   srv,
		driver:   driver,
		logger:   baseLogger,
	}, nil
}

// Serve runs the HTTP shell (and the optional scheduler) until ctx is done.
func (a *Application) Serve(ctx context.Context) error {
	if a.driver != nil {
		job := func(trigger time.Time) {
			if _, err := a.pipeline.Run(ctx, trigger, a.logProgress); err != nil {
				a.logger.Warn("scheduled run", "error", err)
			}
		}
		if err := a.driver.Start(ctx, job); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer func() { _ = a.driver.Stop(context.Background()) }()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start(a.cfg.Server.Addr)
	}()

	a.logger.Info("serving", "addr", a.cfg.Server.Addr, "store", a.cfg.Store.Mode)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	}
}

// RunOnce executes a single pipeline run and returns its result.
func (a *Application) RunOnce(ctx context.Context) (usecase.RunResult, error) {
	return a.pipeline.Run(ctx, time.Now(), a.logProgress)
}

func (a *Application) logProgress(p usecase.Progress) {
	a.logger.Info("pipeline progress", "run_id", p.RunID, "stage", p.Stage, "percent", p.Percent)
}

func buildStore(cfg config.StoreConfig) (ports.DocumentStore, error) {
	switch cfg.Mode {
	case config.StoreModeGitHub:
		if cfg.Repo == "" || cfg.Token == "" {
			return nil, fmt.Errorf("github store requires repo and token")
		}
		return store.NewGitHubStore(cfg), nil
	case config.StoreModeLocal, "":
		dir := cfg.DataDir
		if dir == "" {
			dir = filepath.Join(xdg.DataHome, "newsroom")
		}
		return store.NewLocalStore(dir), nil
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.Mode)
	}
}
