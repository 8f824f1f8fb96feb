// Package cli provides common initialization utilities shared by
// cmd/maeum and cmd/maeum-export-worker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"maeum/internal/backend"
	"maeum/internal/config"
	"maeum/internal/emotion"
	"maeum/internal/log"
	"maeum/internal/services"
	"maeum/internal/weather"
)

// SetupLogger initializes structured logging on stderr at the given level
// and sets it as the default logger.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:  log.ParseLevel(level),
		Output: os.Stderr,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads a .env file for local development. ENV_FILE selects the
// file and NO_DOTENV=1 skips loading. Variables already set win. A missing
// file is ignored.
func LoadEnvFile() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}
	_ = godotenv.Load()
}

// LoadConfig loads the configuration at path and validates it.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App is the wired journal application.
type App struct {
	Config  *config.Config
	Journal *services.JournalService
	Logger  *log.Logger
	Cleanup backend.CleanupFunc
}

// Close releases the store and the event publisher.
func (a *App) Close() error {
	if a.Cleanup == nil {
		return nil
	}
	return a.Cleanup()
}

// Bootstrap wires the catalog, the record store, the optional weather
// source and the optional event publisher into a journal service.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	logger = log.OrDiscard(logger)

	catalog := emotion.Load(cfg.EmotionMapFile, logger.WithComponent(log.ComponentCatalog))

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	opts := services.Options{
		City:    cfg.WeatherCity,
		Country: cfg.WeatherCountry,
		Logger:  logger,
	}
	if result.Publisher != nil {
		opts.Publisher = result.Publisher
	}
	if source, err := newWeatherSource(cfg, logger); err != nil {
		logger.WarnContext(ctx, "Weather disabled", log.FieldError, err)
	} else if source != nil {
		opts.Weather = source
	}

	return &App{
		Config:  cfg,
		Journal: services.NewJournalService(result.Store, catalog, opts),
		Logger:  logger,
		Cleanup: result.Cleanup,
	}, nil
}

// newWeatherSource returns nil without an error when no API key is set.
func newWeatherSource(cfg *config.Config, logger *log.Logger) (*weather.Source, error) {
	if !cfg.WeatherEnabled() {
		return nil, nil
	}
	client, err := weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout)
	if errors.Is(err, weather.ErrNoAPIKey) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache := weather.NewFileCache(cfg.WeatherCacheFile, cfg.WeatherMemCacheSize)
	return weather.NewSource(client, cache, logger), nil
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM. After
// the signal, cleanup runs and is given at most timeout to finish.
func GracefulShutdown(parent context.Context, logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	logger = log.OrDiscard(logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			return
		}
		cancel()

		if cleanup == nil {
			return
		}
		done := make(chan struct{})
		go func() {
			cleanup()
			close(done)
		}()
		select {
		case <-done:
			logger.Info("Shutdown complete")
		case <-time.After(timeout):
			logger.Warn("Shutdown timeout reached")
		}
	}()

	return ctx, cancel
}
