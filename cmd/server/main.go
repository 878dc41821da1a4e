package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/persuasion-engine/internal/api"
	"github.com/persuasion-engine/internal/catalog"
	"github.com/persuasion-engine/internal/config"
	"github.com/persuasion-engine/internal/engine"
	"github.com/persuasion-engine/internal/metrics"
	"github.com/persuasion-engine/internal/source"
	"github.com/persuasion-engine/internal/source/prompts"
	"github.com/persuasion-engine/internal/source/rss"
	"github.com/persuasion-engine/internal/storage/sqlite"
	"github.com/persuasion-engine/pkg/logger"
	"github.com/persuasion-engine/pkg/ratelimit"
)

var (
	cfgFile string
	port    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "persuasion-server",
		Short: "HTTP backend for the persuasion engine",
		Long: `Serves content generation, the Persuasion Lab catalog, presets and
topic suggestions over HTTP for the web UI.`,
		RunE: runServer,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	log.Info().Msg("Starting persuasion engine server")

	repo, err := sqlite.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	limiter := ratelimit.NewLimiter(cfg.Server.GenerateRPS, cfg.Server.GenerateBurst)

	sourceManager := source.NewManager()
	sourceManager.Register(prompts.New(cfg.Sources.QuickPrompts, log))
	if cfg.Sources.RSS.Enabled {
		for _, src := range rss.NewMultiple(cfg.Sources.RSS, limiter, log) {
			sourceManager.Register(src)
		}
	}

	opts := []engine.Option{engine.WithLogger(log)}
	if cfg.Engine.StrictSanitize {
		opts = append(opts, engine.WithSanitizer(engine.StrictSanitizer{}))
	}

	latency, err := cfg.Server.Latency()
	if err != nil {
		return err
	}

	featured := prompts.NewFeatured(cfg.Sources.QuickPrompts)
	server := api.NewServer(api.Deps{
		Engine:         engine.New(opts...),
		Catalog:        catalog.Default(),
		Presets:        repo,
		Topics:         sourceManager,
		Featured:       featured,
		Limiter:        limiter,
		Metrics:        metrics.New(),
		Log:            log,
		Latency:        latency,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Rotate the featured quick prompt
	c := cron.New(cron.WithLogger(cronLogger{log}))
	_, err = c.AddFunc(cfg.Server.FeaturedCron, func() {
		log.Info().Str("topic", featured.Advance()).Msg("Featured prompt rotated")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule featured prompt rotation: %w", err)
	}
	log.Info().Str("cron", cfg.Server.FeaturedCron).Msg("Featured rotation scheduled")

	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30*time.Second + latency,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

// cronLogger adapts our logger for cron
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
