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

	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/internal/config"
	"github.com/pagesift/pagesift/internal/crawler"
	"github.com/pagesift/pagesift/internal/history"
	"github.com/pagesift/pagesift/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scrape HTTP API",
		Long: `Serve starts the pagesift HTTP API.

Routes:
  GET  /        name and version
  POST /scrape  run one crawl job, body and response are JSON

Example job submission:
  curl -X POST localhost:8080/scrape -d '{
    "url": "https://example.com",
    "followLinks": "https://example\\.com/.*",
    "maxDepth": 1,
    "searches": [{"selector": "title", "attributes": ["TextContent"]}]
  }'

Settings come from flags, optionally seeded from a YAML config file
(.pagesift in the current or home directory, or --config).`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr, "Listen address")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "HTTP timeout per page fetch")
	cmd.Flags().String("user-agent", config.DefaultUserAgent, "User-Agent header for fetches")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize, "Maximum response body bytes read per page")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .pagesift in current or home directory)")
	cmd.Flags().Bool("no-history", false, "Do not archive completed jobs")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping...")
		cancel()
	}()

	return runServe(ctx, cfg, logger)
}

// buildServeConfig creates a Config from the config file and serve flags.
// Flags the user set explicitly win over file values.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	explicit := configPath != ""

	if found := config.FindConfigFile(configPath); found != "" {
		file, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, err
		}
		cfg.ConfigFilePath = found
	} else if explicit {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Changed("user-agent") {
		cfg.UserAgent, _ = cmd.Flags().GetString("user-agent")
	}
	if cmd.Flags().Changed("max-body-size") {
		cfg.MaxBodySize, _ = cmd.Flags().GetInt64("max-body-size")
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.SaveHistory = false
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = config.XDGDataDir()
	}

	return cfg, nil
}

// runServe starts the HTTP API and blocks until shutdown.
func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	client := &http.Client{Timeout: cfg.Timeout}
	fetcher := crawler.NewHTTPFetcher(client,
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	engine := crawler.NewEngine(fetcher, crawler.WithLogger(logger))

	opts := []server.ServerOption{
		server.WithLogger(logger),
		server.WithVersion(getVersion()),
	}

	if cfg.SaveHistory {
		store, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()
		logger.Info("history database opened", "path", store.Path())
		opts = append(opts, server.WithHistory(store))
	}

	srv := server.New(engine, opts...)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// Give in-flight crawls a moment to finish before forcing the close.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
