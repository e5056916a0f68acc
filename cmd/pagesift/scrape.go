package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/internal/config"
	"github.com/pagesift/pagesift/internal/crawler"
	"github.com/pagesift/pagesift/internal/history"
	"github.com/pagesift/pagesift/internal/model"
	"github.com/pagesift/pagesift/internal/report"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [url]",
		Short: "Run one scrape job and print the extracted values",
		Long: `Scrape crawls from the seed URL and extracts values with selector rules.

A job comes either from flags or from a YAML/JSON job file (--job).
Each --search flag declares one rule as "selector=attr1,attr2"; the
attributes are literal HTML attribute names or the pseudo-attributes
TextContent, HtmlContent, InnerHtml, and Html2Text.

Examples:
  # Extract the title of one page
  pagesift scrape https://example.com -s "title=TextContent"

  # Follow every same-site link one level deep, collect article hrefs
  pagesift scrape https://example.com \
    --follow 'https://example\.com/.*' --depth 1 \
    -s "article a=href,TextContent"

  # Run a job file and emit JSON
  pagesift scrape --job job.yaml --json

  # Write a Markdown report to a file
  pagesift scrape --job job.yaml --markdown -o report.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScrapeCmd,
	}

	// Job definition flags
	cmd.Flags().StringP("job", "f", "", "Load the job from a YAML/JSON file")
	cmd.Flags().StringP("follow", "F", "", "Regular expression; only matching links are followed")
	cmd.Flags().IntP("depth", "d", 0, "Maximum crawl depth (0 = seed page only)")
	cmd.Flags().StringArrayP("search", "s", nil, `Search rule "selector=attr1,attr2" (repeatable)`)

	// Fetch behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "HTTP timeout per page fetch")
	cmd.Flags().String("user-agent", config.DefaultUserAgent, "User-Agent header for fetches")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize, "Maximum response body bytes read per page")

	// Report flags
	cmd.Flags().BoolP("json", "j", false, "Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")

	// History flags
	cmd.Flags().Bool("no-history", false, "Do not archive the job in the history database")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	job, err := buildJob(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Cancel the crawl on interrupt
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScrape(ctx, cfg, job, logger)
}

// buildScrapeConfig creates a Config from scrape command flags.
func buildScrapeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}
	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.HistoryDir = config.XDGDataDir()

	return cfg, nil
}

// buildJob assembles the crawl job from the job file or flags.
// Flags override the corresponding job file fields so a shared job
// file can be tweaked per run.
func buildJob(cmd *cobra.Command, args []string) (*model.CrawlJob, error) {
	jobFile, err := cmd.Flags().GetString("job")
	if err != nil {
		return nil, err
	}

	job := &model.CrawlJob{}
	if jobFile != "" {
		job, err = config.LoadJobFile(jobFile)
		if err != nil {
			return nil, err
		}
	}

	if len(args) > 0 {
		job.URL = args[0]
	}
	if cmd.Flags().Changed("follow") {
		job.FollowLinks, _ = cmd.Flags().GetString("follow")
	}
	if cmd.Flags().Changed("depth") {
		job.MaxDepth, _ = cmd.Flags().GetInt("depth")
	}

	specs, err := cmd.Flags().GetStringArray("search")
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		rule, err := parseSearchSpec(spec)
		if err != nil {
			return nil, err
		}
		job.Searches = append(job.Searches, rule)
	}

	if job.URL == "" {
		return nil, errors.New("no seed URL provided (pass a URL argument or use --job)")
	}
	if len(job.Searches) == 0 {
		return nil, errors.New("no search rules provided (use --search or a job file)")
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// parseSearchSpec parses one --search flag value of the form
// "selector=attr1,attr2". The selector may itself contain '=' (e.g.
// attribute selectors like a[rel=nofollow]), so the LAST '=' splits
// selector from attributes.
func parseSearchSpec(spec string) (model.SearchRule, error) {
	idx := strings.LastIndex(spec, "=")
	if idx <= 0 || idx == len(spec)-1 {
		return model.SearchRule{}, fmt.Errorf("invalid search %q: want \"selector=attr1,attr2\"", spec)
	}

	selector := spec[:idx]
	var attrs []string
	for _, attr := range strings.Split(spec[idx+1:], ",") {
		attr = strings.TrimSpace(attr)
		if attr != "" {
			attrs = append(attrs, attr)
		}
	}
	if len(attrs) == 0 {
		return model.SearchRule{}, fmt.Errorf("invalid search %q: no attributes", spec)
	}

	return model.SearchRule{Selector: selector, Attributes: attrs}, nil
}

// runScrape executes the job and writes the report.
func runScrape(ctx context.Context, cfg *config.Config, job *model.CrawlJob, logger *slog.Logger) error {
	client := &http.Client{Timeout: cfg.Timeout}
	fetcher := crawler.NewHTTPFetcher(client,
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	engine := crawler.NewEngine(fetcher, crawler.WithLogger(logger))

	result, err := engine.Run(ctx, *job)
	if err != nil {
		return err
	}

	if cfg.SaveHistory {
		if err := archiveJob(ctx, cfg, *job, result, logger); err != nil {
			// Archiving never fails the scrape; the result is in hand.
			logger.Warn("failed to archive job", "error", err)
		}
	}

	output, closeOutput, err := reportDestination(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer := newReportWriter(cfg, output)
	if _, err := writer.Write(*job, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// archiveJob saves the completed job to the history database.
func archiveJob(ctx context.Context, cfg *config.Config, job model.CrawlJob, result *model.CrawlResult, logger *slog.Logger) error {
	store, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Save(ctx, job, result)
	if err != nil {
		return err
	}

	logger.Debug("job archived", "id", id, "db", store.Path())
	return nil
}

// reportDestination returns the report output writer and a close func.
func reportDestination(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return os.Stdout, func() {}, nil
	}

	if dir := filepath.Dir(cfg.ReportFile); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newReportWriter picks the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output)
	}
}
