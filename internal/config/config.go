package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request HTTP timeout. Scraping targets
	// are ordinary web servers, so 30 seconds is generous without
	// letting one dead host stall a whole crawl batch for minutes.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies pagesift in HTTP requests. A
	// descriptive User-Agent lets site operators attribute scraper
	// traffic in their logs.
	DefaultUserAgent = "pagesift/1.0 (+https://github.com/pagesift/pagesift)"

	// DefaultMaxBodySize limits how many response body bytes are read
	// per page. 5MB covers any realistic HTML document while preventing
	// memory exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultListenAddr is the HTTP API listen address for serve.
	DefaultListenAddr = ":8080"

	// AppName is the application name used for XDG directory paths.
	AppName = "pagesift"
)

// Config holds all runtime options for pagesift. It is populated from
// CLI flags (optionally seeded from a config file) and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested
// sub-structs. The number of options is small, and nesting would add
// complexity without benefit.
type Config struct {
	// ListenAddr is the HTTP API listen address ("host:port" or ":port").
	// Only used by the serve subcommand.
	ListenAddr string

	// Timeout is the HTTP timeout applied to each page fetch.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with every fetch.
	UserAgent string

	// MaxBodySize is the maximum response body size read per page,
	// in bytes. 0 means use DefaultMaxBodySize.
	MaxBodySize int64

	// Verbose enables debug-level logging.
	Verbose bool

	// SaveHistory controls whether completed jobs are archived in the
	// local SQLite history database. Crawl state itself (frontier,
	// visited set) is never persisted; only finished results are.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	// Empty means the XDG data directory.
	HistoryDir string

	// JSONReport selects JSON output for the scrape subcommand.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output for the scrape subcommand.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, writes the scrape report to this path
	// instead of stdout. Parent directories are created as needed.
	ReportFile string

	// ConfigFilePath is an explicit config file path. Empty means
	// search the default locations (see FindConfigFile).
	ConfigFilePath string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		ListenAddr:  DefaultListenAddr,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		SaveHistory: true,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.ListenAddr == "" {
		return ErrInvalidListenAddr
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGDataDir returns the default directory for pagesift data files
// (the history database), following the XDG base directory spec.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
