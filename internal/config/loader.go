package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pagesift/pagesift/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pagesift"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration. Every field is optional;
// zero values defer to the built-in defaults, and CLI flags override
// whatever the file sets.
type File struct {
	// Listen is the HTTP API listen address.
	Listen string `yaml:"listen"`

	// Timeout is the per-fetch HTTP timeout as a Go duration string,
	// e.g. "45s". Kept as a string because yaml.v3 has no native
	// duration decoding.
	Timeout string `yaml:"timeout"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent"`

	// MaxBodySize caps response body bytes read per page.
	MaxBodySize int64 `yaml:"maxBodySize"`

	// History toggles the job archive. Nil means "leave the default".
	History *bool `yaml:"history"`

	// HistoryDir overrides the history database directory.
	HistoryDir string `yaml:"historyDir"`
}

// LoadConfigFile loads a YAML configuration file. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that is
// fatal based on whether the path was explicitly requested.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cf, nil
}

// Apply overlays the file's values onto cfg. Only non-zero fields are
// applied so the file cannot accidentally blank a default.
func (f *File) Apply(cfg *Config) error {
	if f.Listen != "" {
		cfg.ListenAddr = f.Listen
	}
	if f.Timeout != "" {
		timeout, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in config file: %w", f.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.MaxBodySize > 0 {
		cfg.MaxBodySize = f.MaxBodySize
	}
	if f.History != nil {
		cfg.SaveHistory = *f.History
	}
	if f.HistoryDir != "" {
		cfg.HistoryDir = f.HistoryDir
	}
	return nil
}

// FindConfigFile searches for the configuration file in order:
//  1. configPath, when explicitly specified
//  2. .pagesift in the current directory
//  3. .pagesift in the user's home directory
//
// Returns the path if found, or empty string if not.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// LoadJobFile reads a crawl job from a YAML file. Since YAML is a
// superset of JSON, a job saved as the HTTP request payload loads
// unchanged.
func LoadJobFile(path string) (*model.CrawlJob, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided job path is intentional
	if err != nil {
		return nil, err
	}

	var job model.CrawlJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse job file %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("job file %s: %w", path, err)
	}

	return &job, nil
}
