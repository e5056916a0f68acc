package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: Package-level sentinel errors rather than ad-hoc
// errors.New calls inside Validate(), so callers can branch with
// errors.Is while the messages stay human-readable.
var (
	// ErrInvalidTimeout is returned when the fetch timeout is not
	// positive. A zero http.Client timeout would disable the limit
	// entirely, which is never what a scrape run wants.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is
	// negative. Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidListenAddr is returned when the listen address is empty.
	ErrInvalidListenAddr = errors.New("invalid listen address: must not be empty")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are requested. Only one output format applies.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
