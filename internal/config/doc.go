// Package config holds runtime configuration for pagesift.
//
// Configuration flows one way: cobra flags (optionally seeded from a
// YAML config file) populate a Config struct, which is passed to the
// components that need it via dependency injection. Nothing in this
// package is global state.
//
// The package also loads YAML job files for the scrape subcommand,
// since a job file is just the request payload in YAML clothing.
package config
