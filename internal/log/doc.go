// Package log provides slog helpers for pagesift.
//
// Scrape logging has two hazards: log records routinely carry page
// bodies, selector match dumps, and long URL lists that can balloon a
// log line to megabytes, and fetch requests may carry credentials in
// headers that must never reach a log sink. TrimHandler wraps any
// slog.Handler and deals with both before records reach it.
package log
