// Package server exposes the crawl engine over HTTP.
//
// Two routes:
//
//	GET  /        name and version, a cheap liveness probe
//	POST /scrape  run one crawl job, return the result table as JSON
//
// The handler is deliberately thin glue: deserialize the job, call the
// engine, serialize the table or the error. Configuration errors map
// to 400 and fetch failures to 502; in both cases the body is an
// {"error": "..."} object and never a partial result.
package server
