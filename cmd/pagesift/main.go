// Package main provides the entry point for the pagesift CLI.
//
// pagesift is a declarative scraping engine: it crawls from a seed URL
// breadth-first, optionally following links that match a pattern up to
// a depth bound, and extracts values from every visited page using CSS
// selector rules.
//
// Usage:
//
//	pagesift scrape <url> -s "title=TextContent"
//	pagesift scrape --job job.yaml --json
//	pagesift serve --addr :8080
//
// See --help for all available options.
package main

// main is the entry point for pagesift.
func main() {
	Execute()
}
