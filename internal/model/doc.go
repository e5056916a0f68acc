// Package model defines the core data types shared across pagesift.
//
// The types here describe one scrape job end to end:
//   - CrawlJob and SearchRule describe what the caller wants.
//   - Page holds one fetched and parsed document during a crawl.
//   - ResultTable and ValueSet hold the extracted values handed back
//     to the caller.
//
// Design decision: This package has no behavior beyond validation and
// (de)serialization. Crawling lives in internal/crawler and extraction
// in internal/extract, so the model can be imported by every layer
// (CLI, HTTP server, history store) without dependency cycles.
package model
