package model

import "github.com/PuerkitoBio/goquery"

// Page is one successfully fetched page held in the crawl cache.
// It is produced once per fetch, retained until extraction over all
// pages finishes, then discarded with the rest of the crawl state.
//
// Design decision: We cache the parsed document rather than the raw
// body because every consumer (link discovery during the crawl,
// selector resolution afterwards) wants the DOM, and parsing twice
// would double the most expensive per-page step.
type Page struct {
	// URL is the normalized URL the page was fetched from.
	URL string

	// Document is the parsed DOM. The underlying parser is lenient:
	// malformed markup still yields a best-effort tree.
	Document *goquery.Document
}
