package model

import "errors"

// Job validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrMissingSeed is returned when a job has no seed URL.
	ErrMissingSeed = errors.New("missing seed URL")

	// ErrNegativeDepth is returned when maxDepth is negative.
	// Depth 0 means the seed page only; there is no meaning below that.
	ErrNegativeDepth = errors.New("invalid max depth: must be non-negative")

	// ErrEmptySelector is returned when a search rule has an empty selector.
	ErrEmptySelector = errors.New("invalid search rule: selector must not be empty")
)

// CrawlJob describes one scrape request. It is immutable for the
// lifetime of one crawl; the crawler and extractor only read it.
//
// The JSON field names form the public request payload of the HTTP API.
// The YAML tags allow the same structure to be loaded from a job file
// via the scrape subcommand.
type CrawlJob struct {
	// URL is the seed URL the crawl starts from. Required.
	URL string `json:"url" yaml:"url"`

	// FollowLinks is an optional regular expression. Discovered links are
	// added to the crawl frontier only when they match it. When empty, the
	// crawl never expands past the seed page regardless of MaxDepth.
	//
	// Note: the empty pattern is deliberately treated as "absent", not as
	// a match-everything regexp. Callers that want to follow every link
	// should pass ".*" explicitly.
	FollowLinks string `json:"followLinks,omitempty" yaml:"followLinks,omitempty"`

	// MaxDepth is the breadth-first depth bound. 0 (the default) means
	// only the seed page is fetched; 1 adds one level of links, and so on.
	MaxDepth int `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`

	// Searches is the ordered list of extraction rules applied to every
	// fetched page once crawling finishes.
	Searches []SearchRule `json:"searches" yaml:"searches"`
}

// SearchRule pairs one CSS selector with the attribute specs to resolve
// on every element it matches. Attributes are either literal HTML
// attribute names (e.g. "href") or one of the reserved pseudo-attributes
// understood by the extract package (e.g. "TextContent").
type SearchRule struct {
	// Selector is a CSS selector string, compiled once per job.
	Selector string `json:"selector" yaml:"selector"`

	// Attributes lists the attribute specs resolved per matched element.
	Attributes []string `json:"attributes" yaml:"attributes"`
}

// Validate checks the structural constraints a job must satisfy before
// any crawling starts. Selector and follow-pattern syntax are validated
// later, at compile time, because they need the regexp and cascadia
// compilers.
func (j *CrawlJob) Validate() error {
	if j.URL == "" {
		return ErrMissingSeed
	}
	if j.MaxDepth < 0 {
		return ErrNegativeDepth
	}
	for _, rule := range j.Searches {
		if rule.Selector == "" {
			return ErrEmptySelector
		}
	}
	return nil
}
