package crawler

import "errors"

// Crawl errors fall into two classes: configuration errors, detected
// before any fetching starts, and fetch errors raised mid-crawl.
//
// Design decision: We define sentinel errors and wrap them with
// fmt.Errorf("...: %w", ...) at the failure site. Callers classify with
// errors.Is (the HTTP layer maps configuration errors to 400 and fetch
// errors to 502) while the wrapped message keeps the failing URL or
// pattern for humans.
var (
	// ErrMalformedSeed is returned when the job's seed URL cannot be
	// normalized into an absolute URL. The crawl never starts.
	ErrMalformedSeed = errors.New("malformed seed URL")

	// ErrInvalidFollowPattern is returned when the job's followLinks
	// value is not a valid regular expression. The crawl never starts.
	ErrInvalidFollowPattern = errors.New("invalid follow pattern")

	// ErrFetch is returned when any page fetch fails during the crawl:
	// transport errors, body read errors, and undecodable bodies all
	// fall under it. The whole job is aborted; no partial results are
	// returned even if earlier pages were processed successfully.
	ErrFetch = errors.New("fetch failed")
)
