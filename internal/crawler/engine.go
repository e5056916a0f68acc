package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/pagesift/pagesift/internal/extract"
	"github.com/pagesift/pagesift/internal/model"
)

// BatchSize is the number of simultaneous in-flight fetches.
// It is a fixed fan-out per batch, not a tunable backpressure signal:
// every batch completes in full before the next one starts, trading
// latency for resource predictability.
const BatchSize = 6

// Engine runs one crawl job from seed to result table. It is stateless
// between runs; all crawl state (frontier, visited set, page cache) is
// local to a single Run call and never shared across jobs.
type Engine struct {
	// fetcher performs the page fetches.
	fetcher Fetcher

	// logger receives crawl progress at debug/info level.
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine that fetches pages with fetcher.
func NewEngine(fetcher Fetcher, opts ...Option) *Engine {
	e := &Engine{fetcher: fetcher}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Run executes job and returns the extracted result.
//
// Configuration problems (malformed seed, invalid selector, invalid
// follow pattern) are detected before any fetch is issued. During the
// crawl a single fetch failure aborts the whole job: no partial result
// is returned even if earlier pages were processed successfully.
func (e *Engine) Run(ctx context.Context, job model.CrawlJob) (*model.CrawlResult, error) {
	start := time.Now()

	seed, err := NormalizeURL(job.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSeed, err)
	}

	// Compile everything up front so a broken job fails before the
	// first request leaves the process.
	rules, err := extract.Compile(job.Searches)
	if err != nil {
		return nil, err
	}

	var follow *regexp.Regexp
	if job.FollowLinks != "" {
		follow, err = regexp.Compile(job.FollowLinks)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidFollowPattern, job.FollowLinks, err)
		}
	}

	pages, depth, err := e.crawl(ctx, seed, follow, job.MaxDepth)
	if err != nil {
		return nil, err
	}

	table := model.NewResultTable(job.Searches)
	for _, page := range pages {
		extract.Resolve(page.Document, rules, table)
	}

	result := &model.CrawlResult{
		Table:        table,
		PagesFetched: len(pages),
		Depth:        depth,
		Took:         time.Since(start),
	}

	e.logger.Info("crawl complete",
		"seed", seed,
		"pages", result.PagesFetched,
		"depth", result.Depth,
		"took", result.Took,
	)

	return result, nil
}

// crawl performs the breadth-first traversal and returns the page cache.
//
// The level merge contract: links discovered while processing depth D
// accumulate in a level-scoped set and only become the frontier for
// depth D+1. A link found twice during the same level is never explored
// within that level.
func (e *Engine) crawl(ctx context.Context, seed string, follow *regexp.Regexp, maxDepth int) ([]*model.Page, int, error) {
	frontier := map[string]struct{}{seed: {}}
	visited := make(map[string]struct{})
	pages := make([]*model.Page, 0, 1)

	depth := 0
	for len(frontier) > 0 && depth <= maxDepth {
		// Deterministic batch composition makes logs and tests stable.
		level := make([]string, 0, len(frontier))
		for u := range frontier {
			level = append(level, u)
		}
		sort.Strings(level)

		e.logger.Debug("starting depth level",
			"depth", depth,
			"frontier", len(level),
		)

		next := make(map[string]struct{})
		for batchStart := 0; batchStart < len(level); batchStart += BatchSize {
			batch := level[batchStart:min(batchStart+BatchSize, len(level))]

			bodies := make([]string, len(batch))
			g, gctx := errgroup.WithContext(ctx)
			for i, pageURL := range batch {
				g.Go(func() error {
					body, err := e.fetcher.Fetch(gctx, pageURL)
					if err != nil {
						return err
					}
					bodies[i] = body
					return nil
				})
			}
			// The whole batch completes (or the job dies) before any
			// crawl state is touched.
			if err := g.Wait(); err != nil {
				return nil, depth, err
			}

			// Single-threaded merge point: parse, mine links, mark
			// visited, cache the page.
			for i, pageURL := range batch {
				doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodies[i]))
				if err != nil {
					return nil, depth, fmt.Errorf("%w: parse %s: %w", ErrFetch, pageURL, err)
				}

				for candidate := range extractLinks(doc, pageURL, follow, visited) {
					next[candidate] = struct{}{}
				}
				visited[pageURL] = struct{}{}
				pages = append(pages, &model.Page{URL: pageURL, Document: doc})
			}
		}

		// A candidate discovered early in the level may point at a URL
		// fetched later in the same level. Screen the next frontier
		// against the final visited set so a URL is fetched at most
		// once per job and visited ∩ frontier stays empty.
		for candidate := range next {
			if _, ok := visited[candidate]; ok {
				delete(next, candidate)
			}
		}

		frontier = next
		depth++
	}

	// depth now points one past the last level fetched.
	return pages, depth - 1, nil
}
