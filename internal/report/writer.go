package report

import (
	"io"
	"sort"

	"github.com/pagesift/pagesift/internal/model"
)

// Writer renders one completed scrape job.
//
// Design decision: An interface rather than format functions so the
// CLI can pick a writer from flags once and the write site stays
// format-agnostic. Writers receive the job alongside the result
// because a readable report needs the seed and rules, not just the
// extracted values.
type Writer interface {
	// Write renders the result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(job model.CrawlJob, result *model.CrawlResult) (int, error)
}

// baseWriter provides the shared output destination.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// sortedSelectors returns the table's selector keys in sorted order.
func sortedSelectors(table model.ResultTable) []string {
	selectors := make([]string, 0, len(table))
	for selector := range table {
		selectors = append(selectors, selector)
	}
	sort.Strings(selectors)
	return selectors
}

// sortedAttrs returns a bucket group's attribute keys in sorted order.
func sortedAttrs(group map[string]*model.ValueSet) []string {
	attrs := make([]string, 0, len(group))
	for attr := range group {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	return attrs
}
