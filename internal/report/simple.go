package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pagesift/pagesift/internal/model"
)

// SimpleWriter renders a compact plain-text report for terminals.
//
// Design decision: Plain ASCII, no ANSI colors. It pipes cleanly to
// files and other tools, and color adds nothing to a value listing.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether buckets with no values are listed.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty lists (selector, attribute) buckets even when they
// produced no values.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter writing to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the report.
func (w *SimpleWriter) Write(job model.CrawlJob, result *model.CrawlResult) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "pagesift: %s\n", job.URL)
	fmt.Fprintf(&b, "pages fetched: %d, took: %s\n", result.PagesFetched, result.Took)
	b.WriteString(strings.Repeat("-", 60) + "\n")

	for _, selector := range sortedSelectors(result.Table) {
		group := result.Table[selector]

		fmt.Fprintf(&b, "%s\n", selector)
		for _, attr := range sortedAttrs(group) {
			set := group[attr]
			if set.Len() == 0 && !w.showEmpty {
				continue
			}
			fmt.Fprintf(&b, "  %s (%d)\n", attr, set.Len())
			for _, value := range set.Values() {
				fmt.Fprintf(&b, "    %s\n", value)
			}
		}
	}

	return io.WriteString(w.output, b.String())
}
