package report

import (
	"encoding/json"
	"io"

	"github.com/pagesift/pagesift/internal/model"
)

// JSONWriter emits the result table as JSON, the same payload the
// HTTP API returns, so a CLI run and an API call are interchangeable
// inputs for downstream tooling.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool

	// indentPrefix and indentString configure the indentation.
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON with the given prefix and
// per-level indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indents.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter writing to output.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write serializes the result table. The job is unused; the JSON
// payload is deliberately just the selector-to-values mapping.
func (w *JSONWriter) Write(_ model.CrawlJob, result *model.CrawlResult) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(result.Table, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(result.Table)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
