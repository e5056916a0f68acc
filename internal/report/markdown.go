package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/pagesift/pagesift/internal/model"
)

// MarkdownWriter renders a scrape report as GitHub-flavored Markdown,
// one table per selector.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the report.
func (w *MarkdownWriter) Write(job model.CrawlJob, result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("pagesift report")
	md.PlainText("")

	follow := job.FollowLinks
	if follow == "" {
		follow = "(none; seed only)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + job.URL + "`"},
			{"Follow pattern", "`" + follow + "`"},
			{"Max depth", strconv.Itoa(job.MaxDepth)},
			{"Pages fetched", strconv.Itoa(result.PagesFetched)},
			{"Duration", result.Took.String()},
		},
	})
	md.PlainText("")

	for _, selector := range sortedSelectors(result.Table) {
		group := result.Table[selector]

		md.H2("Selector `" + selector + "`")
		md.PlainText("")

		rows := make([][]string, 0, len(group))
		for _, attr := range sortedAttrs(group) {
			rows = append(rows, []string{
				"`" + attr + "`",
				strconv.Itoa(group[attr].Len()),
				cellText(group[attr].Values()),
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Attribute", "Count", "Values"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// cellText joins extracted values into one Markdown table cell.
// Pipes and newlines would break the table, so they are replaced.
func cellText(values []string) string {
	if len(values) == 0 {
		return "(empty)"
	}

	escaped := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ReplaceAll(v, "|", "\\|")
		v = strings.ReplaceAll(v, "\n", " ")
		escaped = append(escaped, v)
	}
	return strings.Join(escaped, "<br>")
}
