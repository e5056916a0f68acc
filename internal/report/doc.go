// Package report renders scrape results for humans and tools.
//
// Three writers implement the Writer interface:
//   - JSONWriter emits the result table as the same JSON payload the
//     HTTP API returns.
//   - MarkdownWriter emits a GitHub-flavored Markdown report.
//   - SimpleWriter emits a compact plain-text listing for terminals.
//
// All writers iterate the result table in sorted key order so the same
// result always renders identically.
package report
