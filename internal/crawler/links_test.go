package crawler

import (
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// parseDoc is a test helper building a goquery document from markup.
func parseDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

// TestExtractLinks tests link discovery, classification, and filtering.
func TestExtractLinks(t *testing.T) {
	t.Parallel()

	matchAll := regexp.MustCompile(".*")
	noVisited := map[string]struct{}{}

	t.Run("classifies hrefs by first character", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<a href="/about">root relative</a>
			<a href="#section">fragment only</a>
			<a href="https://other.example.org/page">absolute</a>
		</body></html>`)

		got := extractLinks(doc, "https://example.com/", matchAll, noVisited)

		want := []string{
			"https://example.com/about",
			"https://other.example.org/page",
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d candidates, got %d: %v", len(want), len(got), got)
		}
		for _, link := range want {
			if _, ok := got[link]; !ok {
				t.Errorf("expected candidate %q, got %v", link, got)
			}
		}
	})

	t.Run("resolves root-relative links against the source origin", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<a href="/contact">contact</a>`)

		got := extractLinks(doc, "https://example.com/deep/page", matchAll, noVisited)

		if _, ok := got["https://example.com/contact"]; !ok {
			t.Errorf("expected root-relative link resolved against origin, got %v", got)
		}
	})

	t.Run("no follow pattern means no candidates", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<a href="/a">a</a><a href="https://example.com/b">b</a>`)

		got := extractLinks(doc, "https://example.com/", nil, noVisited)

		if len(got) != 0 {
			t.Errorf("expected no candidates without a follow pattern, got %v", got)
		}
	})

	t.Run("follow pattern filters candidates by substring match", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
			<a href="https://example.com/blog/post-1">keep</a>
			<a href="https://example.com/shop/cart">drop</a>`)

		got := extractLinks(doc, "https://example.com/", regexp.MustCompile(`/blog/`), noVisited)

		if len(got) != 1 {
			t.Fatalf("expected 1 candidate, got %d: %v", len(got), got)
		}
		if _, ok := got["https://example.com/blog/post-1"]; !ok {
			t.Errorf("expected the blog link to survive, got %v", got)
		}
	})

	t.Run("drops visited candidates", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<a href="https://example.com/a">a</a><a href="https://example.com/b">b</a>`)
		visited := map[string]struct{}{"https://example.com/a": {}}

		got := extractLinks(doc, "https://example.com/", matchAll, visited)

		if _, ok := got["https://example.com/a"]; ok {
			t.Errorf("visited URL should not be a candidate: %v", got)
		}
		if _, ok := got["https://example.com/b"]; !ok {
			t.Errorf("unvisited URL should be a candidate: %v", got)
		}
	})

	t.Run("normalizes candidates before dedup", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
			<a href="https://example.com/a?utm=1">tracked</a>
			<a href="https://example.com/a#top">anchored</a>
			<a href="https://example.com/a">plain</a>`)

		got := extractLinks(doc, "https://example.com/", matchAll, noVisited)

		if len(got) != 1 {
			t.Fatalf("expected the three variants to collapse to 1 candidate, got %d: %v", len(got), got)
		}
		if _, ok := got["https://example.com/a"]; !ok {
			t.Errorf("expected normalized candidate, got %v", got)
		}
	})

	t.Run("drops unparsable candidates silently", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
			<a href="relative/no-scheme">bad</a>
			<a href="mailto:x@example.com">mail</a>
			<a href="https://example.com/ok">good</a>`)

		got := extractLinks(doc, "https://example.com/", matchAll, noVisited)

		if len(got) != 1 {
			t.Fatalf("expected 1 candidate, got %d: %v", len(got), got)
		}
		if _, ok := got["https://example.com/ok"]; !ok {
			t.Errorf("expected only the well-formed candidate, got %v", got)
		}
	})
}
