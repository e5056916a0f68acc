package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// anchorMatcher matches href-bearing anchors. Compiled once; cascadia
// selectors are safe for concurrent use.
var anchorMatcher = cascadia.MustCompile("a[href]")

// extractLinks discovers the outbound crawl candidates of one page.
// source must already be normalized; doc is its parsed document.
//
// Each raw href is classified by its first character:
//
//	"/"  resolved against the source URL's origin
//	"#"  discarded (fragment-only, never navigable)
//	else treated as a literal absolute-URL candidate
//
// Candidates are then normalized (failures are silently dropped),
// filtered through the follow pattern, and screened against the visited
// set. When follow is nil no candidate survives: the absence of a
// follow pattern means the crawl never expands past the seed, not that
// every link is followed.
//
// The returned set is the caller's to merge; extractLinks has no side
// effects on crawl state.
func extractLinks(doc *goquery.Document, source string, follow *regexp.Regexp, visited map[string]struct{}) map[string]struct{} {
	candidates := make(map[string]struct{})
	if follow == nil {
		return candidates
	}

	base, err := url.Parse(source)
	if err != nil {
		return candidates
	}

	doc.FindMatcher(anchorMatcher).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		var candidate string
		switch {
		case strings.HasPrefix(href, "#"):
			return
		case strings.HasPrefix(href, "/"):
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			candidate = base.ResolveReference(ref).String()
		default:
			candidate = href
		}

		normalized, err := NormalizeURL(candidate)
		if err != nil {
			return
		}
		if !follow.MatchString(normalized) {
			return
		}
		if _, ok := visited[normalized]; ok {
			return
		}
		candidates[normalized] = struct{}{}
	})

	return candidates
}
