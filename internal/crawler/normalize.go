package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes raw into the stable dedup key used by the
// crawl frontier and visited set. The scheme, authority, and path are
// kept; the query string and fragment are dropped. Scheme and host are
// lowercased and an empty path becomes "/", so http://Example.com and
// http://example.com/ normalize to the same key.
//
// Normalization is idempotent: NormalizeURL(NormalizeURL(u)) yields the
// same string for every valid u.
//
// An error is returned for anything that does not parse into an
// absolute URL with a host. For discovered links the caller drops the
// candidate; only the seed URL escalates the failure to the job level.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("not an absolute URL: %q", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}
