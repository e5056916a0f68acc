package crawler

import "testing"

// TestNormalizeURL tests URL canonicalization.
func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	t.Run("canonical forms", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			in   string
			want string
		}{
			{
				name: "drops query string",
				in:   "https://example.com/page?utm_source=x&ref=y",
				want: "https://example.com/page",
			},
			{
				name: "drops fragment",
				in:   "https://example.com/page#section-2",
				want: "https://example.com/page",
			},
			{
				name: "drops query and fragment together",
				in:   "https://example.com/a/b?q=1#frag",
				want: "https://example.com/a/b",
			},
			{
				name: "keeps path",
				in:   "https://example.com/deep/path/page.html",
				want: "https://example.com/deep/path/page.html",
			},
			{
				name: "empty path becomes slash",
				in:   "https://example.com",
				want: "https://example.com/",
			},
			{
				name: "lowercases scheme and host",
				in:   "HTTPS://Example.COM/Path",
				want: "https://example.com/Path",
			},
			{
				name: "keeps non-default port",
				in:   "http://example.com:8080/x?q=1",
				want: "http://example.com:8080/x",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got, err := NormalizeURL(tt.in)
				if err != nil {
					t.Fatalf("NormalizeURL(%q) returned error: %v", tt.in, err)
				}
				if got != tt.want {
					t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
				}
			})
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"https://example.com",
			"https://example.com/page?q=1#frag",
			"HTTP://EXAMPLE.com/A/B",
			"http://example.com:8080/x",
		}

		for _, in := range inputs {
			once, err := NormalizeURL(in)
			if err != nil {
				t.Fatalf("NormalizeURL(%q) returned error: %v", in, err)
			}
			twice, err := NormalizeURL(once)
			if err != nil {
				t.Fatalf("NormalizeURL(%q) returned error: %v", once, err)
			}
			if once != twice {
				t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
			}
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"",
			"not a url",
			"/relative/path",
			"example.com/no-scheme",
			"mailto:user@example.com",
			"http://",
			"://missing-scheme",
		}

		for _, in := range inputs {
			if got, err := NormalizeURL(in); err == nil {
				t.Errorf("NormalizeURL(%q) = %q, want error", in, got)
			}
		}
	})
}
