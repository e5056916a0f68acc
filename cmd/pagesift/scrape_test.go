package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagesift/pagesift/internal/model"
)

// TestParseSearchSpec tests the --search flag grammar.
func TestParseSearchSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		want    model.SearchRule
		wantErr bool
	}{
		{
			name: "single attribute",
			spec: "title=TextContent",
			want: model.SearchRule{Selector: "title", Attributes: []string{"TextContent"}},
		},
		{
			name: "multiple attributes",
			spec: "a=href,TextContent",
			want: model.SearchRule{Selector: "a", Attributes: []string{"href", "TextContent"}},
		},
		{
			name: "selector containing an equals sign",
			spec: "a[rel=nofollow]=href",
			want: model.SearchRule{Selector: "a[rel=nofollow]", Attributes: []string{"href"}},
		},
		{
			name: "attributes with spaces",
			spec: "div=TextContent, data-id",
			want: model.SearchRule{Selector: "div", Attributes: []string{"TextContent", "data-id"}},
		},
		{
			name:    "no equals sign",
			spec:    "title",
			wantErr: true,
		},
		{
			name:    "empty selector",
			spec:    "=href",
			wantErr: true,
		},
		{
			name:    "no attributes",
			spec:    "title=",
			wantErr: true,
		},
		{
			name:    "only empty attributes",
			spec:    "title=, ,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSearchSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSearchSpec(%q) expected error, got %+v", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSearchSpec(%q) returned error: %v", tt.spec, err)
			}
			if got.Selector != tt.want.Selector {
				t.Errorf("Selector = %q, want %q", got.Selector, tt.want.Selector)
			}
			if len(got.Attributes) != len(tt.want.Attributes) {
				t.Fatalf("Attributes = %v, want %v", got.Attributes, tt.want.Attributes)
			}
			for i, attr := range got.Attributes {
				if attr != tt.want.Attributes[i] {
					t.Errorf("Attributes[%d] = %q, want %q", i, attr, tt.want.Attributes[i])
				}
			}
		})
	}
}

// TestBuildJob tests assembling a job from flags and a job file.
func TestBuildJob(t *testing.T) {
	t.Parallel()

	t.Run("builds a job from flags alone", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags([]string{"-s", "title=TextContent", "-F", "example", "-d", "2"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		job, err := buildJob(cmd, []string{"https://example.com"})
		if err != nil {
			t.Fatalf("buildJob returned error: %v", err)
		}

		if job.URL != "https://example.com" {
			t.Errorf("URL = %q", job.URL)
		}
		if job.FollowLinks != "example" {
			t.Errorf("FollowLinks = %q", job.FollowLinks)
		}
		if job.MaxDepth != 2 {
			t.Errorf("MaxDepth = %d", job.MaxDepth)
		}
		if len(job.Searches) != 1 || job.Searches[0].Selector != "title" {
			t.Errorf("Searches = %+v", job.Searches)
		}
	})

	t.Run("flags override job file fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "job.yml")
		jobYAML := `
url: https://file.example.com
followLinks: from-file
maxDepth: 3
searches:
  - selector: h1
    attributes: [TextContent]
`
		if err := os.WriteFile(path, []byte(jobYAML), 0o600); err != nil {
			t.Fatalf("write job file: %v", err)
		}

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags([]string{"-f", path, "-F", "from-flag", "-s", "a=href"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		job, err := buildJob(cmd, nil)
		if err != nil {
			t.Fatalf("buildJob returned error: %v", err)
		}

		if job.URL != "https://file.example.com" {
			t.Errorf("URL = %q", job.URL)
		}
		if job.FollowLinks != "from-flag" {
			t.Errorf("FollowLinks = %q, want flag override", job.FollowLinks)
		}
		if job.MaxDepth != 3 {
			t.Errorf("MaxDepth = %d, want file value", job.MaxDepth)
		}
		if len(job.Searches) != 2 {
			t.Errorf("expected file rule plus flag rule, got %+v", job.Searches)
		}
	})

	t.Run("a URL argument overrides the job file seed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "job.yml")
		jobYAML := `
url: https://file.example.com
searches:
  - selector: h1
    attributes: [TextContent]
`
		if err := os.WriteFile(path, []byte(jobYAML), 0o600); err != nil {
			t.Fatalf("write job file: %v", err)
		}

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags([]string{"-f", path}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		job, err := buildJob(cmd, []string{"https://arg.example.com"})
		if err != nil {
			t.Fatalf("buildJob returned error: %v", err)
		}
		if job.URL != "https://arg.example.com" {
			t.Errorf("URL = %q, want argument override", job.URL)
		}
	})

	t.Run("missing seed is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags([]string{"-s", "title=TextContent"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		if _, err := buildJob(cmd, nil); err == nil {
			t.Fatal("expected error for missing seed")
		}
	})

	t.Run("missing search rules is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		if _, err := buildJob(cmd, []string{"https://example.com"}); err == nil {
			t.Fatal("expected error for missing search rules")
		}
	})

	t.Run("negative depth fails validation", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags([]string{"-s", "title=TextContent", "-d", "-1"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		_, err := buildJob(cmd, []string{"https://example.com"})
		if !errors.Is(err, model.ErrNegativeDepth) {
			t.Fatalf("expected ErrNegativeDepth, got %v", err)
		}
	})
}

// TestBuildScrapeConfig tests flag-to-config mapping.
func TestBuildScrapeConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults populate the config", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		cfg, err := buildScrapeConfig(cmd)
		if err != nil {
			t.Fatalf("buildScrapeConfig returned error: %v", err)
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
		if !cfg.SaveHistory {
			t.Error("SaveHistory should default to true")
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		args := []string{
			"-t", "5s",
			"--user-agent", "custom/1.0",
			"--max-body-size", "1024",
			"--json",
			"-o", "out.json",
			"--no-history",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		cfg, err := buildScrapeConfig(cmd)
		if err != nil {
			t.Fatalf("buildScrapeConfig returned error: %v", err)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
		if cfg.UserAgent != "custom/1.0" {
			t.Errorf("UserAgent = %q", cfg.UserAgent)
		}
		if cfg.MaxBodySize != 1024 {
			t.Errorf("MaxBodySize = %d", cfg.MaxBodySize)
		}
		if !cfg.JSONReport {
			t.Error("JSONReport not set")
		}
		if cfg.ReportFile != "out.json" {
			t.Errorf("ReportFile = %q", cfg.ReportFile)
		}
		if cfg.SaveHistory {
			t.Error("SaveHistory should be false with --no-history")
		}
	})
}
