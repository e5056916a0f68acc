package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestGetVersion tests the ldflags-first version resolution.
func TestGetVersion(t *testing.T) {
	t.Run("ldflags value wins", func(t *testing.T) {
		orig := version
		t.Cleanup(func() { version = orig })

		version = "9.9.9"
		if got := getVersion(); got != "9.9.9" {
			t.Errorf("getVersion() = %q", got)
		}
	})

	t.Run("falls back to build info or devel", func(t *testing.T) {
		orig := version
		t.Cleanup(func() { version = orig })

		version = ""
		if got := getVersion(); got == "" {
			t.Error("getVersion() returned empty string")
		}
	})
}

// TestVersionCmd tests the version subcommand output.
func TestVersionCmd(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() { version, commit, date = origVersion, origCommit, origDate })

	version, commit, date = "1.2.3", "abcdef0", "2026-01-02"

	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	for _, want := range []string{
		"pagesift version 1.2.3",
		"commit: abcdef0",
		"built:  2026-01-02",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
