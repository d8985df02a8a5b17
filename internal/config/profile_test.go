package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadProfile verifies profile loading from YAML files.
func TestLoadProfile(t *testing.T) {
	t.Parallel()

	t.Run("valid profile loads all fields", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultProfileFile)
		content := []byte(`voteUrl: "https://wow.mmotop.ru/servers/42/votes/new"
serverRate: "x5"
accountName: "Ragnaros"
headless: false
`)
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}

		p, err := LoadProfile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.VoteURL != "https://wow.mmotop.ru/servers/42/votes/new" {
			t.Errorf("unexpected VoteURL: %q", p.VoteURL)
		}
		if p.ServerRate != "x5" {
			t.Errorf("unexpected ServerRate: %q", p.ServerRate)
		}
		if p.AccountName != "Ragnaros" {
			t.Errorf("unexpected AccountName: %q", p.AccountName)
		}
		if p.Headless == nil || *p.Headless {
			t.Error("expected Headless override to be false")
		}
	})

	t.Run("missing file returns ErrProfileNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("expected ErrProfileNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultProfileFile)
		if err := os.WriteFile(path, []byte("voteUrl: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}
		if _, err := LoadProfile(path); err == nil {
			t.Error("expected an error for invalid YAML")
		}
	})
}

// TestProfileApply verifies that only non-empty overrides are applied.
func TestProfileApply(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		return &Config{
			VoteURL:     DefaultVoteURL,
			ServerRate:  DefaultServerRate,
			AccountName: "original",
			Headless:    true,
			Timeout:     time.Minute,
		}
	}

	t.Run("empty profile changes nothing", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		(&Profile{}).Apply(cfg)
		if cfg.VoteURL != DefaultVoteURL || cfg.ServerRate != DefaultServerRate {
			t.Error("empty profile must not modify the config")
		}
		if cfg.AccountName != "original" {
			t.Errorf("unexpected AccountName: %q", cfg.AccountName)
		}
		if !cfg.Headless {
			t.Error("unexpected Headless override")
		}
	})

	t.Run("set fields override", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		headless := false
		p := &Profile{
			ServerRate:  "x4",
			AccountName: "Sylvanas",
			Headless:    &headless,
		}
		p.Apply(cfg)
		if cfg.ServerRate != "x4" {
			t.Errorf("expected ServerRate 'x4', got %q", cfg.ServerRate)
		}
		if cfg.AccountName != "Sylvanas" {
			t.Errorf("expected AccountName 'Sylvanas', got %q", cfg.AccountName)
		}
		if cfg.Headless {
			t.Error("expected Headless to be overridden to false")
		}
		// URL was not set in the profile and must keep the default.
		if cfg.VoteURL != DefaultVoteURL {
			t.Errorf("VoteURL must not change, got %q", cfg.VoteURL)
		}
	})
}

// TestFindProfileFile verifies the search behavior for explicit paths.
func TestFindProfileFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultProfileFile)
		if err := os.WriteFile(path, []byte("serverRate: x2\n"), 0600); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}
		if got := FindProfileFile(path); got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if got := FindProfileFile(missing); got != "" {
			t.Errorf("expected empty string, got %s", got)
		}
	})
}
