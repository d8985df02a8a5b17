package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmotop-tools/mmotopvote/internal/browser"
	"github.com/mmotop-tools/mmotopvote/internal/config"
	"github.com/mmotop-tools/mmotopvote/internal/model"
)

// TestNewVoteCmd verifies the vote command's flag surface.
func TestNewVoteCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVoteCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "vote" {
			t.Errorf("expected use 'vote', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"url", "rate", "account", "headless", "timeout", "config", "no-save"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})

	t.Run("headless defaults to true", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("headless")
		if flag == nil {
			t.Fatal("expected headless flag")
		}
		if flag.DefValue != "true" {
			t.Errorf("expected default 'true', got %q", flag.DefValue)
		}
	})
}

// TestBuildVoteConfig verifies layering of environment, profile, and flags.
func TestBuildVoteConfig(t *testing.T) { //nolint:paralleltest // mutates the process environment
	t.Setenv(config.EnvLogin, "alice@example.com")
	t.Setenv(config.EnvPassword, "hunter2")
	t.Setenv(config.EnvAccountName, "Tichondrius")

	t.Run("defaults with env credentials", func(t *testing.T) {
		cmd := NewVoteCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildVoteConfig(cmd)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.VoteURL != config.DefaultVoteURL {
			t.Errorf("unexpected VoteURL: %s", cfg.VoteURL)
		}
		if cfg.Username != "alice@example.com" || cfg.Password != "hunter2" {
			t.Error("expected credentials from the environment")
		}
		if cfg.AccountName != "Tichondrius" {
			t.Errorf("unexpected AccountName: %q", cfg.AccountName)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB by default")
		}
		if cfg.Timeout != config.DefaultRunTimeout {
			t.Errorf("unexpected Timeout: %v", cfg.Timeout)
		}
	})

	t.Run("flags override env and defaults", func(t *testing.T) {
		cmd := NewVoteCmd()
		args := []string{
			"--rate", "x5",
			"--account", "Sylvanas",
			"--headless=false",
			"--timeout", "90s",
			"--no-save",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildVoteConfig(cmd)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.ServerRate != "x5" {
			t.Errorf("expected ServerRate 'x5', got %q", cfg.ServerRate)
		}
		if cfg.AccountName != "Sylvanas" {
			t.Errorf("expected flag to override env account, got %q", cfg.AccountName)
		}
		if cfg.Headless {
			t.Error("expected Headless false")
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("expected 90s timeout, got %v", cfg.Timeout)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB false with --no-save")
		}
	})

	t.Run("profile applies under flags", func(t *testing.T) {
		profilePath := filepath.Join(t.TempDir(), "profile.yaml")
		content := []byte("serverRate: x4\naccountName: Ragnaros\n")
		if err := os.WriteFile(profilePath, content, 0600); err != nil {
			t.Fatalf("failed to write profile: %v", err)
		}

		cmd := NewVoteCmd()
		if err := cmd.ParseFlags([]string{"-c", profilePath, "--rate", "x5"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildVoteConfig(cmd)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// Flag wins over the profile.
		if cfg.ServerRate != "x5" {
			t.Errorf("expected flag to win, got %q", cfg.ServerRate)
		}
		// Profile wins over the environment.
		if cfg.AccountName != "Ragnaros" {
			t.Errorf("expected profile account, got %q", cfg.AccountName)
		}
	})

	t.Run("explicit missing profile errors", func(t *testing.T) {
		cmd := NewVoteCmd()
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		if err := cmd.ParseFlags([]string{"-c", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildVoteConfig(cmd); err == nil {
			t.Error("expected an error for a missing explicit profile")
		}
	})
}

// TestBuildVoteConfigEmptyEnv verifies construction succeeds with no
// credentials at all.
func TestBuildVoteConfigEmptyEnv(t *testing.T) { //nolint:paralleltest // mutates the process environment
	t.Setenv(config.EnvLogin, "")
	t.Setenv(config.EnvPassword, "")
	t.Setenv(config.EnvAccountName, "")
	os.Unsetenv(config.EnvLogin)
	os.Unsetenv(config.EnvPassword)
	os.Unsetenv(config.EnvAccountName)

	cmd := NewVoteCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := buildVoteConfig(cmd)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Username != "" || cfg.Password != "" {
		t.Error("expected empty credentials")
	}
	if verr := cfg.Validate(); verr != nil {
		t.Errorf("empty credentials must still validate, got %v", verr)
	}
}

// TestPrintOutcome verifies the result line goes to the given writer.
func TestPrintOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  *model.RunRecord
		want string
	}{
		{
			name: "voted",
			rec:  &model.RunRecord{Outcome: model.OutcomeVoted, AccountName: "Tichondrius", ServerRate: "x2"},
			want: "Vote submitted for Tichondrius (x2).",
		},
		{
			name: "already voted",
			rec:  &model.RunRecord{Outcome: model.OutcomeAlreadyVoted, Countdown: "17:23:05"},
			want: "time remaining until next vote: 17:23:05",
		},
		{
			name: "captcha unsolved",
			rec:  &model.RunRecord{Outcome: model.OutcomeCaptchaUnsolved},
			want: "Captcha not solved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printOutcome(&buf, tt.rec)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output: %q", tt.want, buf.String())
			}
		})
	}

	t.Run("failed runs print nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		printOutcome(&buf, &model.RunRecord{Outcome: model.OutcomeFailed})
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

// TestReportRunError verifies each error class gets its own top-level
// message.
func TestReportRunError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"element not found", fmt.Errorf("login: %w", browser.ErrElementNotFound), "element not found"},
		{"timeout", fmt.Errorf("open: %w", browser.ErrTimeout), "a timeout occurred"},
		{"not visible", fmt.Errorf("vote: %w", browser.ErrElementNotVisible), "element not visible"},
		{"unclassified", errors.New("chrome crashed"), "voting run failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			reportRunError(logger, tt.err)

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in log output: %s", tt.want, buf.String())
			}
		})
	}
}
