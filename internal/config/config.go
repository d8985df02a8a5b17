package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The site-coupled literals mirror the voting page this tool was written
// against; they can be overridden via CLI flags or the profile file.
const (
	// DefaultVoteURL is the voting page for the tracked game server entry.
	// The numeric segment is the server's identifier on the rating site.
	DefaultVoteURL = "https://wow.mmotop.ru/servers/5130/votes/new"

	// DefaultServerRate is the rate label of the realm to vote for.
	// The vote form lists one radio row per realm; rows are matched by
	// this text, not by position, because the site reorders rows.
	DefaultServerRate = "x2"

	// DefaultBrowser identifies the browser the automation drives.
	// Only Chrome/Chromium is supported; the value is kept in the
	// configuration because it is part of the run's identity in records.
	DefaultBrowser = "chrome"

	// DefaultRunTimeout bounds a single end-to-end run. The vote page is
	// behind an anti-bot gate that can take tens of seconds to settle, so
	// this must be generous. A run that exceeds it is treated as a timeout
	// failure, never retried.
	DefaultRunTimeout = 3 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "mmotopvote"
)

// Environment variable names the configuration is read from.
// Names are lowercase for compatibility with the original deployment;
// all of them default to the empty string when unset.
const (
	// EnvLogin is the environment variable holding the rating-site login.
	EnvLogin = "mmotop_login"

	// EnvPassword is the environment variable holding the rating-site password.
	EnvPassword = "mmotop_password"

	// EnvAccountName is the environment variable holding the game account
	// name submitted with the vote.
	EnvAccountName = "sirus_account_name"
)

// Config holds all configuration options for a single voting run.
// It is built once at process start from environment variables, CLI flags,
// and the optional profile file, then passed by reference to the workflow.
// Nothing mutates it after construction.
//
// Design decision: a single flat struct instead of nested sub-configs.
// The option count is small and the whole value describes exactly one run.
type Config struct {
	// VoteURL is the voting page to open.
	VoteURL string

	// Username is the rating-site login, from EnvLogin.
	// May be empty; an empty value surfaces as a login failure during the
	// run rather than a configuration error (see Validate).
	Username string

	// Password is the rating-site password, from EnvPassword.
	// Never logged; the log package masks it by key.
	Password string

	// ServerRate is the rate label of the realm radio row to select.
	ServerRate string

	// AccountName is the game account credited with the vote, from
	// EnvAccountName. The vote form clears any remembered value before
	// filling this one.
	AccountName string

	// Browser identifies the driven browser. Informational; the session
	// layer always launches Chrome/Chromium.
	Browser string

	// Headless controls whether the browser runs without a visible window.
	// Headful runs are useful when the anti-bot gate needs a human look.
	Headless bool

	// Timeout bounds the whole run, from browser launch to teardown.
	Timeout time.Duration

	// Verbose enables slog.LevelDebug output. When false, Info and above.
	Verbose bool

	// ProfilePath is the path to the profile file. If empty, the tool
	// searches for .mmotopvote in the current directory and then in the
	// user's home directory.
	ProfilePath string

	// SaveToDB indicates whether to record the run in the history database.
	SaveToDB bool

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a Config populated with defaults and the credential
// environment variables. It never fails: unset environment variables
// resolve to empty strings and are validated (or not) at point of use.
//
// Design decision: a constructor instead of zero values because most
// defaults are non-zero, and because reading the environment in exactly
// one place keeps the rest of the program free of os.Getenv calls.
func NewConfig() *Config {
	return &Config{
		VoteURL:     DefaultVoteURL,
		Username:    os.Getenv(EnvLogin),
		Password:    os.Getenv(EnvPassword),
		ServerRate:  DefaultServerRate,
		AccountName: os.Getenv(EnvAccountName),
		Browser:     DefaultBrowser,
		Headless:    true,
		Timeout:     DefaultRunTimeout,
		SaveToDB:    true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for mmotopvote.
// On Linux: ~/.local/share/mmotopvote
// On macOS: ~/Library/Application Support/mmotopvote
// On Windows: %LOCALAPPDATA%\mmotopvote
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for mmotopvote.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks structural sanity of the configuration.
//
// Credentials and the account name are intentionally NOT validated here:
// the original tool accepted empty values and let the login step fail
// against the live site, and tests depend on configuration construction
// succeeding with an empty environment. Validate only rejects values that
// make a run meaningless before the browser even starts.
func (c *Config) Validate() error {
	if c.VoteURL == "" {
		return ErrNoVoteURL
	}
	if c.ServerRate == "" {
		return ErrNoServerRate
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
