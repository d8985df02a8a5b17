// Package log provides secure logging with automatic masking of credential
// values, built on top of the standard slog package.
//
// The voting workflow logs the configuration it runs with, and that
// configuration contains a login, a password, and an account name read from
// the environment. The SecureHandler masks attribute values whose keys look
// credential-bearing so they never reach the log stream, even in verbose mode.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("logging in", "login", cfg.Username, "password", cfg.Password)
//	// password is emitted as "***REDACTED***"
package log
