// Package config provides configuration structures and utilities for mmotopvote.
// It defines the run configuration built from environment variables, CLI flags,
// and an optional profile file, together with the site-independent defaults.
package config
