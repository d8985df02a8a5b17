package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with
// errors.Is() while still carrying a human-readable message.
var (
	// ErrNoVoteURL is returned when the vote URL is empty.
	// Without a URL there is nothing to open.
	ErrNoVoteURL = errors.New("no vote URL specified")

	// ErrNoServerRate is returned when the server rate label is empty.
	// The vote form radio row is selected by this text; an empty label
	// cannot match any row.
	ErrNoServerRate = errors.New("no server rate specified")

	// ErrInvalidTimeout is returned when the run timeout is not positive.
	// A zero or negative timeout would cancel the run before it starts.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")
)
