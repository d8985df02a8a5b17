package model

import "time"

// Outcome classifies how a voting run ended.
type Outcome int

const (
	// OutcomeFailed means the run aborted with an error before reaching a
	// terminal voting state.
	OutcomeFailed Outcome = iota

	// OutcomeVoted means the ballot was filled in and submitted.
	OutcomeVoted

	// OutcomeAlreadyVoted means the countdown to the next eligible vote was
	// present, so no ballot was cast.
	OutcomeAlreadyVoted

	// OutcomeCaptchaUnsolved means the ballot was filled in but the submit
	// control never appeared, most likely because the embedded challenge
	// stayed unsolved. The run itself still completes without an error.
	OutcomeCaptchaUnsolved
)

// String returns the human-readable name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeVoted:
		return "voted"
	case OutcomeAlreadyVoted:
		return "already_voted"
	case OutcomeCaptchaUnsolved:
		return "captcha_unsolved"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseOutcome converts a stored outcome name back to its enum value.
// Unknown names map to OutcomeFailed.
func ParseOutcome(s string) Outcome {
	switch s {
	case "voted":
		return OutcomeVoted
	case "already_voted":
		return OutcomeAlreadyVoted
	case "captcha_unsolved":
		return OutcomeCaptchaUnsolved
	default:
		return OutcomeFailed
	}
}

// RunRecord captures a single voting run for the history database and for
// report output.
type RunRecord struct {
	// ID is the unique identifier of the run.
	ID string `json:"id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// FinishedAt is when the run ended, successfully or not.
	FinishedAt time.Time `json:"finishedAt"`

	// Outcome classifies how the run ended.
	Outcome Outcome `json:"outcome"`

	// VoteURL is the voting page the run targeted.
	VoteURL string `json:"voteUrl"`

	// ServerRate is the realm rate label the run voted for.
	ServerRate string `json:"serverRate"`

	// AccountName is the game account name entered on the ballot.
	// Empty when no ballot was cast.
	AccountName string `json:"accountName,omitempty"`

	// Countdown is the remaining-time text reported by the site when the
	// run found an existing vote still in effect. Empty otherwise.
	Countdown string `json:"countdown,omitempty"`

	// ErrorMessage holds the failure description for failed runs.
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Duration returns how long the run took.
func (r *RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
