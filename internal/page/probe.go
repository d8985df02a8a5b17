package page

import (
	"errors"

	"github.com/mmotop-tools/mmotopvote/internal/browser"
)

// ProbeStatus is the tri-state result of looking for the next-vote
// countdown label. The label's absence is a control signal, not a failure:
// it means no vote is currently in effect and the workflow may proceed.
type ProbeStatus int

const (
	// ProbeError means the probe itself failed and neither presence nor
	// absence could be established.
	ProbeError ProbeStatus = iota

	// ProbePresent means the countdown label exists: a vote is still in
	// effect and a new one would be rejected.
	ProbePresent

	// ProbeAbsent means the countdown label does not exist: voting is
	// allowed.
	ProbeAbsent
)

// probeWaitStatus interprets the result of the bounded wait for the
// countdown label. A timed-out wait means the label is absent, but only
// when the session itself is still alive: a dead session produces the same
// timeout shape and must surface as a probe error, never as eligibility.
func probeWaitStatus(waitErr, sessionErr error) (ProbeStatus, error) {
	switch {
	case waitErr == nil:
		return ProbePresent, nil
	case sessionErr != nil:
		return ProbeError, waitErr
	case errors.Is(waitErr, browser.ErrTimeout):
		return ProbeAbsent, nil
	default:
		return ProbeError, waitErr
	}
}

// String returns the human-readable name of the probe status.
func (s ProbeStatus) String() string {
	switch s {
	case ProbePresent:
		return "present"
	case ProbeAbsent:
		return "absent"
	case ProbeError:
		return "error"
	default:
		return "unknown"
	}
}
