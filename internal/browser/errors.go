package browser

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrElementNotFound is returned when a page element the workflow
	// depends on does not exist in the DOM.
	ErrElementNotFound = errors.New("element not found on page")

	// ErrTimeout is returned when a browser operation did not finish
	// within its deadline.
	ErrTimeout = errors.New("browser operation timed out")

	// ErrElementNotVisible is returned when an element exists but is not
	// visible, so it cannot be interacted with.
	ErrElementNotVisible = errors.New("element not visible")
)

// Classify maps a chromedp failure onto one of the package sentinel errors.
// chromedp reports most failures as plain text or a context deadline, so the
// mapping inspects both. The original error stays in the chain for logging.
//
// Errors that are already classified pass through unchanged, and errors
// that match no known pattern are returned as-is so callers never lose
// information.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrElementNotFound),
		errors.Is(err, ErrTimeout),
		errors.Is(err, ErrElementNotVisible):
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "could not find node"),
		strings.Contains(msg, "no nodes found"),
		strings.Contains(msg, "could not find element"):
		return errors.Join(ErrElementNotFound, err)
	case strings.Contains(msg, "not visible"),
		strings.Contains(msg, "element is not visible"):
		return errors.Join(ErrElementNotVisible, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return errors.Join(ErrTimeout, err)
	}

	return err
}
