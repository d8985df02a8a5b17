package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// Options configures a browser session.
type Options struct {
	// Headless runs Chrome without a visible window.
	Headless bool

	// UserDataDir, when non-empty, points Chrome at a persistent profile
	// directory so cookies survive between runs.
	UserDataDir string

	// Logger receives browser lifecycle messages. When nil, logging is
	// discarded.
	Logger *slog.Logger
}

// Session owns a Chrome instance and the chromedp contexts attached to it.
// Close must be called on every path, including errors; the command layer
// defers it immediately after NewSession succeeds.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      *slog.Logger
}

// NewSession starts a Chrome instance and returns a Session bound to it.
// The parent context bounds the whole browser lifetime; cancelling it tears
// the browser down.
func NewSession(parent context.Context, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		// The site serves a different challenge flow to obvious automation.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1280, 960),
	)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			logger.Debug("chromedp error", "detail", fmt.Sprintf(format, args...))
		}),
	)

	s := &Session{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		logger:      logger,
	}

	// Start the browser eagerly so a missing Chrome binary surfaces here
	// rather than on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, Classify(err)
	}

	logger.Debug("browser session started", "headless", opts.Headless)
	return s, nil
}

// Context returns the chromedp context for this session.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Run executes the given actions against the session's browser and
// classifies any failure.
func (s *Session) Run(actions ...chromedp.Action) error {
	return Classify(chromedp.Run(s.ctx, actions...))
}

// RunWithTimeout executes the given actions under a deadline shorter than
// the session's own. Waits that exceed it classify as ErrTimeout, which
// lets callers treat a bounded wait's expiry as an answer rather than a
// failure.
func (s *Session) RunWithTimeout(d time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, d)
	defer cancel()
	return Classify(chromedp.Run(ctx, actions...))
}

// Close shuts the browser down. It first attempts a graceful close so
// Chrome can flush its profile, then cancels the contexts. Close is safe
// to call more than once.
func (s *Session) Close() {
	if s.ctx != nil {
		// Best effort; the context cancels below regardless.
		_ = chromedp.Cancel(s.ctx)
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	s.logger.Debug("browser session closed")
}
