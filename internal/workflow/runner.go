package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmotop-tools/mmotopvote/internal/config"
	"github.com/mmotop-tools/mmotopvote/internal/model"
	"github.com/mmotop-tools/mmotopvote/internal/page"
)

// Page is the slice of the page layer the runner needs. It exists so run
// logic can be tested against a double without a browser.
type Page interface {
	// Open navigates to the voting page.
	Open(url string) error

	// Login signs in with the given credentials.
	Login(username, password string) error

	// Countdown probes for the next-vote countdown label.
	Countdown() (page.ProbeStatus, string, error)

	// SolveSliderChallenge completes the slider challenge.
	SolveSliderChallenge() error

	// Vote fills in and submits the ballot.
	Vote(serverRate, accountName string) (page.VoteOutcome, error)
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock sets the time source used to stamp run records. Tests use it
// for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// Runner executes one voting run against a Page.
type Runner struct {
	cfg    *config.Config
	page   Page
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner creates a Runner for the given configuration and page.
func NewRunner(cfg *config.Config, p Page, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		page:   p,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the voting run. It always returns a run record, even on
// failure, so the caller can persist what happened. The error is non-nil
// only when the run aborted; an existing vote still in effect and an
// unsolved verification widget are both recorded as outcomes, not errors.
func (r *Runner) Run(ctx context.Context) (*model.RunRecord, error) {
	rec := &model.RunRecord{
		ID:         uuid.NewString(),
		StartedAt:  r.now(),
		VoteURL:    r.cfg.VoteURL,
		ServerRate: r.cfg.ServerRate,
	}
	r.logger.Info("starting voting run", "id", rec.ID, "url", rec.VoteURL)

	if err := r.step(ctx, func() error { return r.page.Open(r.cfg.VoteURL) }); err != nil {
		return r.fail(rec, err)
	}

	if err := r.step(ctx, func() error {
		return r.page.Login(r.cfg.Username, r.cfg.Password)
	}); err != nil {
		return r.fail(rec, err)
	}

	if err := ctx.Err(); err != nil {
		return r.fail(rec, err)
	}

	r.logger.Info("checking if already voted today")
	status, countdown, err := r.page.Countdown()
	switch status {
	case page.ProbeError:
		return r.fail(rec, err)
	case page.ProbePresent:
		rec.Outcome = model.OutcomeAlreadyVoted
		rec.Countdown = countdown
		return r.finish(rec), nil
	case page.ProbeAbsent:
		// Fall through to vote.
	default:
		// Eligibility must be established, never assumed.
		return r.fail(rec, fmt.Errorf("unexpected countdown probe status %d", status))
	}

	r.logger.Info("not voted today yet")

	if err := r.step(ctx, r.page.SolveSliderChallenge); err != nil {
		return r.fail(rec, err)
	}

	if err := ctx.Err(); err != nil {
		return r.fail(rec, err)
	}

	outcome, err := r.page.Vote(r.cfg.ServerRate, r.cfg.AccountName)
	if err != nil {
		return r.fail(rec, err)
	}

	rec.AccountName = r.cfg.AccountName
	switch outcome {
	case page.VoteSubmitted:
		rec.Outcome = model.OutcomeVoted
	case page.VoteCaptchaUnsolved:
		rec.Outcome = model.OutcomeCaptchaUnsolved
	}
	return r.finish(rec), nil
}

// step runs one page operation, checking for cancellation first.
func (r *Runner) step(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

// finish stamps the record's end time and logs the outcome.
func (r *Runner) finish(rec *model.RunRecord) *model.RunRecord {
	rec.FinishedAt = r.now()
	r.logger.Info("voting run finished",
		"id", rec.ID,
		"outcome", rec.Outcome.String(),
		"duration", rec.Duration().Round(time.Millisecond).String(),
	)
	return rec
}

// fail records the error on the run record and returns both. Errors are
// not interpreted here; classification happens at the command layer, which
// owns the decision of how each class is reported.
func (r *Runner) fail(rec *model.RunRecord, err error) (*model.RunRecord, error) {
	rec.Outcome = model.OutcomeFailed
	rec.ErrorMessage = err.Error()
	rec.FinishedAt = r.now()
	return rec, fmt.Errorf("voting run %s: %w", rec.ID, err)
}
