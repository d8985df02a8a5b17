package page

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/mmotop-tools/mmotopvote/internal/browser"
)

// VoteOutcome reports how the ballot submission ended. A missing submit
// control is not an error: it is the site's way of saying the verification
// widget stayed unsolved, and the run still finishes cleanly.
type VoteOutcome int

const (
	// VoteSubmitted means the ballot was submitted.
	VoteSubmitted VoteOutcome = iota

	// VoteCaptchaUnsolved means the submit control never appeared.
	VoteCaptchaUnsolved
)

// String returns the human-readable name of the vote outcome.
func (o VoteOutcome) String() string {
	switch o {
	case VoteSubmitted:
		return "submitted"
	case VoteCaptchaUnsolved:
		return "captcha_unsolved"
	default:
		return "unknown"
	}
}

// VotePage drives the mmotop.ru voting page through a browser session.
type VotePage struct {
	session *browser.Session
	logger  *slog.Logger
}

// NewVotePage creates a VotePage bound to the given session.
// If logger is nil, logging is discarded.
func NewVotePage(session *browser.Session, logger *slog.Logger) *VotePage {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &VotePage{
		session: session,
		logger:  logger,
	}
}

// Open navigates to the voting page and waits out its initial load. The
// page keeps loading ad content long after the document is ready, so a
// fixed settle period follows the navigation.
func (p *VotePage) Open(url string) error {
	p.logger.Info("opening vote page", "url", url)

	if err := p.session.Run(
		chromedp.Navigate(url),
		chromedp.Sleep(settleAfterOpen),
	); err != nil {
		return fmt.Errorf("open vote page: %w", err)
	}
	return nil
}

// Login signs in to the site with the given credentials. Empty credentials
// are submitted as-is; the site rejects them and a later step fails with
// an element error, matching the fail-late contract of the configuration.
func (p *VotePage) Login(username, password string) error {
	p.logger.Info("logging in", "login", username)

	if err := p.session.Run(
		chromedp.Click(xpathSignInLink, chromedp.BySearch),
		chromedp.Sleep(settleAfterLoginStep),
		chromedp.WaitVisible(xpathEmailInput, chromedp.BySearch),
		chromedp.SendKeys(xpathEmailInput, username, chromedp.BySearch),
		chromedp.SendKeys(xpathPasswordInput, password, chromedp.BySearch),
		chromedp.Click(xpathSignInSubmit, chromedp.BySearch),
		chromedp.Sleep(settleAfterLoginStep),
	); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// Countdown probes for the next-vote countdown label. It waits a bounded
// period for the label to render before concluding it is absent, so a slow
// post-login reload cannot masquerade as eligibility. It returns
// ProbePresent with the label's text when an earlier vote is still in
// effect, ProbeAbsent when voting is allowed, and ProbeError with a
// non-nil error when presence could not be established at all.
func (p *VotePage) Countdown() (ProbeStatus, string, error) {
	waitErr := p.session.RunWithTimeout(countdownProbeWait,
		chromedp.WaitReady(xpathCountdown, chromedp.BySearch),
	)

	status, err := probeWaitStatus(waitErr, p.session.Context().Err())
	if err != nil {
		return ProbeError, "", fmt.Errorf("countdown probe: %w", err)
	}
	if status == ProbeAbsent {
		return ProbeAbsent, "", nil
	}

	var text string
	if err := p.session.Run(
		chromedp.Text(xpathCountdown, &text, chromedp.BySearch),
	); err != nil {
		return ProbeError, "", fmt.Errorf("countdown text: %w", err)
	}

	p.logger.Info("time remaining until next vote", "countdown", text)
	return ProbePresent, text, nil
}

// SolveSliderChallenge drags the slider handle across its full track. The
// handle selector waits for the widget's script to initialize, and a fixed
// settle period afterwards covers the reload the widget triggers.
func (p *VotePage) SolveSliderChallenge() error {
	p.logger.Info("solving slider challenge")

	if err := p.session.Run(
		chromedp.WaitVisible(xpathSliderHandle, chromedp.BySearch),
		browser.DragByOffset(xpathSliderHandle, sliderDragDistance, 0, chromedp.BySearch),
		chromedp.Sleep(settleAfterDrag),
	); err != nil {
		return fmt.Errorf("slider challenge: %w", err)
	}

	p.logger.Info("slider challenge solved")
	return nil
}

// Vote fills in and submits the ballot: picks the realm row by its rate
// label, enters the account name, passes the embedded verification frame,
// and clicks submit.
//
// A missing submit control is reported as VoteCaptchaUnsolved with a nil
// error; every other failure is returned as an error.
func (p *VotePage) Vote(serverRate, accountName string) (VoteOutcome, error) {
	p.logger.Info("voting", "account", accountName, "rate", serverRate)

	// The ballot sits below the realm listing; scroll it into view so the
	// radio click lands inside the viewport.
	if err := p.session.Run(
		chromedp.Evaluate(`window.scrollTo(0, 10000);`, nil),
		chromedp.Click(xpathRateRadio(serverRate), chromedp.BySearch),
		chromedp.Sleep(settleAfterRatePick),
		chromedp.SetValue(xpathAccountInput, "", chromedp.BySearch),
		chromedp.SendKeys(xpathAccountInput, accountName, chromedp.BySearch),
	); err != nil {
		return VoteCaptchaUnsolved, fmt.Errorf("fill ballot: %w", err)
	}

	if err := p.solveChallengeFrame(); err != nil {
		return VoteCaptchaUnsolved, fmt.Errorf("verification frame: %w", err)
	}

	if err := p.session.Run(chromedp.Sleep(settleAfterRatePick)); err != nil {
		return VoteCaptchaUnsolved, err
	}

	// The submit control only renders once the verification widget
	// succeeds, so its absence is a soft outcome rather than an error.
	found, err := p.elementExists(xpathSubmitButton)
	if err != nil {
		return VoteCaptchaUnsolved, fmt.Errorf("submit probe: %w", err)
	}
	if !found {
		p.logger.Error("captcha not solved, submit control missing")
		return VoteCaptchaUnsolved, nil
	}

	if err := p.session.Run(
		chromedp.Click(xpathSubmitButton, chromedp.BySearch),
		chromedp.Sleep(settleAfterSubmit),
	); err != nil {
		return VoteCaptchaUnsolved, fmt.Errorf("submit ballot: %w", err)
	}

	p.logger.Info("vote successful")
	return VoteSubmitted, nil
}

// solveChallengeFrame checks whether the embedded verification widget has
// already succeeded and, if not, clicks it once and re-checks. One retry
// matches the widget's behavior: a second click toggles it back off.
func (p *VotePage) solveChallengeFrame() error {
	frame, err := p.challengeFrame()
	if err != nil {
		return err
	}

	solved, err := p.frameElementExists(frame, cssChallengeSolved)
	if err != nil {
		return err
	}
	if solved {
		return nil
	}

	if err := p.session.Run(
		chromedp.Click(xpathChallengeFrame, chromedp.BySearch),
		chromedp.Sleep(settleAfterFrame),
	); err != nil {
		return fmt.Errorf("click verification frame: %w", err)
	}

	solved, err = p.frameElementExists(frame, cssChallengeSolved)
	if err != nil {
		return err
	}
	if !solved {
		return fmt.Errorf("verification widget did not report success: %w", browser.ErrElementNotFound)
	}
	return nil
}

// challengeFrame resolves the verification iframe's DOM node.
func (p *VotePage) challengeFrame() (*cdp.Node, error) {
	var nodes []*cdp.Node
	if err := p.session.Run(
		chromedp.Nodes(xpathChallengeFrame, &nodes, chromedp.BySearch, chromedp.AtLeast(0)),
	); err != nil {
		return nil, fmt.Errorf("locate verification frame: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("locate verification frame: %w", browser.ErrElementNotFound)
	}
	return nodes[0], nil
}

// elementExists reports whether sel matches at least one node, without
// waiting for one to appear.
func (p *VotePage) elementExists(sel string) (bool, error) {
	var nodes []*cdp.Node
	if err := p.session.Run(
		chromedp.Nodes(sel, &nodes, chromedp.BySearch, chromedp.AtLeast(0)),
	); err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

// frameElementExists reports whether the CSS selector sel matches at least
// one node inside the given iframe. The lookup must be a query-selector
// one: chromedp resolves FromNode through the frame's content document
// only on the ByQuery/ByQueryAll path, while search queries always run
// against the main document and would silently ignore the frame.
func (p *VotePage) frameElementExists(frame *cdp.Node, sel string) (bool, error) {
	var nodes []*cdp.Node
	err := p.session.Run(
		chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0), chromedp.FromNode(frame)),
	)
	if err != nil {
		if errors.Is(err, browser.ErrElementNotFound) {
			return false, nil
		}
		return false, err
	}
	return len(nodes) > 0, nil
}
