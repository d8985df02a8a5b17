package page

import (
	"fmt"
	"time"
)

// XPath locators for the voting site. These mirror the live site's markup
// and are the single place to update when it changes.
const (
	// xpathSignInLink is the login link on the vote page header.
	xpathSignInLink = `//a[@href='https://mmotop.ru/users/sign_in']`

	// xpathEmailInput and xpathPasswordInput are the sign-in form fields.
	xpathEmailInput    = `//input[@id='user_email']`
	xpathPasswordInput = `//input[@id='user_password']`

	// xpathSignInSubmit submits the sign-in form.
	xpathSignInSubmit = `//input[@name='sign_in']`

	// xpathSliderHandle is the draggable handle of the slider challenge.
	// The class list doubles as a readiness marker: the ui-draggable
	// classes appear only once the widget's script has initialized.
	xpathSliderHandle = `//div[@class='Slider ui-draggable ui-draggable-handle']`

	// xpathCountdown is the remaining-time label shown when an earlier
	// vote is still in effect. Its absence means voting is allowed.
	xpathCountdown = `//span[@class='countdown_row countdown_amount']`

	// xpathChallengeFrame is the embedded verification widget on the
	// ballot form.
	xpathChallengeFrame = `//iframe[contains(@src, 'cloudflare.com')]`

	// cssChallengeSolved appears inside the frame once the widget reports
	// success. It is a CSS selector, not XPath: chromedp only descends
	// into an iframe's content document for query-selector lookups, so
	// frame-scoped locators must stay CSS.
	cssChallengeSolved = `div[style*="visible"]`

	// xpathAccountInput is the character name field on the ballot.
	xpathAccountInput = `//div[@id='charname']/input`

	// xpathSubmitButton is the ballot submit control. It only renders
	// after the verification widget succeeds.
	xpathSubmitButton = `//div/input[@type='submit']`
)

// xpathRateRadio builds the locator for the radio button of the realm row
// whose rate cell contains the given label.
func xpathRateRadio(serverRate string) string {
	return fmt.Sprintf(`//td[contains(text(), '%s')]/../td/input[@type='radio']`, serverRate)
}

// sliderDragDistance is how far the slider handle travels, in pixels, to
// reach the far end of its track.
const sliderDragDistance = 478

// countdownProbeWait bounds how long the countdown probe waits for the
// label before concluding it is absent. The label renders with the page
// when present, but the post-login reload can lag; the value matches the
// driver wait the flow was tuned against.
const countdownProbeWait = 10 * time.Second

// Settle periods after navigation-heavy interactions. The site reloads or
// re-renders after each of these, and the durations are tuned to the slow
// end of its observed behavior rather than to explicit readiness signals
// the page does not expose.
const (
	settleAfterOpen      = 7 * time.Second
	settleAfterLoginStep = 5 * time.Second
	settleAfterDrag      = 3 * time.Second
	settleAfterRatePick  = 3 * time.Second
	settleAfterFrame     = 7 * time.Second
	settleAfterSubmit    = 10 * time.Second
)
