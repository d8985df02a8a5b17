package browser

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// dragSteps is the number of intermediate mouse moves a drag is split into.
// A single jump from start to end is rejected by slider challenges that
// watch for human-like pointer movement.
const dragSteps = 12

// DragByOffset returns an action that presses the mouse on the center of
// the element matched by sel, drags it by (dx, dy) pixels in small steps,
// and releases. The gesture is synthesized from raw CDP mouse events
// because the challenge widget ignores synthetic HTML5 drag events.
func DragByOffset(sel any, dx, dy float64, opts ...chromedp.QueryOption) chromedp.Action {
	return chromedp.QueryAfter(sel, func(ctx context.Context, execCtx runtime.ExecutionContextID, nodes ...*cdp.Node) error {
		if len(nodes) == 0 {
			return ErrElementNotFound
		}

		quads, err := dom.GetContentQuads().WithNodeID(nodes[0].NodeID).Do(ctx)
		if err != nil {
			return Classify(err)
		}
		if len(quads) == 0 {
			return ErrElementNotVisible
		}

		x, y := quadCenter(quads[0])

		press := input.DispatchMouseEvent(input.MousePressed, x, y).
			WithButton(input.Left).
			WithButtons(1).
			WithClickCount(1)
		if err := press.Do(ctx); err != nil {
			return Classify(err)
		}

		for i := 1; i <= dragSteps; i++ {
			frac := float64(i) / float64(dragSteps)
			move := input.DispatchMouseEvent(input.MouseMoved, x+dx*frac, y+dy*frac).
				WithButton(input.Left).
				WithButtons(1)
			if err := move.Do(ctx); err != nil {
				return Classify(err)
			}
			select {
			case <-ctx.Done():
				return Classify(ctx.Err())
			case <-time.After(15 * time.Millisecond):
			}
		}

		release := input.DispatchMouseEvent(input.MouseReleased, x+dx, y+dy).
			WithButton(input.Left).
			WithClickCount(1)
		return Classify(release.Do(ctx))
	}, opts...)
}

// quadCenter returns the geometric center of a CDP content quad. A quad is
// eight floats: the x,y pairs of the four corners in clockwise order.
func quadCenter(q dom.Quad) (x, y float64) {
	if len(q) < 8 {
		return 0, 0
	}
	x = (q[0] + q[2] + q[4] + q[6]) / 4
	y = (q[1] + q[3] + q[5] + q[7]) / 4
	return x, y
}
