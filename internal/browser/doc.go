// Package browser manages the Chrome session used to drive the voting site.
//
// It wraps chromedp with a Session type that owns the allocator and browser
// contexts and guarantees cleanup, provides a drag gesture built from raw
// CDP mouse events for the slider challenge, and classifies the loosely
// typed chromedp failures into the three sentinel errors the rest of the
// code handles: ErrElementNotFound, ErrTimeout, and ErrElementNotVisible.
package browser
