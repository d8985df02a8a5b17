// Package workflow orchestrates a single voting run: open the page, log
// in, check whether an earlier vote is still in effect, and if not, solve
// the slider challenge and cast the vote.
//
// The orchestration is deliberately thin. It sequences the page operations
// and maps their results onto a run record; it knows nothing about the
// site's markup, and it never swallows page errors other than the two
// outcomes that are control flow by contract: a present countdown and a
// missing submit control.
package workflow
