// Package main provides the entry point for the mmotopvote CLI.
//
// mmotopvote casts a daily vote for a game server on the mmotop.ru
// rating site. It logs in, passes the site's slider challenge and embedded
// verification widget, and submits the ballot, skipping the whole flow
// when an earlier vote is still in effect.
//
// Usage:
//
//	mmotopvote vote
//	mmotopvote history
//
// See --help for all available options.
package main

// main is the entry point for mmotopvote.
func main() {
	Execute()
}
