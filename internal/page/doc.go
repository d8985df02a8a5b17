// Package page implements the interaction layer for the mmotop.ru voting
// site: opening the vote page, logging in, solving the slider challenge,
// probing the next-vote countdown, and casting the vote itself.
//
// All site knowledge lives here. The XPath locators and settle periods in
// locators.go are coupled to the site's markup as observed and break when
// the site changes; nothing outside this package knows what the page looks
// like.
package page
