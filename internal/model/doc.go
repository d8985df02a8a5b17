// Package model defines the domain types shared across packages: the outcome
// of a voting run and the record persisted to the local history database.
package model
