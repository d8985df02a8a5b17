// Package database persists voting run history in a local SQLite database.
//
// The history is a convenience record for the operator. Eligibility always
// comes from the live site's countdown label, never from this database, so
// losing or deleting the file is harmless.
package database
