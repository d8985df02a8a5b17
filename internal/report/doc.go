// Package report renders voting run history in several formats: aligned
// text for the terminal, JSON for scripting, and a Markdown table.
package report
