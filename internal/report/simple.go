package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmotop-tools/mmotopvote/internal/model"
)

// SimpleWriter renders runs as an aligned text table for the terminal.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter writing to out.
func NewSimpleWriter(out io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter{out: out}}
}

// Write renders the records, newest first as given.
func (w *SimpleWriter) Write(records []model.RunRecord) (int, error) {
	if len(records) == 0 {
		if _, err := fmt.Fprintln(w.out, "no voting runs recorded"); err != nil {
			return 0, err
		}
		return 0, nil
	}

	tw := tabwriter.NewWriter(w.out, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "STARTED\tOUTCOME\tRATE\tACCOUNT\tDETAIL"); err != nil {
		return 0, err
	}

	for _, rec := range records {
		detail := rec.Countdown
		if rec.ErrorMessage != "" {
			detail = rec.ErrorMessage
		}
		_, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			rec.StartedAt.Local().Format(timeLayout),
			rec.Outcome.String(),
			rec.ServerRate,
			rec.AccountName,
			detail,
		)
		if err != nil {
			return 0, err
		}
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	return len(records), nil
}
