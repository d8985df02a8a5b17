package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/mmotop-tools/mmotopvote/internal/model"
)

// MarkdownWriter renders runs as a Markdown document for documentation and
// sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter writing to out.
func NewMarkdownWriter(out io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter{out: out}}
}

// Write renders the records as a Markdown table with an outcome summary.
func (w *MarkdownWriter) Write(records []model.RunRecord) (int, error) {
	md := markdown.NewMarkdown(w.out)

	md.H1("Voting Run History")
	md.PlainText("")

	if len(records) == 0 {
		md.PlainText("No voting runs recorded.")
		return 0, md.Build()
	}

	w.writeSummary(md, records)
	w.writeRunsTable(md, records)

	return len(records), md.Build()
}

// writeSummary writes the per-outcome counts.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, records []model.RunRecord) {
	counts := summarize(records)

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Voted", strconv.Itoa(counts[model.OutcomeVoted])},
			{"Already voted", strconv.Itoa(counts[model.OutcomeAlreadyVoted])},
			{"Captcha unsolved", strconv.Itoa(counts[model.OutcomeCaptchaUnsolved])},
			{"Failed", strconv.Itoa(counts[model.OutcomeFailed])},
			{"**Total**", "**" + strconv.Itoa(len(records)) + "**"},
		},
	})
	md.PlainText("")
}

// writeRunsTable writes one row per run, newest first as given.
func (w *MarkdownWriter) writeRunsTable(md *markdown.Markdown, records []model.RunRecord) {
	md.H2("Runs")
	md.PlainText("")

	rows := make([][]string, len(records))
	for i, rec := range records {
		detail := rec.Countdown
		if rec.ErrorMessage != "" {
			detail = rec.ErrorMessage
		}
		if detail == "" {
			detail = "-"
		}
		account := rec.AccountName
		if account == "" {
			account = "-"
		}
		rows[i] = []string{
			rec.StartedAt.Local().Format(timeLayout),
			rec.Outcome.String(),
			rec.ServerRate,
			account,
			detail,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Started", "Outcome", "Rate", "Account", "Detail"},
		Rows:   rows,
	})
}
