package report

import (
	"io"

	"github.com/mmotop-tools/mmotopvote/internal/model"
)

// Writer renders run records to an output stream. Write returns the number
// of records rendered.
type Writer interface {
	Write(records []model.RunRecord) (int, error)
}

// baseWriter holds the output stream shared by all writers.
type baseWriter struct {
	out io.Writer
}

// timeLayout is the timestamp format used in text and markdown output.
const timeLayout = "2006-01-02 15:04:05"

// summarize counts records per outcome.
func summarize(records []model.RunRecord) map[model.Outcome]int {
	counts := make(map[model.Outcome]int)
	for _, rec := range records {
		counts[rec.Outcome]++
	}
	return counts
}
