package report

import (
	"encoding/json"
	"io"

	"github.com/mmotop-tools/mmotopvote/internal/model"
)

// JSONWriter renders runs as indented JSON for scripting.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter writing to out.
func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter{out: out}}
}

// Write renders the records as a JSON array. An empty history renders as
// an empty array, not null, so consumers can always iterate.
func (w *JSONWriter) Write(records []model.RunRecord) (int, error) {
	if records == nil {
		records = []model.RunRecord{}
	}

	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
