package jsonreport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/IgorBayerl/logscan/internal/scanner"
	"github.com/IgorBayerl/logscan/internal/utils"
)

// contextLine is one line of a match window.
type contextLine struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// matchRecord is the serialized form of a scanner.Match.
type matchRecord struct {
	Found   bool          `json:"found"`
	Line    int           `json:"line"`
	Start   int           `json:"start"`
	End     int           `json:"end"`
	Context []contextLine `json:"context"`
}

type noMatchRecord struct {
	Found bool `json:"found"`
}

// JSONReporter writes JSON Lines: one object per match, in scan order.
type JSONReporter struct {
	enc *json.Encoder
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w)}
}

func (r *JSONReporter) ReportMatch(m scanner.Match, lines []string) error {
	rec := matchRecord{
		Found:   true,
		Line:    m.Line,
		Start:   m.Window.Start,
		End:     m.Window.End,
		Context: make([]contextLine, 0, m.Window.Len()),
	}
	for j := m.Window.Start; j < m.Window.End; j++ {
		rec.Context = append(rec.Context, contextLine{Index: j, Text: utils.StripCarriageReturns(lines[j])})
	}
	if err := r.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (r *JSONReporter) ReportNoMatch() error {
	if err := r.enc.Encode(noMatchRecord{Found: false}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
