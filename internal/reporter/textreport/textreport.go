package textreport

import (
	"fmt"
	"io"

	"github.com/IgorBayerl/logscan/internal/scanner"
	"github.com/IgorBayerl/logscan/internal/utils"
)

// NoMatchMessage is printed when the scan produced no blocks.
const NoMatchMessage = "No match found."

// TextReporter writes the plain console format: a header per match followed
// by the window lines, each quoted so control characters stay visible.
type TextReporter struct {
	w io.Writer
}

func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

func (r *TextReporter) ReportMatch(m scanner.Match, lines []string) error {
	if _, err := fmt.Fprintf(r.w, "--- MATCH at line %d ---\n", m.Line); err != nil {
		return err
	}
	for j := m.Window.Start; j < m.Window.End; j++ {
		if _, err := fmt.Fprintf(r.w, "%d: %q\n", j, utils.StripCarriageReturns(lines[j])); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextReporter) ReportNoMatch() error {
	_, err := fmt.Fprintln(r.w, NoMatchMessage)
	return err
}
