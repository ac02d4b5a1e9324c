package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/IgorBayerl/logscan/internal/reporter/htmlreport"
	"github.com/IgorBayerl/logscan/internal/reporter/jsonreport"
	"github.com/IgorBayerl/logscan/internal/reporter/textreport"
	"github.com/IgorBayerl/logscan/internal/scanner"
)

// Reporter renders scan results as they are found.
type Reporter interface {
	// ReportMatch writes one context block. lines is the full line sequence
	// the match window indexes into.
	ReportMatch(m scanner.Match, lines []string) error
	// ReportNoMatch is called once, only when the scan found nothing.
	ReportNoMatch() error
}

// Supported formats, keyed by the lower-case name accepted on the command line.
var SupportedFormats = map[string]bool{
	"text": true,
	"html": true,
	"json": true,
}

// ValidateFormat checks that format names a supported report format.
func ValidateFormat(format string) error {
	if !SupportedFormats[strings.ToLower(strings.TrimSpace(format))] {
		return fmt.Errorf("unsupported report format: %s", format)
	}
	return nil
}

// New returns the Reporter for format writing to w.
func New(format string, w io.Writer) (Reporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return textreport.NewTextReporter(w), nil
	case "html":
		return htmlreport.NewHtmlReporter(w), nil
	case "json":
		return jsonreport.NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
