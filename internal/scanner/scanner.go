package scanner

import (
	"fmt"
	"strings"

	"github.com/IgorBayerl/logscan/internal/utils"
)

// DefaultPatterns are the messages Node prints when module resolution fails.
var DefaultPatterns = []string{"Cannot find module", "MODULE_NOT_FOUND"}

// DefaultContextRadius is how far a context window reaches on each side of a match.
const DefaultContextRadius = 10

// Window is a half-open range of line indices [Start, End).
type Window struct {
	Start int
	End   int
}

// Len returns the number of lines in the window.
func (w Window) Len() int { return w.End - w.Start }

// Match is a matching line together with the context to print around it.
type Match struct {
	Line   int
	Window Window
}

// ContextWindow clamps [index-radius, index+radius) to [0, lineCount).
func ContextWindow(index, lineCount, radius int) Window {
	return Window{
		Start: max(0, index-radius),
		End:   min(lineCount, index+radius),
	}
}

// Matcher tests lines for literal, case-sensitive substrings.
type Matcher struct {
	patterns []string
}

func NewMatcher(patterns []string) *Matcher {
	return &Matcher{patterns: patterns}
}

// Matches reports whether the cleaned line contains any of the patterns.
func (m *Matcher) Matches(line string) bool {
	clean := utils.CleanLine(line)
	for _, p := range m.patterns {
		if strings.Contains(clean, p) {
			return true
		}
	}
	return false
}

// Scanner walks a line sequence and hands out matches in ascending order.
type Scanner struct {
	matcher *Matcher
	radius  int
}

// New creates a Scanner. A negative radius is treated as zero.
func New(m *Matcher, radius int) *Scanner {
	return &Scanner{matcher: m, radius: max(0, radius)}
}

// Scan calls emit for each matching line as soon as it is found and returns
// how many matches were emitted. Windows of nearby matches may overlap; each
// is computed on its own. If emit fails, scanning stops and the error is
// returned with the matches counted so far.
func (s *Scanner) Scan(lines []string, emit func(Match) error) (int, error) {
	found := 0
	for i, line := range lines {
		if !s.matcher.Matches(line) {
			continue
		}
		m := Match{Line: i, Window: ContextWindow(i, len(lines), s.radius)}
		if err := emit(m); err != nil {
			return found, fmt.Errorf("emit match at line %d: %w", i, err)
		}
		found++
	}
	return found, nil
}

// Collect is Scan without a callback.
func (s *Scanner) Collect(lines []string) []Match {
	var matches []Match
	s.Scan(lines, func(m Match) error {
		matches = append(matches, m)
		return nil
	})
	return matches
}
