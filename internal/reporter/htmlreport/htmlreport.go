package htmlreport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/IgorBayerl/logscan/internal/scanner"
	"github.com/IgorBayerl/logscan/internal/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HtmlReporter writes an HTML fragment: one <section class="match"> per
// match, rendered as soon as the match is reported. Line text is escaped by
// the renderer, so log content can never inject markup.
type HtmlReporter struct {
	w io.Writer
}

func NewHtmlReporter(w io.Writer) *HtmlReporter {
	return &HtmlReporter{w: w}
}

func (r *HtmlReporter) ReportMatch(m scanner.Match, lines []string) error {
	return r.render(buildMatchSection(m, lines))
}

func (r *HtmlReporter) ReportNoMatch() error {
	p := element(atom.P, html.Attribute{Key: "class", Val: "no-match"})
	p.AppendChild(text("No match found."))
	return r.render(p)
}

func (r *HtmlReporter) render(n *html.Node) error {
	if err := html.Render(r.w, n); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err := io.WriteString(r.w, "\n")
	return err
}

func buildMatchSection(m scanner.Match, lines []string) *html.Node {
	section := element(atom.Section,
		html.Attribute{Key: "class", Val: "match"},
		html.Attribute{Key: "id", Val: matchAnchor(m.Line)},
	)

	heading := element(atom.H2)
	heading.AppendChild(text(fmt.Sprintf("MATCH at line %d", m.Line)))
	section.AppendChild(heading)

	table := element(atom.Table, html.Attribute{Key: "class", Val: "context"})
	for j := m.Window.Start; j < m.Window.End; j++ {
		table.AppendChild(buildLineRow(j, lines[j], j == m.Line))
	}
	section.AppendChild(table)
	return section
}

func buildLineRow(index int, line string, isMatch bool) *html.Node {
	class := "line"
	if isMatch {
		class = "line hit"
	}
	row := element(atom.Tr, html.Attribute{Key: "class", Val: class})

	number := element(atom.Td, html.Attribute{Key: "class", Val: "lineno"})
	number.AppendChild(text(strconv.Itoa(index)))
	row.AppendChild(number)

	content := element(atom.Td, html.Attribute{Key: "class", Val: "content"})
	code := element(atom.Code)
	code.AppendChild(text(utils.StripCarriageReturns(line)))
	content.AppendChild(code)
	row.AppendChild(content)

	return row
}

func matchAnchor(line int) string {
	return "match-" + strconv.Itoa(line)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
