package markup

import (
	"html"
	"strings"
)

// Table is tabular data destined for a page body. Cell content is written
// through whole, never truncated. Set Escape to HTML-escape cells; the
// default lets markup inside cells render on the page.
type Table struct {
	Header []string
	Rows   [][]string
	Escape bool
}

// HTML renders the table as storage-format body content.
func (t *Table) HTML() string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, h := range t.Header {
		b.WriteString("<th>")
		b.WriteString(t.cell(h))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, c := range row {
			b.WriteString("<td>")
			b.WriteString(t.cell(c))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func (t *Table) cell(s string) string {
	if t.Escape {
		return html.EscapeString(s)
	}
	return s
}
