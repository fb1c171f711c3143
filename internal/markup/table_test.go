package markup

import (
	"strings"
	"testing"
)

func TestTableHTML(t *testing.T) {
	table := &Table{
		Header: []string{"name", "count"},
		Rows:   [][]string{{"a", "1"}, {"b", "2"}},
	}
	want := "<table><thead><tr><th>name</th><th>count</th></tr></thead>" +
		"<tbody><tr><td>a</td><td>1</td></tr><tr><td>b</td><td>2</td></tr></tbody></table>"
	if got := table.HTML(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTableDoesNotTruncateCells(t *testing.T) {
	long := strings.Repeat("verylongcellcontent-", 50)
	table := &Table{Header: []string{"col"}, Rows: [][]string{{long}}}
	if !strings.Contains(table.HTML(), long) {
		t.Fatalf("expected long cell content to survive rendering whole")
	}
}

func TestTableEscape(t *testing.T) {
	table := &Table{
		Header: []string{"markup"},
		Rows:   [][]string{{`<b>bold</b>`}},
		Escape: true,
	}
	got := table.HTML()
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected cell markup escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Fatalf("expected escaped entities, got %q", got)
	}
}

func TestTablePassesMarkupThroughByDefault(t *testing.T) {
	table := &Table{
		Header: []string{"markup"},
		Rows:   [][]string{{`<b>bold</b>`}},
	}
	if !strings.Contains(table.HTML(), "<b>bold</b>") {
		t.Fatalf("expected cell markup kept verbatim by default")
	}
}
