package markup

import (
	"errors"
	"strings"
	"testing"
)

func TestAddTitle(t *testing.T) {
	var b Builder
	if err := b.AddTitle("X", "h2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.Render(); got != "<h2>X</h2>" {
		t.Fatalf("expected exact heading markup, got %q", got)
	}
}

func TestAddTitleInvalidHeading(t *testing.T) {
	for _, heading := range []string{"h8", "h0", "div", ""} {
		var b Builder
		err := b.AddTitle("X", heading)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("heading %q: expected ErrInvalidArgument, got %v", heading, err)
		}
		if b.Render() != "" {
			t.Fatalf("heading %q: expected nothing appended, got %q", heading, b.Render())
		}
	}
}

func TestAddNewLine(t *testing.T) {
	var b Builder
	b.AddNewLine()
	if got := b.Render(); got != "<br></br>" {
		t.Fatalf("expected line break markup, got %q", got)
	}
}

func TestAddWarningDefaults(t *testing.T) {
	var b Builder
	if err := b.AddWarning("careful", WarningOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ac:structured-macro ac:name="warning"><ac:rich-text-body>careful</ac:rich-text-body></ac:structured-macro>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddWarningTitleAndIcon(t *testing.T) {
	var b Builder
	if err := b.AddWarning("careful", WarningOptions{Type: "tip", Title: "Heads up", HideIcon: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ac:structured-macro ac:name="tip">` +
		`<ac:parameter ac:name="title">Heads up</ac:parameter>` +
		`<ac:parameter ac:name="icon">false</ac:parameter>` +
		`<ac:rich-text-body>careful</ac:rich-text-body></ac:structured-macro>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddWarningInvalidType(t *testing.T) {
	var b Builder
	err := b.AddWarning("careful", WarningOptions{Type: "bogus"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if b.Render() != "" {
		t.Fatalf("expected nothing appended, got %q", b.Render())
	}
}

func TestAddChart(t *testing.T) {
	table := &Table{Header: []string{"k"}, Rows: [][]string{{"v"}}}

	var b Builder
	if err := b.AddChart(table, "pie", "Distribution"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ac:structured-macro ac:name="chart">` +
		`<ac:parameter ac:name="title">Distribution</ac:parameter>` +
		`<ac:parameter ac:name="type">pie</ac:parameter>` +
		`<ac:rich-text-body>` + table.HTML() + `</ac:rich-text-body></ac:structured-macro>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddChartInvalidType(t *testing.T) {
	var b Builder
	err := b.AddChart(&Table{}, "scatter", "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if b.Render() != "" {
		t.Fatalf("expected nothing appended, got %q", b.Render())
	}
}

func TestAddCodeBlock(t *testing.T) {
	var b Builder
	b.AddCodeBlock(`print("hi")`, CodeBlockOptions{Title: "Demo", Language: "python", LineNumbers: true})
	want := `<ac:structured-macro ac:name="code">` +
		`<ac:parameter ac:name="title">Demo</ac:parameter>` +
		`<ac:parameter ac:name="linenumbers">true</ac:parameter>` +
		`<ac:parameter ac:name="language">python</ac:parameter>` +
		`<ac:plain-text-body><![CDATA[print("hi")]]></ac:plain-text-body></ac:structured-macro>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddCodeBlockMinimal(t *testing.T) {
	var b Builder
	b.AddCodeBlock("x := 1", CodeBlockOptions{})
	got := b.Render()
	if strings.Contains(got, "linenumbers") || strings.Contains(got, "collapse") {
		t.Fatalf("expected boolean params omitted when disabled, got %q", got)
	}
	if !strings.Contains(got, "<![CDATA[x := 1]]>") {
		t.Fatalf("expected CDATA-wrapped code, got %q", got)
	}
}

func TestAddTagUser(t *testing.T) {
	var b Builder
	if err := b.AddTagUser("jdoe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ac:link><ri:user ri:username="jdoe"/></ac:link>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddPageLink(t *testing.T) {
	var b Builder
	if err := b.AddPageLink("Page about DS", "DS"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ac:link><ri:page ri:space-key="DS" ri:content-title="Page about DS"/></ac:link>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddPDFPreview(t *testing.T) {
	var b Builder
	if err := b.AddPDFPreview("report.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ac:structured-macro ac:name="viewpdf">` +
		`<ac:parameter ac:name="name"><ri:attachment ri:filename="report.pdf"/></ac:parameter>` +
		`</ac:structured-macro>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddTableOfContentsDefaults(t *testing.T) {
	var b Builder
	if err := b.AddTableOfContents(TOCOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<ac:structured-macro ac:name="toc">` +
		`<ac:parameter ac:name="printable">true</ac:parameter>` +
		`<ac:parameter ac:name="style">disc</ac:parameter>` +
		`<ac:parameter ac:name="maxLevel">7</ac:parameter>` +
		`<ac:parameter ac:name="indent">0px</ac:parameter>` +
		`<ac:parameter ac:name="minLevel">1</ac:parameter>` +
		`<ac:parameter ac:name="type">list</ac:parameter>` +
		`<ac:parameter ac:name="outline">false</ac:parameter>` +
		`</ac:structured-macro>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddTableOfContentsFilters(t *testing.T) {
	var b Builder
	err := b.AddTableOfContents(TOCOptions{Type: "flat", MinLevel: 2, MaxLevel: 4, Exclude: "Draft.*", Include: "Rel.*"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := b.Render()
	for _, want := range []string{
		`<ac:parameter ac:name="minLevel">2</ac:parameter>`,
		`<ac:parameter ac:name="maxLevel">4</ac:parameter>`,
		`<ac:parameter ac:name="exclude">Draft.*</ac:parameter>`,
		`<ac:parameter ac:name="type">flat</ac:parameter>`,
		`<ac:parameter ac:name="include">Rel.*</ac:parameter>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestAddTableOfContentsInvalid(t *testing.T) {
	cases := []TOCOptions{
		{Type: "tree"},
		{MinLevel: 8},
		{MaxLevel: 9},
		{MinLevel: -1},
	}
	for _, opts := range cases {
		var b Builder
		err := b.AddTableOfContents(opts)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("opts %+v: expected ErrInvalidArgument, got %v", opts, err)
		}
		if b.Render() != "" {
			t.Fatalf("opts %+v: expected nothing appended, got %q", opts, b.Render())
		}
	}
}

func TestAddCustomHTML(t *testing.T) {
	var b Builder
	b.AddCustomHTML(`<p style="color:red;">raw</p>`)
	if got := b.Render(); got != `<p style="color:red;">raw</p>` {
		t.Fatalf("expected raw markup passthrough, got %q", got)
	}
}

func TestRestart(t *testing.T) {
	var b Builder
	if err := b.AddTitle("X", "h1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Restart()
	if got := b.Render(); got != "" {
		t.Fatalf("expected empty output after restart, got %q", got)
	}
}

func TestFragmentsAccumulate(t *testing.T) {
	var b Builder
	if err := b.AddTitle("Report", "h1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.AddNewLine()
	if err := b.AddTagUser("jdoe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<h1>Report</h1><br></br><ac:link><ri:user ri:username="jdoe"/></ac:link>`
	if got := b.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
