// Package markup composes Confluence storage-format page bodies. The tag
// and attribute names, parameter order and CDATA wrapping are part of the
// server's contract and must be emitted exactly as written here.
package markup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidArgument marks a fragment input rejected before anything was
// appended to the output. Check with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	headings     = []interface{}{"h1", "h2", "h3", "h4", "h5", "h6", "h7"}
	warningTypes = []interface{}{"warning", "note", "tip", "info"}
	graphTypes   = []interface{}{"bar", "pie", "line", "area"}
	tocTypes     = []interface{}{"list", "flat"}
)

// Builder accumulates storage-format fragments into a single page body.
// The zero value is an empty builder. Fragment methods validate their
// inputs first and leave the output untouched on error.
type Builder struct {
	out strings.Builder
}

// Render returns the accumulated body.
func (b *Builder) Render() string {
	return b.out.String()
}

// Restart discards everything accumulated so far.
func (b *Builder) Restart() {
	b.out.Reset()
}

// AddTitle appends a heading. heading must be one of h1 through h7.
func (b *Builder) AddTitle(title, heading string) error {
	if err := validation.Validate(heading, validation.Required, validation.In(headings...)); err != nil {
		return fmt.Errorf("%w: heading must be one of h1..h7, got %q", ErrInvalidArgument, heading)
	}
	fmt.Fprintf(&b.out, "<%s>%s</%s>", heading, title, heading)
	return nil
}

// AddNewLine appends a line break.
func (b *Builder) AddNewLine() {
	b.out.WriteString("<br></br>")
}

// AddTable appends tabular data as an HTML table.
func (b *Builder) AddTable(t *Table) error {
	if t == nil {
		return fmt.Errorf("%w: table must not be nil", ErrInvalidArgument)
	}
	b.out.WriteString(t.HTML())
	return nil
}

// AddChart appends a chart macro fed by the table. graphType must be one of
// bar, pie, line or area; title is optional.
func (b *Builder) AddChart(t *Table, graphType, title string) error {
	if t == nil {
		return fmt.Errorf("%w: table must not be nil", ErrInvalidArgument)
	}
	if err := validation.Validate(graphType, validation.Required, validation.In(graphTypes...)); err != nil {
		return fmt.Errorf("%w: graph type must be one of bar, pie, line or area, got %q", ErrInvalidArgument, graphType)
	}

	b.out.WriteString(`<ac:structured-macro ac:name="chart">`)
	if title != "" {
		b.param("title", title)
	}
	b.param("type", graphType)
	b.out.WriteString("<ac:rich-text-body>")
	b.out.WriteString(t.HTML())
	b.out.WriteString("</ac:rich-text-body></ac:structured-macro>")
	return nil
}

// WarningOptions controls the admonition macro. Type defaults to "warning";
// HideIcon drops the macro's icon.
type WarningOptions struct {
	Type     string
	Title    string
	HideIcon bool
}

// AddWarning appends an admonition macro wrapping text.
func (b *Builder) AddWarning(text string, opts WarningOptions) error {
	warningType := opts.Type
	if warningType == "" {
		warningType = "warning"
	}
	if err := validation.Validate(warningType, validation.In(warningTypes...)); err != nil {
		return fmt.Errorf("%w: warning type must be one of warning, note, tip or info, got %q", ErrInvalidArgument, warningType)
	}

	fmt.Fprintf(&b.out, `<ac:structured-macro ac:name="%s">`, warningType)
	if opts.Title != "" {
		b.param("title", opts.Title)
	}
	if opts.HideIcon {
		b.param("icon", "false")
	}
	b.out.WriteString("<ac:rich-text-body>")
	b.out.WriteString(text)
	b.out.WriteString("</ac:rich-text-body></ac:structured-macro>")
	return nil
}

// CodeBlockOptions controls the code macro. Boolean parameters are only
// emitted when enabled, matching the server's defaults.
type CodeBlockOptions struct {
	Title       string
	Theme       string
	Language    string
	LineNumbers bool
	Collapse    bool
}

// AddCodeBlock appends a code macro. The code itself is CDATA-wrapped so the
// server does not interpret it as markup.
func (b *Builder) AddCodeBlock(code string, opts CodeBlockOptions) {
	b.out.WriteString(`<ac:structured-macro ac:name="code">`)
	if opts.Title != "" {
		b.param("title", opts.Title)
	}
	if opts.Theme != "" {
		b.param("theme", opts.Theme)
	}
	if opts.LineNumbers {
		b.param("linenumbers", "true")
	}
	if opts.Language != "" {
		b.param("language", opts.Language)
	}
	if opts.Collapse {
		b.param("collapse", "true")
	}
	b.out.WriteString("<ac:plain-text-body><![CDATA[")
	b.out.WriteString(code)
	b.out.WriteString("]]></ac:plain-text-body></ac:structured-macro>")
}

// AddTagUser appends a link that tags a user by username.
func (b *Builder) AddTagUser(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username must not be empty", ErrInvalidArgument)
	}
	fmt.Fprintf(&b.out, `<ac:link><ri:user ri:username="%s"/></ac:link>`, username)
	return nil
}

// AddPageLink appends a link to a page in the given space.
func (b *Builder) AddPageLink(page, space string) error {
	if page == "" || space == "" {
		return fmt.Errorf("%w: page and space must not be empty", ErrInvalidArgument)
	}
	fmt.Fprintf(&b.out, `<ac:link><ri:page ri:space-key="%s" ri:content-title="%s"/></ac:link>`, space, page)
	return nil
}

// AddPDFPreview appends a viewpdf macro for a file already attached to the
// page.
func (b *Builder) AddPDFPreview(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename must not be empty", ErrInvalidArgument)
	}
	fmt.Fprintf(&b.out, `<ac:structured-macro ac:name="viewpdf"><ac:parameter ac:name="name"><ri:attachment ri:filename="%s"/></ac:parameter></ac:structured-macro>`, filename)
	return nil
}

// TOCOptions controls the toc macro. Zero values take the defaults: a
// printable list with disc bullets covering heading levels 1 through 7.
type TOCOptions struct {
	Type         string // "list" or "flat"
	MinLevel     int    // highest heading level to include, 1..7
	MaxLevel     int    // lowest heading level to include, 1..7
	Style        string // CSS list-style: disc, circle, square, decimal, ...
	Outline      bool   // outline numbering (1.1, 1.2, ...)
	Indent       string // CSS quantity per nesting level, e.g. "10px"
	Exclude      string // heading filter, regex
	Include      string // heading filter, regex
	NonPrintable bool   // hide the TOC when the page is printed
}

// AddTableOfContents appends a toc macro.
func (b *Builder) AddTableOfContents(opts TOCOptions) error {
	tocType := opts.Type
	if tocType == "" {
		tocType = "list"
	}
	minLevel := opts.MinLevel
	if minLevel == 0 {
		minLevel = 1
	}
	maxLevel := opts.MaxLevel
	if maxLevel == 0 {
		maxLevel = 7
	}
	style := opts.Style
	if style == "" {
		style = "disc"
	}
	indent := opts.Indent
	if indent == "" {
		indent = "0px"
	}

	if err := validation.Validate(tocType, validation.In(tocTypes...)); err != nil {
		return fmt.Errorf("%w: toc type must be list or flat, got %q", ErrInvalidArgument, tocType)
	}
	if err := validation.Validate(minLevel, validation.Min(1), validation.Max(7)); err != nil {
		return fmt.Errorf("%w: minLevel must be within 1..7, got %d", ErrInvalidArgument, minLevel)
	}
	if err := validation.Validate(maxLevel, validation.Min(1), validation.Max(7)); err != nil {
		return fmt.Errorf("%w: maxLevel must be within 1..7, got %d", ErrInvalidArgument, maxLevel)
	}

	b.out.WriteString(`<ac:structured-macro ac:name="toc">`)
	b.param("printable", strconv.FormatBool(!opts.NonPrintable))
	b.param("style", style)
	b.param("maxLevel", strconv.Itoa(maxLevel))
	b.param("indent", indent)
	b.param("minLevel", strconv.Itoa(minLevel))
	if opts.Exclude != "" {
		b.param("exclude", opts.Exclude)
	}
	b.param("type", tocType)
	b.param("outline", strconv.FormatBool(opts.Outline))
	if opts.Include != "" {
		b.param("include", opts.Include)
	}
	b.out.WriteString("</ac:structured-macro>")
	return nil
}

// AddCustomHTML appends raw storage-format markup as given.
func (b *Builder) AddCustomHTML(html string) {
	b.out.WriteString(html)
}

func (b *Builder) param(name, value string) {
	fmt.Fprintf(&b.out, `<ac:parameter ac:name="%s">%s</ac:parameter>`, name, value)
}
