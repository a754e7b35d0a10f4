package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"novel/internal/diag"
	"novel/internal/source"
)

// Console is the default reporter: it prints every diagnostic as it arrives.
// <path>:<line>:<col>: <sev> <CODE>: <message>
// затем строка исходника и подчёркивание ^~~~ по Range.
type Console struct {
	w    io.Writer
	res  source.Resolver
	opts PrettyOpts

	sev  map[diag.Severity]*color.Color
	loc  *color.Color
	mark *color.Color
}

// NewConsole creates a console reporter writing to w. res resolves unit
// indexes to paths and line text and may be nil.
func NewConsole(w io.Writer, res source.Resolver, opts PrettyOpts) *Console {
	c := &Console{
		w:    w,
		res:  res,
		opts: opts,
		sev: map[diag.Severity]*color.Color{
			diag.SevNote:    color.New(color.FgCyan, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevFatal:   color.New(color.FgHiRed, color.Bold),
		},
		loc:  color.New(color.Bold),
		mark: color.New(color.FgGreen, color.Bold),
	}
	for _, col := range c.allColors() {
		if opts.Color {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) allColors() []*color.Color {
	out := []*color.Color{c.loc, c.mark}
	for _, col := range c.sev {
		out = append(out, col)
	}
	return out
}

// SetResolver replaces the unit resolver.
func (c *Console) SetResolver(res source.Resolver) { c.res = res }

// Report implements diag.Reporter.
func (c *Console) Report(d *diag.Diagnostic) {
	if d == nil {
		return
	}
	var unit *source.Unit
	if c.res != nil && d.Range.Valid() {
		unit = c.res.Unit(d.Range.Unit)
	}

	sevColor, ok := c.sev[d.Severity]
	if !ok {
		sevColor = c.sev[diag.SevError]
	}
	if unit != nil {
		pos := unit.Position(d.Range.Off)
		fmt.Fprintf(c.w, "%s ", c.loc.Sprintf("%s:%d:%d:", unitPath(unit, c.opts.PathMode, c.opts.BaseDir), pos.Line, pos.Col))
	}
	fmt.Fprintf(c.w, "%s %s: %s\n", sevColor.Sprint(d.Severity.Label()), d.Code.ID(), d.Message)

	if c.opts.Context && unit != nil {
		c.writeContext(unit, d.Range)
	}
}

func (c *Console) writeContext(unit *source.Unit, rng source.Range) {
	pos := unit.Position(rng.Off)
	line := unit.GetLine(pos.Line)
	gutter := fmt.Sprintf("%4d | ", pos.Line)
	fmt.Fprintf(c.w, "%s%s\n", gutter, line)

	col := int(pos.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	end := col + int(rng.Len)
	if end > len(line) {
		end = len(line)
	}
	width := runewidth.StringWidth(line[col:end])
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(c.w, "%s%s%s\n", strings.Repeat(" ", len(gutter)-2)+"| ", caretPadding(line[:col]), c.mark.Sprint(underline))
}

// caretPadding returns blanks occupying the same display width as prefix.
// Табы сохраняются, чтобы выравнивание совпало с терминалом.
func caretPadding(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// Pretty форматирует все диагностики bag в человекочитаемый вид.
// Ожидается bag.Sort() заранее.
func Pretty(w io.Writer, bag *diag.Bag, res source.Resolver, opts PrettyOpts) {
	c := NewConsole(w, res, opts)
	items := bag.Items()
	for i := range items {
		c.Report(&items[i])
	}
}
