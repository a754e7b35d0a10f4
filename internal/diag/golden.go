package diag

import (
	"fmt"
	"sort"
	"strings"

	"novel/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files and short CLI output. Paths are made
// relative to baseDir. Diagnostics without a unit print "-:0:0".
func FormatGoldenDiagnostics(diags []Diagnostic, res source.Resolver, baseDir string) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = append(rendered, resolveGolden(&diags[i], res, baseDir))
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func resolveGolden(d *Diagnostic, res source.Resolver, baseDir string) goldenDiagnostic {
	g := goldenDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     "-",
		Message:  sanitizeMessage(d.Message),
	}
	if res == nil || !d.Range.Valid() {
		return g
	}
	unit := res.Unit(d.Range.Unit)
	if unit == nil {
		return g
	}
	pos := unit.Position(d.Range.Off)
	g.Path = source.RelativePath(unit.Path, baseDir)
	g.Line, g.Column = pos.Line, pos.Col
	return g
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
