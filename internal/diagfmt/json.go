package diagfmt

import (
	"encoding/json"
	"io"

	"novel/internal/diag"
	"novel/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Category string       `json:"category"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Args     []string     `json:"args,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(rng source.Range, res source.Resolver, opts JSONOpts) LocationJSON {
	loc := LocationJSON{File: "-", StartByte: rng.Off, EndByte: rng.End()}
	if res == nil || !rng.Valid() {
		return loc
	}
	unit := res.Unit(rng.Unit)
	if unit == nil {
		return loc
	}
	loc.File = unitPath(unit, opts.PathMode, opts.BaseDir)
	if opts.IncludePositions {
		start, end := unit.Position(rng.Off), unit.Position(rng.End())
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, res source.Resolver, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, n)
	for i := range n {
		d := &items[i]
		out := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Category: d.Category.String(),
			Message:  d.Message,
			Location: makeLocation(d.Range, res, opts),
		}
		if opts.IncludeArgs {
			for _, a := range d.Args {
				out.Args = append(out.Args, a.String())
			}
		}
		diagnostics = append(diagnostics, out)
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, res source.Resolver, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, res, opts))
}
