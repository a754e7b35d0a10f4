package diag

// Reporter: минимальный контракт получения диагностик от движка.
// Реализации: BagReporter (кладёт в Bag), NopReporter, MultiReporter (fan-out),
// DedupReporter, консольный репортёр в diagfmt.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d *Diagnostic)

func (f ReporterFunc) Report(d *Diagnostic) { f(d) }

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(*Diagnostic) {}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag == nil || d == nil {
		return
	}
	cpy := *d
	cpy.Args = append([]Arg(nil), d.Args...)
	r.Bag.Add(cpy)
}

// MultiReporter forwards every diagnostic to each of its reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(d *Diagnostic) {
	for _, r := range m {
		if r != nil {
			r.Report(d)
		}
	}
}
