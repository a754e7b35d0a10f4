package diag

import (
	"novel/internal/source"
)

// Policy is the live severity policy of an Engine.
type Policy struct {
	WarningsAsErrors bool
	SuppressNotes    bool
	SuppressWarnings bool
	// MaxErrors stops reporting after this many errors; 0 means no limit.
	MaxErrors   int
	ErrorsFatal bool
}

// EffectiveMaxErrors returns the cutoff after ErrorsFatal is applied.
func (p Policy) EffectiveMaxErrors() int {
	if p.ErrorsFatal && (p.MaxErrors == 0 || p.MaxErrors > 1) {
		return 1
	}
	return p.MaxErrors
}

// Engine resolves codes, applies policy, counts and dispatches diagnostics.
// It is confined to one goroutine at a time.
type Engine struct {
	policy   Policy
	out      MultiReporter
	errors   int
	warnings int
	notes    int
	fatal    bool
}

// NewEngine creates an engine with the given reporters.
func NewEngine(policy Policy, reporters ...Reporter) *Engine {
	e := &Engine{policy: policy}
	for _, r := range reporters {
		e.AddReporter(r)
	}
	return e
}

// AddReporter registers r. Reporters are called in registration order.
func (e *Engine) AddReporter(r Reporter) {
	if r != nil {
		e.out = append(e.out, r)
	}
}

// SetReporters replaces all registered reporters.
func (e *Engine) SetReporters(rs ...Reporter) {
	e.out = e.out[:0]
	for _, r := range rs {
		e.AddReporter(r)
	}
}

func (e *Engine) Policy() Policy { return e.policy }

func (e *Engine) SetPolicy(p Policy) { e.policy = p }

// Diagnose reports code at rng. Arguments past MaxArgs are dropped.
func (e *Engine) Diagnose(rng source.Range, code Code, args ...Arg) {
	info := code.Info()
	sev, ok := e.apply(info.Severity)
	if !ok {
		return
	}
	if len(args) > MaxArgs {
		args = args[:MaxArgs]
	}
	msg, err := Format(info.Template, args)
	if err != nil {
		msg = info.Template
	}
	d := &Diagnostic{
		Code:     code,
		Severity: sev,
		Category: info.Category,
		Message:  msg,
		Template: info.Template,
		Range:    rng,
		Args:     args,
	}
	e.out.Report(d)
}

// apply updates the counters and reports whether the diagnostic is shown.
func (e *Engine) apply(sev Severity) (Severity, bool) {
	switch sev {
	case SevIgnored:
		return sev, false
	case SevNote:
		if e.policy.SuppressNotes {
			return sev, false
		}
		e.notes++
		return sev, true
	case SevWarning:
		if e.policy.WarningsAsErrors {
			sev = SevError
			break
		}
		if e.policy.SuppressWarnings {
			return sev, false
		}
		e.warnings++
		return sev, true
	}

	e.errors++
	if sev == SevFatal {
		e.fatal = true
		return sev, true
	}
	if limit := e.policy.EffectiveMaxErrors(); limit > 0 && e.errors > limit {
		return sev, false
	}
	return sev, true
}

// DidError reports whether any error has been counted.
func (e *Engine) DidError() bool { return e.errors > 0 }

// DidFatal reports whether a fatal diagnostic was raised.
func (e *Engine) DidFatal() bool { return e.fatal }

func (e *Engine) NumErrors() int   { return e.errors }
func (e *Engine) NumWarnings() int { return e.warnings }
func (e *Engine) NumNotes() int    { return e.notes }

// LimitReached reports whether further errors will not be shown.
func (e *Engine) LimitReached() bool {
	limit := e.policy.EffectiveMaxErrors()
	return limit > 0 && e.errors >= limit
}

// Reset clears the counters. Reporters and policy are kept.
func (e *Engine) Reset() {
	e.errors, e.warnings, e.notes, e.fatal = 0, 0, 0, false
}
