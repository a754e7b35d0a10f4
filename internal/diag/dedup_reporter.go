package diag

import "novel/internal/source"

// Severity stays out of the key: one engine maps a code to one severity.
type dedupKey struct {
	code Code
	rng  source.Range
	msg  string
}

// DedupReporter passes the first of identical diagnostics (same code, range
// and rendered message) to Next and drops the repeats. Engine counters are
// not affected; they see every Diagnose call.
type DedupReporter struct {
	Next    Reporter
	seen    map[dedupKey]struct{}
	dropped int
}

// NewDedupReporter wraps next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{Next: next}
}

func (r *DedupReporter) Report(d *Diagnostic) {
	if r == nil || d == nil {
		return
	}
	if r.seen == nil {
		r.seen = make(map[dedupKey]struct{})
	}
	k := dedupKey{code: d.Code, rng: d.Range, msg: d.Message}
	if _, dup := r.seen[k]; dup {
		r.dropped++
		return
	}
	r.seen[k] = struct{}{}
	if r.Next != nil {
		r.Next.Report(d)
	}
}

// Dropped returns the number of repeats filtered so far.
func (r *DedupReporter) Dropped() int {
	if r == nil {
		return 0
	}
	return r.dropped
}

// Reset forgets every diagnostic seen so far.
func (r *DedupReporter) Reset() {
	clear(r.seen)
	r.dropped = 0
}
