package directive

import (
	"fmt"
	"io"
	"sync"
)

// Registry collects scenario outcomes from many units. It is safe for
// concurrent use by the parallel driver.
type Registry struct {
	mu        sync.Mutex
	scenarios []Scenario
	byKind    map[Kind][]int // kind -> indices into scenarios slice
}

// NewRegistry creates an empty directive registry.
func NewRegistry() *Registry {
	return &Registry{
		scenarios: make([]Scenario, 0),
		byKind:    make(map[Kind][]int),
	}
}

// Add registers the scenarios of one run.
func (r *Registry) Add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range res.Scenarios {
		idx := len(r.scenarios)
		r.scenarios = append(r.scenarios, s)
		r.byKind[s.Kind] = append(r.byKind[s.Kind], idx)
	}
}

// All returns all registered scenarios.
func (r *Registry) All() []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Scenario(nil), r.scenarios...)
}

// FilterByKind returns scenarios matching any of the given kinds.
// If kinds is empty, returns all scenarios.
func (r *Registry) FilterByKind(kinds []Kind) []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(kinds) == 0 {
		return append([]Scenario(nil), r.scenarios...)
	}
	var result []Scenario
	for _, k := range kinds {
		for _, idx := range r.byKind[k] {
			result = append(result, r.scenarios[idx])
		}
	}
	return result
}

// Len returns the total number of scenarios.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scenarios)
}

// RunResult contains the totals printed by Summarize.
type RunResult struct {
	Total  int
	Passed int
	Failed int
}

// Summarize prints one line per scenario of the given kinds followed by a
// totals line. Passing scenarios are listed only when verbose is set.
func (r *Registry) Summarize(w io.Writer, kinds []Kind, verbose bool) RunResult {
	scenarios := r.FilterByKind(kinds)
	result := RunResult{Total: len(scenarios)}

	for i := range scenarios {
		s := &scenarios[i]
		if s.Passed {
			result.Passed++
			if verbose {
				fmt.Fprintf(w, "check %s (%s) ... ok\n", s.Name(), s.Kind)
			}
			continue
		}
		result.Failed++
		fmt.Fprintf(w, "check %s (%s) ... FAIL: expected %s, got %s\n", s.Name(), s.Kind, s.Expect, s.Got)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "self-test summary: %d total, %d passed, %d failed\n",
		result.Total, result.Passed, result.Failed)
	return result
}
