package directive

import (
	"fmt"

	"novel/internal/source"
)

// Scenario is the outcome of checking one EXPECT directive.
type Scenario struct {
	Kind Kind

	// Index is the sequential number of this directive within its source file.
	Index int

	// SourceFile is the path to the source file containing this directive.
	SourceFile string

	// Range is the source location of the directive comment.
	Range source.Range

	Expect Expect
	Passed bool
	// Got describes what was found when the check failed.
	Got string
}

// Name returns a stable label such as "intro.nvl#3".
func (s *Scenario) Name() string {
	return fmt.Sprintf("%s#%d", s.SourceFile, s.Index)
}
