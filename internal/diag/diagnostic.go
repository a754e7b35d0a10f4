package diag

import (
	"novel/internal/source"
)

type Diagnostic struct {
	Code     Code
	Severity Severity // effective severity after policy
	Category Category
	Message  string
	Template string
	Range    source.Range
	Args     []Arg
}
