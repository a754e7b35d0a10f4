package source

import "fmt"

// Loc is a weak reference to a byte offset inside a unit.
type Loc struct {
	Unit UnitID
	Off  uint32
}

// Range is a Loc plus a byte length.
type Range struct {
	Loc
	Len uint32
}

// NoRange is used for diagnostics that are not tied to any unit.
var NoRange = Range{Loc: Loc{Unit: NoUnit}}

// MakeRange builds a range from explicit offsets.
func MakeRange(unit UnitID, start, end uint32) Range {
	if end < start {
		end = start
	}
	return Range{Loc: Loc{Unit: unit, Off: start}, Len: end - start}
}

// At returns an empty range at loc.
func At(loc Loc) Range {
	return Range{Loc: loc}
}

// End returns the exclusive end offset.
func (r Range) End() uint32 {
	return r.Off + r.Len
}

// Empty reports whether the range covers no bytes.
func (r Range) Empty() bool {
	return r.Len == 0
}

// Valid reports whether the range refers to a unit.
func (r Range) Valid() bool {
	return r.Unit < NoUnit
}

// Cover extends r to include other when both refer to the same unit.
func (r Range) Cover(other Range) Range {
	if r.Unit != other.Unit {
		return r
	}
	start, end := r.Off, r.End()
	if other.Off < start {
		start = other.Off
	}
	if other.End() > end {
		end = other.End()
	}
	return MakeRange(r.Unit, start, end)
}

func (r Range) String() string {
	if !r.Valid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d+%d", r.Unit, r.Off, r.Len)
}
