package source

import (
	"errors"
	"fmt"
)

type (
	// UnitID is the stable small index of a loaded source unit.
	UnitID uint16
	// UnitFlags encodes metadata about a source unit.
	UnitFlags uint8
)

const (
	// MaxUnits is the number of units that may be loaded at the same time.
	MaxUnits = 1 << 12
	// MaxUnitSize is the largest buffer a unit may hold. The EOF offset
	// (== len(buffer)) must still fit the 24-bit token offset.
	MaxUnitSize = 1<<24 - 1

	// NoUnit marks a location that does not belong to any unit.
	NoUnit UnitID = MaxUnits
)

const (
	// UnitVirtual indicates the unit was added from memory (test, stdin, etc.).
	UnitVirtual UnitFlags = 1 << iota
	UnitHadBOM
	UnitNormalizedCRLF
	// UnitTranscoded is set when the file was decoded from a legacy encoding.
	UnitTranscoded
)

// ErrTooLarge reports a source buffer above MaxUnitSize.
var ErrTooLarge = errors.New("source too large")

// SizeError carries the offending size of a rejected source.
type SizeError struct {
	Path string
	Size int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", e.Path, e.Size, MaxUnitSize)
}

func (e *SizeError) Unwrap() error { return ErrTooLarge }

// LineCol represents a human-readable position in a source unit.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Resolver gives access to loaded units by index.
type Resolver interface {
	Unit(id UnitID) *Unit
}
