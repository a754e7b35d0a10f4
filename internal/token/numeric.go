package token

// NumKind is the storage class of a Number token (low nibble of its flags).
type NumKind uint8

const (
	NumNone NumKind = iota
	NumS1
	NumS2
	NumS4
	NumS8
	NumU1
	NumU2
	NumU4
	NumU8
	NumF4
	NumF8
)

var numKindNames = [...]string{
	NumNone: "", NumS1: "S1", NumS2: "S2", NumS4: "S4", NumS8: "S8",
	NumU1: "U1", NumU2: "U2", NumU4: "U4", NumU8: "U8", NumF4: "F4", NumF8: "F8",
}

func (k NumKind) String() string {
	if int(k) < len(numKindNames) {
		return numKindNames[k]
	}
	return "Num?"
}

// IsFloat reports whether k is a floating point kind.
func (k NumKind) IsFloat() bool { return k == NumF4 || k == NumF8 }

// IsUnsigned reports whether k is an unsigned integer kind.
func (k NumKind) IsUnsigned() bool { return k >= NumU1 && k <= NumU8 }

// Bytes returns the storage width in bytes.
func (k NumKind) Bytes() int {
	switch k {
	case NumS1, NumU1:
		return 1
	case NumS2, NumU2:
		return 2
	case NumS4, NumU4, NumF4:
		return 4
	case NumS8, NumU8, NumF8:
		return 8
	default:
		return 0
	}
}

// IntKind returns the integer kind of the given byte width and signedness.
func IntKind(bytes int, unsigned bool) NumKind {
	var k NumKind
	switch {
	case bytes <= 1:
		k = NumS1
	case bytes <= 2:
		k = NumS2
	case bytes <= 4:
		k = NumS4
	default:
		k = NumS8
	}
	if unsigned {
		k += NumU1 - NumS1
	}
	return k
}

// NumUnit is the measurement unit suffix of a Number (high nibble of its flags).
type NumUnit uint8

const (
	UnitNone NumUnit = iota
	UnitPx
	UnitPt
	UnitEm
	UnitMm
	UnitCm
	UnitMs
	UnitSec
	UnitDeg
)

var unitSuffix = [...]string{
	UnitNone: "", UnitPx: "px", UnitPt: "pt", UnitEm: "em", UnitMm: "mm",
	UnitCm: "cm", UnitMs: "ms", UnitSec: "s", UnitDeg: "deg",
}

func (u NumUnit) String() string {
	if int(u) < len(unitSuffix) {
		return unitSuffix[u]
	}
	return "unit?"
}

// LookupUnit maps a suffix to its unit.
func LookupUnit(s string) (NumUnit, bool) {
	for u := UnitPx; int(u) < len(unitSuffix); u++ {
		if unitSuffix[u] == s {
			return u, true
		}
	}
	return UnitNone, false
}

// NumberFlags packs a numeric kind and unit into token flags.
func NumberFlags(k NumKind, u NumUnit) uint8 {
	return uint8(k)&0x0F | uint8(u)<<4
}
