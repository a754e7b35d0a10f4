package ident

import (
	"errors"
	"fmt"
)

// Slot is the stable handle of an interned identifier. Slot 0 is reserved.
type Slot uint32

// NoSlot is never returned by Lookup.
const NoSlot Slot = 0

// DefaultMaxSlots bounds the dictionary when no explicit limit is given.
const DefaultMaxSlots = 1 << 24

// ErrFull is returned when the dictionary cannot take more identifiers.
var ErrFull = errors.New("identifier dictionary full")

// Kind is the tag of a dictionary entry.
type Kind uint8

const (
	Unresolved Kind = iota
	KindKeyword
	KindType
)

func (k Kind) String() string {
	switch k {
	case Unresolved:
		return "unresolved"
	case KindKeyword:
		return "keyword"
	case KindType:
		return "type"
	default:
		return "unknown"
	}
}

// Entry is the tagged payload attached to a slot.
type Entry struct {
	Text    string
	Kind    Kind
	Keyword Keyword // valid when Kind == KindKeyword
	Type    TypeRef // valid when Kind == KindType
}

// Dict maps identifier text to slots. Lookup is by exact byte sequence.
type Dict struct {
	entries []Entry         // slot -> entry (entries[0] is the reserved slot)
	index   map[string]Slot // text -> slot
	max     int
}

// NewDict creates a dictionary that holds at most maxSlots identifiers
// (DefaultMaxSlots when maxSlots <= 0).
func NewDict(maxSlots int) *Dict {
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}
	return &Dict{
		entries: []Entry{{}},
		index:   make(map[string]Slot),
		max:     maxSlots,
	}
}

// Lookup interns text and returns its slot. Repeated lookups of the same
// text return the same slot.
func (d *Dict) Lookup(text string) (Slot, error) {
	if slot, ok := d.index[text]; ok {
		return slot, nil
	}
	if len(d.entries)-1 >= d.max {
		return NoSlot, fmt.Errorf("intern %q: %w", text, ErrFull)
	}
	// собственная копия, чтобы не держать буфер исходника
	cpy := string([]byte(text))
	slot := Slot(len(d.entries)) // #nosec G115 -- bounded by d.max
	d.entries = append(d.entries, Entry{Text: cpy})
	d.index[cpy] = slot
	return slot, nil
}

// LookupBytes is Lookup for a byte slice.
func (d *Dict) LookupBytes(b []byte) (Slot, error) {
	if slot, ok := d.index[string(b)]; ok {
		return slot, nil
	}
	return d.Lookup(string(b))
}

// Find returns the slot for text without interning it.
func (d *Dict) Find(text string) (Slot, bool) {
	slot, ok := d.index[text]
	return slot, ok
}

// Entry returns the payload of slot.
func (d *Dict) Entry(slot Slot) (Entry, bool) {
	if !d.Has(slot) {
		return Entry{}, false
	}
	return d.entries[slot], true
}

// Text returns the identifier text of slot, or "" for an invalid slot.
func (d *Dict) Text(slot Slot) string {
	if !d.Has(slot) {
		return ""
	}
	return d.entries[slot].Text
}

// SetKeyword tags slot as keyword k.
func (d *Dict) SetKeyword(slot Slot, k Keyword) {
	if !d.Has(slot) {
		return
	}
	e := &d.entries[slot]
	e.Kind, e.Keyword, e.Type = KindKeyword, k, 0
}

// SetType tags slot as built-in type ref.
func (d *Dict) SetType(slot Slot, ref TypeRef) {
	if !d.Has(slot) {
		return
	}
	e := &d.entries[slot]
	e.Kind, e.Keyword, e.Type = KindType, NoKeyword, ref
}

// Resolve returns the entry for slot, tagging it as a keyword on the first
// lookup of a keyword spelling.
func (d *Dict) Resolve(slot Slot) Entry {
	if !d.Has(slot) {
		return Entry{}
	}
	e := &d.entries[slot]
	if e.Kind == Unresolved {
		if k, ok := LookupKeyword(e.Text); ok {
			e.Kind, e.Keyword = KindKeyword, k
		}
	}
	return *e
}

// Has reports whether slot is a valid, non-reserved slot.
func (d *Dict) Has(slot Slot) bool {
	return slot != NoSlot && int(slot) < len(d.entries)
}

// Len returns the number of interned identifiers.
func (d *Dict) Len() int {
	return len(d.entries) - 1
}
