package ident

// TypeRef references a built-in type descriptor. Zero means "no type".
type TypeRef uint16

// BuiltinType describes one of the types registered before user text is read.
type BuiltinType struct {
	Name   string
	Kind   TypeKind
	Bits   uint8 // 0 for void, strings and target-dependent widths
	Signed bool
}

// TypeKind groups built-in types.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeInt
	TypeRegInt // register width
	TypePtrInt // pointer width
	TypeFloat
	TypeStrView
	TypeStrDynamic
	TypeStrFixed
)

// Builtins is the fixed table of built-in types. TypeRef(i+1) refers to Builtins[i].
var Builtins = []BuiltinType{
	{Name: "void", Kind: TypeVoid},
	{Name: "s1", Kind: TypeInt, Bits: 1, Signed: true},
	{Name: "s8", Kind: TypeInt, Bits: 8, Signed: true},
	{Name: "s16", Kind: TypeInt, Bits: 16, Signed: true},
	{Name: "s32", Kind: TypeInt, Bits: 32, Signed: true},
	{Name: "s64", Kind: TypeInt, Bits: 64, Signed: true},
	{Name: "u1", Kind: TypeInt, Bits: 1},
	{Name: "u8", Kind: TypeInt, Bits: 8},
	{Name: "u16", Kind: TypeInt, Bits: 16},
	{Name: "u32", Kind: TypeInt, Bits: 32},
	{Name: "u64", Kind: TypeInt, Bits: 64},
	{Name: "sreg", Kind: TypeRegInt, Signed: true},
	{Name: "ureg", Kind: TypeRegInt},
	{Name: "sptr", Kind: TypePtrInt, Signed: true},
	{Name: "uptr", Kind: TypePtrInt},
	{Name: "f32", Kind: TypeFloat, Bits: 32, Signed: true},
	{Name: "f64", Kind: TypeFloat, Bits: 64, Signed: true},
	{Name: "strview", Kind: TypeStrView},
	{Name: "string", Kind: TypeStrDynamic},
	{Name: "strfixed", Kind: TypeStrFixed},
}

// Builtin returns the descriptor for ref.
func Builtin(ref TypeRef) (BuiltinType, bool) {
	if ref == 0 || int(ref) > len(Builtins) {
		return BuiltinType{}, false
	}
	return Builtins[ref-1], true
}

// RegisterBuiltins interns every built-in type name and tags its slot.
func RegisterBuiltins(d *Dict) error {
	for i, bt := range Builtins {
		slot, err := d.Lookup(bt.Name)
		if err != nil {
			return err
		}
		d.SetType(slot, TypeRef(i+1)) // #nosec G115 -- table is tiny
	}
	return nil
}
