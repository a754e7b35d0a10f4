package token

// Flags of Punct tokens.
const (
	FlagCompound uint8 = 1 << 7
)

// Flags of name-like tokens.
const (
	// FlagBracketed marks $<x> and #<x> forms.
	FlagBracketed uint8 = 1 << 0
	// FlagBuiltin marks Type tokens that name a registered built-in type.
	FlagBuiltin uint8 = 1 << 1
)

// Flags of LBrace/RBrace.
const (
	FlagMenuOpen  uint8 = 1 << 0
	FlagMenuClose uint8 = 1 << 1
)

// Flags of Directive tokens.
const (
	FlagTestDirective uint8 = 1 << 0
)

// Style is the delimiter family of a message literal (1..4, 0 for none).
type Style uint8

// Flow is the flow attribute that may follow a dialogue literal.
type Flow uint8

const (
	FlowNone  Flow = iota
	FlowPause      // P: wait for input
	FlowBreak      // B: clear the page after the line
	FlowRun        // R: continue without waiting
)

func (f Flow) String() string {
	switch f {
	case FlowPause:
		return "P"
	case FlowBreak:
		return "B"
	case FlowRun:
		return "R"
	default:
		return ""
	}
}

// FlowFromByte maps an attribute character to its Flow.
func FlowFromByte(b byte) (Flow, bool) {
	switch b {
	case 'P':
		return FlowPause, true
	case 'B':
		return FlowBreak, true
	case 'R':
		return FlowRun, true
	default:
		return FlowNone, false
	}
}

// Literal flag layout: bits 0-1 message style minus one, bit 2 CJK
// delimiter, bits 3-4 flow, bit 5 continued, bit 6 continuation.
const (
	literalStyleMask uint8 = 0x03
	FlagCJK          uint8 = 1 << 2
	literalFlowShift       = 3
	literalFlowMask  uint8 = 0x03 << literalFlowShift
	FlagContinued    uint8 = 1 << 5
	FlagContinuation uint8 = 1 << 6
)

// Message delimiter styles.
const (
	StyleNone    Style = iota
	StyleSay           // >"..." 「...」
	StyleThink         // <"..." 『...』
	StyleWhisper       // ~"..." （...）
	StyleShout         // !"..." ｛...｝
)

func (s Style) String() string {
	switch s {
	case StyleSay:
		return "say"
	case StyleThink:
		return "think"
	case StyleWhisper:
		return "whisper"
	case StyleShout:
		return "shout"
	default:
		return ""
	}
}

// LiteralFlags packs literal attributes. The style is only meaningful for
// Message tokens.
func LiteralFlags(style Style, cjk bool, flow Flow) uint8 {
	var f uint8
	if style > StyleNone {
		f = uint8(style-1) & literalStyleMask
	}
	if cjk {
		f |= FlagCJK
	}
	f |= uint8(flow) << literalFlowShift & literalFlowMask
	return f
}
