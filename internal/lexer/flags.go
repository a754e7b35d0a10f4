package lexer

// Flags is the persistent state carried between tokens.
type Flags uint8

const (
	// AcceptLabel allows `*name` labels: after goto and at line start.
	AcceptLabel Flags = 1 << iota
	// AcceptDialogue allows ASCII message forms: after a speaker and at line start.
	AcceptDialogue
	// AwaitMenu is set by `menu` until its `{`.
	AwaitMenu
	// InMenu holds while inside the brace pair of a menu body.
	InMenu
	// WasBlank suppresses repeated Blank tokens inside one message.
	WasBlank
)

func (f Flags) Has(x Flags) bool { return f&x != 0 }

func (f Flags) String() string {
	names := []string{"AcceptLabel", "AcceptDialogue", "AwaitMenu", "InMenu", "WasBlank"}
	s := ""
	for i, n := range names {
		if f&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += n
		}
	}
	if s == "" {
		return "0"
	}
	return s
}
