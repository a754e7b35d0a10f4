package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"novel/internal/blob"
	"novel/internal/ident"
	"novel/internal/source"
	"novel/internal/token"
)

// TokenEnv gives token dumps access to the unit text and decoded payloads.
// Dict and Blobs may be nil; values are then printed raw.
type TokenEnv struct {
	Unit  *source.Unit
	Dict  *ident.Dict
	Blobs *blob.Store
}

// TokenOutput is the serialised form of one token.
type TokenOutput struct {
	Type      string `json:"type" msgpack:"type"`
	Lexan     string `json:"lexan,omitempty" msgpack:"lexan,omitempty"`
	Value     string `json:"value,omitempty" msgpack:"value,omitempty"`
	Offset    uint32 `json:"offset" msgpack:"offset"`
	Len       uint32 `json:"len" msgpack:"len"`
	Line      uint32 `json:"line" msgpack:"line"`
	Col       uint32 `json:"col" msgpack:"col"`
	Flags     uint8  `json:"flags,omitempty" msgpack:"flags,omitempty"`
	LineStart bool   `json:"line_start,omitempty" msgpack:"line_start,omitempty"`
}

// TokenValue renders the decoded payload of tok.
func TokenValue(tok token.Token, env TokenEnv) string {
	switch typ := tok.Type(); {
	case typ == token.Keyword:
		return tok.Keyword().String()
	case typ.IsIdentLike():
		if env.Dict != nil {
			return env.Dict.Text(tok.Ident())
		}
		return "#" + strconv.FormatUint(uint64(tok.Ident()), 10)
	case typ.IsLiteral():
		if env.Blobs != nil {
			if s, ok := env.Blobs.Get(tok.Blob()); ok {
				return strconv.Quote(s)
			}
		}
		return "blob#" + strconv.FormatUint(uint64(tok.Blob()), 10)
	case typ == token.Number:
		k := tok.NumKind()
		var s string
		switch {
		case k.IsFloat():
			s = strconv.FormatFloat(tok.Float(), 'g', -1, 64)
		case k.IsUnsigned():
			s = strconv.FormatUint(tok.Uint(), 10)
		default:
			s = strconv.FormatInt(tok.Int(), 10)
		}
		s += ":" + k.String()
		if u := tok.NumUnit(); u != token.UnitNone {
			s += ":" + u.String()
		}
		return s
	case typ == token.Punct:
		if tok.Compound() {
			return tok.Op().Spelling() + "="
		}
		return tok.Op().Spelling()
	}
	return ""
}

// BuildTokenOutput converts tokens into their serialised form.
func BuildTokenOutput(tokens []token.Token, env TokenEnv) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		o := TokenOutput{
			Type:      tok.Type().String(),
			Value:     TokenValue(tok, env),
			Offset:    tok.Offset(),
			Len:       tok.Len(),
			Flags:     tok.Flags(),
			LineStart: tok.LineStart(),
		}
		if env.Unit != nil {
			o.Lexan = string(env.Unit.Slice(tok.Range()))
			pos := env.Unit.Position(tok.Offset())
			o.Line, o.Col = pos.Line, pos.Col
		}
		out = append(out, o)
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, env TokenEnv) error {
	return PrettyTokenOutputs(w, BuildTokenOutput(tokens, env))
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, env TokenEnv) error {
	return JSONTokenOutputs(w, BuildTokenOutput(tokens, env))
}

// FormatTokensMsgpack writes the token list as a msgpack array.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token, env TokenEnv) error {
	return MsgpackTokenOutputs(w, BuildTokenOutput(tokens, env))
}

// PrettyTokenOutputs prints one aligned line per token. A '+' marks tokens
// that start a line.
func PrettyTokenOutputs(w io.Writer, outs []TokenOutput) error {
	for i, o := range outs {
		marker := ' '
		if o.LineStart {
			marker = '+'
		}
		line := fmt.Sprintf("%4d: %c%-10s %4d:%-3d", i+1, marker, o.Type, o.Line, o.Col)
		if o.Lexan != "" {
			line += " " + strconv.Quote(o.Lexan)
		}
		if o.Value != "" {
			line += " => " + o.Value
		}
		if o.Flags != 0 {
			line += fmt.Sprintf(" [%08b]", o.Flags)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// JSONTokenOutputs writes outs as an indented JSON array.
func JSONTokenOutputs(w io.Writer, outs []TokenOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outs)
}

// MsgpackTokenOutputs writes outs as a msgpack array.
func MsgpackTokenOutputs(w io.Writer, outs []TokenOutput) error {
	return msgpack.NewEncoder(w).Encode(outs)
}

// WriteTokenOutputs dispatches on format: pretty, json or msgpack.
func WriteTokenOutputs(w io.Writer, outs []TokenOutput, format string) error {
	switch format {
	case "", "pretty":
		return PrettyTokenOutputs(w, outs)
	case "json":
		return JSONTokenOutputs(w, outs)
	case "msgpack":
		return MsgpackTokenOutputs(w, outs)
	}
	return fmt.Errorf("unknown token format %q (expected pretty|json|msgpack)", format)
}

// DecodeTokensMsgpack reads a dump produced by FormatTokensMsgpack.
func DecodeTokensMsgpack(r io.Reader) ([]TokenOutput, error) {
	var out []TokenOutput
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode token dump: %w", err)
	}
	return out, nil
}
