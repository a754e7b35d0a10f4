package source

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader is the whole-file read primitive used to load units.
type Reader interface {
	ReadWholeFile(path string) ([]byte, error)
}

// Encoding names a supported on-disk script encoding.
type Encoding string

const (
	EncodingUTF8     Encoding = "utf-8"
	EncodingShiftJIS Encoding = "shift-jis"
	EncodingEUCJP    Encoding = "euc-jp"
	EncodingUTF16    Encoding = "utf-16"
)

// ParseEncoding accepts the common spellings of the supported encodings.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf8", "utf-8":
		return EncodingUTF8, nil
	case "sjis", "shift-jis", "shift_jis", "cp932":
		return EncodingShiftJIS, nil
	case "euc-jp", "eucjp":
		return EncodingEUCJP, nil
	case "utf16", "utf-16":
		return EncodingUTF16, nil
	default:
		return "", fmt.Errorf("unknown source encoding %q (expected utf-8|shift-jis|euc-jp|utf-16)", s)
	}
}

func (e Encoding) decoder() *encoding.Decoder {
	switch e {
	case EncodingShiftJIS:
		return japanese.ShiftJIS.NewDecoder()
	case EncodingEUCJP:
		return japanese.EUCJP.NewDecoder()
	case EncodingUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	default:
		return nil
	}
}

// OSReader reads files from disk, refusing anything above MaxUnitSize
// before the read happens.
type OSReader struct{}

// ReadWholeFile implements Reader.
func (OSReader) ReadWholeFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxUnitSize {
		return nil, &SizeError{Path: path, Size: info.Size()}
	}
	// #nosec G304 -- path is provided by the caller
	return os.ReadFile(path)
}

// Normalize converts raw file bytes into the canonical unit buffer:
// decoded to UTF-8, BOM stripped and CRLF folded to LF.
func Normalize(raw []byte, enc Encoding) ([]byte, UnitFlags, error) {
	var flags UnitFlags
	content := raw
	if dec := enc.decoder(); dec != nil {
		out, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", enc, err)
		}
		content = out
		flags |= UnitTranscoded
	}
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= UnitHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= UnitNormalizedCRLF
	}
	return content, flags, nil
}
