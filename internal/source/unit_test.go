package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewUnitLineIdx(t *testing.T) {
	u, err := NewUnit(3, "a.nvl", []byte("a\nb\n"), UnitVirtual)
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}
	expected := []uint32{1, 3}
	if len(u.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(u.LineIdx))
	}
	for i, val := range expected {
		if u.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, u.LineIdx[i])
		}
	}
	if u.ID != 3 {
		t.Errorf("Expected ID 3, got %d", u.ID)
	}
	if u.Flags&UnitVirtual == 0 {
		t.Error("Expected UnitVirtual flag to be set")
	}
}

func TestNewUnitRejectsBadIndex(t *testing.T) {
	if _, err := NewUnit(MaxUnits, "x", nil, 0); err == nil {
		t.Fatal("expected error for index == MaxUnits")
	}
}

func TestPosition(t *testing.T) {
	u, err := NewUnit(0, "p.nvl", []byte("ab\ncd\n\nef"), 0)
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам \n принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tt := range tests {
		if got := u.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	u, _ := NewUnit(0, "l.nvl", []byte("first\nsecond\n\nlast"), 0)
	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: "last", 5: ""}
	for line, want := range cases {
		if got := u.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestSliceClamps(t *testing.T) {
	u, _ := NewUnit(0, "s.nvl", []byte("hello"), 0)
	if got := string(u.Slice(MakeRange(0, 1, 3))); got != "el" {
		t.Errorf("Slice = %q, want %q", got, "el")
	}
	if got := string(u.Slice(MakeRange(0, 3, 99))); got != "lo" {
		t.Errorf("Slice past end = %q, want %q", got, "lo")
	}
}

func TestRangeCover(t *testing.T) {
	a := MakeRange(1, 4, 6)
	b := MakeRange(1, 2, 5)
	c := a.Cover(b)
	if c.Off != 2 || c.End() != 6 {
		t.Errorf("Cover = %v, want 1:2+4", c)
	}
	other := MakeRange(2, 0, 10)
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across units changed range: %v", got)
	}
	if NoRange.Valid() {
		t.Error("NoRange must not be valid")
	}
}

func TestNormalize(t *testing.T) {
	raw := []byte("\xEF\xBB\xBFa\r\nb\rc")
	got, flags, err := Normalize(raw, EncodingUTF8)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(got) != "a\nb\rc" {
		t.Errorf("Normalize = %q", got)
	}
	if flags&UnitHadBOM == 0 || flags&UnitNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF", flags)
	}
	if flags&UnitTranscoded != 0 {
		t.Error("utf-8 input must not be marked transcoded")
	}
}

func TestNormalizeShiftJIS(t *testing.T) {
	// 「あ」 in Shift-JIS.
	raw := []byte{0x81, 0x75, 0x82, 0xA0, 0x81, 0x76}
	got, flags, err := Normalize(raw, EncodingShiftJIS)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(got) != "「あ」" {
		t.Errorf("decoded = %q", got)
	}
	if flags&UnitTranscoded == 0 {
		t.Error("expected UnitTranscoded")
	}
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"": EncodingUTF8, "SJIS": EncodingShiftJIS, "euc-jp": EncodingEUCJP, "utf16": EncodingUTF16} {
		got, err := ParseEncoding(in)
		if err != nil || got != want {
			t.Errorf("ParseEncoding(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEncoding("latin1"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestOSReaderRejectsLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.nvl")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(MaxUnitSize + 1); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	_, err = OSReader{}.ReadWholeFile(path)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	var sizeErr *SizeError
	if !errors.As(err, &sizeErr) || sizeErr.Size != MaxUnitSize+1 {
		t.Fatalf("expected SizeError with size, got %v", err)
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	inside := filepath.Join(base, "sub", "file.nvl")
	outside := filepath.Join(tmp, "other", "file.nvl")

	if got := RelativePath(inside, base); got != "sub/file.nvl" {
		t.Errorf("inside: got %q", got)
	}
	if got := RelativePath(outside, base); got != NormalizePath(outside) {
		t.Errorf("outside: got %q", got)
	}
}
