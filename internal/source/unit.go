package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// Unit captures metadata and content for a single loaded script file.
// Content is immutable once the unit is created.
type Unit struct {
	ID      UnitID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   UnitFlags
}

// NewUnit builds a unit from already normalized bytes.
func NewUnit(id UnitID, path string, content []byte, flags UnitFlags) (*Unit, error) {
	if id >= MaxUnits {
		return nil, fmt.Errorf("unit index %d out of range [0,%d)", id, MaxUnits)
	}
	if len(content) > MaxUnitSize {
		return nil, &SizeError{Path: path, Size: int64(len(content))}
	}
	return &Unit{
		ID:      id,
		Path:    NormalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}, nil
}

// Len returns the buffer length as a uint32. Units never exceed MaxUnitSize.
func (u *Unit) Len() uint32 {
	n, err := safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("unit content length overflow: %w", err))
	}
	return n
}

// Position converts a byte offset into a line/column pair.
func (u *Unit) Position(off uint32) LineCol {
	return toLineCol(u.LineIdx, off)
}

// Slice returns the bytes covered by rng, clamped to the buffer.
func (u *Unit) Slice(rng Range) []byte {
	start, end := rng.Off, rng.End()
	n := u.Len()
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return u.Content[start:end]
}

// GetLine returns the text of the given 1-based line without its newline.
// An empty string is returned for lines outside the unit.
func (u *Unit) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(u.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent := u.Len()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = u.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = u.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(u.Content[start:end])
}

// FormatPath renders the unit path according to mode:
// "absolute", "relative", "basename" or "auto".
func (u *Unit) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(u.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return u.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		return RelativePath(u.Path, baseDir)
	case "basename":
		return filepath.Base(u.Path)
	case "auto":
		if len(u.Path) < 40 || !filepath.IsAbs(u.Path) {
			return u.Path
		}
		return filepath.Base(u.Path)
	default:
		return u.Path
	}
}

// RelativePath makes path relative to baseDir. Paths that would escape
// baseDir are returned in absolute form.
func RelativePath(path, baseDir string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return NormalizePath(path)
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return NormalizePath(abs)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NormalizePath(abs)
	}
	return NormalizePath(rel)
}
