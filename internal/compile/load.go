package compile

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"novel/internal/diag"
	"novel/internal/source"
)

// load reads, decodes and registers a unit. Every failure is diagnosed
// and returned.
func (c *Context) load(path string) (*source.Unit, error) {
	if c.closed {
		return nil, ErrClosed
	}
	raw, err := c.reader.ReadWholeFile(path)
	if err != nil {
		var sizeErr *source.SizeError
		if errors.As(err, &sizeErr) {
			c.tooLarge(path, sizeErr.Size)
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		c.diag.Diagnose(source.NoRange, diag.ResReadFailed, diag.Str(path), diag.Str(err.Error()))
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return c.loadBytes(path, raw, 0)
}

func (c *Context) loadBytes(path string, raw []byte, flags source.UnitFlags) (*source.Unit, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if len(raw) > source.MaxUnitSize {
		c.tooLarge(path, int64(len(raw)))
		return nil, fmt.Errorf("open %s: %w", path, &source.SizeError{Path: path, Size: int64(len(raw))})
	}
	content, normFlags, err := source.Normalize(raw, c.opts.Encoding)
	if err != nil {
		c.diag.Diagnose(source.NoRange, diag.ResDecodeFailed, diag.Str(path), diag.Str(string(c.opts.Encoding)))
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// перекодирование может раздуть буфер сверх потолка
	if len(content) > source.MaxUnitSize {
		c.tooLarge(path, int64(len(content)))
		return nil, fmt.Errorf("open %s: %w", path, &source.SizeError{Path: path, Size: int64(len(content))})
	}

	id, err := c.allocID()
	if err != nil {
		c.diag.Diagnose(source.NoRange, diag.ResTooManyUnits, diag.Int(source.MaxUnits))
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	u, err := source.NewUnit(id, path, content, flags|normFlags)
	if err != nil {
		c.release(id)
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	c.units[id] = u
	c.log.Debug("loaded source", "unit", id, "path", u.Path, "size", humanize.Bytes(uint64(len(content))))
	return u, nil
}

func (c *Context) tooLarge(path string, size int64) {
	c.diag.Diagnose(source.NoRange, diag.ResSourceTooLarge, diag.Str(path), diag.Int(size), diag.Int(source.MaxUnitSize))
}

// allocID hands out a free index, reusing released ones first.
func (c *Context) allocID() (source.UnitID, error) {
	if n := len(c.free); n > 0 {
		id := c.free[n-1]
		c.free = c.free[:n-1]
		return id, nil
	}
	if len(c.units) >= source.MaxUnits {
		return source.NoUnit, ErrTooManyUnits
	}
	c.units = append(c.units, nil)
	return source.UnitID(len(c.units) - 1), nil // #nosec G115 -- bounded by MaxUnits
}

func (c *Context) release(id source.UnitID) {
	c.units[id] = nil
	c.free = append(c.free, id)
}
