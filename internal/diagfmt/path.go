package diagfmt

import "novel/internal/source"

func unitPath(u *source.Unit, mode PathMode, baseDir string) string {
	if u == nil {
		return "-"
	}
	return u.FormatPath(mode.String(), baseDir)
}
