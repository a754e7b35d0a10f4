package compile

import "errors"

var (
	// ErrNoActiveSource is returned by operations that need an active unit.
	ErrNoActiveSource = errors.New("no active source")
	// ErrTooManyUnits is returned when all unit indices are taken.
	ErrTooManyUnits = errors.New("too many loaded sources")
	// ErrIncludeDepth is returned by PushSource past the depth limit.
	ErrIncludeDepth = errors.New("include depth limit exceeded")
	// ErrRecursiveInclude is returned when a unit includes itself.
	ErrRecursiveInclude = errors.New("recursive include")
	// ErrUnitInUse is returned by FreeSource for active or queued units.
	ErrUnitInUse = errors.New("source is in use")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("compilation context is closed")
)
