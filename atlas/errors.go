package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for atlas package.
var (
	// ErrFull is returned when a rectangle does not fit below the last shelf.
	// The atlas never grows or evicts, so this is a sizing error.
	ErrFull = errors.New("atlas: out of space")

	// ErrInvalidSize is returned for rectangles with a non-positive side or
	// a side larger than the atlas itself.
	ErrInvalidSize = errors.New("atlas: invalid rectangle size")
)

// FullError reports the request that overflowed the atlas.
type FullError struct {
	Width, Height int // requested rectangle
	Y             int // top of the shelf it would have landed on
	AtlasHeight   int
}

func (e *FullError) Error() string {
	return fmt.Sprintf("atlas: out of space placing %dx%d at y=%d (height %d)",
		e.Width, e.Height, e.Y, e.AtlasHeight)
}

// Is reports whether target is ErrFull.
func (e *FullError) Is(target error) bool { return target == ErrFull }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
