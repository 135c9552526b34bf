package glyph

import (
	"errors"
	"fmt"
)

// Sentinel errors for glyph package.
var (
	// ErrCapacity is returned when a font's glyph table is full.
	// The table is sized at font creation to the working character set;
	// hitting the limit means the sizing was wrong.
	ErrCapacity = errors.New("glyph: font glyph capacity exceeded")

	// ErrNilRasterizer is returned when a font is created without a rasterizer.
	ErrNilRasterizer = errors.New("glyph: rasterizer is nil")

	// ErrAtlasMismatch is returned when a font whose glyphs live in one
	// atlas is used with a cache filling another.
	ErrAtlasMismatch = errors.New("glyph: font is bound to a different atlas")
)

// CapacityError reports the rune that did not fit into a font's glyph table.
type CapacityError struct {
	Font string
	Rune rune
	Max  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("glyph: font %q is full (%d glyphs), cannot add %U", e.Font, e.Max, e.Rune)
}

// Is reports whether target is ErrCapacity.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// FontConfigError represents a font configuration validation error.
type FontConfigError struct {
	Field  string
	Reason string
}

func (e *FontConfigError) Error() string {
	return "glyph: invalid font config." + e.Field + ": " + e.Reason
}
