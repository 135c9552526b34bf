package fontsys

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"unicode"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textmesh/glyph"
	"github.com/gogpu/textmesh/internal/logging"
)

// Sentinel errors for fontsys package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fontsys: empty font data")

	// ErrInvalidSize is returned for a non-positive pixel height.
	ErrInvalidSize = errors.New("fontsys: pixel height must be positive")
)

type options struct {
	name        string
	glyphsMax   int
	replacement rune
	gutter      int
	hinting     font.Hinting
}

func defaultOptions() options {
	return options{
		glyphsMax:   256,
		replacement: '?',
		gutter:      1,
		hinting:     font.HintingFull,
	}
}

// Option configures Open.
type Option func(*options)

// WithName overrides the font name taken from the font's family name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithGlyphsMax sets the capacity of the font's glyph table.
func WithGlyphsMax(n int) Option {
	return func(o *options) { o.glyphsMax = n }
}

// WithReplacement sets the rune drawn for runes missing from the font.
func WithReplacement(r rune) Option {
	return func(o *options) { o.replacement = r }
}

// WithGutter sets the empty border kept around the scratch bitmap.
func WithGutter(px int) Option {
	return func(o *options) { o.gutter = px }
}

// WithHinting sets the hinting mode. Default: font.HintingFull.
func WithHinting(h font.Hinting) Option {
	return func(o *options) { o.hinting = h }
}

// Open parses TrueType or OpenType data and returns a font rendering at
// pixelHeight pixels per em.
func Open(data []byte, pixelHeight float64, opts ...Option) (*glyph.Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if pixelHeight <= 0 {
		return nil, ErrInvalidSize
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontsys: failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    pixelHeight,
		DPI:     72,
		Hinting: o.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("fontsys: failed to create face: %w", err)
	}

	var buf sfnt.Buffer
	bounds, err := parsed.Bounds(&buf, fixed.Int26_6(pixelHeight*64), o.hinting)
	if err != nil {
		return nil, fmt.Errorf("fontsys: failed to read font bounds: %w", err)
	}

	// Bounds are relative to the pen origin with y growing downwards, so
	// Min.Y is negative for the part above the baseline.
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()

	name := o.name
	if name == "" {
		name = familyName(parsed)
	}

	rz := &rasterizer{
		name:        name,
		face:        face,
		replacement: o.replacement,
		origin:      fixed.P(o.gutter-minX, o.gutter-minY),
	}

	// go-text parses the character map independently of x/image. A font it
	// cannot read falls back to the sfnt glyph index.
	if gt, err := gtfont.ParseTTF(bytes.NewReader(data)); err == nil {
		rz.cmap = gt.Font
	} else {
		rz.sfnt = parsed
		logging.Logger().Debug("fontsys: go-text cmap unavailable, using sfnt", "font", name, "error", err)
	}

	m := face.Metrics()
	ascent, descent, height := m.Ascent.Ceil(), m.Descent.Ceil(), m.Height.Ceil()

	return glyph.NewFont(glyph.FontConfig{
		Name:         name,
		BitmapWidth:  maxX - minX + 2*o.gutter,
		BitmapHeight: maxY - minY + 2*o.gutter,
		DefaultX:     o.gutter - minX,
		DefaultY:     o.gutter - minY,
		Metrics: glyph.Metrics{
			Ascent:          ascent,
			Descent:         descent,
			Height:          height,
			ExternalLeading: max(0, height-ascent-descent),
		},
		GlyphsMax: o.glyphsMax,
	}, rz)
}

// OpenFile loads a font from a file path.
func OpenFile(path string, pixelHeight float64, opts ...Option) (*glyph.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontsys: failed to read font file: %w", err)
	}
	return Open(data, pixelHeight, opts...)
}

// Mono returns the Go Mono font, used for console text.
func Mono(pixelHeight float64, opts ...Option) (*glyph.Font, error) {
	return Open(gomono.TTF, pixelHeight, opts...)
}

// Regular returns the Go Regular font, used for UI text.
func Regular(pixelHeight float64, opts ...Option) (*glyph.Font, error) {
	return Open(goregular.TTF, pixelHeight, opts...)
}

func familyName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	return "unnamed"
}

// rasterizer implements glyph.Rasterizer with a golang.org/x/image face.
type rasterizer struct {
	name        string
	face        font.Face
	replacement rune
	origin      fixed.Point26_6

	cmap *gtfont.Font
	sfnt *opentype.Font
	buf  sfnt.Buffer
}

// Rasterize implements glyph.Rasterizer.
// Control runes draw nothing. A tab advances like a space, other control
// runes do not advance.
func (rz *rasterizer) Rasterize(r rune, dst *image.Alpha) (int, error) {
	if unicode.IsControl(r) {
		if r != '\t' {
			return 0, nil
		}
		advance, ok := rz.face.GlyphAdvance(' ')
		if !ok {
			return 0, fmt.Errorf("fontsys: no advance for %U", ' ')
		}
		return advance.Round(), nil
	}
	if !rz.covers(r) && r != rz.replacement {
		logging.Logger().Warn("fontsys: rune missing from font, using replacement",
			"font", rz.name, "rune", fmt.Sprintf("%U", r), "replacement", string(rz.replacement))
		r = rz.replacement
	}

	advance, ok := rz.face.GlyphAdvance(r)
	if !ok {
		return 0, fmt.Errorf("fontsys: no advance for %U", r)
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: rz.face,
		Dot:  rz.origin,
	}
	d.DrawString(string(r))

	return advance.Round(), nil
}

// covers reports whether the font maps r to a glyph.
func (rz *rasterizer) covers(r rune) bool {
	if rz.cmap != nil {
		_, ok := rz.cmap.NominalGlyph(r)
		return ok
	}
	idx, err := rz.sfnt.GlyphIndex(&rz.buf, r)
	return err == nil && idx != 0
}
