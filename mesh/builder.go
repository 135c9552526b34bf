package mesh

import (
	"github.com/chewxy/math32"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/textmesh/glyph"
)

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X0, Y0, X1, Y1 float32
}

// Run describes the output of one mesh-building call.
type Run struct {
	// Count is the number of vertices in the buffer.
	Count int
	// PenX and PenY are the pen position after the last glyph.
	PenX, PenY float32
}

// Builder converts text and rectangles into triangle lists.
//
// Every Build call resets the Builder's buffer first: the buffer holds one
// draw batch at a time. A Builder is not safe for concurrent use.
type Builder struct {
	cache     *glyph.Cache
	buf       *Buffer
	normalize bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithNormalization converts text to Unicode Normalization Form C before
// glyph lookup, so a base letter followed by a combining mark resolves to
// the precomposed rune when one exists.
func WithNormalization() BuilderOption {
	return func(b *Builder) { b.normalize = true }
}

// NewBuilder creates a Builder resolving glyphs through cache and writing
// vertices into buf.
func NewBuilder(cache *glyph.Cache, buf *Buffer, opts ...BuilderOption) *Builder {
	b := &Builder{cache: cache, buf: buf}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Buffer returns the vertex buffer.
func (b *Builder) Buffer() *Buffer { return b.buf }

// Cache returns the glyph cache.
func (b *Builder) Cache() *glyph.Cache { return b.cache }

// BuildText lays out text on a single line with its baseline at y, starting
// at x, and fills the buffer with one textured quad per inked glyph.
//
// The start position is snapped to whole pixels so glyph texels map 1:1 to
// screen pixels. Glyphs are rasterized and packed on first use, which may
// dirty the atlas; flushing it before the draw is the caller's job.
//
// On error the buffer keeps the quads emitted so far and Run reports them.
func (b *Builder) BuildText(f *glyph.Font, text string, x, y, z float32, c Color) (Run, error) {
	b.buf.Reset()

	if b.normalize {
		text = norm.NFC.String(text)
	}

	x = snap(x)
	y = snap(y)

	a := b.cache.Atlas()
	aw := float32(a.Width())
	ah := float32(a.Height())

	for _, r := range text {
		g, err := b.cache.Glyph(f, r)
		if err != nil {
			return Run{Count: b.buf.Len(), PenX: x, PenY: y}, err
		}

		if !g.Empty() {
			x0 := x + float32(g.DX)
			y0 := y + float32(g.DY)
			x1 := x0 + float32(g.Width())
			y1 := y0 + float32(g.Height())

			u0 := float32(g.X0) / aw
			v0 := float32(g.Y0) / ah
			u1 := float32(g.X1) / aw
			v1 := float32(g.Y1) / ah

			if err := b.buf.quad(x0, y0, x1, y1, z, u0, v0, u1, v1, c); err != nil {
				return Run{Count: b.buf.Len(), PenX: x, PenY: y}, err
			}
		}

		x += float32(g.Advance)
	}

	return Run{Count: b.buf.Len(), PenX: x, PenY: y}, nil
}

// BuildRect fills the buffer with one untextured quad. UVs are zero; the
// quad is meant for the basic pipeline.
func (b *Builder) BuildRect(r Rect, z float32, c Color) (Run, error) {
	b.buf.Reset()
	if err := b.buf.quad(r.X0, r.Y0, r.X1, r.Y1, z, 0, 0, 0, 0, c); err != nil {
		return Run{}, err
	}
	return Run{Count: b.buf.Len(), PenX: r.X1, PenY: r.Y1}, nil
}

// Measure returns the advance width of text in pixels, caching any glyphs
// it has not seen. It does not touch the vertex buffer.
func (b *Builder) Measure(f *glyph.Font, text string) (int, error) {
	if b.normalize {
		text = norm.NFC.String(text)
	}
	w := 0
	for _, r := range text {
		g, err := b.cache.Glyph(f, r)
		if err != nil {
			return w, err
		}
		w += g.Advance
	}
	return w, nil
}

// snap rounds v half-up to a whole pixel.
func snap(v float32) float32 {
	return math32.Floor(v + 0.5)
}
