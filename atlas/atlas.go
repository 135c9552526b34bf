package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/textmesh/internal/logging"
)

// BytesPerPixel is the size of one atlas texel (RGBA8).
const BytesPerPixel = 4

// Config holds atlas configuration.
type Config struct {
	// Width and Height are the atlas texture size in pixels.
	// Default: 512x512
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Padding is the empty gutter kept between packed glyphs. Zero is fine
	// for nearest sampling; linear sampling needs at least 1.
	// Default: 0
	Padding int `toml:"padding"`
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:  512,
		Height: 512,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 1 {
		return &ConfigError{Field: "Width", Reason: "must be at least 1"}
	}
	if c.Width > 8192 {
		return &ConfigError{Field: "Width", Reason: "must be at most 8192"}
	}
	if c.Height < 1 {
		return &ConfigError{Field: "Height", Reason: "must be at least 1"}
	}
	if c.Height > 8192 {
		return &ConfigError{Field: "Height", Reason: "must be at most 8192"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	return nil
}

// Atlas is the CPU-side mirror of the glyph texture.
//
// Pixels are premultiplied RGBA8 rows of Width*4 bytes. A single Atlas is
// shared by every font that renders into it; it is passed explicitly to the
// code that fills it. Atlas is not safe for concurrent use.
type Atlas struct {
	pix    []byte
	width  int
	height int

	packer *ShelfPacker
	dirty  bool

	uploads int
}

// New creates an empty atlas.
func New(config Config) (*Atlas, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Atlas{
		pix:    make([]byte, config.Width*config.Height*BytesPerPixel),
		width:  config.Width,
		height: config.Height,
		packer: NewShelfPacker(config.Width, config.Height, config.Padding),
	}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(config Config) *Atlas {
	a, err := New(config)
	if err != nil {
		panic(err)
	}
	return a
}

// Width returns the atlas width in pixels.
func (a *Atlas) Width() int { return a.width }

// Height returns the atlas height in pixels.
func (a *Atlas) Height() int { return a.height }

// Stride returns the number of bytes per pixel row.
func (a *Atlas) Stride() int { return a.width * BytesPerPixel }

// Pix returns the pixel buffer. The slice aliases the atlas; callers
// must not modify it.
func (a *Atlas) Pix() []byte { return a.pix }

// Image returns an *image.RGBA view sharing the atlas pixels.
func (a *Atlas) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    a.pix,
		Stride: a.Stride(),
		Rect:   image.Rect(0, 0, a.width, a.height),
	}
}

// Packer returns the shelf packer for inspection.
func (a *Atlas) Packer() *ShelfPacker { return a.packer }

// IsDirty reports whether pixels changed since the last flush.
func (a *Atlas) IsDirty() bool { return a.dirty }

// MarkClean clears the dirty flag without uploading.
func (a *Atlas) MarkClean() { a.dirty = false }

// Uploads returns the number of successful flushes.
func (a *Atlas) Uploads() int { return a.uploads }

// Allocate reserves a w x h region and returns it in atlas pixel coordinates.
func (a *Atlas) Allocate(w, h int) (image.Rectangle, error) {
	x, y, err := a.packer.Allocate(w, h)
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(x, y, x+w, y+h), nil
}

// CopyCoverage copies the sr sub-rectangle of a single-channel coverage
// mask into the atlas with its top-left corner at dp. Every non-zero
// coverage value c becomes the premultiplied texel (c, c, c, c); zero texels
// are skipped. The atlas is marked dirty.
func (a *Atlas) CopyCoverage(dp image.Point, src *image.Alpha, sr image.Rectangle) {
	sr = sr.Intersect(src.Rect)
	dr := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}
	if !dr.In(image.Rect(0, 0, a.width, a.height)) {
		panic(fmt.Sprintf("atlas: copy destination %v outside %dx%d", dr, a.width, a.height))
	}

	stride := a.Stride()
	w := sr.Dx()
	for y := 0; y < sr.Dy(); y++ {
		srow := src.Pix[src.PixOffset(sr.Min.X, sr.Min.Y+y):]
		drow := a.pix[(dp.Y+y)*stride+dp.X*BytesPerPixel:]
		for x := 0; x < w; x++ {
			c := srow[x]
			if c == 0 {
				continue
			}
			o := x * BytesPerPixel
			drow[o], drow[o+1], drow[o+2], drow[o+3] = c, c, c, c
		}
	}
	a.dirty = true
}

// UploadFunc receives the full atlas pixel buffer for a texture upload.
type UploadFunc func(pix []byte, width, height int) error

// Flush uploads the whole atlas through upload if it is dirty and clears the
// dirty flag on success. It reports whether an upload happened. On error the
// atlas stays dirty so the next flush retries.
func (a *Atlas) Flush(upload UploadFunc) (bool, error) {
	if !a.dirty {
		return false, nil
	}
	if err := upload(a.pix, a.width, a.height); err != nil {
		return false, fmt.Errorf("atlas: upload failed: %w", err)
	}
	a.dirty = false
	a.uploads++
	logging.Logger().Debug("atlas: flushed",
		"width", a.width, "height", a.height,
		"utilization", a.packer.Utilization())
	return true, nil
}
