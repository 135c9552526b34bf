package textmesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/fontsys"
	"github.com/gogpu/textmesh/glyph"
	"github.com/gogpu/textmesh/gpu"
	"github.com/gogpu/textmesh/mesh"
)

// ErrNilBackend is returned by New when no backend is given.
var ErrNilBackend = errors.New("textmesh: backend is nil")

// Backend receives atlas uploads and draw batches.
//
// gpu.HALAtlasTexture and gpu.AtlasTexture provide UploadAtlas
// implementations; Draw is expected to bind the pipeline of the given kind
// and draw count vertices from the encoded vertex data (mesh.VertexStride
// bytes each, layout mesh.VertexLayout).
type Backend interface {
	UploadAtlas(pix []byte, width, height int) error
	Draw(kind gpu.PipelineKind, vertices []byte, count int) error
}

// Renderer turns text and rectangles into draw calls.
//
// It owns the atlas, the glyph cache, the frame vertex buffer, and the fonts
// named in its Config. Every draw rebuilds the vertex buffer, so one batch
// is in flight at a time. A Renderer is not safe for concurrent use.
type Renderer struct {
	atlas   *atlas.Atlas
	cache   *glyph.Cache
	builder *mesh.Builder
	backend Backend

	fonts map[string]*glyph.Font
	names []string

	encoded []byte
}

// New creates a renderer from cfg, loading and warming its fonts.
func New(cfg Config, backend Backend) (*Renderer, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := atlas.New(cfg.Atlas)
	if err != nil {
		return nil, err
	}
	cache := glyph.NewCache(a)

	var opts []mesh.BuilderOption
	if cfg.Normalize {
		opts = append(opts, mesh.WithNormalization())
	}

	r := &Renderer{
		atlas:   a,
		cache:   cache,
		builder: mesh.NewBuilder(cache, mesh.NewBuffer(cfg.Vertices), opts...),
		backend: backend,
		fonts:   make(map[string]*glyph.Font, len(cfg.Fonts)),
	}

	var ascii []*glyph.Font
	for _, fc := range cfg.Fonts {
		f, err := openFont(fc)
		if err != nil {
			return nil, fmt.Errorf("textmesh: load font %q: %w", fc.Name, err)
		}
		if err := r.AddFont(fc.Name, f); err != nil {
			return nil, err
		}
		if fc.WarmASCII {
			ascii = append(ascii, f)
		}
		Logger().Info("textmesh: font loaded", "name", fc.Name, "face", fc.Face, "size", fc.Size)
	}

	// Interleave fonts per rune so glyphs of the same character sit close
	// together in the atlas.
	for c := ' '; c <= '~'; c++ {
		for _, f := range ascii {
			if _, err := cache.Glyph(f, c); err != nil {
				return nil, fmt.Errorf("textmesh: warm font %q: %w", f.Name(), err)
			}
		}
	}
	for _, fc := range cfg.Fonts {
		if fc.Warm == "" {
			continue
		}
		if err := cache.Warm(r.fonts[fc.Name], fc.Warm); err != nil {
			return nil, fmt.Errorf("textmesh: warm font %q: %w", fc.Name, err)
		}
	}

	return r, nil
}

func openFont(fc FontConfig) (*glyph.Font, error) {
	opts := []fontsys.Option{fontsys.WithName(fc.Name)}
	if fc.GlyphsMax > 0 {
		opts = append(opts, fontsys.WithGlyphsMax(fc.GlyphsMax))
	}
	switch fc.Face {
	case FaceMono:
		return fontsys.Mono(fc.Size, opts...)
	case FaceRegular:
		return fontsys.Regular(fc.Size, opts...)
	default:
		return fontsys.OpenFile(fc.Face, fc.Size, opts...)
	}
}

// AddFont registers f under name.
func (r *Renderer) AddFont(name string, f *glyph.Font) error {
	if _, ok := r.fonts[name]; ok {
		return fmt.Errorf("textmesh: duplicate font %q", name)
	}
	r.fonts[name] = f
	r.names = append(r.names, name)
	return nil
}

// Font returns the font registered under name.
func (r *Renderer) Font(name string) (*glyph.Font, bool) {
	f, ok := r.fonts[name]
	return f, ok
}

// FontNames returns the registered font names in load order.
func (r *Renderer) FontNames() []string {
	return append([]string(nil), r.names...)
}

// Atlas returns the glyph atlas.
func (r *Renderer) Atlas() *atlas.Atlas { return r.atlas }

// Cache returns the glyph cache.
func (r *Renderer) Cache() *glyph.Cache { return r.cache }

// Builder returns the mesh builder.
func (r *Renderer) Builder() *mesh.Builder { return r.builder }

// DrawText draws text with its baseline at y, starting at x.
//
// Text without ink produces no backend calls. Otherwise the atlas is
// uploaded if any glyph was added since the last upload, then the quads are
// drawn with the textured pipeline.
func (r *Renderer) DrawText(f *glyph.Font, text string, x, y, z float32, c mesh.Color) (mesh.Run, error) {
	run, err := r.builder.BuildText(f, text, x, y, z, c)
	if err != nil {
		return run, err
	}
	if run.Count == 0 {
		return run, nil
	}

	if _, err := r.atlas.Flush(r.backend.UploadAtlas); err != nil {
		return run, err
	}
	return run, r.draw(gpu.PipelineTextured, run.Count)
}

// DrawRect draws a solid rectangle with the basic pipeline.
func (r *Renderer) DrawRect(rect mesh.Rect, z float32, c mesh.Color) error {
	run, err := r.builder.BuildRect(rect, z, c)
	if err != nil {
		return err
	}
	return r.draw(gpu.PipelineBasic, run.Count)
}

func (r *Renderer) draw(kind gpu.PipelineKind, count int) error {
	r.encoded = r.builder.Buffer().AppendBytes(r.encoded[:0])
	if err := r.backend.Draw(kind, r.encoded, count); err != nil {
		return fmt.Errorf("textmesh: draw %s: %w", kind, err)
	}
	return nil
}

// Projection returns the column-major orthographic matrix mapping pixel
// coordinates, origin top-left and y down, to clip space.
func Projection(width, height int) [16]float32 {
	sx := 2 / float32(width)
	sy := 2 / float32(height)
	return [16]float32{
		sx, 0, 0, 0,
		0, -sy, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}
