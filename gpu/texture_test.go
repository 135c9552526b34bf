package gpu

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/textmesh/atlas"
)

// mockTexture implements gpucontext.TextureUpdater for testing.
type mockTexture struct {
	width, height int
	data          []byte
	updated       int
	failNext      bool
}

func (m *mockTexture) UpdateData(data []byte) error {
	if m.failNext {
		m.failNext = false
		return errors.New("mock update failed")
	}
	m.data = append(m.data[:0], data...)
	m.updated++
	return nil
}

// mockCreator records created textures.
type mockCreator struct {
	textures []*mockTexture
	failNext bool
}

func (m *mockCreator) create(w, h int, pix []byte) (any, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockTexture{width: w, height: h, data: append([]byte(nil), pix...)}
	m.textures = append(m.textures, tex)
	return tex, nil
}

func TestAtlasTextureDescriptor(t *testing.T) {
	d := AtlasTextureDescriptor(512, 256)
	if d.Size.Width != 512 || d.Size.Height != 256 || d.Size.DepthOrArrayLayers != 1 {
		t.Errorf("Size = %+v, want 512x256x1", d.Size)
	}
	if d.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", d.Format)
	}
	if d.Dimension != gputypes.TextureDimension2D {
		t.Errorf("Dimension = %v, want 2D", d.Dimension)
	}
	want := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if d.Usage != want {
		t.Errorf("Usage = %v, want %v", d.Usage, want)
	}
}

func TestAtlasTexture_CreateThenUpdate(t *testing.T) {
	mc := &mockCreator{}
	tex := newAtlasTexture(mc.create)

	if tex.Texture() != nil {
		t.Fatal("texture should not exist before the first upload")
	}
	if err := tex.Upload([]byte{1, 2, 3, 4}, 1, 1); err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	if len(mc.textures) != 1 {
		t.Fatalf("created %d textures, want 1", len(mc.textures))
	}
	if err := tex.Upload([]byte{5, 6, 7, 8}, 1, 1); err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if len(mc.textures) != 1 {
		t.Errorf("created %d textures, want 1 (update in place)", len(mc.textures))
	}
	m := mc.textures[0]
	if m.updated != 1 || !bytes.Equal(m.data, []byte{5, 6, 7, 8}) {
		t.Errorf("texture = %+v, want one update with new data", m)
	}
	if c, u := tex.Stats(); c != 1 || u != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", c, u)
	}
}

func TestAtlasTexture_Errors(t *testing.T) {
	mc := &mockCreator{failNext: true}
	tex := newAtlasTexture(mc.create)

	if err := tex.Upload([]byte{0, 0, 0, 0}, 1, 1); err == nil {
		t.Fatal("expected creation error")
	}
	if tex.Texture() != nil {
		t.Error("failed creation must not store a texture")
	}

	if err := tex.Upload([]byte{0, 0, 0, 0}, 1, 1); err != nil {
		t.Fatalf("retry Upload: %v", err)
	}
	mc.textures[0].failNext = true
	if err := tex.Upload([]byte{0, 0, 0, 0}, 1, 1); err == nil {
		t.Error("expected update error")
	}

	plain := newAtlasTexture(func(int, int, []byte) (any, error) { return struct{}{}, nil })
	_ = plain.Upload(nil, 1, 1)
	if err := plain.Upload(nil, 1, 1); !errors.Is(err, ErrTextureNotUpdatable) {
		t.Errorf("err = %v, want ErrTextureNotUpdatable", err)
	}
}

func TestAtlasTexture_WithAtlasFlush(t *testing.T) {
	a := atlas.MustNew(atlas.Config{Width: 8, Height: 8})
	mc := &mockCreator{}
	tex := newAtlasTexture(mc.create)

	r, err := a.Allocate(1, 1)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	src := image.NewAlpha(image.Rect(0, 0, 1, 1))
	src.Pix[0] = 0x80
	a.CopyCoverage(r.Min, src, src.Bounds())

	flushed, err := a.Flush(tex.Upload)
	if err != nil || !flushed {
		t.Fatalf("Flush = (%v, %v), want (true, nil)", flushed, err)
	}
	if len(mc.textures) != 1 || mc.textures[0].width != 8 || mc.textures[0].height != 8 {
		t.Fatalf("textures = %+v, want one 8x8 texture", mc.textures)
	}
	if got := mc.textures[0].data[:4]; !bytes.Equal(got, []byte{0x80, 0x80, 0x80, 0x80}) {
		t.Errorf("uploaded texel = % x, want 80 80 80 80", got)
	}

	flushed, err = a.Flush(tex.Upload)
	if err != nil || flushed {
		t.Errorf("clean Flush = (%v, %v), want (false, nil)", flushed, err)
	}
}
