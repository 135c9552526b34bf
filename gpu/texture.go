package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/internal/logging"
)

// AtlasFormat is the texture format of the glyph atlas.
const AtlasFormat = gputypes.TextureFormatRGBA8Unorm

// ErrTextureNotUpdatable is returned when a texture returned by a
// gpucontext.TextureCreator cannot be updated in place.
var ErrTextureNotUpdatable = errors.New("gpu: atlas texture does not implement gpucontext.TextureUpdater")

// AtlasTextureDescriptor describes a sampled, copy-destination texture
// holding a w×h atlas.
func AtlasTextureDescriptor(w, h int) *hal.TextureDescriptor {
	return &hal.TextureDescriptor{
		Label:         "glyph_atlas",
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, //nolint:gosec // atlas size is validated to at most 8192
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        AtlasFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// HALAtlasTexture mirrors an atlas in a HAL texture.
//
// The texture and its view are created on the first upload; each upload
// rewrites the whole texture through the queue.
type HALAtlasTexture struct {
	device hal.Device
	queue  hal.Queue

	width, height int
	texture       hal.Texture
	view          hal.TextureView
}

// NewHALAtlasTexture creates an atlas texture bound to device and queue.
func NewHALAtlasTexture(device hal.Device, queue hal.Queue) *HALAtlasTexture {
	return &HALAtlasTexture{device: device, queue: queue}
}

// View returns the texture view, or nil before the first upload.
func (t *HALAtlasTexture) View() hal.TextureView { return t.view }

// Upload writes pix, a w×h RGBA image, to the texture.
// It satisfies atlas.UploadFunc.
func (t *HALAtlasTexture) Upload(pix []byte, w, h int) error {
	if t.texture != nil && (w != t.width || h != t.height) {
		return fmt.Errorf("gpu: atlas size changed from %dx%d to %dx%d", t.width, t.height, w, h)
	}
	if t.texture == nil {
		tex, err := t.device.CreateTexture(AtlasTextureDescriptor(w, h))
		if err != nil {
			return fmt.Errorf("gpu: create atlas texture: %w", err)
		}
		view, err := t.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label:         "glyph_atlas_view",
			Format:        AtlasFormat,
			Dimension:     gputypes.TextureViewDimension2D,
			Aspect:        gputypes.TextureAspectAll,
			MipLevelCount: 1,
		})
		if err != nil {
			t.device.DestroyTexture(tex)
			return fmt.Errorf("gpu: create atlas texture view: %w", err)
		}
		t.texture, t.view = tex, view
		t.width, t.height = w, h
	}

	width, height := uint32(w), uint32(h) //nolint:gosec // atlas size is validated to at most 8192
	t.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
		},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * atlas.BytesPerPixel,
			RowsPerImage: height,
		},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
	return nil
}

// Destroy releases the texture and its view.
func (t *HALAtlasTexture) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// AtlasTexture mirrors an atlas through a host-provided texture service.
//
// The first upload creates the texture with gpucontext.TextureCreator;
// later uploads update it in place through gpucontext.TextureUpdater.
type AtlasTexture struct {
	create  func(w, h int, pix []byte) (any, error)
	texture any
	creates int
	updates int
}

// NewAtlasTexture creates an AtlasTexture backed by creator.
func NewAtlasTexture(creator gpucontext.TextureCreator) *AtlasTexture {
	return newAtlasTexture(func(w, h int, pix []byte) (any, error) {
		return creator.NewTextureFromRGBA(w, h, pix)
	})
}

func newAtlasTexture(create func(w, h int, pix []byte) (any, error)) *AtlasTexture {
	return &AtlasTexture{create: create}
}

// Texture returns the host texture, or nil before the first upload.
func (t *AtlasTexture) Texture() any { return t.texture }

// Upload sends pix, a w×h RGBA image, to the host texture.
// It satisfies atlas.UploadFunc.
func (t *AtlasTexture) Upload(pix []byte, w, h int) error {
	if t.texture == nil {
		tex, err := t.create(w, h, pix)
		if err != nil {
			return fmt.Errorf("gpu: NewTextureFromRGBA failed: %w", err)
		}
		t.texture = tex
		t.creates++
		logging.Logger().Debug("gpu: atlas texture created", "width", w, "height", h)
		return nil
	}

	updater, ok := t.texture.(gpucontext.TextureUpdater)
	if !ok {
		return ErrTextureNotUpdatable
	}
	if err := updater.UpdateData(pix); err != nil {
		return fmt.Errorf("gpu: atlas texture update failed: %w", err)
	}
	t.updates++
	return nil
}

// Stats returns how many times the texture was created and updated.
func (t *AtlasTexture) Stats() (creates, updates int) { return t.creates, t.updates }
