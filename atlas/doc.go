// Package atlas provides the shared glyph texture atlas.
//
// An Atlas is a fixed-size premultiplied RGBA8 pixel buffer together with a
// ShelfPacker that hands out rectangles for new glyph bitmaps. The atlas
// only grows in use: rectangles are never freed, moved, or compacted, and a
// request that does not fit fails with ErrFull instead of wrapping around.
//
// The atlas tracks whether its pixels differ from the GPU texture. Callers
// invoke Flush immediately before a textured draw; the whole buffer is
// re-uploaded when dirty.
//
//	a := atlas.MustNew(atlas.DefaultConfig())
//	r, err := a.Allocate(w, h)
//	...
//	a.CopyCoverage(r.Min, mask, inkBounds)
//	_, err = a.Flush(func(pix []byte, w, h int) error {
//	    return texture.Upload(pix, w, h)
//	})
package atlas
