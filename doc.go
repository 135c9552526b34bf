// Package textmesh renders bitmap text through a dynamic glyph atlas.
//
// # Overview
//
// Glyphs are rasterized on first use, trimmed to their ink bounds, and
// packed into a shared RGBA atlas with a shelf allocator. Strings become
// triangle lists whose vertices carry screen positions, atlas UVs, and a
// color. The atlas is re-uploaded only when a draw needs glyphs that were
// added since the last upload.
//
// # Quick Start
//
//	import "github.com/gogpu/textmesh"
//
//	r, err := textmesh.New(textmesh.DefaultConfig(), backend)
//	if err != nil {
//	    return err
//	}
//	console, _ := r.Font("console")
//	_, err = r.DrawText(console, "Hello", 100, 80, 0, mesh.White)
//
// # Packages
//
//   - atlas: shelf packer and the CPU-side atlas image
//   - glyph: glyphs, fonts, and the get-or-create glyph cache
//   - fontsys: OpenType fonts rasterized with golang.org/x/image
//   - mesh: vertex format and the text and rectangle mesh builder
//   - gpu: WGSL pipelines and atlas textures for WebGPU devices
//
// # Backend
//
// A [Backend] uploads the atlas and executes draw batches. The gpu package
// provides the pipelines and atlas textures a WebGPU backend needs; the
// textmeshdemo command includes a CPU backend.
//
// # Coordinates
//
// Positions are in pixels with the origin at the top-left and y growing
// downward. A text position names the pen origin on the baseline.
// [Projection] maps pixel coordinates to clip space.
//
// # Logging
//
// textmesh is silent by default. See [SetLogger].
package textmesh
