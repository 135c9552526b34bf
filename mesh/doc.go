// Package mesh turns glyph runs and rectangles into triangle lists.
//
// A Builder resolves each rune through a glyph.Cache and writes six
// vertices per inked glyph into a fixed-capacity Buffer: two triangles, no
// index buffer. Texture coordinates are normalized against the atlas size.
// Blank glyphs such as space only advance the pen.
//
//	buf := mesh.NewBuffer(0)
//	b := mesh.NewBuilder(cache, buf)
//	run, err := b.BuildText(font, "Hello", 100, 80, 0, mesh.White)
//	// upload buf.Bytes(), draw run.Count vertices
package mesh
