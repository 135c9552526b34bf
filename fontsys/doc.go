// Package fontsys is the platform font service: it turns TrueType/OpenType
// data into glyph.Font values whose rasterizer draws with
// golang.org/x/image/font.
//
// Each font gets a scratch bitmap large enough for the font's bounding box
// and a baseline reference point inside it. Glyphs are drawn with their pen
// origin on that point, so the offsets glyph.Cache derives line up along a
// shared baseline.
//
// Runes the font's character map lacks are drawn as a replacement rune
// instead of the font's .notdef box.
//
//	f, err := fontsys.Mono(13)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := cache.Glyph(f, 'A')
package fontsys
