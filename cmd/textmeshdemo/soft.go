package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/textmesh/gpu"
	"github.com/gogpu/textmesh/mesh"
)

// softBackend executes draw batches on the CPU.
//
// Batches from mesh.Builder are lists of axis-aligned quads, so each quad
// is filled directly from its top-left and bottom-right vertices instead of
// rasterizing triangles. Textured quads sample the atlas with nearest
// filtering and blend with premultiplied alpha; basic quads overwrite.
type softBackend struct {
	frame *image.RGBA

	atlas         []byte
	atlasW, atlasH int

	uploads int
	draws   int
}

// clearLevel is the frame clear color, 0.02 in each channel.
const clearLevel = 5

func newSoftBackend(w, h int) *softBackend {
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(color.RGBA{clearLevel, clearLevel, clearLevel, 0xff}), image.Point{}, draw.Src)
	return &softBackend{frame: frame}
}

func (s *softBackend) UploadAtlas(pix []byte, width, height int) error {
	s.atlas = append(s.atlas[:0], pix...)
	s.atlasW, s.atlasH = width, height
	s.uploads++
	return nil
}

func (s *softBackend) Draw(kind gpu.PipelineKind, vertices []byte, count int) error {
	if len(vertices) < count*mesh.VertexStride {
		return fmt.Errorf("vertex data holds %d bytes, want %d", len(vertices), count*mesh.VertexStride)
	}
	if kind == gpu.PipelineTextured && s.atlas == nil {
		return fmt.Errorf("textured draw before atlas upload")
	}
	for q := 0; q+mesh.QuadVertices <= count; q += mesh.QuadVertices {
		tl := decodeVertex(vertices[q*mesh.VertexStride:])
		br := decodeVertex(vertices[(q+4)*mesh.VertexStride:])
		if kind == gpu.PipelineTextured {
			s.blendQuad(tl, br)
		} else {
			s.fillQuad(tl, br)
		}
	}
	s.draws++
	return nil
}

func (s *softBackend) fillQuad(tl, br mesh.Vertex) {
	r := image.Rect(int(tl.Position[0]), int(tl.Position[1]), int(br.Position[0]), int(br.Position[1]))
	draw.Draw(s.frame, r, image.NewUniform(toRGBA(tl.Color)), image.Point{}, draw.Src)
}

func (s *softBackend) blendQuad(tl, br mesh.Vertex) {
	x0, y0 := int(tl.Position[0]), int(tl.Position[1])
	x1, y1 := int(br.Position[0]), int(br.Position[1])
	u0 := int(math.Round(float64(tl.TexCoord[0]) * float64(s.atlasW)))
	v0 := int(math.Round(float64(tl.TexCoord[1]) * float64(s.atlasH)))
	c := tl.Color

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if !(image.Point{X: x, Y: y}).In(s.frame.Rect) {
				continue
			}
			t := ((v0+y-y0)*s.atlasW + u0 + x - x0) * 4
			cov := float32(s.atlas[t+3]) / 0xff
			if cov == 0 {
				continue
			}
			o := s.frame.PixOffset(x, y)
			a := cov * c[3]
			for i := 0; i < 4; i++ {
				src := cov * c[i]
				dst := float32(s.frame.Pix[o+i]) / 0xff
				s.frame.Pix[o+i] = uint8(min(src+dst*(1-a), 1)*0xff + 0.5)
			}
		}
	}
}

func decodeVertex(b []byte) mesh.Vertex {
	f := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return mesh.Vertex{
		Position: [3]float32{f(0), f(1), f(2)},
		TexCoord: [2]float32{f(3), f(4)},
		Color:    mesh.Color{f(5), f(6), f(7), f(8)},
	}
}

func toRGBA(c mesh.Color) color.RGBA {
	b := func(v float32) uint8 { return uint8(min(max(v, 0), 1)*0xff + 0.5) }
	return color.RGBA{b(c[0]), b(c[1]), b(c[2]), b(c[3])}
}
