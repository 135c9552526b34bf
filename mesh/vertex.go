package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"math"
)

// VertexStride is the size of one encoded Vertex in bytes.
const VertexStride = 36

// QuadVertices is the number of vertices emitted per quad.
const QuadVertices = 6

// ErrCapacity is returned when a Buffer has no room for another quad.
var ErrCapacity = errors.New("mesh: vertex buffer capacity exceeded")

// CapacityError reports a vertex buffer overflow.
type CapacityError struct {
	Used      int
	Requested int
	Max       int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("mesh: vertex buffer full (%d of %d used, %d more requested)", e.Used, e.Max, e.Requested)
}

// Is reports whether target is ErrCapacity.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// Color is a linear RGBA color with components in [0, 1]. Text and rect
// pipelines blend with premultiplied alpha, so R, G and B should already be
// multiplied by A.
type Color [4]float32

// Common colors.
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Red   = Color{1, 0, 0, 1}
)

// ColorOf converts c to a Color. color.Color values are premultiplied,
// which is what the pipelines expect.
func ColorOf(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}

// Vertex is one corner of a triangle.
//
// Matches the vertex input of the basic and textured shaders:
//
//	location 0: position  (vec3<f32>)
//	location 1: tex_coord (vec2<f32>)
//	location 2: color     (vec4<f32>)
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Color    Color
}

// Buffer is a fixed-capacity vertex array reused for every draw batch.
// It is owned by a single Builder and not safe for concurrent use.
type Buffer struct {
	vertices []Vertex
}

// DefaultBufferCapacity is the vertex capacity used by NewBuffer for n <= 0.
const DefaultBufferCapacity = 64 * 1024

// NewBuffer creates a buffer holding at most n vertices.
func NewBuffer(n int) *Buffer {
	if n <= 0 {
		n = DefaultBufferCapacity
	}
	return &Buffer{vertices: make([]Vertex, 0, n)}
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() { b.vertices = b.vertices[:0] }

// Len returns the number of vertices in use.
func (b *Buffer) Len() int { return len(b.vertices) }

// Cap returns the vertex capacity.
func (b *Buffer) Cap() int { return cap(b.vertices) }

// Vertices returns the vertices in use. The slice aliases the buffer and is
// valid until the next Reset.
func (b *Buffer) Vertices() []Vertex { return b.vertices }

// Bytes returns the vertices encoded for upload, VertexStride bytes each,
// little-endian.
func (b *Buffer) Bytes() []byte {
	return b.AppendBytes(make([]byte, 0, len(b.vertices)*VertexStride))
}

// AppendBytes appends the encoded vertices to dst.
func (b *Buffer) AppendBytes(dst []byte) []byte {
	for i := range b.vertices {
		v := &b.vertices[i]
		for _, f := range v.Position {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.TexCoord {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.Color {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	return dst
}

// quad appends two triangles covering (x0,y0)-(x1,y1) in the order
// top-left, top-right, bottom-left, top-right, bottom-right, bottom-left.
func (b *Buffer) quad(x0, y0, x1, y1, z, u0, v0, u1, v1 float32, c Color) error {
	if len(b.vertices)+QuadVertices > cap(b.vertices) {
		return &CapacityError{Used: len(b.vertices), Requested: QuadVertices, Max: cap(b.vertices)}
	}

	tl := Vertex{Position: [3]float32{x0, y0, z}, TexCoord: [2]float32{u0, v0}, Color: c}
	tr := Vertex{Position: [3]float32{x1, y0, z}, TexCoord: [2]float32{u1, v0}, Color: c}
	bl := Vertex{Position: [3]float32{x0, y1, z}, TexCoord: [2]float32{u0, v1}, Color: c}
	br := Vertex{Position: [3]float32{x1, y1, z}, TexCoord: [2]float32{u1, v1}, Color: c}

	b.vertices = appendTriangle(b.vertices, tl, tr, bl)
	b.vertices = appendTriangle(b.vertices, tr, br, bl)
	return nil
}

func appendTriangle(dst []Vertex, a, b, c Vertex) []Vertex {
	return append(dst, a, b, c)
}
