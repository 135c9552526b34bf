package mesh

import "github.com/gogpu/gputypes"

// VertexLayout returns the vertex buffer layout for Vertex.
//
//	location 0: position  (vec3<f32>) offset 0
//	location 1: tex_coord (vec2<f32>) offset 12
//	location 2: color     (vec4<f32>) offset 20
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // tex_coord
				{Format: gputypes.VertexFormatFloat32x4, Offset: 20, ShaderLocation: 2}, // color
			},
		},
	}
}
