package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/textmesh/mesh"
)

func TestPipelineKind_String(t *testing.T) {
	tests := []struct {
		kind PipelineKind
		want string
	}{
		{PipelineBasic, "basic"},
		{PipelineTextured, "textured"},
		{PipelineKind(7), "PipelineKind(7)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewPipelineState_Basic(t *testing.T) {
	s := NewPipelineState(PipelineBasic, gputypes.TextureFormatBGRA8Unorm)

	if s.Target.Blend != nil {
		t.Error("basic pipeline should not blend")
	}
	if s.Target.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Target.Format = %v, want BGRA8Unorm", s.Target.Format)
	}
	if s.Primitive.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("Topology = %v, want triangle list", s.Primitive.Topology)
	}
	if len(s.Bindings) != 1 {
		t.Fatalf("len(Bindings) = %d, want 1", len(s.Bindings))
	}
	if s.Bindings[0].Buffer == nil {
		t.Error("binding 0 should be the uniform buffer")
	}
}

func TestNewPipelineState_Textured(t *testing.T) {
	s := NewPipelineState(PipelineTextured, gputypes.TextureFormatBGRA8Unorm)

	if s.Target.Blend == nil {
		t.Fatal("textured pipeline should blend")
	}
	if want := gputypes.BlendStatePremultiplied(); *s.Target.Blend != want {
		t.Errorf("Blend = %+v, want premultiplied %+v", *s.Target.Blend, want)
	}
	if len(s.Bindings) != 3 {
		t.Fatalf("len(Bindings) = %d, want 3", len(s.Bindings))
	}
	if s.Bindings[1].Texture == nil || s.Bindings[1].Binding != 1 {
		t.Errorf("binding 1 = %+v, want atlas texture", s.Bindings[1])
	}
	if s.Bindings[2].Sampler == nil || s.Bindings[2].Binding != 2 {
		t.Errorf("binding 2 = %+v, want sampler", s.Bindings[2])
	}
	if len(s.Buffers) != 1 || s.Buffers[0].ArrayStride != mesh.VertexStride {
		t.Errorf("Buffers = %+v, want the mesh vertex layout", s.Buffers)
	}
}

func TestUniformBytes(t *testing.T) {
	var proj [16]float32
	proj[0] = 1
	proj[15] = 1
	b := UniformBytes(proj)
	if len(b) != UniformSize {
		t.Fatalf("len = %d, want %d", len(b), UniformSize)
	}
	// 1.0f little-endian
	if b[0] != 0x00 || b[1] != 0x00 || b[2] != 0x80 || b[3] != 0x3f {
		t.Errorf("first float bytes = % x, want 00 00 80 3f", b[:4])
	}
}
