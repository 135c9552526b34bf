package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/basic.wgsl
var basicShaderSource string

//go:embed shaders/textured.wgsl
var texturedShaderSource string

// Entry points shared by both shaders.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ShaderSource returns the WGSL source for the pipeline kind.
func ShaderSource(kind PipelineKind) string {
	if kind == PipelineTextured {
		return texturedShaderSource
	}
	return basicShaderSource
}

// CompileShader compiles WGSL source to SPIR-V words.
func CompileShader(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gpu: compile shader: SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// NewShaderModule compiles the shader for kind and creates a HAL module.
func NewShaderModule(device hal.Device, kind PipelineKind) (hal.ShaderModule, error) {
	code, err := CompileShader(ShaderSource(kind))
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: kind.String() + "_shader",
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s shader module: %w", kind, err)
	}
	return module, nil
}
