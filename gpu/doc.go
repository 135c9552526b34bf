// Package gpu binds text meshes and the glyph atlas to a WebGPU device.
//
// Two pipelines are provided. The basic pipeline draws opaque, untextured
// geometry such as rectangles. The textured pipeline samples the glyph
// atlas and multiplies it by the vertex color, blending with premultiplied
// alpha. Both read the vertex layout from package mesh and a single
// projection matrix uniform at group 0, binding 0.
//
// Shaders are written in WGSL and compiled to SPIR-V with naga.
//
// The atlas can be mirrored either in a HAL texture owned by this package
// (HALAtlasTexture) or through a host application's texture service via
// gpucontext (AtlasTexture). Both expose an Upload method usable with
// atlas.Atlas.Flush.
package gpu
