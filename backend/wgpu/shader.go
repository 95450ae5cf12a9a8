// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// presentShaderWGSL blits the rendered frame onto the drawable as a
// fullscreen triangle, upscaling when the frame was rendered at reduced
// quality. gamma is 1 for linear pipelines and 1/2.2 otherwise.
const presentShaderWGSL = `
struct Params {
    gamma: f32,
}

@group(0) @binding(0) var frame: texture_2d<f32>;
@group(0) @binding(1) var frame_sampler: sampler;
@group(0) @binding(2) var<uniform> params: Params;

struct VertexOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VertexOut {
    var out: VertexOut;
    let uv = vec2<f32>(f32((idx << 1u) & 2u), f32(idx & 2u));
    out.pos = vec4<f32>(uv * 2.0 - 1.0, 0.0, 1.0);
    out.uv = vec2<f32>(uv.x, 1.0 - uv.y);
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    let c = textureSample(frame, frame_sampler, in.uv);
    return vec4<f32>(pow(c.rgb, vec3<f32>(params.gamma)), c.a);
}
`

// CompileShader compiles WGSL source to SPIR-V words. The driver runs it
// once at init so shader errors surface before the first frame.
func CompileShader(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	return packSPIRV(spirvBytes)
}

// packSPIRV converts the byte stream to the uint32 words SPIR-V consumers
// expect. SPIR-V is little-endian 32-bit words.
func packSPIRV(spirvBytes []byte) ([]uint32, error) {
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("spirv byte length %d not word-aligned", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
