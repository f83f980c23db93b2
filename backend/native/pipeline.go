//go:build !nogpu

package native

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

//go:embed shaders/sample1d.wgsl
var sampleShaderWGSL string

// gpuConfig is the GPU-compatible layout of the dispatch configuration.
// Must match the Config struct in sample1d.wgsl.
type gpuConfig struct {
	SrcWidth    uint32  // Width of the bound source level
	DstWidth    uint32  // Synthesis output width
	FilterMode  uint32  // 0 = nearest, 1 = linear
	AddressMode uint32  // 0 = clamp, 1 = border
	Normalize   uint32  // 1 = rescale integer storage on read
	NormScale   float32 // Storage-to-normalized divisor
	IsSigned    uint32  // 1 = signed storage
	Channels    uint32  // Channel count
}

// samplerPipelines holds the compiled shader and the compute pipelines for
// level sampling and synthesis. One instance is shared by all devices of a
// backend.
type samplerPipelines struct {
	mu sync.Mutex

	device hal.Device

	samplePipeline     hal.ComputePipeline
	synthesizePipeline hal.ComputePipeline

	shaderModule hal.ShaderModule

	pipelineLayout   hal.PipelineLayout
	inputBindLayout  hal.BindGroupLayout
	outputBindLayout hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32
}

// newSamplerPipelines compiles the WGSL shader and builds the pipelines.
func newSamplerPipelines(device hal.Device) (*samplerPipelines, error) {
	p := &samplerPipelines{device: device}
	if err := p.init(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *samplerPipelines) init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Compile WGSL to SPIR-V
	spirvBytes, err := naga.Compile(sampleShaderWGSL)
	if err != nil {
		return fmt.Errorf("native: failed to compile shader: %w", err)
	}

	p.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range p.spirvCode {
		p.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	shaderModule, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "sample1d_shader",
		Source: hal.ShaderSource{
			SPIRV: p.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("native: failed to create shader module: %w", err)
	}
	p.shaderModule = shaderModule

	if err := p.createBindGroupLayouts(); err != nil {
		return err
	}
	if err := p.createPipelineLayout(); err != nil {
		return err
	}
	return p.createPipelines()
}

func (p *samplerPipelines) createBindGroupLayouts() error {
	// Input bind group layout (group 0): config, level data, coordinates.
	inputLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sample1d_input_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: 32, // sizeof(Config)
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
			{
				Binding:    2,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("native: failed to create input bind group layout: %w", err)
	}
	p.inputBindLayout = inputLayout

	// Output bind group layout (group 1).
	outputLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sample1d_output_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("native: failed to create output bind group layout: %w", err)
	}
	p.outputBindLayout = outputLayout

	return nil
}

func (p *samplerPipelines) createPipelineLayout() error {
	layout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "sample1d_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.inputBindLayout, p.outputBindLayout},
	})
	if err != nil {
		return fmt.Errorf("native: failed to create pipeline layout: %w", err)
	}
	p.pipelineLayout = layout
	return nil
}

func (p *samplerPipelines) createPipelines() error {
	samplePipeline, err := p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "sample1d_sample_pipeline",
		Layout: p.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     p.shaderModule,
			EntryPoint: "cs_sample",
		},
	})
	if err != nil {
		return fmt.Errorf("native: failed to create sample pipeline: %w", err)
	}
	p.samplePipeline = samplePipeline

	synthPipeline, err := p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "sample1d_synthesize_pipeline",
		Layout: p.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     p.shaderModule,
			EntryPoint: "cs_synthesize",
		},
	})
	if err != nil {
		return fmt.Errorf("native: failed to create synthesize pipeline: %w", err)
	}
	p.synthesizePipeline = synthPipeline

	return nil
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (p *samplerPipelines) SPIRVCode() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spirvCode
}

// Destroy releases all GPU resources.
func (p *samplerPipelines) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device == nil {
		return
	}

	if p.samplePipeline != nil {
		p.device.DestroyComputePipeline(p.samplePipeline)
		p.samplePipeline = nil
	}
	if p.synthesizePipeline != nil {
		p.device.DestroyComputePipeline(p.synthesizePipeline)
		p.synthesizePipeline = nil
	}
	if p.pipelineLayout != nil {
		p.device.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	if p.inputBindLayout != nil {
		p.device.DestroyBindGroupLayout(p.inputBindLayout)
		p.inputBindLayout = nil
	}
	if p.outputBindLayout != nil {
		p.device.DestroyBindGroupLayout(p.outputBindLayout)
		p.outputBindLayout = nil
	}
	if p.shaderModule != nil {
		p.device.DestroyShaderModule(p.shaderModule)
		p.shaderModule = nil
	}
}
