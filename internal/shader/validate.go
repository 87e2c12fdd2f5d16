package shader

import (
	"github.com/gogpu/naga"

	"gpulife/internal/gpu"
)

// CompileWGSL compiles the WGSL module of src to SPIR-V. Compiler
// diagnostics come back as a gpu.ShaderError.
func CompileWGSL(src gpu.Source) ([]byte, error) {
	spirv, err := naga.Compile(src.WGSL())
	if err != nil {
		return nil, gpu.Wrap(gpu.ShaderError, src.Name, err)
	}
	if len(spirv) == 0 {
		return nil, gpu.Errorf(gpu.ShaderError, src.Name, "empty SPIR-V output")
	}
	return spirv, nil
}
