// Package shader holds the two programs of the simulation: Mutate advances a
// generation, Present draws one onto the output surface. Each program ships
// as a WGSL module (validated by the software backend), a Kage fragment for
// the ebiten backend and a CPU fragment for the software backend.
package shader

import (
	_ "embed"

	"gpulife/internal/gpu"
)

var (
	//go:embed shaders/fullscreen_quad.vs.wgsl
	fullscreenQuadVS string
	//go:embed shaders/mutate.fs.wgsl
	mutateFS string
	//go:embed shaders/present.fs.wgsl
	presentFS string

	//go:embed shaders/mutate.kage
	mutateKage []byte
	//go:embed shaders/present.kage
	presentKage []byte
)

// Input names shared by every rendition of the programs.
const (
	CurrentGen = "current_gen"
	SourceTex  = "source"
	ScaleRatio = "ScaleRatio"
	FillColor  = "FillColor"
)

// Mutate returns the Game of Life transition program.
func Mutate() gpu.Source {
	return gpu.Source{
		Name:     "mutate",
		Vertex:   fullscreenQuadVS,
		Fragment: mutateFS,
		Kage:     mutateKage,
		CPU:      mutateFragment,
		Textures: []string{CurrentGen},
	}
}

// Present returns the scaled copy program.
func Present() gpu.Source {
	return gpu.Source{
		Name:     "present",
		Vertex:   fullscreenQuadVS,
		Fragment: presentFS,
		Kage:     presentKage,
		CPU:      presentFragment,
		Textures: []string{SourceTex},
		Uniforms: []string{ScaleRatio, FillColor},
	}
}

// All returns every program in construction order.
func All() []gpu.Source {
	return []gpu.Source{Mutate(), Present()}
}
