package shader

import (
	"github.com/chewxy/math32"

	"gpulife/internal/core"
	"gpulife/internal/gpu"
)

// cellAt reads the cell byte under (x, y), clamped onto the texture edge.
func cellAt(s gpu.Sampler, x, y int) bool {
	size := s.Size()
	x = core.ClampInt(x, 0, size.X-1)
	y = core.ClampInt(y, 0, size.Y-1)
	return s.Fetch(x, y)[0] > 0
}

func mutateFragment(in *gpu.FragmentInput) [4]float32 {
	src := in.Sources[0]
	if src == nil {
		return [4]float32{}
	}
	x := int(math32.Floor(in.Position[0]))
	y := int(math32.Floor(in.Position[1]))

	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if cellAt(src, x+dx, y+dy) {
				n++
			}
		}
	}
	var next float32
	if core.NextState(cellAt(src, x, y), n) {
		next = 1
	}
	return [4]float32{next / 255, 0, 0, 1}
}

func presentFragment(in *gpu.FragmentInput) [4]float32 {
	src := in.Sources[0]
	ratio := in.Uniform(ScaleRatio)
	fill := in.Uniform(FillColor)
	if src == nil || len(ratio) != 2 || len(fill) != 4 {
		return [4]float32{}
	}
	x := int(math32.Floor(in.Position[0] * ratio[0]))
	y := int(math32.Floor(in.Position[1] * ratio[1]))
	if cellAt(src, x, y) {
		return [4]float32{fill[0], fill[1], fill[2], fill[3]}
	}
	return [4]float32{}
}
