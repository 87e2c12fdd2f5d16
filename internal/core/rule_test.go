package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridFrom(t *testing.T, rows ...string) *ByteGrid {
	t.Helper()
	require.NotEmpty(t, rows)
	g := NewByteGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, g.W)
		for x, c := range row {
			if c == '#' {
				g.Set(x, y, 1)
			}
		}
	}
	return g
}

func step(g *ByteGrid) *ByteGrid {
	next := NewByteGrid(g.W, g.H)
	Step(next, g)
	return next
}

func TestNextState(t *testing.T) {
	for n := 0; n <= 8; n++ {
		assert.Equal(t, n == 2 || n == 3, NextState(true, n), "alive with %d neighbours", n)
		assert.Equal(t, n == 3, NextState(false, n), "dead with %d neighbours", n)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	vertical := gridFrom(t,
		".....",
		"..#..",
		"..#..",
		"..#..",
		".....",
	)
	horizontal := gridFrom(t,
		".....",
		".....",
		".###.",
		".....",
		".....",
	)

	once := step(vertical)
	assert.Equal(t, horizontal.String(), once.String())

	twice := step(once)
	assert.Equal(t, vertical.String(), twice.String())
}

func TestBlockIsStable(t *testing.T) {
	block := gridFrom(t,
		"....",
		".##.",
		".##.",
		"....",
	)
	g := block
	for i := 0; i < 5; i++ {
		g = step(g)
	}
	assert.Equal(t, block.String(), g.String())
}

func TestEdgeClampedNeighbours(t *testing.T) {
	// A live corner cell sees itself three times through the clamped edges
	// (left, up and up-left all resolve to the corner), so it survives with
	// three neighbours. No other cell reaches three, so it is a still life.
	g := gridFrom(t,
		"#..",
		"...",
		"...",
	)
	assert.Equal(t, 3, Neighbors(g, 0, 0))
	assert.Equal(t, 1, Neighbors(g, 1, 1))

	next := step(g)
	assert.Equal(t, uint8(1), next.At(0, 0))
	assert.Equal(t, 1, next.Alive())
}

func TestGridClampAndSet(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(-1, 0, 1)
	g.Set(4, 0, 1)
	assert.Zero(t, g.Alive())

	g.Set(3, 2, 1)
	assert.Equal(t, uint8(1), g.At(10, 10))
	assert.Equal(t, 1, g.Alive())

	x, y := g.Clamp(-5, 7)
	assert.Equal(t, 0, x)
	assert.Equal(t, 2, y)

	assert.Nil(t, WrapByteGrid(2, 2, make([]uint8, 3)))
}
