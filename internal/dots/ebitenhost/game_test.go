package ebitenhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aravind-Sathesh/portfolio/internal/dots"
)

func TestGame_StepsOnePerTick(t *testing.T) {
	g := NewGame(800, 600, Options{Dark: true})
	defer g.Close()

	require.Equal(t, 1, g.Field().Frames())
	for i := 0; i < 9; i++ {
		g.step()
	}
	assert.Equal(t, 10, g.Field().Frames())
	assert.InDelta(t, 10*dots.TimeStep, g.Field().Time(), 1e-12)

	snap := g.canvas.Snapshot()
	require.Len(t, snap, 80)
	assert.Equal(t, dots.DotColor(true), snap[0].Color)
}

func TestGame_ThemeToggleRepaints(t *testing.T) {
	g := NewGame(160, 160, Options{})
	defer g.Close()

	g.theme.Toggle()
	g.step()
	for _, c := range g.canvas.Snapshot() {
		assert.Equal(t, dots.DotColor(true), c.Color)
	}
}

func TestGame_LayoutResizesCanvas(t *testing.T) {
	g := NewGame(800, 600, Options{RegenerateOnResize: true})
	defer g.Close()

	w, h := g.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Len(t, g.Field().Particles(), 80)

	g.Layout(1600, 1200)
	cw, ch := g.canvas.Size()
	assert.Equal(t, 1600, cw)
	assert.Equal(t, 1200, ch)
	assert.Len(t, g.Field().Particles(), 20*15)
}

func TestGame_CloseStopsField(t *testing.T) {
	g := NewGame(800, 600, Options{})
	g.Close()
	g.step()
	assert.False(t, g.Field().Mounted())
	assert.Equal(t, 1, g.Field().Frames())
}
