// Package dots renders the animated dot grid that sits behind every page.
//
// A Field owns a grid of particles anchored to fixed cells. Each frame it
// advances a frame-count clock, displaces every particle along a bounded
// sinusoid and paints it onto a Surface in a theme-dependent color. The host
// supplies the drawing surface, the frame-scheduling primitive, resize
// notifications and the theme; see host.go.
package dots

import (
	"math"
)

const (
	// Spacing is the grid cell size in pixels.
	Spacing = 80
	// Radius of every dot in pixels.
	Radius = 1.5
	// Amplitude is the peak displacement on each axis in pixels.
	Amplitude = 8
	// TimeStep is how far the clock advances per frame. The clock counts
	// frames, not seconds, so the motion speed follows the refresh rate.
	TimeStep = 0.005
	// WaveScale couples a dot's base coordinate into its wave phase.
	WaveScale = 0.005
)

// Vec2 is a point or offset in surface pixels.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Particle is one dot. Base never changes after the grid is built; Pos is
// recomputed every frame.
type Particle struct {
	Base   Vec2
	Pos    Vec2
	Radius float64
	Phase  float64
}

// GridSize returns the number of columns and rows covering a w×h surface.
func GridSize(w, h int) (cols, rows int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(float64(w) / Spacing))
	rows = int(math.Ceil(float64(h) / Spacing))
	return cols, rows
}

// Grid builds one particle per cell of a w×h surface, centered in its cell.
// Particles are ordered column by column. rnd must return values in [0, 1);
// it seeds each particle's phase offset.
func Grid(w, h int, rnd func() float64) []Particle {
	cols, rows := GridSize(w, h)
	particles := make([]Particle, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			base := Vec2{
				X: float64(i*Spacing) + Spacing/2,
				Y: float64(j*Spacing) + Spacing/2,
			}
			particles = append(particles, Particle{
				Base:   base,
				Pos:    base,
				Radius: Radius,
				Phase:  phase(rnd),
			})
		}
	}
	return particles
}

func phase(rnd func() float64) float64 {
	p := rnd() * 2 * math.Pi
	// rnd()*2π can round up to exactly 2π for inputs just below 1.
	if p >= 2*math.Pi || p < 0 {
		return 0
	}
	return p
}

// Displacement is the wave offset of a particle at clock t. The horizontal
// term is driven by the base Y coordinate and the vertical term by base X,
// which is what makes neighbouring rows and columns drift out of step.
func Displacement(t, phase float64, base Vec2) Vec2 {
	return Vec2{
		X: Amplitude * math.Sin(t+phase+base.Y*WaveScale),
		Y: Amplitude * math.Cos(t+phase+base.X*WaveScale),
	}
}
