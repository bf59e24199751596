package dots

import (
	"math/rand/v2"
	"sync"
)

// Config wires a Field to its host.
type Config struct {
	Canvas    Canvas
	Viewport  Viewport
	Scheduler Scheduler
	// Theme is read once per frame. Nil means light.
	Theme Theme
	// Rand seeds particle phases and must return values in [0, 1).
	// Defaults to math/rand/v2.Float64.
	Rand func() float64
	// RegenerateOnResize rebuilds the grid for the new canvas size after a
	// resize. When false the original grid is kept, so a larger canvas has
	// no dots in the newly exposed area.
	RegenerateOnResize bool
	// AfterFrame, if set, is called at the end of every frame, after the
	// last dot is painted and before the next frame is requested. It must
	// not call back into the Field.
	AfterFrame func(Frame)
	// StartFrame starts the clock as if that many frames had already been
	// painted, so the first painted frame is StartFrame+1. Nothing is drawn
	// for the skipped frames.
	StartFrame int
}

// Frame describes a frame that was just painted.
type Frame struct {
	Index         int
	Time          float64
	Color         Color
	Width, Height int
	Dots          int
}

// Field is a mounted dot grid. All frame work is serialised on an internal
// lock, so Unmount may be called from any goroutine; once it returns no
// further frames are painted.
type Field struct {
	cfg Config

	mu           sync.Mutex
	surface      Surface
	particles    []Particle
	time         float64
	frames       int
	pending      FrameID
	mounted      bool
	removeResize func()
}

// Mount sizes the canvas to the viewport, builds the grid and paints the
// first frame, which schedules the next. If the canvas has no drawing
// context the returned Field is inert: it never paints and Unmount is a
// no-op.
func Mount(cfg Config) *Field {
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}
	f := &Field{cfg: cfg}
	if cfg.Canvas == nil {
		return f
	}
	surface := cfg.Canvas.Context()
	if surface == nil {
		return f
	}

	f.mu.Lock()
	f.surface = surface
	if cfg.Viewport != nil {
		cfg.Canvas.SetSize(cfg.Viewport.Size())
		f.removeResize = cfg.Viewport.OnResize(f.resize)
	}
	f.particles = f.gridFor(cfg.Canvas.Size())
	if cfg.StartFrame > 0 {
		f.frames = cfg.StartFrame
		f.time = float64(cfg.StartFrame) * TimeStep
	}
	f.mounted = true
	f.mu.Unlock()

	f.frame()
	return f
}

func (f *Field) gridFor(w, h int) []Particle {
	return Grid(w, h, f.cfg.Rand)
}

// Unmount cancels the pending frame and stops listening for resizes. It is
// safe to call more than once.
func (f *Field) Unmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.mounted {
		return
	}
	f.mounted = false
	if f.pending != 0 && f.cfg.Scheduler != nil {
		f.cfg.Scheduler.CancelFrame(f.pending)
	}
	f.pending = 0
	if f.removeResize != nil {
		f.removeResize()
		f.removeResize = nil
	}
}

func (f *Field) resize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.mounted {
		return
	}
	f.cfg.Canvas.SetSize(w, h)
	if f.cfg.RegenerateOnResize {
		f.particles = f.gridFor(f.cfg.Canvas.Size())
	}
}

func (f *Field) frame() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.mounted {
		return
	}
	f.pending = 0

	w, h := f.cfg.Canvas.Size()
	f.surface.Clear(w, h)

	dark := false
	if f.cfg.Theme != nil {
		dark = f.cfg.Theme.IsDark()
	}
	c := DotColor(dark)

	f.time += TimeStep
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos = p.Base.Add(Displacement(f.time, p.Phase, p.Base))
		f.surface.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, c)
	}
	f.frames++

	if f.cfg.AfterFrame != nil {
		f.cfg.AfterFrame(Frame{
			Index:  f.frames,
			Time:   f.time,
			Color:  c,
			Width:  w,
			Height: h,
			Dots:   len(f.particles),
		})
	}

	if f.cfg.Scheduler != nil {
		f.pending = f.cfg.Scheduler.RequestFrame(f.frame)
	}
}

// Mounted reports whether the field is painting.
func (f *Field) Mounted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted
}

// Particles returns a copy of the current particles.
func (f *Field) Particles() []Particle {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Time returns the frame clock.
func (f *Field) Time() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.time
}

// Frames returns how many frames have been painted.
func (f *Field) Frames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
