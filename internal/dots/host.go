package dots

import "sync/atomic"

// Surface is a 2D drawing context.
type Surface interface {
	// Clear wipes a w×h region starting at the origin to transparent.
	Clear(w, h int)
	// FillCircle paints a filled circle of radius r centered at (x, y).
	FillCircle(x, y, r float64, c Color)
}

// Canvas is the element that hosts a Surface.
type Canvas interface {
	SetSize(w, h int)
	Size() (w, h int)
	// Context returns the drawing context, or nil when none is available.
	Context() Surface
}

// Viewport reports the host window size and its changes.
type Viewport interface {
	Size() (w, h int)
	// OnResize registers fn and returns a function that unregisters it.
	OnResize(fn func(w, h int)) (remove func())
}

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Scheduler is the host's frame-scheduling primitive: a requested callback
// runs once, before the next repaint, unless cancelled first.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Theme reports whether the page is currently dark. It is consulted on
// every frame.
type Theme interface {
	IsDark() bool
}

// ThemeFunc adapts a function to Theme.
type ThemeFunc func() bool

func (f ThemeFunc) IsDark() bool { return f() }

// ThemeFlag is a Theme that can be flipped from any goroutine.
type ThemeFlag struct {
	dark atomic.Bool
}

// NewThemeFlag returns a flag initialised to dark.
func NewThemeFlag(dark bool) *ThemeFlag {
	f := &ThemeFlag{}
	f.dark.Store(dark)
	return f
}

func (f *ThemeFlag) IsDark() bool { return f.dark.Load() }

func (f *ThemeFlag) Set(dark bool) { f.dark.Store(dark) }

// Toggle flips the flag and returns the new value.
func (f *ThemeFlag) Toggle() bool {
	for {
		old := f.dark.Load()
		if f.dark.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
