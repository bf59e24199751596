package dots

import (
	"strconv"
	"strings"
	"sync"
)

// Circle is one recorded FillCircle call.
type Circle struct {
	X, Y, R float64
	Color   Color
}

// Recorder is an in-memory Canvas whose Surface keeps the circles painted
// since the last Clear. Hosts that cannot draw directly (an HTTP response, a
// game engine that repaints in its own pass) read the frame back from it.
type Recorder struct {
	// Unavailable makes Context return nil, as when a page cannot obtain a
	// 2D context.
	Unavailable bool

	mu      sync.Mutex
	w, h    int
	circles []Circle
	clears  int
	draws   int
}

// NewRecorder returns a recorder sized w×h.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) SetSize(w, h int) {
	r.mu.Lock()
	r.w, r.h = w, h
	r.mu.Unlock()
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w, r.h
}

func (r *Recorder) Context() Surface {
	if r.Unavailable {
		return nil
	}
	return r
}

func (r *Recorder) Clear(w, h int) {
	r.mu.Lock()
	r.circles = r.circles[:0]
	r.clears++
	r.mu.Unlock()
}

func (r *Recorder) FillCircle(x, y, radius float64, c Color) {
	r.mu.Lock()
	r.circles = append(r.circles, Circle{X: x, Y: y, R: radius, Color: c})
	r.draws++
	r.mu.Unlock()
}

// Snapshot returns the circles painted since the last Clear.
func (r *Recorder) Snapshot() []Circle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Circle, len(r.circles))
	copy(out, r.circles)
	return out
}

// Draws returns the total number of FillCircle calls.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

// Clears returns the total number of Clear calls.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// SVG renders the current frame as a standalone SVG document with a
// transparent background.
func (r *Recorder) SVG() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	w, h := strconv.Itoa(r.w), strconv.Itoa(r.h)
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + w + `" height="` + h +
		`" viewBox="0 0 ` + w + ` ` + h + `">`)
	for _, c := range r.circles {
		b.WriteString(`<circle cx="`)
		b.WriteString(fmtCoord(c.X))
		b.WriteString(`" cy="`)
		b.WriteString(fmtCoord(c.Y))
		b.WriteString(`" r="`)
		b.WriteString(fmtCoord(c.R))
		b.WriteString(`" fill="`)
		b.WriteString(c.Color.String())
		b.WriteString(`"/>`)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// StaticViewport is a Viewport whose size changes only through Resize.
type StaticViewport struct {
	mu        sync.Mutex
	w, h      int
	nextID    int
	listeners map[int]func(w, h int)
}

// NewStaticViewport returns a w×h viewport.
func NewStaticViewport(w, h int) *StaticViewport {
	return &StaticViewport{w: w, h: h, listeners: map[int]func(w, h int){}}
}

func (v *StaticViewport) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w, v.h
}

func (v *StaticViewport) OnResize(fn func(w, h int)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() {
		v.mu.Lock()
		delete(v.listeners, id)
		v.mu.Unlock()
	}
}

// Resize updates the size and notifies listeners synchronously.
func (v *StaticViewport) Resize(w, h int) {
	v.mu.Lock()
	v.w, v.h = w, h
	fns := make([]func(w, h int), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(w, h)
	}
}

// Listeners returns the number of registered resize listeners.
func (v *StaticViewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}
