package dots

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seeded() func() float64 {
	return rand.New(rand.NewPCG(1, 2)).Float64
}

type harness struct {
	canvas   *Recorder
	viewport *StaticViewport
	sched    *ManualScheduler
	theme    *ThemeFlag
}

func newHarness(w, h int) *harness {
	return &harness{
		canvas:   NewRecorder(0, 0),
		viewport: NewStaticViewport(w, h),
		sched:    NewManualScheduler(),
		theme:    NewThemeFlag(false),
	}
}

func (h *harness) mount(opts ...func(*Config)) *Field {
	cfg := Config{
		Canvas:    h.canvas,
		Viewport:  h.viewport,
		Scheduler: h.sched,
		Theme:     h.theme,
		Rand:      seeded(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return Mount(cfg)
}

func TestMount_800x600(t *testing.T) {
	h := newHarness(800, 600)
	f := h.mount()
	defer f.Unmount()

	w, ht := h.canvas.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, ht)
	assert.Len(t, f.Particles(), 80)
	assert.Equal(t, 1, f.Frames(), "mount paints the first frame")
	assert.Equal(t, 1, h.sched.Pending(), "first frame requests the next")
	assert.Equal(t, 1, h.viewport.Listeners())
}

func TestMount_ParticleCountMatchesCeil(t *testing.T) {
	sizes := [][2]int{{1, 1}, {79, 81}, {80, 80}, {81, 160}, {1920, 1080}, {375, 812}}
	for _, s := range sizes {
		h := newHarness(s[0], s[1])
		f := h.mount()
		want := int(math.Ceil(float64(s[0])/80) * math.Ceil(float64(s[1])/80))
		assert.Len(t, f.Particles(), want, "size %dx%d", s[0], s[1])
		f.Unmount()
	}
}

func TestMount_ZeroSizeHasNoParticles(t *testing.T) {
	h := newHarness(0, 600)
	f := h.mount()
	defer f.Unmount()

	assert.Empty(t, f.Particles())
	assert.Equal(t, 0, h.canvas.Draws())
}

func TestMount_NoContextIsInert(t *testing.T) {
	h := newHarness(800, 600)
	h.canvas.Unavailable = true

	f := h.mount()
	assert.False(t, f.Mounted())
	assert.Empty(t, f.Particles())
	assert.Equal(t, 0, h.canvas.Draws())
	assert.Equal(t, 0, h.sched.Pending())
	assert.Equal(t, 0, h.viewport.Listeners())

	assert.NotPanics(t, f.Unmount)
}

func TestMount_NilCanvas(t *testing.T) {
	f := Mount(Config{})
	assert.False(t, f.Mounted())
	assert.NotPanics(t, f.Unmount)
}

func TestFrame_ParticleInvariants(t *testing.T) {
	h := newHarness(1280, 720)
	f := h.mount()
	defer f.Unmount()

	bound := Amplitude*math.Sqrt2 + 1e-9
	for i := 0; i < 500; i++ {
		for _, p := range f.Particles() {
			require.Equal(t, 1.5, p.Radius)
			require.GreaterOrEqual(t, p.Phase, 0.0)
			require.Less(t, p.Phase, 2*math.Pi)
			require.LessOrEqual(t, p.Pos.Sub(p.Base).Len(), bound)
			require.False(t, math.IsNaN(p.Pos.X) || math.IsInf(p.Pos.X, 0))
			require.False(t, math.IsNaN(p.Pos.Y) || math.IsInf(p.Pos.Y, 0))
		}
		h.sched.Step()
	}
}

func TestFrame_TimeIsFrameCount(t *testing.T) {
	h := newHarness(160, 160)
	f := h.mount()
	defer f.Unmount()

	for i := 0; i < 9; i++ {
		require.Equal(t, 1, h.sched.Step())
	}
	assert.Equal(t, 10, f.Frames())
	assert.InDelta(t, 10*TimeStep, f.Time(), 1e-12)
}

func TestFrame_DrawsEveryParticleAtItsPosition(t *testing.T) {
	h := newHarness(240, 160)
	f := h.mount()
	defer f.Unmount()
	h.sched.Step()

	circles := h.canvas.Snapshot()
	particles := f.Particles()
	require.Len(t, circles, len(particles))
	for i, p := range particles {
		want := p.Base.Add(Displacement(f.Time(), p.Phase, p.Base))
		assert.InDelta(t, want.X, circles[i].X, 1e-12)
		assert.InDelta(t, want.Y, circles[i].Y, 1e-12)
		assert.Equal(t, Radius, circles[i].R)
	}
	assert.Equal(t, 2, h.canvas.Clears())
}

func TestFrame_ThemeReadEveryFrame(t *testing.T) {
	h := newHarness(160, 80)
	f := h.mount()
	defer f.Unmount()

	for _, c := range h.canvas.Snapshot() {
		assert.Equal(t, "rgba(100, 100, 100, 0.25)", c.Color.String())
	}

	h.theme.Set(true)
	h.sched.Step()
	for _, c := range h.canvas.Snapshot() {
		assert.Equal(t, "rgba(255, 255, 255, 0.25)", c.Color.String())
	}

	h.theme.Toggle()
	h.sched.Step()
	for _, c := range h.canvas.Snapshot() {
		assert.Equal(t, LightDot, c.Color)
	}
}

func TestFrame_NilThemeIsLight(t *testing.T) {
	h := newHarness(80, 80)
	f := h.mount(func(c *Config) { c.Theme = nil })
	defer f.Unmount()

	require.Len(t, h.canvas.Snapshot(), 1)
	assert.Equal(t, LightDot, h.canvas.Snapshot()[0].Color)
}

func TestFrame_AfterFrameHook(t *testing.T) {
	h := newHarness(800, 600)
	h.theme.Set(true)
	var got []Frame
	f := h.mount(func(c *Config) {
		c.AfterFrame = func(fr Frame) { got = append(got, fr) }
	})
	defer f.Unmount()
	h.sched.Step()

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, 80, got[1].Dots)
	assert.Equal(t, DarkDot, got[1].Color)
	assert.Equal(t, 800, got[1].Width)
	assert.InDelta(t, 2*TimeStep, got[1].Time, 1e-12)
}

func TestResize_KeepsGridByDefault(t *testing.T) {
	h := newHarness(800, 600)
	f := h.mount()
	defer f.Unmount()
	before := f.Particles()

	h.viewport.Resize(1600, 1200)

	w, ht := h.canvas.Size()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, ht)
	after := f.Particles()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Base, after[i].Base)
	}
}

func TestResize_Regenerate(t *testing.T) {
	h := newHarness(800, 600)
	f := h.mount(func(c *Config) { c.RegenerateOnResize = true })
	defer f.Unmount()

	h.viewport.Resize(1600, 1200)
	assert.Len(t, f.Particles(), 20*15)
}

func TestUnmount_StopsFrames(t *testing.T) {
	h := newHarness(800, 600)
	f := h.mount()
	draws := h.canvas.Draws()

	f.Unmount()
	assert.False(t, f.Mounted())
	assert.Equal(t, 0, h.sched.Pending())
	assert.Equal(t, 0, h.viewport.Listeners())

	for i := 0; i < 5; i++ {
		h.sched.Step()
	}
	h.viewport.Resize(100, 100)
	assert.Equal(t, draws, h.canvas.Draws())
}

func TestUnmount_Twice(t *testing.T) {
	h := newHarness(800, 600)
	f := h.mount()

	assert.NotPanics(t, func() {
		f.Unmount()
		f.Unmount()
	})
	assert.Equal(t, 0, h.sched.Pending())
	assert.Equal(t, 1, f.Frames())
}

func TestUnmount_StaleCallbackDoesNotPaint(t *testing.T) {
	// A host that cannot cancel still must not see paints after teardown.
	var saved func()
	sched := schedulerFunc(func(fn func()) { saved = fn })
	canvas := NewRecorder(0, 0)
	f := Mount(Config{Canvas: canvas, Viewport: NewStaticViewport(160, 160), Scheduler: sched})
	draws := canvas.Draws()

	f.Unmount()
	require.NotNil(t, saved)
	saved()
	assert.Equal(t, draws, canvas.Draws())
}

type schedulerFunc func(fn func())

func (s schedulerFunc) RequestFrame(fn func()) FrameID { s(fn); return 1 }
func (s schedulerFunc) CancelFrame(FrameID)            {}

func TestTickerScheduler_DrivesField(t *testing.T) {
	sched := NewTickerScheduler(200)
	defer sched.Close()

	canvas := NewRecorder(0, 0)
	f := Mount(Config{
		Canvas:    canvas,
		Viewport:  NewStaticViewport(320, 240),
		Scheduler: sched,
		Rand:      seeded(),
	})

	require.Eventually(t, func() bool { return f.Frames() >= 5 }, 2*time.Second, 5*time.Millisecond)

	f.Unmount()
	frames := f.Frames()
	draws := canvas.Draws()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frames, f.Frames())
	assert.Equal(t, draws, canvas.Draws())
}

func TestTickerScheduler_CancelledNeverRuns(t *testing.T) {
	sched := NewTickerScheduler(20)
	defer sched.Close()

	ran := make(chan struct{}, 1)
	id := sched.RequestFrame(func() { ran <- struct{}{} })
	sched.CancelFrame(id)

	select {
	case <-ran:
		t.Fatal("cancelled frame ran")
	case <-time.After(120 * time.Millisecond):
	}
}

func TestTickerScheduler_CloseTwice(t *testing.T) {
	sched := NewTickerScheduler(60)
	sched.RequestFrame(func() {})
	sched.Close()
	sched.Close()
	assert.Equal(t, 0, sched.Pending())
}

func TestManualScheduler_BatchesOnlyPending(t *testing.T) {
	s := NewManualScheduler()
	var n int
	var again func()
	again = func() {
		n++
		s.RequestFrame(again)
	}
	s.RequestFrame(again)

	assert.Equal(t, 1, s.Step())
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Pending())
}

func TestMount_StartFrameSkipsDrawing(t *testing.T) {
	stepped := newHarness(800, 600)
	a := stepped.mount()
	defer a.Unmount()
	for i := 0; i < 99; i++ {
		stepped.sched.Step()
	}

	skipped := newHarness(800, 600)
	b := skipped.mount(func(c *Config) {
		c.Scheduler = nil
		c.StartFrame = 99
	})
	defer b.Unmount()

	assert.Equal(t, 100, b.Frames())
	assert.InDelta(t, a.Time(), b.Time(), 1e-9)
	assert.Equal(t, 80, skipped.canvas.Draws(), "only the last frame is painted")
	assert.Equal(t, 1, skipped.canvas.Clears())

	want, got := a.Particles(), b.Particles()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Pos.X, got[i].Pos.X, 1e-6)
		assert.InDelta(t, want[i].Pos.Y, got[i].Pos.Y, 1e-6)
	}
}
