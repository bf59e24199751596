// Package ebitenhost runs the dot field in a desktop window.
package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Aravind-Sathesh/portfolio/internal/dots"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var (
	darkBackground  = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	lightBackground = color.RGBA{R: 250, G: 250, B: 250, A: 255}
)

// Options configures a preview window.
type Options struct {
	Width, Height      int
	Dark               bool
	FPS                int
	RegenerateOnResize bool
	Title              string
}

// Game adapts a dots.Field to ebiten. Frames are stepped from Update, so the
// field animates at the game's tick rate; Draw repaints the last frame.
type Game struct {
	theme    *dots.ThemeFlag
	canvas   *dots.Recorder
	viewport *dots.StaticViewport
	sched    *dots.ManualScheduler
	field    *dots.Field

	width, height int
}

// NewGame mounts a field sized w×h.
func NewGame(w, h int, opts Options) *Game {
	g := &Game{
		theme:    dots.NewThemeFlag(opts.Dark),
		canvas:   dots.NewRecorder(w, h),
		viewport: dots.NewStaticViewport(w, h),
		sched:    dots.NewManualScheduler(),
		width:    w,
		height:   h,
	}
	g.field = dots.Mount(dots.Config{
		Canvas:             g.canvas,
		Viewport:           g.viewport,
		Scheduler:          g.sched,
		Theme:              g.theme,
		RegenerateOnResize: opts.RegenerateOnResize,
	})
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.theme.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.step()
	return nil
}

func (g *Game) step() {
	g.sched.Step()
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.theme.IsDark() {
		screen.Fill(darkBackground)
	} else {
		screen.Fill(lightBackground)
	}
	for _, c := range g.canvas.Snapshot() {
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.R), c.Color.NRGBA(), true)
	}
}

// Layout follows the window size and feeds changes to the field's viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.viewport.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Field exposes the mounted field.
func (g *Game) Field() *dots.Field {
	return g.field
}

// Close unmounts the field.
func (g *Game) Close() {
	g.field.Unmount()
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = windowWidth, windowHeight
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "Dot Field"
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	g := NewGame(opts.Width, opts.Height, opts)
	defer g.Close()
	return ebiten.RunGame(g)
}
