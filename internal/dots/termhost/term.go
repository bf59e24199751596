// Package termhost renders the dot field in a terminal. Each cell stands in
// for a CellWidth×CellHeight block of pixels, so the grid keeps the same
// proportions it has in a browser.
package termhost

import (
	"context"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Aravind-Sathesh/portfolio/internal/dots"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

const dotRune = '•'

var (
	darkBackground  = dots.Color{R: 10, G: 10, B: 10, A: 1}
	lightBackground = dots.Color{R: 250, G: 250, B: 250, A: 1}
)

// Surface paints onto a tcell screen. It serves as both the Canvas and its
// drawing context.
type Surface struct {
	screen tcell.Screen
	theme  dots.Theme
	w, h   int
}

// NewSurface wraps screen. theme picks the background that dot colors are
// blended against.
func NewSurface(screen tcell.Screen, theme dots.Theme) *Surface {
	cols, rows := screen.Size()
	return &Surface{screen: screen, theme: theme, w: cols * CellWidth, h: rows * CellHeight}
}

func (s *Surface) SetSize(w, h int) { s.w, s.h = w, h }

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Context() dots.Surface {
	if s.screen == nil {
		return nil
	}
	return s
}

func (s *Surface) background() dots.Color {
	if s.theme != nil && s.theme.IsDark() {
		return darkBackground
	}
	return lightBackground
}

func (s *Surface) Clear(w, h int) {
	bg := s.background()
	s.screen.Fill(' ', tcell.StyleDefault.Background(rgb(bg)))
}

func (s *Surface) FillCircle(x, y, r float64, c dots.Color) {
	cx := int(math.Floor(x / CellWidth))
	cy := int(math.Floor(y / CellHeight))
	cols, rows := s.screen.Size()
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return
	}
	bg := s.background()
	style := tcell.StyleDefault.Foreground(rgb(blend(c, bg))).Background(rgb(bg))
	s.screen.SetContent(cx, cy, dotRune, nil, style)
}

// blend flattens c's alpha over an opaque background.
func blend(c, bg dots.Color) dots.Color {
	mix := func(f, b uint8) uint8 {
		return uint8(math.Round(float64(f)*c.A + float64(b)*(1-c.A)))
	}
	return dots.Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 1}
}

func rgb(c dots.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Options configures a terminal session.
type Options struct {
	Dark               bool
	FPS                int
	RegenerateOnResize bool
	// Scheduler overrides the ticker driven by FPS.
	Scheduler dots.Scheduler
}

// App owns one field mounted on a screen.
type App struct {
	screen   tcell.Screen
	theme    *dots.ThemeFlag
	surface  *Surface
	viewport *dots.StaticViewport
	ticker   *dots.TickerScheduler
	field    *dots.Field
}

// NewApp mounts a field on an initialised screen.
func NewApp(screen tcell.Screen, opts Options) *App {
	a := &App{screen: screen, theme: dots.NewThemeFlag(opts.Dark)}
	a.surface = NewSurface(screen, a.theme)
	w, h := a.surface.Size()
	a.viewport = dots.NewStaticViewport(w, h)

	sched := opts.Scheduler
	if sched == nil {
		if opts.FPS <= 0 {
			opts.FPS = 30
		}
		a.ticker = dots.NewTickerScheduler(opts.FPS)
		sched = a.ticker
	}

	screen.HideCursor()
	a.field = dots.Mount(dots.Config{
		Canvas:             a.surface,
		Viewport:           a.viewport,
		Scheduler:          sched,
		Theme:              a.theme,
		RegenerateOnResize: opts.RegenerateOnResize,
		AfterFrame:         func(dots.Frame) { screen.Show() },
	})
	return a
}

// HandleEvent reacts to one screen event and reports whether to keep going.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
			a.theme.Toggle()
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.screen.Sync()
		a.viewport.Resize(cols*CellWidth, rows*CellHeight)
	}
	return true
}

// Field exposes the mounted field.
func (a *App) Field() *dots.Field {
	return a.field
}

// Close unmounts the field and stops the ticker. It does not finalise the
// screen.
func (a *App) Close() {
	a.field.Unmount()
	if a.ticker != nil {
		a.ticker.Close()
	}
}

// Run takes over the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app := NewApp(screen, opts)
	defer app.Close()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !app.HandleEvent(ev) {
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done
// is closed, then closes events.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
