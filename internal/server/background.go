package server

import (
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/Aravind-Sathesh/portfolio/internal/dots"
	"github.com/Aravind-Sathesh/portfolio/internal/site"
)

const (
	defaultWidth  = 1920
	defaultHeight = 1080
	maxDimension  = 7680
	maxSVGFrames  = 10000
)

type surfaceQuery struct {
	w, h int
	dark bool
	rnd  func() float64
}

// parseSurface reads w, h, theme and seed. The theme falls back to the
// theme cookie, then to light.
func (s *Server) parseSurface(c *gin.Context) (surfaceQuery, bool) {
	q := surfaceQuery{w: defaultWidth, h: defaultHeight, rnd: rand.Float64}
	var ok bool
	if q.w, ok = intParam(c, "w", defaultWidth, 1, maxDimension); !ok {
		return q, false
	}
	if q.h, ok = intParam(c, "h", defaultHeight, 1, maxDimension); !ok {
		return q, false
	}

	theme := c.Query("theme")
	if theme == "" {
		theme, _ = c.Cookie(site.ThemeCookie)
	}
	q.dark = theme == site.ThemeDark

	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "bad seed")
			return q, false
		}
		q.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float64
	}
	return q, true
}

func intParam(c *gin.Context, name string, def, lo, hi int) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		c.String(http.StatusBadRequest, "%s must be between %d and %d", name, lo, hi)
		return 0, false
	}
	return n, true
}

// Background snapshot - one frame of the dot field as SVG
func (s *Server) backgroundSVG(c *gin.Context) {
	q, ok := s.parseSurface(c)
	if !ok {
		return
	}
	frames, ok := intParam(c, "frames", 1, 1, maxSVGFrames)
	if !ok {
		return
	}

	// Only the last frame is painted; the clock is fast-forwarded to it.
	canvas := dots.NewRecorder(q.w, q.h)
	field := dots.Mount(dots.Config{
		Canvas:     canvas,
		Viewport:   dots.NewStaticViewport(q.w, q.h),
		Theme:      dots.NewThemeFlag(q.dark),
		Rand:       q.rnd,
		StartFrame: frames - 1,
	})
	field.Unmount()

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", []byte(canvas.SVG()))
}

type dotJSON [2]float64

type frameEvent struct {
	Frame  int       `json:"frame"`
	Color  string    `json:"color"`
	Radius float64   `json:"r"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Dots   []dotJSON `json:"dots"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Background stream - the dot field animated server-side, one SSE event
// per frame. The field is torn down when the client goes away.
func (s *Server) backgroundStream(c *gin.Context) {
	q, ok := s.parseSurface(c)
	if !ok {
		return
	}

	s.streams.Add(1)
	defer s.streams.Add(-1)

	canvas := dots.NewRecorder(q.w, q.h)
	sched := dots.NewTickerScheduler(s.opts.DotsFPS)
	defer sched.Close()

	// Holds the latest frame only; a slow client skips frames.
	events := make(chan []byte, 1)
	field := dots.Mount(dots.Config{
		Canvas:    canvas,
		Viewport:  dots.NewStaticViewport(q.w, q.h),
		Scheduler: sched,
		Theme:     dots.NewThemeFlag(q.dark),
		Rand:      q.rnd,
		AfterFrame: func(fr dots.Frame) {
			ev := frameEvent{
				Frame:  fr.Index,
				Color:  fr.Color.String(),
				Radius: dots.Radius,
				Width:  fr.Width,
				Height: fr.Height,
				Dots:   make([]dotJSON, 0, fr.Dots),
			}
			for _, circle := range canvas.Snapshot() {
				ev.Dots = append(ev.Dots, dotJSON{round2(circle.X), round2(circle.Y)})
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Warn("Error encoding frame", zap.Error(err))
				return
			}
			select {
			case events <- data:
			default:
				select {
				case <-events:
				default:
				}
				events <- data
			}
		},
	})
	defer field.Unmount()

	s.logger.Debug("Background stream opened", zap.Int("width", q.w), zap.Int("height", q.h), zap.Bool("dark", q.dark))

	c.Header("Cache-Control", "no-store")
	c.Header("X-Accel-Buffering", "no")
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-s.shutdown:
			return false
		case data := <-events:
			c.SSEvent("frame", string(data))
			return true
		}
	})

	s.logger.Debug("Background stream closed", zap.Int("frames", field.Frames()))
}
