package site

import "time"

// Theme cookie values.
const (
	ThemeCookie = "theme"
	ThemeDark   = "dark"
	ThemeLight  = "light"
)

// TransitionCookie marks a browser session that has already seen the
// page-transition overlay.
const TransitionCookie = "hasLoadedBefore"

// Overlay timings of the first-visit page transition.
const (
	TransitionHold = 1100 * time.Millisecond
	TransitionFade = 500 * time.Millisecond
)

// Page is the layout data shared by every full page.
type Page struct {
	Profile     Profile
	Title       string
	Description string
	// Theme is "dark", "light" or empty when the visitor has not chosen;
	// the inline script then follows prefers-color-scheme.
	Theme          string
	ShowTransition bool
	Year           int
	// RegenerateDots tells dots.js to reopen the background stream when the
	// window is resized.
	RegenerateDots bool
}

// NewPage fills the layout for a request.
func NewPage(p Profile, theme string, seenTransition bool, now time.Time) Page {
	switch theme {
	case ThemeDark, ThemeLight:
	default:
		theme = ""
	}
	return Page{
		Profile:        p,
		Title:          p.Name,
		Description:    p.Description,
		Theme:          theme,
		ShowTransition: !seenTransition,
		Year:           now.Year(),
	}
}

// Dark reports whether the page renders with the dark class.
func (p Page) Dark() bool {
	return p.Theme == ThemeDark
}

// HoldMillis and FadeMillis feed the overlay's CSS animation.
func (p Page) HoldMillis() int64 { return TransitionHold.Milliseconds() }
func (p Page) FadeMillis() int64 { return TransitionFade.Milliseconds() }

// ToggleTheme returns the theme after pressing the toggle. When the visitor
// never chose, the toggle moves away from what the OS preference showed.
func ToggleTheme(current string, prefersDark bool) string {
	dark := current == ThemeDark || (current == "" && prefersDark)
	if dark {
		return ThemeLight
	}
	return ThemeDark
}
