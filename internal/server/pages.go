package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Aravind-Sathesh/portfolio/internal/content"
	"github.com/Aravind-Sathesh/portfolio/internal/site"
)

// page builds the layout data and marks the session as having seen the
// page-transition overlay.
func (s *Server) page(c *gin.Context) site.Page {
	theme, _ := c.Cookie(site.ThemeCookie)
	_, err := c.Cookie(site.TransitionCookie)
	seen := err == nil
	if !seen {
		// MaxAge 0 keeps it a session cookie.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(site.TransitionCookie, "true", 0, "/", "", false, false)
	}
	page := site.NewPage(s.opts.Profile, theme, seen, s.opts.Now())
	page.RegenerateDots = s.opts.RegenerateOnResize
	return page
}

// Home page route
func (s *Server) home(c *gin.Context) {
	ctx := c.Request.Context()
	page := s.page(c)

	// A failing section renders empty; the rest of the page still works.
	skills, err := s.opts.Source.Skills(ctx)
	if err != nil {
		s.logger.Error("Error fetching skills", zap.Error(err))
	}
	experience, err := s.opts.Source.Experience(ctx)
	if err != nil {
		s.logger.Error("Error fetching experience", zap.Error(err))
	}
	projects, err := s.opts.Source.FeaturedProjects(ctx)
	if err != nil {
		s.logger.Error("Error fetching projects", zap.Error(err))
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"page":       page,
		"skills":     site.BuildSkills(skills, s.opts.Icons),
		"experience": site.BuildExperience(experience),
		"projects":   site.BuildProjectCards(projects),
	})
}

// Project detail page
func (s *Server) project(c *gin.Context) {
	p, ok := s.lookupProject(c)
	if !ok {
		return
	}
	view, err := site.BuildProject(*p)
	if err != nil {
		s.fail(c, err)
		return
	}

	page := s.page(c)
	page.Title = s.opts.Profile.ProjectTitle(p.Title)
	if p.Tagline != "" {
		page.Description = p.Tagline
	} else {
		page.Description = "Project details"
	}

	c.HTML(http.StatusOK, "project.html", gin.H{
		"page":    page,
		"project": view,
	})
}

// HTMX gallery fragment - returns one slide with its prev/next controls
func (s *Server) gallery(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "bad slide index")
		return
	}
	p, ok := s.lookupProject(c)
	if !ok {
		return
	}
	images := site.GalleryImages(*p)
	if len(images) == 0 {
		s.notFound(c)
		return
	}
	car := site.Carousel{Len: len(images)}.At(index)
	c.HTML(http.StatusOK, "gallery.html", car.Slide(p.Slug, p.Title, images))
}

func (s *Server) lookupProject(c *gin.Context) (*content.Project, bool) {
	p, err := s.opts.Source.ProjectBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, content.ErrNotFound) {
		s.notFound(c)
		return nil, false
	}
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return p, true
}

// Theme toggle - flips the cookie; HTMX callers get a refresh.
func (s *Server) toggleTheme(c *gin.Context) {
	current, _ := c.Cookie(site.ThemeCookie)
	prefersDark := c.GetHeader("Sec-CH-Prefers-Color-Scheme") == "dark" || c.PostForm("prefers") == "dark"
	next := site.ToggleTheme(current, prefersDark)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(site.ThemeCookie, next, 365*24*3600, "/", "", false, false)

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	back := c.GetHeader("Referer")
	if !sameHost(c, back) {
		back = "/"
	}
	c.Redirect(http.StatusSeeOther, back)
}

func sameHost(c *gin.Context, ref string) bool {
	host := c.Request.Host
	return host != "" && (strings.HasPrefix(ref, "http://"+host+"/") || strings.HasPrefix(ref, "https://"+host+"/"))
}

func (s *Server) notFound(c *gin.Context) {
	page := s.page(c)
	page.Title = s.opts.Profile.ProjectTitle("")
	c.HTML(http.StatusNotFound, "not-found.html", gin.H{"page": page})
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	page := s.page(c)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"page":  page,
		"error": "Sorry, something went wrong loading this page. Please try again later.",
	})
}
