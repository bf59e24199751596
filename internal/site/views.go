package site

import (
	"bytes"
	"html/template"
	"os"
	"path"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Aravind-Sathesh/portfolio/internal/content"
)

// IconSet maps normalized skill names to icon URLs.
type IconSet map[string]string

// LoadIcons indexes every .svg in dir, served under urlPrefix. A missing
// directory yields an empty set.
func LoadIcons(dir, urlPrefix string) (IconSet, error) {
	set := IconSet{}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return set, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".svg") {
			continue
		}
		set[strings.TrimSuffix(name, ".svg")] = path.Join(urlPrefix, name)
	}
	return set, nil
}

var iconReplacer = strings.NewReplacer(
	".", "dot",
	"-", "",
	"++", "plusplus",
	"+", "plus",
	"#", "sharp",
)

// IconKey normalizes a skill name the way icon files are named:
// "C++" → "cplusplus", "Node.js" → "nodedotjs", "C#" → "csharp".
func IconKey(name string) string {
	s := strings.ToLower(name)
	s = strings.Join(strings.Fields(s), "")
	return iconReplacer.Replace(s)
}

// SkillView is one rendered skill.
type SkillView struct {
	ID   string
	Name string
	// Icon is an image URL; when empty the template shows Initials.
	Icon     string
	Initials string
}

// CategoryView is a titled group of skills.
type CategoryView struct {
	Name   string
	Skills []SkillView
}

// SkillsView splits categories into icon grids and text-only tables.
type SkillsView struct {
	Icon     []CategoryView
	TextOnly []CategoryView
}

// BuildSkills groups skills by category in first-seen order. A category
// with any non text-only skill renders as an icon grid, otherwise as a
// text table.
func BuildSkills(skills []content.Skill, icons IconSet) SkillsView {
	var order []string
	byCat := map[string][]content.Skill{}
	for _, sk := range skills {
		if _, ok := byCat[sk.Category]; !ok {
			order = append(order, sk.Category)
		}
		byCat[sk.Category] = append(byCat[sk.Category], sk)
	}

	var v SkillsView
	for _, cat := range order {
		group := byCat[cat]
		textOnly := true
		for _, sk := range group {
			if sk.Type != content.SkillTextOnly {
				textOnly = false
				break
			}
		}
		cv := CategoryView{Name: cat}
		for _, sk := range group {
			cv.Skills = append(cv.Skills, skillView(sk, icons))
		}
		if textOnly {
			v.TextOnly = append(v.TextOnly, cv)
		} else {
			v.Icon = append(v.Icon, cv)
		}
	}
	return v
}

func skillView(sk content.Skill, icons IconSet) SkillView {
	sv := SkillView{ID: sk.ID, Name: sk.Name}
	if url, ok := icons[IconKey(sk.Name)]; ok {
		sv.Icon = url
	} else if sk.SVG != "" {
		sv.Icon = sk.SVG
	}
	sv.Initials = initials(sk.Name)
	return sv
}

func initials(name string) string {
	r := []rune(name)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

// ExperienceView is one position on the timeline.
type ExperienceView struct {
	ID          string
	Title       string
	Company     string
	Description string
	Logo        string
	Period      string
}

// BuildExperience formats the positions for display.
func BuildExperience(exps []content.Experience) []ExperienceView {
	out := make([]ExperienceView, 0, len(exps))
	for _, e := range exps {
		end := "Present"
		if !e.IsCurrent {
			end = formatShort(e.EndDate)
		}
		out = append(out, ExperienceView{
			ID:          e.ID,
			Title:       e.Title,
			Company:     e.Company,
			Description: e.Description,
			Logo:        e.Logo,
			Period:      formatShort(e.StartDate) + " - " + end,
		})
	}
	return out
}

func formatShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2006")
}

// ProjectCard is a featured project on the home page.
type ProjectCard struct {
	content.Project
	DetailURL string
}

// BuildProjectCards links every project to its detail page.
func BuildProjectCards(ps []content.Project) []ProjectCard {
	out := make([]ProjectCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProjectCard{Project: p, DetailURL: "/projects/" + p.Slug})
	}
	return out
}

// ProjectView is the detail page of one project.
type ProjectView struct {
	content.Project
	Date        string
	StatusLabel string
	Description template.HTML
	Images      []string
	Gallery     Carousel
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var titleCase = cases.Title(language.English)

// BuildProject prepares a project for its detail page. The gallery starts
// with the cover image, followed by the gallery images.
func BuildProject(p content.Project) (ProjectView, error) {
	v := ProjectView{
		Project:     p,
		Date:        p.ProjectDate.Format("January 2006"),
		StatusLabel: StatusLabel(p.Status),
		Images:      GalleryImages(p),
	}
	v.Gallery = Carousel{Len: len(v.Images)}
	if p.DescriptionMarkdown != "" {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(p.DescriptionMarkdown), &buf); err != nil {
			return v, err
		}
		v.Description = template.HTML(buf.String())
	}
	return v, nil
}

// Slide is the first gallery slide.
func (v ProjectView) Slide() Slide {
	return v.Gallery.Slide(v.Slug, v.Title, v.Images)
}

// GalleryImages returns the cover (if any) followed by the gallery.
func GalleryImages(p content.Project) []string {
	var imgs []string
	if p.CoverImageURL != "" {
		imgs = append(imgs, p.CoverImageURL)
	}
	return append(imgs, p.GalleryImageURLs...)
}

// StatusLabel turns "in_progress" into "In Progress". Only the first
// underscore is replaced.
func StatusLabel(status string) string {
	return titleCase.String(strings.Replace(status, "_", " ", 1))
}
