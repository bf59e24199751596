package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aravind-Sathesh/portfolio/internal/content"
)

func TestIconKey(t *testing.T) {
	cases := map[string]string{
		"C++":          "cplusplus",
		"C#":           "csharp",
		"Node.js":      "nodedotjs",
		"Next.js":      "nextdotjs",
		"Tailwind CSS": "tailwindcss",
		"scikit-learn": "scikitlearn",
		"Go":           "go",
	}
	for in, want := range cases {
		assert.Equal(t, want, IconKey(in), in)
	}
}

func TestBuildSkills(t *testing.T) {
	skills := []content.Skill{
		{ID: "1", Name: "Agile", Category: "Practices", Type: content.SkillTextOnly},
		{ID: "2", Name: "C++", Category: "Languages"},
		{ID: "3", Name: "Go", Category: "Languages"},
		{ID: "4", Name: "PostgreSQL", Category: "Databases", SVG: "/db.svg"},
		{ID: "5", Name: "Scrum", Category: "Practices", Type: content.SkillTextOnly},
		{ID: "6", Name: "Figma", Category: "Tools", Type: content.SkillTextOnly},
		{ID: "7", Name: "Docker", Category: "Tools"},
	}
	icons := IconSet{"go": "/static/icons/go.svg"}

	v := BuildSkills(skills, icons)

	require.Len(t, v.TextOnly, 1)
	assert.Equal(t, "Practices", v.TextOnly[0].Name)
	assert.Len(t, v.TextOnly[0].Skills, 2)

	require.Len(t, v.Icon, 3)
	assert.Equal(t, "Languages", v.Icon[0].Name)
	assert.Equal(t, "Databases", v.Icon[1].Name)
	assert.Equal(t, "Tools", v.Icon[2].Name, "a category is icon-based if any skill is")

	cpp, golang := v.Icon[0].Skills[0], v.Icon[0].Skills[1]
	assert.Empty(t, cpp.Icon)
	assert.Equal(t, "C+", cpp.Initials)
	assert.Equal(t, "/static/icons/go.svg", golang.Icon)
	assert.Equal(t, "/db.svg", v.Icon[1].Skills[0].Icon)
}

func TestBuildSkills_Empty(t *testing.T) {
	v := BuildSkills(nil, nil)
	assert.Empty(t, v.Icon)
	assert.Empty(t, v.TextOnly)
}

func TestLoadIcons(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.svg"), []byte("<svg/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	set, err := LoadIcons(dir, "/static/icons")
	require.NoError(t, err)
	assert.Equal(t, IconSet{"go": "/static/icons/go.svg"}, set)

	set, err = LoadIcons(filepath.Join(dir, "missing"), "/x")
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestLoadIcons_ShippedSet(t *testing.T) {
	set, err := LoadIcons("../../static/icons", "/static/icons")
	require.NoError(t, err)
	for _, name := range []string{"C++", "Node.js", "C#", "Go", "TypeScript", "PostgreSQL"} {
		assert.Equal(t, "/static/icons/"+IconKey(name)+".svg", set[IconKey(name)], name)
	}

	v := BuildSkills([]content.Skill{{ID: "1", Name: "C++", Category: "Languages"}}, set)
	assert.Equal(t, "/static/icons/cplusplus.svg", v.Icon[0].Skills[0].Icon)
}

func TestBuildExperience(t *testing.T) {
	v := BuildExperience([]content.Experience{
		{ID: "a", StartDate: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), IsCurrent: true},
		{ID: "b", StartDate: time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2022, 8, 31, 0, 0, 0, 0, time.UTC)},
	})
	require.Len(t, v, 2)
	assert.Equal(t, "Sep 2023 - Present", v[0].Period)
	assert.Equal(t, "May 2022 - Aug 2022", v[1].Period)
}

func TestBuildProject(t *testing.T) {
	v, err := BuildProject(content.Project{
		Slug:                "dotfield",
		CoverImageURL:       "/cover.png",
		GalleryImageURLs:    []string{"/1.png", "/2.png"},
		DescriptionMarkdown: "# Title\n\nSome **bold** text.",
		ProjectDate:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:              "in_progress",
	})
	require.NoError(t, err)

	assert.Equal(t, "March 2024", v.Date)
	assert.Equal(t, "In Progress", v.StatusLabel)
	assert.Equal(t, []string{"/cover.png", "/1.png", "/2.png"}, v.Images)
	assert.Equal(t, 3, v.Gallery.Len)
	assert.Contains(t, string(v.Description), "<h1>Title</h1>")
	assert.Contains(t, string(v.Description), "<strong>bold</strong>")
}

func TestBuildProject_NoImagesNoMarkdown(t *testing.T) {
	v, err := BuildProject(content.Project{Status: "completed"})
	require.NoError(t, err)
	assert.Empty(t, v.Images)
	assert.False(t, v.Gallery.HasNav())
	assert.Empty(t, v.Description)
	assert.Equal(t, "Completed", v.StatusLabel)
}

func TestCarousel(t *testing.T) {
	c := Carousel{Len: 3}
	assert.Equal(t, 1, c.Next().Index)
	assert.Equal(t, 2, c.Prev().Index)
	assert.Equal(t, 0, c.At(2).Next().Index)
	assert.Equal(t, 1, c.At(-5).Index)
	assert.True(t, c.HasNav())

	one := Carousel{Len: 1}
	assert.False(t, one.HasNav())
	assert.Equal(t, 0, one.Next().Index)

	empty := Carousel{}
	assert.Equal(t, 0, empty.At(4).Index)
}

func TestProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "Dot Field - Aravind Sathesh", p.ProjectTitle("Dot Field"))
	assert.Equal(t, "Project - Aravind Sathesh", p.ProjectTitle(""))
	assert.Equal(t, "Aravind Sathesh Portfolio", p.OGTitle())
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Jane Doe\nemail: jane@example.com\n"), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, DefaultProfile().Role, p.Role)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	p, err = LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestNewPage(t *testing.T) {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	pg := NewPage(DefaultProfile(), "dark", false, now)
	assert.True(t, pg.Dark())
	assert.True(t, pg.ShowTransition)
	assert.Equal(t, 2026, pg.Year)
	assert.Equal(t, int64(1100), pg.HoldMillis())

	pg = NewPage(DefaultProfile(), "purple", true, now)
	assert.Empty(t, pg.Theme)
	assert.False(t, pg.ShowTransition)
}

func TestToggleTheme(t *testing.T) {
	assert.Equal(t, ThemeLight, ToggleTheme(ThemeDark, false))
	assert.Equal(t, ThemeDark, ToggleTheme(ThemeLight, true))
	assert.Equal(t, ThemeLight, ToggleTheme("", true))
	assert.Equal(t, ThemeDark, ToggleTheme("", false))
}
