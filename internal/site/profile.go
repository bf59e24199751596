// Package site turns stored content into the view models the templates render.
package site

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the fixed copy around the data-driven sections.
type Profile struct {
	Name        string `yaml:"name"`
	ShortName   string `yaml:"short_name"`
	Role        string `yaml:"role"`
	Tagline     string `yaml:"tagline"`
	Description string `yaml:"description"`
	SiteURL     string `yaml:"site_url"`
	Photo       string `yaml:"photo"`
	OGImage     string `yaml:"og_image"`
	Favicon     string `yaml:"favicon"`

	ContactHeading string `yaml:"contact_heading"`
	ContactBlurb   string `yaml:"contact_blurb"`
	Email          string `yaml:"email"`
	LinkedIn       string `yaml:"linkedin"`
	GitHub         string `yaml:"github"`
}

// DefaultProfile is used when no site file is configured.
func DefaultProfile() Profile {
	return Profile{
		Name:        "Aravind Sathesh",
		ShortName:   "Aravind",
		Role:        "Full-Stack Developer",
		Tagline:     "Building scalable, reliable systems that power seamless experiences.",
		Description: "Aravind Sathesh - Professional Portfolio, Full Stack Developer",
		SiteURL:     "https://aravindsathesh.com",
		Photo:       "/images/profile.jpg",
		OGImage:     "/images/og-image.png",
		Favicon:     "/images/favicon.png",

		ContactHeading: "Let's Work Together",
		ContactBlurb:   "I'm always interested in hearing about new projects and opportunities. Feel free to reach out!",
		Email:          "aravind.sathesh@gmail.com",
		LinkedIn:       "https://linkedin.com/in/aravind-sathesh",
		GitHub:         "https://github.com/Aravind-Sathesh",
	}
}

// LoadProfile reads a YAML profile. Fields missing from the file keep their
// defaults. An empty path returns the defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read site file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse site file: %w", err)
	}
	return p, nil
}

// OGTitle is the social-card title.
func (p Profile) OGTitle() string {
	return p.Name + " Portfolio"
}

// ProjectTitle is the document title of a project page. An empty project
// title means the project was not found.
func (p Profile) ProjectTitle(title string) string {
	if title == "" {
		return "Project - " + p.Name
	}
	return title + " - " + p.Name
}
