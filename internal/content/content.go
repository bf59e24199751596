// Package content is the read-only store behind the portfolio sections.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("content: not found")

// DateLayout is how dates are stored.
const DateLayout = "2006-01-02"

// Skill types stored in skills.type.
const (
	SkillIcon     = "icon"
	SkillTextOnly = "text-only"
)

type Skill struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Proficiency int    `yaml:"proficiency"`
	SVG         string `yaml:"svg"`
	Type        string `yaml:"type"`
}

type Experience struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Company     string    `yaml:"company"`
	Description string    `yaml:"description"`
	StartDate   time.Time `yaml:"start_date"`
	EndDate     time.Time `yaml:"end_date"`
	IsCurrent   bool      `yaml:"is_current"`
	Logo        string    `yaml:"logo"`
}

type Project struct {
	ID                  string    `yaml:"id"`
	Slug                string    `yaml:"slug"`
	Title               string    `yaml:"title"`
	Tagline             string    `yaml:"tagline"`
	CoverImageURL       string    `yaml:"cover_image_url"`
	Skills              []string  `yaml:"skills"`
	DescriptionMarkdown string    `yaml:"description_markdown"`
	GalleryImageURLs    []string  `yaml:"gallery_image_urls"`
	LiveURL             string    `yaml:"live_url"`
	RepoURL             string    `yaml:"repo_url"`
	ProjectDate         time.Time `yaml:"project_date"`
	Status              string    `yaml:"status"`
	Category            string    `yaml:"category"`
	IsFeatured          bool      `yaml:"is_featured"`
	DisplayOrder        int       `yaml:"display_order"`
}

// Source is what the site reads.
type Source interface {
	Skills(ctx context.Context) ([]Skill, error)
	Experience(ctx context.Context) ([]Experience, error)
	FeaturedProjects(ctx context.Context) ([]Project, error)
	ProjectBySlug(ctx context.Context, slug string) (*Project, error)
}

// Store is a Source backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ Source = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS skills (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	proficiency INTEGER NOT NULL DEFAULT 0,
	svg TEXT,
	type TEXT
);
CREATE TABLE IF NOT EXISTS experience (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	description TEXT,
	start_date TEXT NOT NULL,
	end_date TEXT,
	is_current INTEGER NOT NULL DEFAULT 0,
	logo TEXT
);
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	tagline TEXT NOT NULL DEFAULT '',
	cover_image_url TEXT,
	skills TEXT NOT NULL DEFAULT '[]',
	description_markdown TEXT,
	gallery_image_urls TEXT NOT NULL DEFAULT '[]',
	live_url TEXT,
	repo_url TEXT,
	project_date TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	is_featured INTEGER NOT NULL DEFAULT 0,
	display_order INTEGER NOT NULL DEFAULT 0
);`

// Open connects to the database at dsn and creates the tables if needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the handle for fixtures and health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Skills returns every skill, sorted by name.
func (s *Store) Skills(ctx context.Context) ([]Skill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, proficiency, svg, type
		FROM skills
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var sk Skill
		var svg, typ sql.NullString
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Proficiency, &svg, &typ); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		sk.SVG, sk.Type = svg.String, typ.String
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

// Experience returns every position, most recent start first.
func (s *Store) Experience(ctx context.Context) ([]Experience, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, company, description, start_date, end_date, is_current, logo
		FROM experience
		ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query experience: %w", err)
	}
	defer rows.Close()

	var out []Experience
	for rows.Next() {
		var e Experience
		var desc, end, logo sql.NullString
		var start string
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &desc, &start, &end, &e.IsCurrent, &logo); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		if e.StartDate, err = parseDate(start); err != nil {
			return nil, fmt.Errorf("experience %s: %w", e.ID, err)
		}
		if end.Valid && end.String != "" {
			if e.EndDate, err = parseDate(end.String); err != nil {
				return nil, fmt.Errorf("experience %s: %w", e.ID, err)
			}
		}
		e.Description, e.Logo = desc.String, logo.String
		out = append(out, e)
	}
	return out, rows.Err()
}

const projectColumns = `id, slug, title, tagline, cover_image_url, skills, description_markdown,
	gallery_image_urls, live_url, repo_url, project_date, status, category, is_featured, display_order`

// FeaturedProjects returns the projects shown on the home page, by display
// order and then newest first.
func (s *Store) FeaturedProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE is_featured = 1
		ORDER BY display_order ASC, project_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ProjectBySlug returns a single project or ErrNotFound.
func (s *Store) ProjectBySlug(ctx context.Context, slug string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*Project, error) {
	var p Project
	var cover, desc, live, repo sql.NullString
	var skills, gallery, date string
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Tagline, &cover, &skills, &desc,
		&gallery, &live, &repo, &date, &p.Status, &p.Category, &p.IsFeatured, &p.DisplayOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return nil, fmt.Errorf("project %s: bad skills: %w", p.Slug, err)
	}
	if err := json.Unmarshal([]byte(gallery), &p.GalleryImageURLs); err != nil {
		return nil, fmt.Errorf("project %s: bad gallery: %w", p.Slug, err)
	}
	if p.ProjectDate, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("project %s: %w", p.Slug, err)
	}
	p.CoverImageURL, p.DescriptionMarkdown = cover.String, desc.String
	p.LiveURL, p.RepoURL = live.String, repo.String
	return &p, nil
}

func parseDate(s string) (time.Time, error) {
	// Rows written by other tools may carry a time part.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t, nil
}
