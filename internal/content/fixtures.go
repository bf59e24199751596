package content

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Fixtures is the YAML layout accepted by LoadFixtures.
type Fixtures struct {
	Skills     []Skill      `yaml:"skills"`
	Experience []Experience `yaml:"experience"`
	Projects   []Project    `yaml:"projects"`
}

// ReadFixtures parses a fixtures file.
func ReadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &fx, nil
}

// LoadFixtures fills an empty database for local development. It returns
// false without writing when any table already has rows.
func (s *Store) LoadFixtures(ctx context.Context, fx *Fixtures) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM skills)
		     + (SELECT COUNT(*) FROM experience)
		     + (SELECT COUNT(*) FROM projects)`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count rows: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin: %w", err)
	}
	defer tx.Rollback()

	for _, sk := range fx.Skills {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO skills (id, name, category, proficiency, svg, type)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sk.ID, sk.Name, sk.Category, sk.Proficiency, null(sk.SVG), null(sk.Type))
		if err != nil {
			return false, fmt.Errorf("failed to insert skill %s: %w", sk.ID, err)
		}
	}
	for _, e := range fx.Experience {
		var end sql.NullString
		if !e.EndDate.IsZero() {
			end = sql.NullString{String: e.EndDate.Format(DateLayout), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO experience (id, title, company, description, start_date, end_date, is_current, logo)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Title, e.Company, null(e.Description), e.StartDate.Format(DateLayout), end, e.IsCurrent, null(e.Logo))
		if err != nil {
			return false, fmt.Errorf("failed to insert experience %s: %w", e.ID, err)
		}
	}
	for _, p := range fx.Projects {
		skills, err := json.Marshal(nonNil(p.Skills))
		if err != nil {
			return false, err
		}
		gallery, err := json.Marshal(nonNil(p.GalleryImageURLs))
		if err != nil {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO projects (`+projectColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Slug, p.Title, p.Tagline, null(p.CoverImageURL), string(skills), null(p.DescriptionMarkdown),
			string(gallery), null(p.LiveURL), null(p.RepoURL), p.ProjectDate.Format(DateLayout),
			p.Status, p.Category, p.IsFeatured, p.DisplayOrder)
		if err != nil {
			return false, fmt.Errorf("failed to insert project %s: %w", p.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit fixtures: %w", err)
	}
	return true, nil
}

func null(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
