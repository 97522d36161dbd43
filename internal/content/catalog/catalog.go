// Package catalog serves the portfolio content from an in-memory SQLite
// database. It is server-only: the SQLite driver does not build for js/wasm.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/devpradp/portfolio/internal/content"
)

const schema = `
CREATE TABLE profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL,
	body TEXT NOT NULL
);
CREATE TABLE experiences (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT,
	period TEXT,
	body TEXT NOT NULL
);
CREATE TABLE projects (
	position INTEGER NOT NULL,
	slug TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	github TEXT,
	demo TEXT,
	image_url TEXT,
	body TEXT NOT NULL
);
CREATE TABLE skill_categories (
	position INTEGER PRIMARY KEY,
	title TEXT NOT NULL
);
CREATE TABLE skills (
	category_position INTEGER NOT NULL REFERENCES skill_categories (position),
	skill_position INTEGER NOT NULL,
	skill TEXT NOT NULL,
	PRIMARY KEY (category_position, skill_position)
);
CREATE TABLE organizations (
	position INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT,
	period TEXT,
	affiliation TEXT,
	badge TEXT,
	body TEXT NOT NULL
);`

// Catalog serves content records from an in-memory SQLite database seeded
// once by Open. The database is switched to query-only after seeding.
type Catalog struct {
	db *sql.DB
}

// experienceBody, projectBody and organizationBody hold the list columns.
type experienceBody struct {
	Description  []string `json:"description"`
	Achievements []string `json:"achievements"`
}

type projectBody struct {
	Technologies []string        `json:"technologies"`
	Description  []string        `json:"description"`
	Achievements []string        `json:"achievements"`
	Media        []content.Media `json:"media"`
}

type organizationBody struct {
	Achievements []string `json:"achievements"`
}

// Open validates site and loads it into a fresh in-memory catalog.
func Open(ctx context.Context, site *content.Site) (*Catalog, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("catalog: open catalog: %w", err)
	}
	// Every pooled connection to :memory: would be a separate database.
	db.SetMaxOpenConns(1)

	c := &Catalog{db: db}
	if err := c.seed(ctx, site); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA query_only = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: lock catalog: %w", err)
	}
	return c, nil
}

// Close releases the database.
func (c *Catalog) Close() error { return c.db.Close() }

func (c *Catalog) seed(ctx context.Context, site *content.Site) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("catalog: create schema: %w", err)
	}

	profile, err := json.Marshal(site.Profile)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO profile (id, name, body) VALUES (1, ?, ?)`,
		site.Profile.Name, string(profile)); err != nil {
		return fmt.Errorf("catalog: insert profile: %w", err)
	}

	for i, e := range site.Experiences {
		body, err := json.Marshal(experienceBody{Description: e.Description, Achievements: e.Achievements})
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO experiences (position, title, company, location, period, body)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, e.Title, e.Company, e.Location, e.Period, string(body)); err != nil {
			return fmt.Errorf("catalog: insert experience %q: %w", e.Title, err)
		}
	}

	for i, p := range site.Projects {
		body, err := json.Marshal(projectBody{
			Technologies: p.Technologies,
			Description:  p.Description,
			Achievements: p.Achievements,
			Media:        p.Media,
		})
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO projects (position, slug, name, github, demo, image_url, body)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, p.Slug, p.Name, p.GitHub, p.Demo, p.ImageURL, string(body)); err != nil {
			return fmt.Errorf("catalog: insert project %q: %w", p.Slug, err)
		}
	}

	for i, cat := range site.Skills {
		if _, err := tx.ExecContext(ctx, `INSERT INTO skill_categories (position, title) VALUES (?, ?)`,
			i, cat.Title); err != nil {
			return fmt.Errorf("catalog: insert skill category %q: %w", cat.Title, err)
		}
		for j, skill := range cat.Skills {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO skills (category_position, skill_position, skill)
				VALUES (?, ?, ?)`,
				i, j, skill); err != nil {
				return fmt.Errorf("catalog: insert skill %q: %w", skill, err)
			}
		}
	}

	for i, o := range site.Organizations {
		body, err := json.Marshal(organizationBody{Achievements: o.Achievements})
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO organizations (position, name, role, period, affiliation, badge, body)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, o.Name, o.Role, o.Period, o.Affiliation, o.Badge, string(body)); err != nil {
			return fmt.Errorf("catalog: insert organization %q: %w", o.Name, err)
		}
	}

	return tx.Commit()
}

// Profile returns the owner's profile.
func (c *Catalog) Profile(ctx context.Context) (content.Profile, error) {
	var body string
	var p content.Profile
	err := c.db.QueryRowContext(ctx, `SELECT body FROM profile WHERE id = 1`).Scan(&body)
	if err != nil {
		return p, fmt.Errorf("catalog: query profile: %w", err)
	}
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return p, fmt.Errorf("catalog: decode profile: %w", err)
	}
	return p, nil
}

// Experiences returns experience entries in display order.
func (c *Catalog) Experiences(ctx context.Context) ([]content.Experience, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT title, company, location, period, body
		FROM experiences
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query experiences: %w", err)
	}
	defer rows.Close()

	var out []content.Experience
	for rows.Next() {
		var e content.Experience
		var body string
		if err := rows.Scan(&e.Title, &e.Company, &e.Location, &e.Period, &body); err != nil {
			return nil, fmt.Errorf("catalog: scan experience: %w", err)
		}
		var b experienceBody
		if err := json.Unmarshal([]byte(body), &b); err != nil {
			return nil, fmt.Errorf("catalog: decode experience: %w", err)
		}
		e.Description, e.Achievements = b.Description, b.Achievements
		out = append(out, e)
	}
	return out, rows.Err()
}

const projectColumns = `slug, name, github, demo, image_url, body`

func scanProject(scan func(dest ...any) error) (content.Project, error) {
	var p content.Project
	var body string
	if err := scan(&p.Slug, &p.Name, &p.GitHub, &p.Demo, &p.ImageURL, &body); err != nil {
		return p, err
	}
	var b projectBody
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		return p, fmt.Errorf("catalog: decode project %q: %w", p.Slug, err)
	}
	p.Technologies, p.Description, p.Achievements, p.Media = b.Technologies, b.Description, b.Achievements, b.Media
	return p, nil
}

// Projects returns projects in display order.
func (c *Catalog) Projects(ctx context.Context) ([]content.Project, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query projects: %w", err)
	}
	defer rows.Close()

	var out []content.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Project returns the project with slug, or content.ErrNotFound.
func (c *Catalog) Project(ctx context.Context, slug string) (content.Project, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("%w: project %q", content.ErrNotFound, slug)
	}
	return p, err
}

// SkillCategories returns skill groups in display order.
func (c *Catalog) SkillCategories(ctx context.Context) ([]content.SkillCategory, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT c.position, c.title, s.skill
		FROM skill_categories c
		LEFT JOIN skills s ON s.category_position = c.position
		ORDER BY c.position, s.skill_position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query skills: %w", err)
	}
	defer rows.Close()

	var out []content.SkillCategory
	last := -1
	for rows.Next() {
		var pos int
		var category string
		var skill sql.NullString
		if err := rows.Scan(&pos, &category, &skill); err != nil {
			return nil, fmt.Errorf("catalog: scan skill: %w", err)
		}
		if pos != last {
			out = append(out, content.SkillCategory{Title: category, Skills: []string{}})
			last = pos
		}
		if skill.Valid {
			out[len(out)-1].Skills = append(out[len(out)-1].Skills, skill.String)
		}
	}
	return out, rows.Err()
}

// Organizations returns organizations in display order.
func (c *Catalog) Organizations(ctx context.Context) ([]content.Organization, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, role, period, affiliation, badge, body
		FROM organizations
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query organizations: %w", err)
	}
	defer rows.Close()

	var out []content.Organization
	for rows.Next() {
		var o content.Organization
		var body string
		if err := rows.Scan(&o.Name, &o.Role, &o.Period, &o.Affiliation, &o.Badge, &body); err != nil {
			return nil, fmt.Errorf("catalog: scan organization: %w", err)
		}
		var b organizationBody
		if err := json.Unmarshal([]byte(body), &b); err != nil {
			return nil, fmt.Errorf("catalog: decode organization: %w", err)
		}
		o.Achievements = b.Achievements
		out = append(out, o)
	}
	return out, rows.Err()
}

// Site assembles every section, for pages that render all of them.
func (c *Catalog) Site(ctx context.Context) (*content.Site, error) {
	var s content.Site
	var err error
	if s.Profile, err = c.Profile(ctx); err != nil {
		return nil, err
	}
	if s.Experiences, err = c.Experiences(ctx); err != nil {
		return nil, err
	}
	if s.Projects, err = c.Projects(ctx); err != nil {
		return nil, err
	}
	if s.Skills, err = c.SkillCategories(ctx); err != nil {
		return nil, err
	}
	if s.Organizations, err = c.Organizations(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}
