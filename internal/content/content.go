// Package content holds the portfolio's display records: profile,
// experience, projects, skills and organizations. Records are immutable
// once loaded.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("content: not found")
	ErrInvalid  = errors.New("content: invalid")
)

//go:embed content.yaml
var defaultContent []byte

type Media struct {
	Type string `yaml:"type" json:"type"`
	URL  string `yaml:"url" json:"url"`
	Alt  string `yaml:"alt,omitempty" json:"alt,omitempty"`
}

type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Initials    string `yaml:"initials" json:"initials"`
	Headline    string `yaml:"headline" json:"headline"`
	Summary     string `yaml:"summary" json:"summary"`
	SiteTitle   string `yaml:"site_title" json:"site_title"`
	Description string `yaml:"description" json:"description"`
	Links       []Link `yaml:"links" json:"links"`
}

type Experience struct {
	Title        string   `yaml:"title" json:"title"`
	Company      string   `yaml:"company" json:"company"`
	Location     string   `yaml:"location" json:"location"`
	Period       string   `yaml:"period" json:"period"`
	Description  []string `yaml:"description" json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

type Project struct {
	Slug         string   `yaml:"slug" json:"slug"`
	Name         string   `yaml:"name" json:"name"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	Description  []string `yaml:"description" json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	GitHub       string   `yaml:"github,omitempty" json:"github,omitempty"`
	Demo         string   `yaml:"demo,omitempty" json:"demo,omitempty"`
	ImageURL     string   `yaml:"image_url" json:"image_url"`
	Media        []Media  `yaml:"media,omitempty" json:"media,omitempty"`
}

type SkillCategory struct {
	Title  string   `yaml:"title" json:"title"`
	Skills []string `yaml:"skills" json:"skills"`
}

type Organization struct {
	Name         string   `yaml:"name" json:"name"`
	Role         string   `yaml:"role" json:"role"`
	Period       string   `yaml:"period" json:"period"`
	Affiliation  string   `yaml:"affiliation" json:"affiliation"`
	Badge        string   `yaml:"badge,omitempty" json:"badge,omitempty"`
	Achievements []string `yaml:"achievements" json:"achievements"`
}

// Site is the complete content of the portfolio.
type Site struct {
	Profile       Profile         `yaml:"profile" json:"profile"`
	Experiences   []Experience    `yaml:"experience" json:"experience"`
	Projects      []Project       `yaml:"projects" json:"projects"`
	Skills        []SkillCategory `yaml:"skills" json:"skills"`
	Organizations []Organization  `yaml:"organizations" json:"organizations"`
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("content: parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the content compiled into the binary.
func Default() (*Site, error) {
	return Parse(defaultContent)
}

// Load reads content from path, or the embedded default when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the records a page cannot render without.
func (s *Site) Validate() error {
	if strings.TrimSpace(s.Profile.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalid)
	}
	slugs := make(map[string]bool, len(s.Projects))
	for i, p := range s.Projects {
		if p.Slug == "" || p.Name == "" {
			return fmt.Errorf("%w: project %d needs a slug and a name", ErrInvalid, i)
		}
		if slugs[p.Slug] {
			return fmt.Errorf("%w: duplicate project slug %q", ErrInvalid, p.Slug)
		}
		slugs[p.Slug] = true
		for j, m := range p.Media {
			if m.Type != "image" && m.Type != "video" {
				return fmt.Errorf("%w: project %q media %d has type %q", ErrInvalid, p.Slug, j, m.Type)
			}
			if m.URL == "" {
				return fmt.Errorf("%w: project %q media %d has no url", ErrInvalid, p.Slug, j)
			}
		}
	}
	for i, e := range s.Experiences {
		if e.Title == "" || e.Company == "" {
			return fmt.Errorf("%w: experience %d needs a title and a company", ErrInvalid, i)
		}
	}
	for i, o := range s.Organizations {
		if o.Name == "" {
			return fmt.Errorf("%w: organization %d needs a name", ErrInvalid, i)
		}
	}
	for i, c := range s.Skills {
		if c.Title == "" {
			return fmt.Errorf("%w: skill category %d needs a title", ErrInvalid, i)
		}
	}
	return nil
}
