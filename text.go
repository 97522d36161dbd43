package main

import "github.com/devpradp/portfolio/internal/content"

const (
	pageHome          = "home"
	pageProjects      = "projects"
	pageExperience    = "experience"
	pageOrganizations = "organizations"
)

var sectionHeadings = map[string]string{
	"experience":    "Experience",
	"projects":      "Projects",
	"skills":        "Technical Skills",
	"organizations": "Organizations",
	"technologies":  "Technologies & Languages",
	"description":   "Description",
	"achievements":  "Key Achievements",
	"duties":        "Responsibilities:",
	"highlights":    "Key Achievements:",
}

// pageTitle prefixes the site title with the page name on secondary pages.
func pageTitle(p content.Profile, page string) string {
	title := p.SiteTitle
	if title == "" {
		title = p.Name
	}
	if h, ok := sectionHeadings[page]; ok && page != pageHome {
		return h + " | " + title
	}
	return title
}
