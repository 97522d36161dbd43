package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultContentParses(t *testing.T) {
	site, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if site.Profile.Name == "" {
		t.Fatal("expected a profile name")
	}
	if len(site.Projects) == 0 || len(site.Experiences) == 0 || len(site.Skills) == 0 || len(site.Organizations) == 0 {
		t.Fatalf("expected every section populated, got %d projects, %d experiences, %d skill groups, %d organizations",
			len(site.Projects), len(site.Experiences), len(site.Skills), len(site.Organizations))
	}
}

func TestParseRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing profile", "projects: []"},
		{"project without slug", "profile: {name: A}\nprojects: [{name: X}]"},
		{"duplicate slug", "profile: {name: A}\nprojects: [{slug: x, name: X}, {slug: x, name: Y}]"},
		{"bad media type", "profile: {name: A}\nprojects: [{slug: x, name: X, media: [{type: gif, url: /a.gif}]}]"},
		{"media without url", "profile: {name: A}\nprojects: [{slug: x, name: X, media: [{type: image}]}]"},
		{"experience without company", "profile: {name: A}\nexperience: [{title: Dev}]"},
		{"organization without name", "profile: {name: A}\norganizations: [{role: Member}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("profile: [unterminated")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	data := "profile: {name: Test Person}\nprojects: [{slug: demo, name: Demo}]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	site, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if site.Profile.Name != "Test Person" || site.Projects[0].Slug != "demo" {
		t.Fatalf("unexpected content: %+v", site)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
