package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/devpradp/portfolio/internal/content"
)

func openDefault(t *testing.T) (*Catalog, *content.Site) {
	t.Helper()
	site, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	c, err := Open(context.Background(), site)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, site
}

func TestCatalogRoundTripsSite(t *testing.T) {
	c, site := openDefault(t)
	ctx := context.Background()

	got, err := c.Site(ctx)
	if err != nil {
		t.Fatalf("Site failed: %v", err)
	}
	if got.Profile.Name != site.Profile.Name || len(got.Profile.Links) != len(site.Profile.Links) {
		t.Fatalf("profile mismatch: %+v", got.Profile)
	}
	if len(got.Projects) != len(site.Projects) {
		t.Fatalf("expected %d projects, got %d", len(site.Projects), len(got.Projects))
	}
	for i := range site.Projects {
		if got.Projects[i].Slug != site.Projects[i].Slug {
			t.Fatalf("project %d: expected %q, got %q", i, site.Projects[i].Slug, got.Projects[i].Slug)
		}
		if len(got.Projects[i].Media) != len(site.Projects[i].Media) {
			t.Fatalf("project %d: media count mismatch", i)
		}
	}
	if len(got.Experiences) != len(site.Experiences) || got.Experiences[0].Company != site.Experiences[0].Company {
		t.Fatalf("experience mismatch: %+v", got.Experiences)
	}
	if len(got.Organizations) != len(site.Organizations) || got.Organizations[0].Badge != site.Organizations[0].Badge {
		t.Fatalf("organization mismatch: %+v", got.Organizations)
	}
	for i := range site.Skills {
		if got.Skills[i].Title != site.Skills[i].Title || len(got.Skills[i].Skills) != len(site.Skills[i].Skills) {
			t.Fatalf("skill category %d mismatch: %+v", i, got.Skills[i])
		}
	}
}

func TestCatalogProjectLookup(t *testing.T) {
	c, site := openDefault(t)
	ctx := context.Background()

	want := site.Projects[0]
	p, err := c.Project(ctx, want.Slug)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if p.Name != want.Name || len(p.Technologies) != len(want.Technologies) {
		t.Fatalf("unexpected project: %+v", p)
	}

	if _, err := c.Project(ctx, "no-such-project"); !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected content.ErrNotFound, got %v", err)
	}
}

func TestCatalogIsReadOnly(t *testing.T) {
	c, _ := openDefault(t)
	if _, err := c.db.Exec(`DELETE FROM projects`); err == nil {
		t.Fatal("expected writes to be refused after seeding")
	}
}

func TestEmptySkillCategorySurvives(t *testing.T) {
	site := &content.Site{
		Profile: content.Profile{Name: "Test Person"},
		Skills: []content.SkillCategory{
			{Title: "Languages", Skills: []string{"Go"}},
			{Title: "Coming soon"},
			{Title: "Tools", Skills: []string{"Git", "Docker"}},
		},
	}
	c, err := Open(context.Background(), site)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	got, err := c.SkillCategories(context.Background())
	if err != nil {
		t.Fatalf("SkillCategories failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %+v", got)
	}
	if got[1].Title != "Coming soon" || len(got[1].Skills) != 0 {
		t.Fatalf("expected the empty category kept in place, got %+v", got[1])
	}
	if got[2].Title != "Tools" || len(got[2].Skills) != 2 || got[2].Skills[1] != "Docker" {
		t.Fatalf("unexpected last category: %+v", got[2])
	}
}
