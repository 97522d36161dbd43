package main

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/devpradp/portfolio/internal/config"
	"github.com/devpradp/portfolio/internal/content"
	"github.com/devpradp/portfolio/internal/content/catalog"
	"github.com/devpradp/portfolio/internal/widget"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	site, err := content.Load(cfg.ContentFile)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	cat, err := catalog.Open(context.Background(), site)
	if err != nil {
		log.Fatalf("Failed to open content catalog: %v", err)
	}
	defer cat.Close()

	r := newRouter(cfg, cat)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: withCORS(cfg, r),
	}

	log.Printf("Serving %s on port %s", site.Profile.SiteTitle, cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// loadConfig reads ENV_FILE on top of the .env autoload when it is set.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if path := os.Getenv("ENV_FILE"); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withCORS lets other origins read the JSON content API.
func withCORS(cfg *config.Config, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(h)
}

func newRouter(cfg *config.Config, cat *catalog.Catalog) *gin.Engine {
	r := gin.Default()
	r.SetFuncMap(template.FuncMap{
		"lower": strings.ToLower,
		"inc":   func(i int) int { return i + 1 },
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)

	r.Static("/images", cfg.ImagesDir)
	r.Static("/static", cfg.StaticDir)

	r.Use(themeMiddleware(cfg.ThemeCookie))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Home page: every section on one page
	r.GET("/", renderPage(cat, "index.html", pageHome))

	// Multi-page variant
	r.GET("/projects", renderPage(cat, "projects.html", pageProjects))
	r.GET("/experience", renderPage(cat, "experience.html", pageExperience))
	r.GET("/organizations", renderPage(cat, "organizations.html", pageOrganizations))

	// Project details for the modal
	api := r.Group("/api")
	api.GET("/projects", func(c *gin.Context) {
		projects, err := cat.Projects(c.Request.Context())
		if err != nil {
			log.Printf("Error loading projects: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load projects"})
			return
		}
		c.JSON(http.StatusOK, projects)
	})
	api.GET("/projects/:slug", func(c *gin.Context) {
		project, err := cat.Project(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		if err != nil {
			log.Printf("Error loading project %s: %v", c.Param("slug"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
			return
		}
		c.JSON(http.StatusOK, project)
	})

	setupThemeRoutes(r, cfg.ThemeCookie)

	return r
}

func renderPage(cat *catalog.Catalog, tmpl, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site, err := cat.Site(c.Request.Context())
		if err != nil {
			log.Printf("Error loading content for %s: %v", page, err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"error": "Sorry, this page could not be loaded. Please try again later.",
				"Theme": themeFrom(c),
			})
			return
		}
		c.HTML(http.StatusOK, tmpl, pageData(c, site, page))
	}
}

func pageData(c *gin.Context, site *content.Site, page string) gin.H {
	expanded, _ := widget.NewAccordion(len(site.Experiences)).Expanded()
	expandedOrg, _ := widget.NewAccordion(len(site.Organizations)).Expanded()
	return gin.H{
		"Title":              pageTitle(site.Profile, page),
		"Page":               page,
		"Theme":              themeFrom(c),
		"ThemeCookie":        c.GetString(themeCookieKey),
		"NavItems":           widget.NavItems,
		"Headings":           sectionHeadings,
		"Profile":            site.Profile,
		"Experiences":        site.Experiences,
		"Projects":           site.Projects,
		"Skills":             site.Skills,
		"Organizations":      site.Organizations,
		"ExpandedExperience": expanded,
		"ExpandedOrg":        expandedOrg,
	}
}
