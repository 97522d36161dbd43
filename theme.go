package main

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devpradp/portfolio/internal/theme"
)

const (
	themeKey        = "theme"
	themeCookieKey  = "themeCookie"
	themeCookieAge  = 365 * 24 * 3600
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// cookieStore keeps the preference in a cookie readable by the page
// script, so server rendering and the client agree on the first paint.
type cookieStore struct {
	c    *gin.Context
	name string
}

func (s *cookieStore) Load() (theme.Theme, bool, error) {
	v, err := s.c.Cookie(s.name)
	if err != nil {
		return "", false, nil
	}
	t, err := theme.Parse(v)
	if err != nil {
		// A tampered cookie is treated as no preference
		return "", false, nil
	}
	return t, true, nil
}

func (s *cookieStore) Save(t theme.Theme) error {
	s.c.SetCookie(s.name, string(t), themeCookieAge, "/", "", false, false)
	return nil
}

// systemTheme reads the client hint for the OS color scheme.
func systemTheme(c *gin.Context) func() theme.Theme {
	return func() theme.Theme {
		if strings.EqualFold(strings.Trim(c.GetHeader(colorSchemeHint), `"`), "dark") {
			return theme.Dark
		}
		return theme.Light
	}
}

func newThemeManager(c *gin.Context, cookie string) *theme.Manager {
	m := theme.NewManager(&cookieStore{c: c, name: cookie}, systemTheme(c))
	if _, err := m.Init(); err != nil {
		log.Printf("Error loading theme preference: %v", err)
	}
	return m
}

// Resolves the theme for rendered pages
func themeMiddleware(cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Assets don't need a theme
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/favicon") {
			c.Next()
			return
		}

		c.Header("Accept-CH", colorSchemeHint)
		c.Header("Vary", colorSchemeHint)
		c.Set(themeKey, newThemeManager(c, cookie).Current())
		c.Set(themeCookieKey, cookie)
		c.Next()
	}
}

func themeFrom(c *gin.Context) theme.Theme {
	if v, ok := c.Get(themeKey); ok {
		if t, ok := v.(theme.Theme); ok {
			return t
		}
	}
	return theme.Light
}

// Setup the theme toggle used when the page script is unavailable
func setupThemeRoutes(r *gin.Engine, cookie string) {
	r.POST("/theme", func(c *gin.Context) {
		m := newThemeManager(c, cookie)

		var next theme.Theme
		var err error
		if v := c.PostForm("theme"); v != "" {
			next, err = theme.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown theme"})
				return
			}
			err = m.Set(next)
		} else {
			next, err = m.Toggle()
		}
		if err != nil {
			log.Printf("Error saving theme: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "application/json") {
			c.JSON(http.StatusOK, gin.H{"theme": next})
			return
		}
		c.Redirect(http.StatusSeeOther, backTo(c))
	})
}

// backTo returns the same-host path of the Referer, or "/".
func backTo(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") {
		return "/"
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return "/"
	}
	if strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	return ref.Path
}
