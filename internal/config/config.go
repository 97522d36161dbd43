package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrInvalidPort = errors.New("config: invalid port")

// Config holds the server configuration.
type Config struct {
	Port         string
	Mode         string
	TemplateGlob string
	StaticDir    string
	ImagesDir    string
	ContentFile  string
	CORSOrigins  []string
	ThemeCookie  string
}

// Load builds the configuration from environment variables or defaults.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Mode:         getEnv("GIN_MODE", ""),
		TemplateGlob: getEnv("TEMPLATE_GLOB", "templates/*"),
		StaticDir:    getEnv("STATIC_DIR", "./static"),
		ImagesDir:    getEnv("IMAGES_DIR", "./images"),
		ContentFile:  getEnv("CONTENT_FILE", ""),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		ThemeCookie:  getEnv("THEME_COOKIE", "theme"),
	}
}

// LoadFile reads a .env file into the environment, without overriding
// variables that are already set, and then calls Load.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Load(), nil
}

// Validate checks values the server cannot start without.
func (c *Config) Validate() error {
	n, err := strconv.Atoi(c.Port)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	if c.ThemeCookie == "" {
		return errors.New("config: THEME_COOKIE must not be empty")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
