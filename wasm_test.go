package main

import (
	"go/build"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/devpradp/portfolio"

// Server packages the browser client must not pull in. The SQLite driver
// has no js/wasm build at all.
var serverOnly = map[string]bool{
	"modernc.org/sqlite":       true,
	"github.com/gin-gonic/gin": true,
	"github.com/rs/cors":       true,
	"github.com/joho/godotenv": true,

	modulePath + "/internal/content/catalog": true,
}

func TestBrowserClientBuildsForWasm(t *testing.T) {
	ctx := build.Default
	ctx.GOOS, ctx.GOARCH = "js", "wasm"
	ctx.CgoEnabled = false

	seen := make(map[string]bool)
	var walk func(importPath string)
	walk = func(importPath string) {
		if seen[importPath] {
			return
		}
		seen[importPath] = true
		dir := filepath.FromSlash(strings.TrimPrefix(importPath, modulePath+"/"))
		pkg, err := ctx.ImportDir(dir, 0)
		if err != nil {
			t.Fatalf("%s: %v", importPath, err)
		}
		for _, imp := range pkg.Imports {
			if serverOnly[imp] {
				t.Errorf("%s imports %s, which the browser client cannot build", importPath, imp)
				continue
			}
			if strings.HasPrefix(imp, modulePath+"/") {
				walk(imp)
			}
		}
	}
	walk(modulePath + "/cmd/sitewasm")

	if !seen[modulePath+"/internal/dom"] || !seen[modulePath+"/internal/slideshow"] {
		t.Fatal("expected the browser client to reach the dom adapter and the slideshow")
	}
}
