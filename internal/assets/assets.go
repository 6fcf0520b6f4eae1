// Package assets embeds the stylesheet and client script shipped with every
// published site.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed static/*
var staticFS embed.FS

// StyleCSS returns the site stylesheet.
func StyleCSS() ([]byte, error) {
	return staticFS.ReadFile("static/css/style.css")
}

// ScriptJS returns the client script (sidebar toggling, table sorting).
func ScriptJS() ([]byte, error) {
	return staticFS.ReadFile("static/js/script.js")
}

// WriteTo copies the embedded asset tree into dir, preserving the
// css/ and js/ layout referenced by the generated pages.
func WriteTo(dir string) error {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	return fs.WalkDir(sub, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, path)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(sub, path)
		if err != nil {
			return fmt.Errorf("read embedded asset %s: %w", path, err)
		}
		return os.WriteFile(target, data, 0o644)
	})
}
