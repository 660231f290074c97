// Package prefs persists poseview's UI preferences in
// ~/.config/poseview/prefs.toml. No sample data is ever stored.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/poseview/internal/config"
)

// Prefs holds user preferences for the viewer.
type Prefs struct {
	Theme string  `toml:"theme"`
	Zoom  float64 `toml:"zoom"`
}

const (
	defaultPrefsPath = "~/.config/poseview/prefs.toml"
	defaultTheme     = "Nightfox"
	defaultZoom      = 1.0

	// MinZoom and MaxZoom bound the camera zoom factor.
	MinZoom = 0.1
	MaxZoom = 5.0
)

// Defaults returns the preferences used when no file exists.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, Zoom: defaultZoom}
}

// ClampZoom limits z to [MinZoom, MaxZoom]; zero means the default.
func ClampZoom(z float64) float64 {
	switch {
	case z == 0:
		return defaultZoom
	case z < MinZoom:
		return MinZoom
	case z > MaxZoom:
		return MaxZoom
	default:
		return z
	}
}

// Load reads preferences from path, or the default path when empty. A
// missing or unreadable file yields Defaults and a nil error.
func Load(path string) (Prefs, error) {
	p := Defaults()
	resolved, err := resolve(path)
	if err != nil {
		return p, nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p, nil
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), nil
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	p.Zoom = ClampZoom(p.Zoom)
	return p, nil
}

// Save writes p to path atomically, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	p.Zoom = ClampZoom(p.Zoom)
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
