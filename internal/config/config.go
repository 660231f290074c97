package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Source names accepted in the source key.
const (
	SourceWebSocket = "websocket"
	SourceRedis     = "redis"
)

// Label is a label declared in the config file.
type Label struct {
	Name        string
	Renderables []string // empty uses DefaultRenderables
	Enabled     bool     // false: catalogued but off until toggled
}

// Config captures everything poseview reads from config.toml.
type Config struct {
	Source           string
	URL              string
	Group            string
	SessionTimestamp string

	RedisAddr    string
	RedisStream  string
	RedisStartID string

	LogFile     string
	MetricsAddr string

	Redraw             time.Duration
	PointInterval      int
	PointScale         float64
	DefaultRenderables []string
	Labels             []Label
}

const (
	defaultConfigPath       = "~/.config/poseview/config.toml"
	defaultLogFile          = "~/.local/share/poseview/poseview.log"
	defaultURL              = "ws://127.0.0.1:8765/ws/get/database"
	defaultGroup            = "session-test"
	defaultSessionTimestamp = "12345"
	defaultRedisAddr        = "127.0.0.1:6379"
	defaultRedisStream      = "my_stream"
	defaultRedisStartID     = "0"
	defaultRedrawMS         = 100
	defaultPointInterval    = 5
	defaultPointScale       = 1.0
)

var defaultRenderables = []string{"trail", "points", "gizmo", "cones"}

// DefaultLabel is drawn from the first sample without a config file.
const DefaultLabel = "Sample pose"

func defaultLabels() []Label {
	return []Label{{Name: DefaultLabel, Renderables: []string{"gizmo", "trail", "points"}, Enabled: true}}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:             SourceWebSocket,
		URL:                defaultURL,
		Group:              defaultGroup,
		SessionTimestamp:   defaultSessionTimestamp,
		RedisAddr:          defaultRedisAddr,
		RedisStream:        defaultRedisStream,
		RedisStartID:       defaultRedisStartID,
		LogFile:            mustExpand(defaultLogFile),
		Redraw:             defaultRedrawMS * time.Millisecond,
		PointInterval:      defaultPointInterval,
		PointScale:         defaultPointScale,
		DefaultRenderables: append([]string(nil), defaultRenderables...),
		Labels:             defaultLabels(),
	}
}

// Load locates and parses the poseview config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Source             string   `toml:"source"`
		URL                string   `toml:"url"`
		Group              string   `toml:"group"`
		SessionTimestamp   string   `toml:"session_timestamp"`
		RedisAddr          string   `toml:"redis_addr"`
		RedisStream        string   `toml:"redis_stream"`
		RedisStartID       string   `toml:"redis_start_id"`
		LogFile            string   `toml:"log_file"`
		MetricsAddr        string   `toml:"metrics_addr"`
		RedrawMS           int      `toml:"redraw_ms"`
		PointInterval      int      `toml:"point_interval"`
		PointScale         float64  `toml:"point_scale"`
		DefaultRenderables []string `toml:"default_renderables"`
		Labels             []struct {
			Name        string   `toml:"name"`
			Renderables []string `toml:"renderables"`
			Enabled     *bool    `toml:"enabled"`
		} `toml:"labels"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Source = orDefault(strings.ToLower(raw.Source), cfg.Source)
	cfg.URL = orDefault(raw.URL, cfg.URL)
	cfg.Group = orDefault(raw.Group, cfg.Group)
	cfg.SessionTimestamp = orDefault(raw.SessionTimestamp, cfg.SessionTimestamp)
	cfg.RedisAddr = orDefault(raw.RedisAddr, cfg.RedisAddr)
	cfg.RedisStream = orDefault(raw.RedisStream, cfg.RedisStream)
	cfg.RedisStartID = orDefault(raw.RedisStartID, cfg.RedisStartID)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if raw.RedrawMS > 0 {
		cfg.Redraw = time.Duration(raw.RedrawMS) * time.Millisecond
	}
	if raw.PointInterval > 0 {
		cfg.PointInterval = raw.PointInterval
	}
	if raw.PointScale > 0 {
		cfg.PointScale = raw.PointScale
	}
	if kinds := trimAll(raw.DefaultRenderables); len(kinds) > 0 {
		cfg.DefaultRenderables = kinds
	}

	if len(raw.Labels) > 0 {
		cfg.Labels = nil
	}
	for _, l := range raw.Labels {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return Config{}, fmt.Errorf("parse config: label entry without name")
		}
		enabled := true
		if l.Enabled != nil {
			enabled = *l.Enabled
		}
		cfg.Labels = append(cfg.Labels, Label{Name: name, Renderables: trimAll(l.Renderables), Enabled: enabled})
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values a file or flag may have set.
func (c Config) Validate() error {
	switch c.Source {
	case SourceWebSocket, SourceRedis:
	default:
		return fmt.Errorf("invalid source %q: want %q or %q", c.Source, SourceWebSocket, SourceRedis)
	}
	if c.PointInterval < 1 {
		return fmt.Errorf("point_interval must be at least 1, got %d", c.PointInterval)
	}
	if c.Redraw <= 0 {
		return fmt.Errorf("redraw interval must be positive, got %s", c.Redraw)
	}
	seen := make(map[string]bool, len(c.Labels))
	for _, l := range c.Labels {
		if seen[l.Name] {
			return fmt.Errorf("duplicate label %q", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}

// RenderablesFor returns the kinds configured for l.
func (c Config) RenderablesFor(l Label) []string {
	if len(l.Renderables) > 0 {
		return l.Renderables
	}
	return c.DefaultRenderables
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
