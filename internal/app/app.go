package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/five82/poseview/internal/config"
	"github.com/five82/poseview/internal/metrics"
	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/prefs"
	"github.com/five82/poseview/internal/render"
	"github.com/five82/poseview/internal/scene"
	"github.com/five82/poseview/internal/session"
	"github.com/five82/poseview/internal/state"
	"github.com/five82/poseview/internal/stream"
	"github.com/five82/poseview/internal/ui"
)

// sampleBuffer is how many decoded samples may wait for the UI loop.
const sampleBuffer = 1024

// Options configure the poseview application. Non-empty overrides replace
// the matching config file values.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/poseview/prefs.toml

	Source      string
	URL         string
	RedisAddr   string
	RedisStream string
	MetricsAddr string
	LogFile     string
}

func (o Options) apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&cfg.Source, strings.ToLower(o.Source))
	set(&cfg.URL, o.URL)
	set(&cfg.RedisAddr, o.RedisAddr)
	set(&cfg.RedisStream, o.RedisStream)
	set(&cfg.MetricsAddr, o.MetricsAddr)
	if o.LogFile != "" {
		if p, err := config.ExpandPath(o.LogFile); err == nil {
			cfg.LogFile = p
		}
	}
}

// Run boots the poseview TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := redirectLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Printf("metrics server failed: %v", err)
			}
		}()
	}

	sc := scene.New()
	sess, err := newSession(cfg, sc, m)
	if err != nil {
		return err
	}

	src, closeSrc, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer func() {
		cancel()
		closeSrc()
	}()

	store := &state.Store{}
	samples := make(chan pose.Sample, sampleBuffer)
	StartPump(ctx, src, store, m, samples, 0)

	return ui.Run(ui.Options{
		Context:   ctx,
		Session:   sess,
		Scene:     sc,
		Store:     store,
		Samples:   samples,
		Redraw:    cfg.Redraw,
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		Zoom:      userPrefs.Zoom,
		PrefsPath: opts.PrefsPath,
	})
}

// newSession builds the session and registers the labels named in cfg.
// Enabled labels are active from the start; disabled ones wait for a toggle.
func newSession(cfg config.Config, sc *scene.Scene, m *metrics.Metrics) (*session.Session, error) {
	ropts := render.Options{PointInterval: cfg.PointInterval, PointScale: cfg.PointScale}
	template, err := render.Factories(cfg.DefaultRenderables, ropts)
	if err != nil {
		return nil, fmt.Errorf("default renderables: %w", err)
	}
	sess := session.New(session.Options{
		Surface:  sc,
		Template: template,
		Metrics:  m,
		Logf:     log.Printf,
	})

	for _, l := range cfg.Labels {
		factories, err := render.Factories(cfg.RenderablesFor(l), ropts)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", l.Name, err)
		}
		if !l.Enabled {
			sess.Declare(l.Name, factories, true)
			continue
		}
		if err := sess.Preregister(l.Name, factories); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// newSource returns the configured transport and a cleanup func.
func newSource(cfg config.Config) (stream.Source, func(), error) {
	switch cfg.Source {
	case config.SourceRedis:
		rs, err := stream.NewRedisStream(&redis.Options{Addr: cfg.RedisAddr}, cfg.RedisStream)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis source: %w", err)
		}
		rs.StartID = cfg.RedisStartID
		return rs, func() { _ = rs.Close() }, nil
	default:
		ws := &stream.WebSocketSource{
			URL:  cfg.URL,
			Open: stream.OpenRequest{Group: cfg.Group, Timestamp: cfg.SessionTimestamp},
		}
		return ws, func() {}, nil
	}
}

// redirectLog sends the standard logger to path, since the TUI owns the
// terminal. The returned func restores stderr and closes the file.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
