package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graph-module/graphdraw/pkg/cache"
	"github.com/graph-module/graphdraw/pkg/draw"
	"github.com/graph-module/graphdraw/pkg/model"
	"github.com/graph-module/graphdraw/pkg/observability"
	"github.com/graph-module/graphdraw/pkg/scene"
	"github.com/graph-module/graphdraw/pkg/style"
)

// Runner executes the pipeline with caching. Stylesheet and Shapes are
// shared read-only; a scene's named styles go into a per-run copy of the
// stylesheet. Multiple goroutines can use the same Runner.
type Runner struct {
	Cache      cache.Cache
	Logger     *log.Logger
	Stylesheet *style.Stylesheet
	Shapes     *style.ShapeRegistry
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:      c,
		Logger:     logger,
		Stylesheet: style.NewStylesheet(),
		Shapes:     style.NewShapeRegistry(),
	}
}

// Build inserts s into a fresh model.
func (r *Runner) Build(ctx context.Context, s *scene.Scene, opts Options) (*model.Model, *draw.Drawing, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	logger := r.logger(opts)

	hooks := observability.Build()
	hooks.OnBuildStart(ctx, len(s.Vertices), len(s.Edges))
	start := time.Now()

	m := model.New(opts.Settings)
	m.SetLogger(logger)
	d, err := s.Apply(m, scene.ApplyOptions{
		Dangling: opts.DanglingPolicy(),
		Logger:   logger,
	})
	duration := time.Since(start)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, duration, err)
		return nil, nil, err
	}
	hooks.OnBuildComplete(ctx, m.Len(), duration, nil)

	logger.Debug("built scene",
		"name", s.Name,
		"vertices", len(m.Vertices()),
		"edges", len(m.Edges()),
		"duration", duration)
	return m, d, nil
}

// Execute builds and renders s, serving the artifact from the cache when
// possible.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	sceneHash, err := s.Hash()
	if err != nil {
		return nil, err
	}
	result := &Result{
		SceneHash:   sceneHash,
		Format:      opts.Format,
		ContentType: ContentType(opts.Format),
	}
	key := cache.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			logger.Debug("artifact cache hit", "format", opts.Format)
			result.Artifact = data
			result.CacheHit = true
			return result, nil
		} else if err != nil {
			logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	buildStart := time.Now()
	m, d, err := r.Build(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Model = m
	result.Drawing = d
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Vertices = len(m.Vertices())
	result.Stats.Edges = len(m.Edges())

	sheet, err := r.sheetFor(s)
	if err != nil {
		return nil, fmt.Errorf("styles: %w", err)
	}

	renderStart := time.Now()
	data, err := Render(ctx, m, opts.Format, RenderOptions{
		Stylesheet: sheet,
		Shapes:     r.Shapes,
		Detailed:   opts.Detailed,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = data
	result.Stats.RenderTime = time.Since(renderStart)

	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	logger.Info("rendered scene",
		"format", opts.Format,
		"bytes", len(data),
		"build", result.Stats.BuildTime,
		"render", result.Stats.RenderTime)
	return result, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// sheetFor returns the runner's stylesheet extended with the scene's named
// styles.
func (r *Runner) sheetFor(s *scene.Scene) (*style.Stylesheet, error) {
	base := r.Stylesheet
	if base == nil {
		base = style.NewStylesheet()
	}
	if len(s.Styles) == 0 {
		return base, nil
	}
	sheet := base.Clone()
	if err := s.RegisterStyles(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
