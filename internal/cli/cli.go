// Package cli implements the graphdraw command-line interface.
//
// Commands:
//   - build: insert a scene into a model and print a summary
//   - render: write a scene as SVG, PNG, DOT or model JSON
//   - inspect: browse the cells of a built scene interactively
//   - serve: run the HTTP API
//   - cache: manage the local artifact cache
//   - version: print build information
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graph-module/graphdraw/pkg/buildinfo"
	"github.com/graph-module/graphdraw/pkg/cache"
	"github.com/graph-module/graphdraw/pkg/pipeline"
	"github.com/graph-module/graphdraw/pkg/scene"
	"github.com/graph-module/graphdraw/pkg/setting"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "graphdraw"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	settingsPath string
	dangling     string
	noCache      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Graphdraw builds and renders graph scenes",
		Long:         `Graphdraw inserts declarative batches of vertices and edges into a graph model and renders the result as SVG, PNG, DOT or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.settingsPath, "settings", "", "graph settings file (TOML)")
	flags.StringVar(&c.dangling, "dangling", "", "dangling edge policy: fail (default), skip, keep")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cc, err := newCache(c.noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// options returns pipeline options carrying the global flags.
func (c *CLI) options(format string) (pipeline.Options, error) {
	cfg, err := setting.Load(c.settingsPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Format:   format,
		Dangling: c.dangling,
		Settings: &cfg,
		Logger:   c.Logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// loadScene reads a scene file, logging its size.
func (c *CLI) loadScene(path string) (*scene.Scene, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded scene", "path", path, "vertices", len(s.Vertices), "edges", len(s.Edges))
	return s, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphdraw/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
