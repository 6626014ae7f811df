// Package setting holds the behaviour switches of a graph model.
//
// Settings files are TOML. Keys missing from a file keep their default:
//
//	readonly = false
//	allow_loops = true
//	multigraph = true
package setting

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	gderrors "github.com/graph-module/graphdraw/pkg/errors"
)

// GraphConfig are the per-model switches checked by pkg/model.
type GraphConfig struct {
	// Readonly rejects every move and resize.
	Readonly            bool `toml:"readonly" json:"readonly"`
	CellResize          bool `toml:"cell_resize" json:"cellResize"`
	CellMove            bool `toml:"cell_move" json:"cellMove"`
	Connectable         bool `toml:"connectable" json:"connectable"`
	ContainerResize     bool `toml:"container_resize" json:"containerResize"`
	Multigraph          bool `toml:"multigraph" json:"multigraph"`
	HTMLLabels          bool `toml:"html_labels" json:"htmlLabels"`
	VertexLabelsMovable bool `toml:"vertex_labels_movable" json:"vertexLabelsMovable"`
	AllowLoops          bool `toml:"allow_loops" json:"allowLoops"`
}

// Default returns the stock settings.
func Default() GraphConfig {
	return GraphConfig{
		Readonly:            false,
		CellResize:          true,
		CellMove:            true,
		Connectable:         true,
		ContainerResize:     false,
		Multigraph:          false,
		HTMLLabels:          true,
		VertexLabelsMovable: true,
		AllowLoops:          false,
	}
}

// Parse decodes TOML settings on top of Default.
func Parse(data []byte) (GraphConfig, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), gderrors.Wrap(gderrors.ErrCodeInvalidConfig, err, "invalid settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), gderrors.New(gderrors.ErrCodeInvalidConfig, "unknown setting %q", undecoded[0].String())
	}
	return cfg, nil
}

// Load reads a settings file. An empty path returns Default.
func Load(path string) (GraphConfig, error) {
	if path == "" {
		return Default(), nil
	}
	if err := gderrors.ValidatePath(path); err != nil {
		return Default(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), gderrors.Wrap(gderrors.ErrCodeFileNotFound, err, "settings file not found: %s", path)
		}
		return Default(), fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}
