// Package pipeline runs the scene → model → artifact pipeline shared by the
// CLI and the HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Build: validate the scene and insert it into a fresh model.Model
//     through the batch builder, honouring the dangling-reference policy.
//  2. Render: turn the model into SVG, PNG, DOT or JSON.
//
// Rendered artifacts are cached under a key derived from the scene content
// hash and every option that affects the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, s, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graph-module/graphdraw/pkg/cache"
	"github.com/graph-module/graphdraw/pkg/draw"
	gderrors "github.com/graph-module/graphdraw/pkg/errors"
	"github.com/graph-module/graphdraw/pkg/model"
	"github.com/graph-module/graphdraw/pkg/setting"
)

// =============================================================================
// Default Values
// =============================================================================

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultFormat is the format used when Options.Format is empty.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// contentTypes maps formats to MIME types.
var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatDOT:  "text/vnd.graphviz",
	FormatJSON: "application/json",
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON for API requests.
type Options struct {
	Format   string `json:"format,omitempty"`
	Dangling string `json:"dangling,omitempty"` // fail, skip or keep
	Detailed bool   `json:"detailed,omitempty"` // add cell ids to labels
	Refresh  bool   `json:"refresh,omitempty"`  // bypass the artifact cache

	// Settings of the model; nil uses setting.Default().
	Settings *setting.GraphConfig `json:"settings,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	policy    draw.DanglingPolicy
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model and Drawing are nil when the artifact came from the cache.
	Model   *model.Model
	Drawing *draw.Drawing

	SceneHash   string
	Format      string
	ContentType string
	Artifact    []byte

	Stats    Stats
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int
	Edges      int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return gderrors.New(gderrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	policy, err := draw.ParseDanglingPolicy(o.Dangling)
	if err != nil {
		return err
	}
	o.policy = policy
	o.Dangling = policy.String()
	if o.Settings == nil {
		def := setting.Default()
		o.Settings = &def
	}
	o.validated = true
	return nil
}

// DanglingPolicy returns the parsed dangling policy. Call
// ValidateAndSetDefaults first.
func (o *Options) DanglingPolicy() draw.DanglingPolicy { return o.policy }

// ArtifactKeyOpts returns the cache key options of this run.
func (o *Options) ArtifactKeyOpts() cache.ArtifactOpts {
	var settings string
	if o.Settings != nil {
		data, _ := json.Marshal(o.Settings)
		settings = cache.Hash(data)
	}
	return cache.ArtifactOpts{
		Format:   o.Format,
		Dangling: o.Dangling,
		Detailed: o.Detailed,
		Settings: settings,
	}
}

