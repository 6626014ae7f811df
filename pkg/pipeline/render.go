package pipeline

import (
	"context"
	"time"

	"github.com/graph-module/graphdraw/pkg/graph"
	"github.com/graph-module/graphdraw/pkg/model"
	"github.com/graph-module/graphdraw/pkg/observability"
	"github.com/graph-module/graphdraw/pkg/render"
	"github.com/graph-module/graphdraw/pkg/style"
)

// RenderOptions configures the render stage.
type RenderOptions struct {
	Stylesheet *style.Stylesheet
	Shapes     *style.ShapeRegistry
	Detailed   bool
}

// Render produces the artifact of m in format.
func Render(ctx context.Context, m *model.Model, format string, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := renderFormat(ctx, m, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func renderFormat(ctx context.Context, m *model.Model, format string, opts RenderOptions) ([]byte, error) {
	if format == FormatJSON {
		return graph.Marshal(m)
	}

	dot := render.ToDOT(m, render.Options{
		Stylesheet: opts.Stylesheet,
		Shapes:     opts.Shapes,
		Detailed:   opts.Detailed,
	})
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatPNG:
		return render.RenderPNG(ctx, dot)
	default:
		return render.RenderSVG(ctx, dot)
	}
}
