package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graph-module/graphdraw/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; "-" writes to stdout
	format   string // svg, png, dot or json
	detailed bool   // append cell ids to labels
	refresh  bool   // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Render a scene to SVG, PNG, DOT or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromOutput(opts.output)
			}
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <scene>.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, dot, json")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "append cell ids to labels")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached artifact exists")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, ro *renderOpts) error {
	s, err := c.loadScene(input)
	if err != nil {
		return err
	}
	opts, err := c.options(ro.format)
	if err != nil {
		return err
	}
	opts.Detailed = ro.detailed
	opts.Refresh = ro.refresh

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	res, err := runner.Execute(cmd.Context(), s, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	if ro.output == "-" {
		_, err := cmd.OutOrStdout().Write(res.Artifact)
		return err
	}

	path := outputPath(ro.output, input, res.Format)
	if err := os.WriteFile(path, res.Artifact, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Rendered %s", res.Format)
	if !res.CacheHit {
		printStats(out, res.Stats.Vertices, res.Stats.Edges, false)
	} else {
		printStats(out, len(s.Vertices), len(s.Edges), true)
	}
	printFile(out, path)
	return nil
}

// formatFromOutput infers the format from the output extension.
func formatFromOutput(output string) string {
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return pipeline.DefaultFormat
}

// outputPath derives the output file name. An empty output replaces the
// input extension with the format, never overwriting the input itself.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if path := base + "." + format; path != input {
		return path
	}
	return base + ".out." + format
}
