package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/graph-module/graphdraw/pkg/graph"
	"github.com/graph-module/graphdraw/pkg/model"
)

// buildCommand creates the build command, which inserts a scene into a
// fresh model and prints what was created.
func (c *CLI) buildCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "build <scene>",
		Short: "Build a scene and summarize the resulting model",
		Long: `Build inserts the vertices and edges of a scene file (JSON, TOML or HCL)
into a new graph model and prints a table of the created cells.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadScene(args[0])
			if err != nil {
				return err
			}
			opts, err := c.options("")
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			start := time.Now()
			m, _, err := runner.Build(cmd.Context(), s, opts)
			if err != nil {
				return err
			}
			logElapsed(c.Logger, start, fmt.Sprintf("Built %d cells", m.Len()))

			out := cmd.OutOrStdout()
			printSuccess(out, "Built %s", args[0])
			printStats(out, len(m.Vertices()), len(m.Edges()), false)
			if !quiet {
				printModel(out, m)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary line")
	return cmd
}

// printModel prints vertex and edge tables for m.
func printModel(w io.Writer, m *model.Model) {
	doc := graph.FromModel(m)

	if len(doc.Vertices) > 0 {
		rows := make([][]string, 0, len(doc.Vertices))
		for _, v := range doc.Vertices {
			rows = append(rows, []string{
				v.ID, orDash(v.Parent), v.Value,
				coord(v.X) + "," + coord(v.Y),
				coord(v.Width) + "×" + coord(v.Height),
			})
		}
		fmt.Fprintln(w, renderTable([]string{"Vertex", "Parent", "Value", "Position", "Size"}, rows))
	}

	if len(doc.Edges) > 0 {
		rows := make([][]string, 0, len(doc.Edges))
		for _, e := range doc.Edges {
			rows = append(rows, []string{e.ID, orDash(e.Source), orDash(e.Target), e.Value})
		}
		fmt.Fprintln(w, renderTable([]string{"Edge", "Source", "Target", "Value"}, rows))
	}

	for _, e := range doc.Edges {
		if e.Source == "" || e.Target == "" {
			printWarning(w, "edge %s has an unconnected end", e.ID)
		}
	}
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
