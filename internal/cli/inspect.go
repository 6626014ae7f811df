package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/graph-module/graphdraw/pkg/graph"
	"github.com/graph-module/graphdraw/pkg/style"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().Foreground(colorGray).PaddingLeft(2)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scene>",
		Short: "Browse the cells of a built scene",
		Args:  cobra.ExactArgs(1),
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

			m, _, err := runner.Build(cmd.Context(), s, opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewCellListModel(graph.FromModel(m)),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// CellListModel - Interactive cell browser
// =============================================================================

// cellRow is one line of the browser.
type cellRow struct {
	kind   string
	id     string
	parent string
	value  string
	detail string
	style  style.Style
}

// CellListModel is the bubbletea model for browsing a built model.
type CellListModel struct {
	Rows   []cellRow
	Cursor int
	Height int
	Offset int
}

// NewCellListModel lists the vertices of doc followed by its edges.
func NewCellListModel(doc graph.Document) CellListModel {
	rows := make([]cellRow, 0, len(doc.Vertices)+len(doc.Edges))
	for _, v := range doc.Vertices {
		rows = append(rows, cellRow{
			kind:   "vertex",
			id:     v.ID,
			parent: v.Parent,
			value:  v.Value,
			detail: fmt.Sprintf("(%s, %s) %s×%s", coord(v.X), coord(v.Y), coord(v.Width), coord(v.Height)),
			style:  v.Style,
		})
	}
	for _, e := range doc.Edges {
		rows = append(rows, cellRow{
			kind:   "edge",
			id:     e.ID,
			parent: e.Parent,
			value:  e.Value,
			detail: orDash(e.Source) + " " + iconArrow + " " + orDash(e.Target),
			style:  e.Style,
		})
	}
	return CellListModel{Rows: rows, Height: 15}
}

func (m CellListModel) Init() tea.Cmd {
	return nil
}

func (m CellListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Rows); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m CellListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Cells"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty model)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.kind, r.id, orDash(r.parent), r.value, r.detail})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "ID", "Parent", "Value", "Geometry").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDetailStyle.Render(styleSummary(m.Rows[m.Cursor].style)))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// styleSummary formats a style as sorted key=value pairs.
func styleSummary(st style.Style) string {
	if len(st) == 0 {
		return "style: (none)"
	}
	parts := make([]string, 0, len(st))
	for _, k := range slices.Sorted(maps.Keys(st)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, st[k]))
	}
	return "style: " + strings.Join(parts, "; ")
}
