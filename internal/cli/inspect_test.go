package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/graph-module/graphdraw/pkg/graph"
	"github.com/graph-module/graphdraw/pkg/style"
)

func sampleDocument() graph.Document {
	return graph.Document{
		Vertices: []graph.Vertex{
			{ID: "a", Value: "A", X: 10, Y: 20, Width: 80, Height: 30, Style: style.Style{"fillColor": "red", "dashed": true}},
			{ID: "b", Parent: "a", Value: "B", Width: 40, Height: 40},
		},
		Edges: []graph.Edge{
			{ID: "e", Source: "a", Target: "b", Value: "uses"},
			{ID: "loose", Source: "a"},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m CellListModel, msgs ...tea.Msg) (CellListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(CellListModel)
	}
	return m, cmd
}

func TestNewCellListModel(t *testing.T) {
	m := NewCellListModel(sampleDocument())
	if len(m.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(m.Rows))
	}
	if m.Rows[0].kind != "vertex" || m.Rows[2].kind != "edge" {
		t.Errorf("vertices must come before edges: %+v", m.Rows)
	}
	if m.Rows[0].detail != "(10, 20) 80×30" {
		t.Errorf("vertex detail = %q", m.Rows[0].detail)
	}
	if m.Rows[3].detail != "a → —" {
		t.Errorf("loose edge detail = %q", m.Rows[3].detail)
	}
}

func TestCellListNavigation(t *testing.T) {
	m := NewCellListModel(sampleDocument())

	m, _ = update(m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("up at top moved cursor to %d", m.Cursor)
	}
	m, _ = update(m, key("down"), key("j"), key("down"), key("down"))
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want clamped at 3", m.Cursor)
	}
	m, _ = update(m, key("g"))
	if m.Cursor != 0 {
		t.Errorf("g: cursor = %d, want 0", m.Cursor)
	}
	m, _ = update(m, key("G"))
	if m.Cursor != 3 {
		t.Errorf("G: cursor = %d, want 3", m.Cursor)
	}
}

func TestCellListScrolling(t *testing.T) {
	m := NewCellListModel(sampleDocument())
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 12})
	if m.Height != 5 {
		t.Fatalf("height = %d, want minimum 5", m.Height)
	}
	m.Height = 2
	m, _ = update(m, key("down"), key("down"), key("down"))
	if m.Offset != 2 {
		t.Errorf("offset = %d, want 2", m.Offset)
	}
	m, _ = update(m, key("up"), key("up"), key("up"))
	if m.Offset != 0 {
		t.Errorf("offset = %d, want 0", m.Offset)
	}
}

func TestCellListQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		_, cmd := update(NewCellListModel(sampleDocument()), key(k))
		if cmd == nil {
			t.Fatalf("%s: no command returned", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", k)
		}
	}
}

func TestCellListView(t *testing.T) {
	m := NewCellListModel(sampleDocument())
	view := m.View()
	for _, want := range []string{"Cells", "vertex", "uses", "▸", "style: dashed=true; fillColor=red", "[1/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	empty := NewCellListModel(graph.Document{}).View()
	if !strings.Contains(empty, "(empty model)") {
		t.Errorf("empty View() = %q", empty)
	}
}
