package setting

import (
	"os"
	"path/filepath"
	"testing"

	gderrors "github.com/graph-module/graphdraw/pkg/errors"
)

func TestDefault(t *testing.T) {
	want := GraphConfig{
		CellResize:          true,
		CellMove:            true,
		Connectable:         true,
		HTMLLabels:          true,
		VertexLabelsMovable: true,
	}
	if got := Default(); got != want {
		t.Errorf("Default() = %+v, want %+v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		modify  func(*GraphConfig)
		wantErr gderrors.Code
	}{
		{name: "empty", input: "", modify: func(*GraphConfig) {}},
		{
			name:  "partial override",
			input: "allow_loops = true\nmultigraph = true\n",
			modify: func(c *GraphConfig) {
				c.AllowLoops = true
				c.Multigraph = true
			},
		},
		{
			name:   "disable default-on key",
			input:  "cell_move = false",
			modify: func(c *GraphConfig) { c.CellMove = false },
		},
		{name: "syntax error", input: "readonly = ", wantErr: gderrors.ErrCodeInvalidConfig},
		{name: "unknown key", input: "zoom = 2", wantErr: gderrors.ErrCodeInvalidConfig},
		{name: "wrong type", input: "readonly = \"yes\"", wantErr: gderrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				if !gderrors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			want := Default()
			tt.modify(&want)
			if got != want {
				t.Errorf("Parse() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	if got, err := Load(""); err != nil || got != Default() {
		t.Errorf("Load(\"\") = %+v, %v; want defaults", got, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "graph.toml")
	if err := os.WriteFile(path, []byte("readonly = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Readonly || !got.CellMove {
		t.Errorf("Load() = %+v, want readonly with defaults kept", got)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !gderrors.Is(err, gderrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, gderrors.ErrCodeFileNotFound)
	}
}
