package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graph-module/graphdraw/pkg/buildinfo"
	gderrors "github.com/graph-module/graphdraw/pkg/errors"
)

const testScene = `{
  "name": "pipeline",
  "vertices": [
    {"id": "fetch", "value": "Fetch", "position": [20, 20], "size": [80, 30]},
    {"id": "store", "value": "Store", "position": [200, 20], "size": [80, 30]}
  ],
  "edges": [{"id": "e1", "source": "fetch", "target": "store", "value": "writes"}]
}`

// runCLI executes the root command with args and returns stdout, the log
// output and the command error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var logs, stdout, stderr bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), logs.String(), err
}

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"build", "render", "inspect", "serve", "cache", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"settings", "dangling", "no-cache"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	path := writeScene(t, "pipeline.json", testScene)

	out, logs, err := runCLI(t, "build", path)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{"2 vertices", "1 edges", "fetch", "store", "writes", "80×30"} {
		if !strings.Contains(out, want) {
			t.Errorf("build output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(logs, "Built 3 cells") {
		t.Errorf("build log missing cell count:\n%s", logs)
	}

	out, _, err = runCLI(t, "build", "-q", path)
	if err != nil {
		t.Fatalf("build -q: %v", err)
	}
	if strings.Contains(out, "Vertex") {
		t.Errorf("build -q printed tables:\n%s", out)
	}
}

func TestBuildCommandDangling(t *testing.T) {
	path := writeScene(t, "dangling.json", strings.Replace(testScene, `"target": "store"`, `"target": "ghost"`, 1))

	_, _, err := runCLI(t, "build", path)
	if !gderrors.Is(err, gderrors.ErrCodeDanglingReference) {
		t.Fatalf("build dangling = %v, want DANGLING_REFERENCE", err)
	}

	out, _, err := runCLI(t, "--dangling", "keep", "build", path)
	if err != nil {
		t.Fatalf("build --dangling keep: %v", err)
	}
	if !strings.Contains(out, "unconnected end") {
		t.Errorf("kept dangling edge not reported:\n%s", out)
	}

	if _, _, err := runCLI(t, "--dangling", "sometimes", "build", path); err == nil {
		t.Error("unknown dangling policy accepted")
	}
}

func TestBuildCommandSettings(t *testing.T) {
	path := writeScene(t, "pipeline.json", testScene)

	if _, _, err := runCLI(t, "--settings", filepath.Join(t.TempDir(), "missing.toml"), "build", path); err == nil {
		t.Error("missing settings file accepted")
	}

	settings := writeScene(t, "settings.toml", "allow_loops = true\n")
	if _, _, err := runCLI(t, "--settings", settings, "build", path); err != nil {
		t.Errorf("build with settings: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	path := writeScene(t, "pipeline.json", testScene)

	out, _, err := runCLI(t, "render", "-f", "dot", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	dotPath := strings.TrimSuffix(path, ".json") + ".dot"
	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatalf("render did not write %s: %v", dotPath, err)
	}
	if !strings.Contains(string(data), `"fetch" -> "store"`) {
		t.Errorf("DOT output missing edge:\n%s", data)
	}
	if !strings.Contains(out, dotPath) {
		t.Errorf("render output does not name the file:\n%s", out)
	}

	out, _, err = runCLI(t, "render", "-f", "json", "-o", "-", "--no-cache", path)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if !strings.Contains(out, `"vertices"`) || !strings.Contains(out, `"fetch"`) {
		t.Errorf("JSON output:\n%s", out)
	}
	if _, err := os.Stat(strings.TrimSuffix(path, ".json") + ".out.json"); err == nil {
		t.Error("render -o - also wrote a file")
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	path := writeScene(t, "pipeline.json", testScene)
	_, _, err := runCLI(t, "render", "-f", "gif", path)
	if !gderrors.Is(err, gderrors.ErrCodeInvalidFormat) {
		t.Errorf("render -f gif = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderCommandMissingScene(t *testing.T) {
	_, _, err := runCLI(t, "render", filepath.Join(t.TempDir(), "nope.json"))
	if !gderrors.Is(err, gderrors.ErrCodeFileNotFound) {
		t.Errorf("render missing file = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		want                  string
	}{
		{"out.svg", "scene.json", "svg", "out.svg"},
		{"", "scene.json", "svg", "scene.svg"},
		{"", "dir/scene.toml", "dot", "dir/scene.dot"},
		{"", "scene.json", "json", "scene.out.json"},
		{"", "scene", "png", "scene.png"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
		}
	}
}

func TestFormatFromOutput(t *testing.T) {
	tests := map[string]string{
		"":           "svg",
		"-":          "svg",
		"graph.png":  "png",
		"graph.dot":  "dot",
		"graph.json": "json",
		"graph.pdf":  "svg",
	}
	for output, want := range tests {
		if got := formatFromOutput(output); got != want {
			t.Errorf("formatFromOutput(%q) = %q, want %q", output, got, want)
		}
	}
}

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err = cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG = %q, want %q", dir, want)
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	path := writeScene(t, "pipeline.json", testScene)

	run := func(args ...string) string {
		t.Helper()
		var stdout bytes.Buffer
		root := New(&bytes.Buffer{}, LogInfo).RootCommand()
		root.SetArgs(args)
		root.SetOut(&stdout)
		root.SetErr(&bytes.Buffer{})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return stdout.String()
	}
	t.Setenv("XDG_CACHE_HOME", xdg)

	if got := strings.TrimSpace(run("cache", "path")); got != filepath.Join(xdg, appName) {
		t.Errorf("cache path = %q", got)
	}
	if out := run("cache", "clear"); !strings.Contains(out, "Cache is empty") {
		t.Errorf("cache clear on missing dir = %q", out)
	}

	run("render", "-f", "dot", "-o", filepath.Join(t.TempDir(), "a.dot"), path)
	if out := run("render", "-f", "dot", "-o", filepath.Join(t.TempDir(), "b.dot"), path); !strings.Contains(out, "cached") {
		t.Errorf("second render not served from cache:\n%s", out)
	}
	if out := run("cache", "clear"); !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "graphdraw "+buildinfo.Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "graphdraw") {
		t.Errorf("bash completion does not mention graphdraw")
	}
}
