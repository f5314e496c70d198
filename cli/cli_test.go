package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chartd/core/render"
)

const wellPayload = `[
  {"optionType": "well", "scaleYMax": 0.5, "data": {"labels": ["1","2","3"], "datasets": [{"label": "wells", "data": [0.2, 0.5, 0.3]}]}},
  {"optionType": "well", "data": {"labels": ["a","b"], "datasets": [{"label": "wells", "data": [0.6, 0.4]}]}}
]`

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CHARTD_APP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommandWritesPNG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "wells.json")
	if err := os.WriteFile(in, []byte(wellPayload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	outPath := filepath.Join(dir, "wells.png")
	if _, err := runRoot(t, "", "render", "-f", in, "-W", "120", "-H", "80", "-o", outPath); err != nil {
		t.Fatalf("render: %v", err)
	}
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 160 {
		t.Fatalf("expected 120x160, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderCommandDataURIFromStdin(t *testing.T) {
	out, err := runRoot(t, wellPayload, "render", "-", "--data-uri", "-W", "100", "-H", "60")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, render.DataURIPrefix) {
		t.Fatalf("expected data uri on stdout, got %.40q", out)
	}
}

func TestRenderCommandRejectsUnknownTopLevel(t *testing.T) {
	_, err := runRoot(t, `{"optionType":"pie","data":{"labels":[],"datasets":[]}}`, "render", "-")
	if err == nil {
		t.Fatalf("expected error for unsupported payload")
	}
}

func TestRenderCommandRequiresPayload(t *testing.T) {
	if _, err := runRoot(t, "", "render"); err == nil {
		t.Fatalf("expected missing payload error")
	}
}
