package svg_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quantumtie/internal/domain"
	"quantumtie/internal/svg"
)

func TestRender_CellsAndBrightness(t *testing.T) {
	var f domain.Frame
	f[9] = domain.Pixel{R: 100, G: 75, B: 0}
	b, err := svg.Render(f, "10110", svg.DefaultBrighten)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(b)

	if n := strings.Count(out, "<rect "); n != 64 {
		t.Fatalf("rects = %d, want 64", n)
	}
	// pixel 9 is at column 1, row 1; 100*2.5 = 250, 75*2.5 = 187
	if !strings.Contains(out, `x="16" y="16" width="16" height="16" fill="rgb(250,187,0)"`) {
		t.Fatalf("pixel 9 not rendered as expected:\n%s", out)
	}
	if !strings.Contains(out, "Qubit Pattern: 10110") {
		t.Fatal("label missing")
	}
}

func TestRender_ClampsAt255(t *testing.T) {
	f := domain.Fill(domain.Pixel{R: 255, G: 120, B: 101})
	b, err := svg.Render(f, "x", svg.DefaultBrighten)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(b), `fill="rgb(255,255,252)"`) {
		t.Fatalf("colours not clamped:\n%s", b)
	}
}

func TestWriter_Files(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "svg")
	w, err := svg.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(dir, "qubits.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), `content="2.5"`) || !strings.Contains(string(index), "pixels.html") {
		t.Fatalf("unexpected index page:\n%s", index)
	}

	if err := w.ShowResult(domain.Frame{}, "00000"); err != nil {
		t.Fatalf("show result: %v", err)
	}
	px, err := os.ReadFile(filepath.Join(dir, "pixels.html"))
	if err != nil {
		t.Fatalf("read pixels: %v", err)
	}
	if !strings.Contains(string(px), "Qubit Pattern: 00000") {
		t.Fatal("pixels page missing label")
	}
}
