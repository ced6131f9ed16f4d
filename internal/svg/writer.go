package svg

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"quantumtie/internal/domain"
)

const (
	cellSize = 16

	// DefaultBrighten is the colour multiplier applied to LED values.
	DefaultBrighten = 2.5
)

var indexTmpl = template.Must(template.New("qubits").Parse(`<!DOCTYPE html>
<html>
<head>
<meta http-equiv="refresh" content="2.5">
<title>SenseHat Display</title>
</head>
<body>
<h3>Latest Display on RPi SenseHat</h3>
<object data="pixels.html" width="400" height="500"></object>
</body>
</html>
`))

var pixelsTmpl = template.Must(template.New("pixels").Parse(`<svg width="{{.Size}}" height="{{.Size}}" xmlns="http://www.w3.org/2000/svg">
{{- range .Cells}}
<rect x="{{.X}}" y="{{.Y}}" width="{{$.Cell}}" height="{{$.Cell}}" fill="rgb({{.R}},{{.G}},{{.B}})" stroke="rgb(255,255,255)" stroke-width="1" />
{{- end}}
</svg><br/>Qubit Pattern: {{.Label}}
`))

type cell struct {
	X, Y    int
	R, G, B int
}

// Writer writes the browser view into Dir.
type Writer struct {
	Dir      string
	Brighten float64
}

// Open creates dir and writes the self-refreshing index page.
func Open(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("svg dir: %w", err)
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, nil); err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(dir, "qubits.html"), buf.Bytes()); err != nil {
		return nil, err
	}
	return &Writer{Dir: dir, Brighten: DefaultBrighten}, nil
}

// ShowResult replaces pixels.html with the rendered frame.
func (w *Writer) ShowResult(f domain.Frame, p domain.Pattern) error {
	b, err := Render(f, p.String(), w.Brighten)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(w.Dir, "pixels.html"), b)
}

// Render returns the pixels.html document for f.
func Render(f domain.Frame, label string, brighten float64) ([]byte, error) {
	cells := make([]cell, len(f))
	for i, p := range f {
		cells[i] = cell{
			X: cellSize * (i % 8),
			Y: cellSize * (i / 8),
			R: scale(p.R, brighten),
			G: scale(p.G, brighten),
			B: scale(p.B, brighten),
		}
	}
	var buf bytes.Buffer
	err := pixelsTmpl.Execute(&buf, map[string]any{
		"Size":  cellSize * 8,
		"Cell":  cellSize,
		"Cells": cells,
		"Label": label,
	})
	return buf.Bytes(), err
}

func scale(c uint8, b float64) int {
	v := int(float64(c) * b)
	if v > 255 {
		return 255
	}
	return v
}

// writeFile writes via a temp file so a browser never reads a partial page.
func writeFile(path string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ domain.ResultSink = (*Writer)(nil)
