package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/sysgrid/pkg/simulator"
)

// SVGOptions configures the rendered tile canvas.
type SVGOptions struct {
	CellSize   int    // Pixel size of one grid cell
	ShowPorts  bool   // Draw port markers
	ShowRoutes bool   // Draw routed link tiles
	ShowTitles bool   // Draw title glyph text
	Background string // Canvas background fill
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:   16,
		ShowPorts:  true,
		ShowRoutes: true,
		ShowTitles: true,
		Background: "#1a1a2e",
	}
}

// ExportSVG renders a computed Simulator's grid as a tile canvas, one
// rect per grid cell, coloured by the top-most object occupying it.
func ExportSVG(sim *simulator.Simulator, opts SVGOptions) ([]byte, error) {
	if sim == nil {
		return nil, fmt.Errorf("simulator cannot be nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 16
	}
	if opts.Background == "" {
		opts.Background = "#1a1a2e"
	}

	layout := sim.Layout()
	width := len(layout)
	height := 0
	if width > 0 {
		height = len(layout[0])
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width*opts.CellSize, height*opts.CellSize)
	canvas.Rect(0, 0, width*opts.CellSize, height*opts.CellSize, fmt.Sprintf("fill:%s", opts.Background))

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			drawCell(canvas, layout[x][y], x, y, opts)
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

func drawCell(canvas *svg.SVG, stack []simulator.Object, x, y int, opts SVGOptions) {
	top, ok := topOf(stack)
	if !ok {
		return
	}

	px, py, size := x*opts.CellSize, y*opts.CellSize, opts.CellSize

	switch top.Kind {
	case simulator.KindSystemMargin:
		canvas.Rect(px, py, size, size, "fill:#0f0f1a")
	case simulator.KindSystem:
		fill := "#e2e8f0"
		if top.Blackbox {
			fill = "#2d3748"
		}
		canvas.Rect(px, py, size, size, fmt.Sprintf("fill:%s;stroke:#4a5568;stroke-width:1", fill))
	case simulator.KindPort:
		if opts.ShowPorts {
			canvas.Circle(px+size/2, py+size/2, size/3, "fill:#ffd700;stroke:#000;stroke-width:1")
		}
	case simulator.KindLink:
		if opts.ShowRoutes {
			canvas.Rect(px, py, size, size, "fill:#4299e1")
		}
	case simulator.KindSystemTitlePadding:
		canvas.Rect(px, py, size, size, "fill:#1a202c")
	case simulator.KindSystemTitle:
		if opts.ShowTitles {
			canvas.Text(px+size/2, py+size/2+size/4, top.Text,
				fmt.Sprintf("font-size:%dpx;fill:#cbd5e0;text-anchor:middle", size))
		}
	}
}

// topOf returns the top-most (last pushed) object in the stack, whether
// or not drawCell renders anything for it under the current options.
func topOf(stack []simulator.Object) (simulator.Object, bool) {
	if len(stack) == 0 {
		return simulator.Object{}, false
	}
	return stack[len(stack)-1], true
}

// SaveSVGToFile writes the SVG export to path with 0644 permissions.
func SaveSVGToFile(sim *simulator.Simulator, path string, opts SVGOptions) error {
	data, err := ExportSVG(sim, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
