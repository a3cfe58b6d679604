package simulator

import (
	"github.com/dshills/sysgrid/pkg/grid"
	"github.com/dshills/sysgrid/pkg/model"
)

// rasterizeAll is step 7: paints every visible (non-ancestor-hidden)
// system's margin ring, interior, ports and title onto the grid.
func (s *Simulator) rasterizeAll() {
	for _, sys := range s.tree.All() {
		if sys == s.tree.Root || sys.Hidden {
			continue
		}
		s.rasterizeSystem(sys)
	}
}

func (s *Simulator) rasterizeSystem(sys *model.System) {
	w, h := sys.Size.Width, sys.Size.Height
	x0, y0 := sys.WorldPosition.X, sys.WorldPosition.Y
	blackbox := sys.IsLeaf() || sys.HideSystems

	s.paintMarginRing(x0, y0, w, h)

	interiorWeight := 1.0
	if blackbox {
		interiorWeight = grid.Infinity
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			variant := classifyVariant(dx, dy, w, h)
			s.paint(x0+dx, y0+dy, interiorWeight, Object{
				Kind:          KindSystem,
				System:        sys,
				SystemVariant: variant,
				Blackbox:      blackbox,
			})
		}
	}

	// Title padding sweeps the full row immediately above the box,
	// including the top edge's port row -- paint it before the ports so
	// ports are always the last (visible, routable) thing pushed there.
	s.paintTitle(sys, x0, y0, w)

	for _, p := range sys.Ports {
		s.paint(p.X, p.Y, 1, Object{Kind: KindPort, Owner: sys})
	}
}

// paintMarginRing paints the one-cell ring immediately outside a box's
// perimeter as impassable.
func (s *Simulator) paintMarginRing(x0, y0, w, h int) {
	for dx := -1; dx <= w; dx++ {
		s.paint(x0+dx, y0-1, grid.Infinity, Object{Kind: KindSystemMargin})
		s.paint(x0+dx, y0+h, grid.Infinity, Object{Kind: KindSystemMargin})
	}
	for dy := 0; dy < h; dy++ {
		s.paint(x0-1, y0+dy, grid.Infinity, Object{Kind: KindSystemMargin})
		s.paint(x0+w, y0+dy, grid.Infinity, Object{Kind: KindSystemMargin})
	}
}

// paintTitle lays out a single title row two cells above the box (the
// padding row between the title row and the box is the box's own
// margin-ring row), sliced into TitleCharsPerSquare-sized glyph tiles, with an
// impassable padding ring around the title rect matching the margin
// ring's treatment of the box itself.
func (s *Simulator) paintTitle(sys *model.System, x0, y0, w int) {
	titleRow := y0 - 2
	paddingRow := y0 - 1

	for dx := -1; dx <= w; dx++ {
		s.paint(x0+dx, paddingRow, grid.Infinity, Object{Kind: KindSystemTitlePadding})
		s.paint(x0+dx, titleRow-1, grid.Infinity, Object{Kind: KindSystemTitlePadding})
	}
	s.paint(x0-1, titleRow, grid.Infinity, Object{Kind: KindSystemTitlePadding})
	s.paint(x0+w, titleRow, grid.Infinity, Object{Kind: KindSystemTitlePadding})

	title := sys.Title
	for i := 0; i < w && i*TitleCharsPerSquare < len(title); i++ {
		start := i * TitleCharsPerSquare
		end := start + TitleCharsPerSquare
		if end > len(title) {
			end = len(title)
		}
		s.paint(x0+i, titleRow, grid.Infinity, Object{
			Kind:   KindSystemTitle,
			System: sys,
			Text:   title[start:end],
		})
	}
}

// classifyVariant places a cell within a w x h box into one of the nine
// directional variants.
func classifyVariant(dx, dy, w, h int) SystemVariant {
	left := dx == 0
	right := dx == w-1
	top := dy == 0
	bottom := dy == h-1

	switch {
	case top && left:
		return VariantTopLeft
	case top && right:
		return VariantTopRight
	case bottom && left:
		return VariantBottomLeft
	case bottom && right:
		return VariantBottomRight
	case top:
		return VariantTop
	case bottom:
		return VariantBottom
	case left:
		return VariantLeft
	case right:
		return VariantRight
	default:
		return VariantCenter
	}
}
