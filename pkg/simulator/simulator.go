package simulator

import (
	"context"
	"fmt"

	"github.com/dshills/sysgrid/pkg/grid"
	"github.com/dshills/sysgrid/pkg/model"
)

// Rect is an axis-aligned integer rectangle in world coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// Boundaries is the simulator's computed world-to-grid mapping.
type Boundaries struct {
	Rect                   Rect
	TranslateX, TranslateY int
}

// Simulator computes and holds the rasterised layout and routes for one
// hydrated tree. Construct with NewSimulator and call Compute once before
// using any other method.
type Simulator struct {
	tree       *model.Tree
	grid       *grid.Grid[Object]
	boundaries Boundaries
	routes     map[string]map[string][]grid.Coord
	computed   bool
}

// NewSimulator prepares a Simulator over tree. Compute must be called
// before Layout, Boundaries, ObjectsAt, SubsystemAt, LinkAt or Route.
func NewSimulator(tree *model.Tree) *Simulator {
	return &Simulator{
		tree:   tree,
		routes: make(map[string]map[string][]grid.Coord),
	}
}

// Compute runs the nine ordered steps of spec.md S4.2: visibility, world
// positions, sizing/ports, boundaries, grid projection, rasterisation,
// routing, and synchronising derived geometry back onto the tree.
// Cancellation is checked between stages, mirroring the teacher's staged
// pipeline; no stage itself blocks.
func (s *Simulator) Compute(ctx context.Context) error {
	if err := checkDone(ctx); err != nil {
		return err
	}

	s.computeVisibility()

	if err := checkDone(ctx); err != nil {
		return err
	}
	s.computeWorldPositions()

	if err := checkDone(ctx); err != nil {
		return err
	}
	s.computeSizesAndPorts()

	if err := checkDone(ctx); err != nil {
		return err
	}
	s.computeBoundaries()
	s.projectGrid()

	if err := checkDone(ctx); err != nil {
		return err
	}
	s.rasterizeAll()

	if err := checkDone(ctx); err != nil {
		return err
	}
	s.routeLinks()

	s.computed = true
	return nil
}

func checkDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("simulation cancelled: %w", ctx.Err())
	default:
		return nil
	}
}

// computeVisibility is step 2: a system is hidden if any ancestor has
// HideSystems set. The system's own HideSystems does not hide itself,
// only its descendants.
func (s *Simulator) computeVisibility() {
	var walk func(sys *model.System, ancestorHidden bool)
	walk = func(sys *model.System, ancestorHidden bool) {
		sys.Hidden = ancestorHidden
		childAncestorHidden := ancestorHidden || sys.HideSystems
		for _, c := range sys.Children {
			walk(c, childAncestorHidden)
		}
	}
	walk(s.tree.Root, false)
}

// computeWorldPositions is step 3: depth-first, child absolute = parent
// absolute + child's declared relative position + parent padding offset.
func (s *Simulator) computeWorldPositions() {
	offsetX := PaddingWhiteBox
	offsetY := PaddingWhiteBox + titlePositionY + titleHeight - 1

	var walk func(sys *model.System)
	walk = func(sys *model.System) {
		for _, c := range sys.Children {
			c.WorldPosition = model.Point{
				X: sys.WorldPosition.X + c.Position.X + offsetX,
				Y: sys.WorldPosition.Y + c.Position.Y + offsetY,
			}
			walk(c)
		}
	}
	s.tree.Root.WorldPosition = model.Point{X: 0, Y: 0}
	walk(s.tree.Root)
}

// computeSizesAndPorts is step 4. Ports are stored on model.System as
// absolute world coordinates.
func (s *Simulator) computeSizesAndPorts() {
	for _, sys := range s.tree.All() {
		if sys == s.tree.Root {
			continue
		}
		linkCount := countLinks(s.tree, sys)
		size, relPorts := sizeAndPorts(linkCount)
		sys.Size = size
		sys.Ports = make([]model.Point, len(relPorts))
		for i, p := range relPorts {
			sys.Ports[i] = model.Point{
				X: sys.WorldPosition.X + p.X,
				Y: sys.WorldPosition.Y + p.Y,
			}
		}
	}
}

// computeBoundaries is step 5: bounding rectangle over every non-root
// system's box, inflated by SystemMargin*5 on each side.
func (s *Simulator) computeBoundaries() {
	first := true
	var minX, minY, maxX, maxY int
	for _, sys := range s.tree.All() {
		if sys == s.tree.Root {
			continue
		}
		x0, y0 := sys.WorldPosition.X, sys.WorldPosition.Y
		x1, y1 := x0+sys.Size.Width-1, y0+sys.Size.Height-1
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		if x0 < minX {
			minX = x0
		}
		if y0 < minY {
			minY = y0
		}
		if x1 > maxX {
			maxX = x1
		}
		if y1 > maxY {
			maxY = y1
		}
	}
	if first {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	inflate := SystemMargin * 5
	minX -= inflate
	minY -= inflate
	maxX += inflate
	maxY += inflate

	s.boundaries = Boundaries{
		Rect: Rect{
			X:      minX,
			Y:      minY,
			Width:  maxX - minX + 1,
			Height: maxY - minY + 1,
		},
		TranslateX: -minX,
		TranslateY: -minY,
	}
}

// projectGrid is step 6: allocates the backing grid sized to hold the
// translated boundary rectangle.
func (s *Simulator) projectGrid() {
	r := s.boundaries.Rect
	s.grid = grid.New[Object](r.Width, r.Height)
}

func (s *Simulator) toGrid(p model.Point) grid.Coord {
	return grid.Coord{X: p.X + s.boundaries.TranslateX, Y: p.Y + s.boundaries.TranslateY}
}

func (s *Simulator) toWorld(c grid.Coord) model.Point {
	return model.Point{X: c.X - s.boundaries.TranslateX, Y: c.Y - s.boundaries.TranslateY}
}

func (s *Simulator) paint(worldX, worldY int, weight float64, obj Object) {
	c := s.toGrid(model.Point{X: worldX, Y: worldY})
	if !s.grid.InBounds(c.X, c.Y) {
		return
	}
	s.grid.SetWeight(c.X, c.Y, weight)
	s.grid.Push(c.X, c.Y, obj)
}

// Boundaries returns the computed world-to-grid mapping.
func (s *Simulator) Boundaries() Boundaries {
	return s.boundaries
}

// VisibleWorldBoundaries returns the bounding rectangle over every
// non-hidden system's box, in world coordinates (no margin inflation).
func (s *Simulator) VisibleWorldBoundaries() Rect {
	first := true
	var minX, minY, maxX, maxY int
	for _, sys := range s.tree.All() {
		if sys == s.tree.Root || sys.Hidden {
			continue
		}
		x0, y0 := sys.WorldPosition.X, sys.WorldPosition.Y
		x1, y1 := x0+sys.Size.Width-1, y0+sys.Size.Height-1
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		if x0 < minX {
			minX = x0
		}
		if y0 < minY {
			minY = y0
		}
		if x1 > maxX {
			maxX = x1
		}
		if y1 > maxY {
			maxY = y1
		}
	}
	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// Layout returns the full rasterised grid as grid[x][y] = object stack.
func (s *Simulator) Layout() [][][]Object {
	out := make([][][]Object, s.grid.Width)
	for x := 0; x < s.grid.Width; x++ {
		out[x] = make([][]Object, s.grid.Height)
		for y := 0; y < s.grid.Height; y++ {
			out[x][y] = s.grid.At(x, y)
		}
	}
	return out
}

// ObjectsAt returns the object stack at a world coordinate, bottom-most
// first.
func (s *Simulator) ObjectsAt(worldX, worldY int) []Object {
	c := s.toGrid(model.Point{X: worldX, Y: worldY})
	if !s.grid.InBounds(c.X, c.Y) {
		return nil
	}
	return s.grid.At(c.X, c.Y)
}

// SubsystemAt returns the System whose box occupies the given world
// coordinate, or nil.
func (s *Simulator) SubsystemAt(worldX, worldY int) *model.System {
	for _, obj := range s.ObjectsAt(worldX, worldY) {
		if obj.Kind == KindSystem {
			return obj.System
		}
	}
	return nil
}

// LinkAt returns the Link routed through the given world coordinate, or
// nil.
func (s *Simulator) LinkAt(worldX, worldY int) *model.Link {
	for _, obj := range s.ObjectsAt(worldX, worldY) {
		if obj.Kind == KindLink {
			return obj.Link
		}
	}
	return nil
}

// Route returns the grid-coordinate path recorded for fromID -> toID
// (canonicalIds), or nil if the link was never routed (unresolved
// endpoint, or A* exhausted every candidate port pair).
func (s *Simulator) Route(fromID, toID string) []grid.Coord {
	byTo, ok := s.routes[fromID]
	if !ok {
		return nil
	}
	return byTo[toID]
}

// AllRoutes returns the full routes table keyed by fromID then toID.
// Callers must treat the result as read-only; it aliases the Simulator's
// own state.
func (s *Simulator) AllRoutes() map[string]map[string][]grid.Coord {
	return s.routes
}

// Tree returns the hydrated tree this Simulator was built over.
func (s *Simulator) Tree() *model.Tree {
	return s.tree
}
