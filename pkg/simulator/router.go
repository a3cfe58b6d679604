package simulator

import (
	"sort"

	"github.com/dshills/sysgrid/pkg/grid"
	"github.com/dshills/sysgrid/pkg/model"
)

// routeLinks is step 8, run once per link in document order (spec.md
// S4.3). Earlier links claim cheaper routes; later links pay the
// weight-2 reuse penalty, a deliberate and deterministic ordering.
func (s *Simulator) routeLinks() {
	for _, l := range s.tree.Links {
		if l.ASystem == nil || l.BSystem == nil {
			continue
		}
		s.routeLink(l)
	}
}

type portCandidate struct {
	a, b   model.Point
	aIdx   int
	bIdx   int
	distSq int
}

func (s *Simulator) routeLink(l *model.Link) {
	allowance := ancestorChain(l.ASystem)
	for id := range ancestorChain(l.BSystem) {
		allowance[id] = true
	}

	type blocked struct {
		x, y   int
		weight float64
	}
	var blockedCells []blocked

	for _, sys := range s.tree.All() {
		if sys == s.tree.Root || allowance[sys.CanonicalID] {
			continue
		}
		for _, p := range sys.Ports {
			c := s.toGrid(p)
			if !s.grid.InBounds(c.X, c.Y) {
				continue
			}
			w := s.grid.Weight(c.X, c.Y)
			if w == grid.Infinity {
				continue
			}
			blockedCells = append(blockedCells, blocked{c.X, c.Y, w})
			s.grid.SetWeight(c.X, c.Y, grid.Infinity)
		}
	}

	candidates := s.candidatePorts(l.ASystem, l.BSystem)

	var winner []grid.Coord
	for _, c := range candidates {
		start := s.toGrid(c.a)
		goal := s.toGrid(c.b)
		path := s.grid.AStar(start, goal, grid.Options{
			WeightFactor: DefaultWeightFactor,
			TurnPenalty:  DefaultTurnPenalty,
		})
		if path != nil {
			winner = path
			break
		}
	}

	if winner != nil {
		s.paintRoute(l, winner)
		s.recordRoute(l.ASystem.CanonicalID, l.BSystem.CanonicalID, winner)
	}
	// TODO: surface unroutable links (every candidate port pair exhausted)
	// to a diagnostics sink once one exists; baseline behaviour is silent.

	for _, b := range blockedCells {
		s.grid.SetWeight(b.x, b.y, b.weight)
	}
}

// candidatePorts enumerates every (portA, portB) pair whose cells are
// currently unblocked, sorted by Euclidean distance ascending with a
// deterministic tie-break on coordinates then port index.
func (s *Simulator) candidatePorts(a, b *model.System) []portCandidate {
	var out []portCandidate
	for ai, pa := range a.Ports {
		ca := s.toGrid(pa)
		if !s.grid.InBounds(ca.X, ca.Y) || s.grid.Weight(ca.X, ca.Y) == grid.Infinity {
			continue
		}
		for bi, pb := range b.Ports {
			cb := s.toGrid(pb)
			if !s.grid.InBounds(cb.X, cb.Y) || s.grid.Weight(cb.X, cb.Y) == grid.Infinity {
				continue
			}
			dx, dy := pa.X-pb.X, pa.Y-pb.Y
			out = append(out, portCandidate{a: pa, b: pb, aIdx: ai, bIdx: bi, distSq: dx*dx + dy*dy})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i], out[j]
		if ci.distSq != cj.distSq {
			return ci.distSq < cj.distSq
		}
		if ci.a != cj.a {
			return ci.a.X < cj.a.X || (ci.a.X == cj.a.X && ci.a.Y < cj.a.Y)
		}
		if ci.b != cj.b {
			return ci.b.X < cj.b.X || (ci.b.X == cj.b.X && ci.b.Y < cj.b.Y)
		}
		return ci.aIdx < cj.aIdx || (ci.aIdx == cj.aIdx && ci.bIdx < cj.bIdx)
	})
	return out
}

// paintRoute sets every traversed cell's weight to 2 (walkable, but
// penalised to encourage later links to detour rather than overlap) and
// pushes a direction-classified Link tile.
func (s *Simulator) paintRoute(l *model.Link, path []grid.Coord) {
	for i, c := range path {
		prev := virtualNeighbor(path, i, -1)
		next := virtualNeighbor(path, i, 1)
		variant := classifyLinkVariant(
			grid.Coord{X: c.X - prev.X, Y: c.Y - prev.Y},
			grid.Coord{X: next.X - c.X, Y: next.Y - c.Y},
		)
		s.grid.SetWeight(c.X, c.Y, 2)
		s.grid.Push(c.X, c.Y, Object{Kind: KindLink, Link: l, LinkVariant: variant})
	}
}

// virtualNeighbor returns path[i+dir] if in range, or a synthetic cell
// one step further in the same direction when i+dir runs off either end
// -- the "virtual predecessor/successor one cell outward" spec.md S4.3
// calls for at path endpoints.
func virtualNeighbor(path []grid.Coord, i, dir int) grid.Coord {
	j := i + dir
	if j >= 0 && j < len(path) {
		return path[j]
	}
	// Extrapolate using the nearest real step in the opposite direction.
	near, far := i, i-dir
	if far < 0 || far >= len(path) {
		return path[i]
	}
	return grid.Coord{
		X: 2*path[near].X - path[far].X,
		Y: 2*path[near].Y - path[far].Y,
	}
}

func classifyLinkVariant(dPrev, dNext grid.Coord) LinkVariant {
	if dPrev == dNext {
		if dPrev.Y == 0 {
			return LinkHorizontal
		}
		return LinkVertical
	}

	horiz, vert := dPrev, dNext
	if dPrev.Y != 0 {
		horiz, vert = dNext, dPrev
	}

	switch {
	case horiz.X > 0 && vert.Y < 0:
		return LinkBottomToRight
	case horiz.X < 0 && vert.Y < 0:
		return LinkBottomToLeft
	case horiz.X > 0 && vert.Y > 0:
		return LinkTopToRight
	default:
		return LinkTopToLeft
	}
}

func (s *Simulator) recordRoute(fromID, toID string, path []grid.Coord) {
	if s.routes[fromID] == nil {
		s.routes[fromID] = make(map[string][]grid.Coord)
	}
	if s.routes[toID] == nil {
		s.routes[toID] = make(map[string][]grid.Coord)
	}
	s.routes[fromID][toID] = path

	reversed := make([]grid.Coord, len(path))
	for i, c := range path {
		reversed[len(path)-1-i] = c
	}
	s.routes[toID][fromID] = reversed
}

func ancestorChain(sys *model.System) map[string]bool {
	set := make(map[string]bool)
	for s := sys; s != nil; s = s.Parent {
		set[s.CanonicalID] = true
	}
	return set
}
