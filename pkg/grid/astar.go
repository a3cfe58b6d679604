package grid

// Options configures a single A* search.
type Options struct {
	// WeightFactor multiplies the Manhattan heuristic. Defaults to 1.
	WeightFactor float64

	// TurnPenalty is added to the tentative g-score whenever a step's
	// direction differs from the direction that reached the current
	// node. DefaultOptions sets it to 1; a zero value means no penalty.
	TurnPenalty float64
}

// DefaultOptions returns the spec-mandated defaults: weight factor 1,
// turn penalty 1.
func DefaultOptions() Options {
	return Options{WeightFactor: 1, TurnPenalty: 1}
}

type nodeState int

const (
	// NotVisited is the implicit state of every node at the start of a
	// search (and after reset, via the generation counter below).
	NotVisited nodeState = iota
	// WillVisit marks a node currently sitting in the open set.
	WillVisit
	// Visited marks a node popped from the open set and closed.
	Visited
)

type searchNode struct {
	gen      int
	state    nodeState
	g, f     float64
	cameFrom int
	dir      Coord
	heapIdx  int
}

// searcher holds all per-search scratch state for one Grid. It is reused
// across every link's A* calls via reset(), which bumps a generation
// counter instead of reallocating or zeroing the backing array -- the
// "augment with an index-handle table" strategy spec.md's design notes
// call for, extended with a generation stamp so reset is O(1).
type searcher struct {
	nodes []searchNode
	heap  []int
	gen   int
}

func newSearcher(n int) *searcher {
	return &searcher{nodes: make([]searchNode, n)}
}

// reset clears all per-search bookkeeping without reallocating the
// backing slice.
func (s *searcher) reset() {
	s.gen++
	s.heap = s.heap[:0]
}

func (s *searcher) get(i int) *searchNode {
	n := &s.nodes[i]
	if n.gen != s.gen {
		*n = searchNode{gen: s.gen, cameFrom: -1, heapIdx: -1}
	}
	return n
}

func (s *searcher) less(i, j int) bool {
	return s.nodes[i].f < s.nodes[j].f
}

func (s *searcher) push(i int) {
	s.heap = append(s.heap, i)
	s.get(i).heapIdx = len(s.heap) - 1
	s.siftUp(len(s.heap) - 1)
}

func (s *searcher) pop() int {
	top := s.heap[0]
	last := len(s.heap) - 1
	s.heap[0] = s.heap[last]
	s.heap = s.heap[:last]
	s.get(top).heapIdx = -1
	if len(s.heap) > 0 {
		s.get(s.heap[0]).heapIdx = 0
		s.siftDown(0)
	}
	return top
}

// decreaseKey re-heapifies node i upward after its f-score has dropped:
// a still-open WillVisit node is fixed in place here. AStar skips Visited
// neighbours, so a closed node is never reopened.
func (s *searcher) decreaseKey(i int) {
	idx := s.get(i).heapIdx
	if idx >= 0 {
		s.siftUp(idx)
	}
}

func (s *searcher) siftUp(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if !s.less(s.heap[idx], s.heap[parent]) {
			break
		}
		s.swapHeap(idx, parent)
		idx = parent
	}
}

func (s *searcher) siftDown(idx int) {
	n := len(s.heap)
	for {
		left, right := 2*idx+1, 2*idx+2
		smallest := idx
		if left < n && s.less(s.heap[left], s.heap[smallest]) {
			smallest = left
		}
		if right < n && s.less(s.heap[right], s.heap[smallest]) {
			smallest = right
		}
		if smallest == idx {
			return
		}
		s.swapHeap(idx, smallest)
		idx = smallest
	}
}

func (s *searcher) swapHeap(i, j int) {
	s.heap[i], s.heap[j] = s.heap[j], s.heap[i]
	s.get(s.heap[i]).heapIdx = i
	s.get(s.heap[j]).heapIdx = j
}

var neighborDirs = [4]Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func manhattan(a, b Coord) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// AStar finds a turn-penalised shortest path from start to goal over the
// grid's current weights. Neighbours are 4-connected; a cell with weight
// Infinity is impassable. Returns nil if the open set empties before
// reaching goal -- this is not an error (spec.md S7): the caller is
// expected to try the next candidate port pair.
func (g *Grid[T]) AStar(start, goal Coord, opts Options) []Coord {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		return nil
	}
	if opts.WeightFactor == 0 {
		opts.WeightFactor = 1
	}

	if g.search == nil {
		g.search = newSearcher(g.Width * g.Height)
	}
	s := g.search
	s.reset()

	startIdx := g.index(start.X, start.Y)
	goalIdx := g.index(goal.X, goal.Y)

	startNode := s.get(startIdx)
	startNode.g = 0
	startNode.f = manhattan(start, goal) * opts.WeightFactor
	startNode.state = WillVisit
	startNode.dir = Coord{}
	s.push(startIdx)

	for len(s.heap) > 0 {
		curIdx := s.pop()
		cur := s.get(curIdx)
		if cur.state == Visited {
			continue
		}
		cur.state = Visited

		if curIdx == goalIdx {
			return s.reconstruct(curIdx, g.Width)
		}

		curCoord := Coord{X: curIdx % g.Width, Y: curIdx / g.Width}

		for _, d := range neighborDirs {
			nx, ny := curCoord.X+d.X, curCoord.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			neighborIdx := g.index(nx, ny)
			weight := g.Weight(nx, ny)
			if weight == Infinity {
				continue
			}

			neighbor := s.get(neighborIdx)
			if neighbor.state == Visited {
				continue
			}

			tentativeG := cur.g + weight
			if curIdx != startIdx && d != cur.dir {
				tentativeG += opts.TurnPenalty
			}

			if neighbor.heapIdx == -1 && neighbor.state == NotVisited {
				neighbor.g = tentativeG
				neighbor.f = tentativeG + manhattan(Coord{nx, ny}, goal)*opts.WeightFactor
				neighbor.cameFrom = curIdx
				neighbor.dir = d
				neighbor.state = WillVisit
				s.push(neighborIdx)
			} else if tentativeG < neighbor.g {
				neighbor.g = tentativeG
				neighbor.f = tentativeG + manhattan(Coord{nx, ny}, goal)*opts.WeightFactor
				neighbor.cameFrom = curIdx
				neighbor.dir = d
				if neighbor.heapIdx >= 0 {
					s.decreaseKey(neighborIdx)
				} else {
					// Not reached in practice: Visited neighbours are
					// skipped above, so an improved node is still open.
					neighbor.state = WillVisit
					s.push(neighborIdx)
				}
			}
		}
	}

	return nil
}

func (s *searcher) reconstruct(goalIdx, width int) []Coord {
	var path []Coord
	for idx := goalIdx; idx != -1; {
		n := s.get(idx)
		path = append(path, Coord{X: idx % width, Y: idx / width})
		idx = n.cameFrom
	}
	// Reverse into start->goal order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
