package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/sysgrid/pkg/model"
	"github.com/dshills/sysgrid/pkg/specfile"
	"github.com/dshills/sysgrid/pkg/validation"
)

// Load hydrates a raw spec into a model.Tree and runs semantic validation
// over the result. The returned tree is always usable, even when the
// error list is non-empty -- unresolved endpoints simply carry nil
// system pointers.
func Load(raw *specfile.Spec) (*model.Tree, []validation.Error) {
	root := &model.System{Title: raw.Title}
	tree := model.NewTree(root)
	tree.Index(root)

	hydrateChildren(raw.Systems, root, tree)
	hydrateLinks(raw.Links, tree)
	hydrateFlows(raw.Flows, tree)
	assignDefaultPositions(raw.Systems, root.Children)

	return tree, validation.Validate(tree)
}

// LoadYAML parses data as YAML and loads it. A parse failure is
// structural and is returned as the third value without a usable tree;
// the semantic error list is only meaningful when err is nil.
func LoadYAML(data []byte) (*model.Tree, []validation.Error, error) {
	raw, err := specfile.LoadYAML(data)
	if err != nil {
		return nil, nil, fmt.Errorf("loading spec: %w", err)
	}
	tree, errs := Load(raw)
	return tree, errs, nil
}

// hydrateChildren is pass 1 (subsystem enhancement): a depth-first walk
// assigning index, parent and canonicalId to every child, registering
// each one in the tree's lookup table as it goes.
func hydrateChildren(rawSiblings []specfile.System, parent *model.System, tree *model.Tree) {
	parent.Children = make([]*model.System, 0, len(rawSiblings))
	for i := range rawSiblings {
		raw := &rawSiblings[i]
		sys := &model.System{
			ID:          raw.ID,
			Index:       i,
			Parent:      parent,
			Title:       raw.Title,
			HideSystems: raw.HideSystems,
		}
		sys.CanonicalID = joinCanonical(parent.CanonicalID, raw.ID)
		tree.Index(sys)
		parent.Children = append(parent.Children, sys)
		hydrateChildren(raw.Systems, sys, tree)
	}
}

// joinCanonical dot-joins the non-empty parts, so the root's empty
// canonicalId does not leave a leading dot on its direct children.
func joinCanonical(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// hydrateLinks is pass 2: resolves each link's endpoints against the
// canonicalId table built by pass 1. An endpoint that fails to resolve
// is left nil -- pkg/validation reports it as a missing error.
func hydrateLinks(rawLinks []specfile.Link, tree *model.Tree) {
	tree.Links = make([]*model.Link, 0, len(rawLinks))
	for i, raw := range rawLinks {
		link := &model.Link{Index: i, A: raw.A, B: raw.B}
		if sys, ok := tree.Resolve(raw.A); ok {
			link.ASystem = sys
		}
		if sys, ok := tree.Resolve(raw.B); ok {
			link.BSystem = sys
		}
		tree.Links = append(tree.Links, link)
	}
}

// hydrateFlows is pass 3: normalises each flow's keyframes to a dense
// 0..k range, resolves step endpoints, and discovers the link path
// between them.
func hydrateFlows(rawFlows []specfile.Flow, tree *model.Tree) {
	tree.Flows = make([]*model.Flow, 0, len(rawFlows))
	for _, rf := range rawFlows {
		rank := rankKeyframes(rf.Steps)

		steps := make([]model.FlowStep, len(rf.Steps))
		for i, rs := range rf.Steps {
			step := model.FlowStep{
				Keyframe: rank[rs.Keyframe],
				From:     rs.From,
				To:       rs.To,
			}
			if sys, ok := tree.Resolve(rs.From); ok {
				step.FromSystem = sys
			}
			if sys, ok := tree.Resolve(rs.To); ok {
				step.ToSystem = sys
			}
			if step.FromSystem != nil && step.ToSystem != nil {
				step.Links = findLinkPath(tree.Links, rs.From, rs.To)
			}
			steps[i] = step
		}
		tree.Flows = append(tree.Flows, &model.Flow{Steps: steps})
	}
}

// rankKeyframes collects the distinct keyframes of a flow's steps, sorts
// them ascending, and returns a map from raw keyframe to its rank --
// e.g. {10,5,5,20} ranks to {5:0, 10:1, 20:2}.
func rankKeyframes(steps []specfile.FlowStep) map[int]int {
	seen := make(map[int]bool, len(steps))
	for _, s := range steps {
		seen[s.Keyframe] = true
	}
	distinct := make([]int, 0, len(seen))
	for k := range seen {
		distinct = append(distinct, k)
	}
	sort.Ints(distinct)

	rank := make(map[int]int, len(distinct))
	for i, k := range distinct {
		rank[k] = i
	}
	return rank
}

// findLinkPath models the flat link list as an undirected graph keyed by
// endpoint dotted-path string and runs a breadth-first search from from
// to to, mirroring the teacher's Graph.GetPath. If to is unreachable the
// step's link list is empty, not an error.
func findLinkPath(links []*model.Link, from, to string) []*model.Link {
	if from == to {
		return nil
	}

	adjacency := make(map[string][]*model.Link)
	for _, l := range links {
		adjacency[l.A] = append(adjacency[l.A], l)
		adjacency[l.B] = append(adjacency[l.B], l)
	}

	queue := []string{from}
	visited := map[string]bool{from: true}
	viaLink := make(map[string]*model.Link)
	viaNode := make(map[string]string)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == to {
			break
		}

		for _, l := range adjacency[current] {
			neighbor := otherEndpoint(l, current)
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			viaLink[neighbor] = l
			viaNode[neighbor] = current
			queue = append(queue, neighbor)
		}
	}

	if !visited[to] {
		return nil
	}

	var path []*model.Link
	for n := to; n != from; {
		l := viaLink[n]
		path = append(path, l)
		n = viaNode[n]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func otherEndpoint(l *model.Link, node string) string {
	if l.A == node {
		return l.B
	}
	return l.A
}

// assignDefaultPositions is pass 4: every subsystem lacking a declared
// position gets (farRight+10, 0), where farRight tracks the maximum x
// already assigned to a sibling at this level.
func assignDefaultPositions(rawSiblings []specfile.System, modelSiblings []*model.System) {
	farRight := -10
	for i, raw := range rawSiblings {
		sys := modelSiblings[i]
		if raw.Position != nil {
			sys.Position = model.Point{X: raw.Position.X, Y: raw.Position.Y}
		} else {
			sys.Position = model.Point{X: farRight + 10, Y: 0}
		}
		if sys.Position.X > farRight {
			farRight = sys.Position.X
		}
		assignDefaultPositions(raw.Systems, sys.Children)
	}
}
