package loader

import (
	"sort"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/sysgrid/pkg/specfile"
)

func parse(t *testing.T, doc string) *specfile.Spec {
	t.Helper()
	spec, err := specfile.LoadYAML([]byte(doc))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return spec
}

func TestLoad_CanonicalIds(t *testing.T) {
	spec := parse(t, `
title: root
systems:
  - id: a
    systems:
      - id: b
  - id: c
`)
	tree, errs := Load(spec)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}

	a, ok := tree.Resolve("a")
	if !ok || a.CanonicalID != "a" {
		t.Fatalf("expected a.canonicalId == a, got %+v", a)
	}
	b, ok := tree.Resolve("a.b")
	if !ok || b.CanonicalID != "a.b" {
		t.Fatalf("expected a.b.canonicalId == a.b, got %+v", b)
	}
	if b.Parent != a {
		t.Fatalf("expected b's parent to be a")
	}
	if a.Index != 0 {
		t.Fatalf("expected a.index == 0, got %d", a.Index)
	}
	c, ok := tree.Resolve("c")
	if !ok || c.Index != 1 {
		t.Fatalf("expected c.index == 1, got %+v", c)
	}
}

func TestLoad_LinkResolution(t *testing.T) {
	spec := parse(t, `
title: root
systems:
  - id: a
  - id: b
links:
  - a: a
    b: b
  - a: a
    b: missing
`)
	tree, _ := Load(spec)
	if len(tree.Links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(tree.Links))
	}
	if tree.Links[0].ASystem == nil || tree.Links[0].BSystem == nil {
		t.Fatalf("expected both endpoints of link 0 to resolve")
	}
	if tree.Links[1].BSystem != nil {
		t.Fatalf("expected link 1's b endpoint to be unresolved")
	}
}

func TestLoad_FlowKeyframeNormalization(t *testing.T) {
	spec := parse(t, `
title: root
systems:
  - id: a
  - id: b
flows:
  - steps:
      - keyframe: 10
        from: a
        to: b
      - keyframe: 5
        from: a
        to: b
      - keyframe: 5
        from: a
        to: b
      - keyframe: 20
        from: a
        to: b
`)
	tree, _ := Load(spec)
	if len(tree.Flows) != 1 {
		t.Fatalf("expected 1 flow, got %d", len(tree.Flows))
	}
	got := make([]int, len(tree.Flows[0].Steps))
	for i, s := range tree.Flows[0].Steps {
		got[i] = s.Keyframe
	}
	want := []int{1, 0, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keyframe %d: got %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLoad_LinkPathBFS(t *testing.T) {
	spec := parse(t, `
title: root
systems:
  - id: a
  - id: b
  - id: c
links:
  - a: a
    b: b
  - a: b
    b: c
flows:
  - steps:
      - keyframe: 0
        from: a
        to: c
`)
	tree, _ := Load(spec)
	step := tree.Flows[0].Steps[0]
	if len(step.Links) != 2 {
		t.Fatalf("expected a 2-hop path a-b-c, got %d links: %+v", len(step.Links), step.Links)
	}
	if step.Links[0] != tree.Links[0] || step.Links[1] != tree.Links[1] {
		t.Fatalf("expected path [link0, link1], got %+v", step.Links)
	}
}

func TestLoad_LinkPathUnreachable(t *testing.T) {
	spec := parse(t, `
title: root
systems:
  - id: a
  - id: b
  - id: c
flows:
  - steps:
      - keyframe: 0
        from: a
        to: c
`)
	tree, _ := Load(spec)
	if step := tree.Flows[0].Steps[0]; step.Links != nil {
		t.Fatalf("expected nil link path when no links exist, got %+v", step.Links)
	}
}

func TestLoad_DefaultPositions(t *testing.T) {
	spec := parse(t, `
title: root
systems:
  - id: a
  - id: b
  - id: c
    position: {x: 100, y: 7}
  - id: d
`)
	tree, _ := Load(spec)
	a, _ := tree.Resolve("a")
	b, _ := tree.Resolve("b")
	c, _ := tree.Resolve("c")
	d, _ := tree.Resolve("d")

	if a.Position.X >= b.Position.X {
		t.Fatalf("expected a to sit left of b, got a=%+v b=%+v", a.Position, b.Position)
	}
	if c.Position.X != 100 || c.Position.Y != 7 {
		t.Fatalf("expected declared position to survive untouched, got %+v", c.Position)
	}
	// d is the first unpositioned sibling after c's declared x=100, so it
	// must sit to the right of it, not reuse a/b's farRight.
	if d.Position.X <= 100 {
		t.Fatalf("expected d.x > farRight(100), got %d", d.Position.X)
	}
}

// TestProperty_DenseKeyframeNormalization verifies spec.md S8: normalised
// keyframes form a dense prefix {0,...,k-1} of the integers, for any
// flow built from random (possibly repeated) raw keyframes.
func TestProperty_DenseKeyframeNormalization(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		raw := make([]specfile.FlowStep, n)
		for i := range raw {
			k := rapid.IntRange(-1000, 1000).Draw(t, "keyframe")
			raw[i] = specfile.FlowStep{Keyframe: k, From: "a", To: "a"}
		}

		rank := rankKeyframes(raw)

		distinct := make(map[int]bool, len(rank))
		for _, r := range rank {
			distinct[r] = true
		}
		ranks := make([]int, 0, len(distinct))
		for r := range distinct {
			ranks = append(ranks, r)
		}
		sort.Ints(ranks)
		for i, r := range ranks {
			if r != i {
				t.Fatalf("ranks are not a dense 0..k-1 prefix: %v", ranks)
			}
		}
	})
}
