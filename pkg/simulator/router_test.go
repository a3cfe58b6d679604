package simulator

import (
	"testing"

	"github.com/dshills/sysgrid/pkg/grid"
)

func TestClassifyLinkVariant_Straight(t *testing.T) {
	if v := classifyLinkVariant(grid.Coord{X: 1, Y: 0}, grid.Coord{X: 1, Y: 0}); v != LinkHorizontal {
		t.Fatalf("expected LinkHorizontal, got %v", v)
	}
	if v := classifyLinkVariant(grid.Coord{X: 0, Y: 1}, grid.Coord{X: 0, Y: 1}); v != LinkVertical {
		t.Fatalf("expected LinkVertical, got %v", v)
	}
}

func TestClassifyLinkVariant_Elbows(t *testing.T) {
	cases := []struct {
		prev, next grid.Coord
		want       LinkVariant
	}{
		{grid.Coord{X: 0, Y: -1}, grid.Coord{X: 1, Y: 0}, LinkBottomToRight},
		{grid.Coord{X: 0, Y: -1}, grid.Coord{X: -1, Y: 0}, LinkBottomToLeft},
		{grid.Coord{X: 0, Y: 1}, grid.Coord{X: 1, Y: 0}, LinkTopToRight},
		{grid.Coord{X: 0, Y: 1}, grid.Coord{X: -1, Y: 0}, LinkTopToLeft},
	}
	for _, c := range cases {
		if got := classifyLinkVariant(c.prev, c.next); got != c.want {
			t.Errorf("classifyLinkVariant(%+v, %+v) = %v, want %v", c.prev, c.next, got, c.want)
		}
	}
}

func TestVirtualNeighbor_ExtrapolatesAtEndpoints(t *testing.T) {
	path := []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}

	before := virtualNeighbor(path, 0, -1)
	if before != (grid.Coord{X: -1, Y: 0}) {
		t.Fatalf("expected virtual predecessor (-1,0), got %+v", before)
	}

	after := virtualNeighbor(path, 2, 1)
	if after != (grid.Coord{X: 3, Y: 0}) {
		t.Fatalf("expected virtual successor (3,0), got %+v", after)
	}
}
