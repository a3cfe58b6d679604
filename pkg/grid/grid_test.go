package grid

import "testing"

func TestGrid_WeightDefaultsToOne(t *testing.T) {
	g := New[string](4, 4)
	if g.Weight(1, 1) != 1 {
		t.Fatalf("expected default weight 1, got %v", g.Weight(1, 1))
	}
}

func TestGrid_SetWeightAndPush(t *testing.T) {
	g := New[string](4, 4)
	g.SetWeight(2, 2, Infinity)
	if g.Weight(2, 2) != Infinity {
		t.Fatal("weight was not updated")
	}

	g.Push(0, 0, "bottom")
	g.Push(0, 0, "top")
	stack := g.At(0, 0)
	if len(stack) != 2 || stack[0] != "bottom" || stack[1] != "top" {
		t.Fatalf("unexpected stack: %+v", stack)
	}

	top, ok := g.Top(0, 0)
	if !ok || top != "top" {
		t.Fatalf("expected top=top, got %v ok=%v", top, ok)
	}
}

func TestGrid_InBounds(t *testing.T) {
	g := New[int](3, 3)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true}, {2, 2, true}, {3, 0, false}, {-1, 0, false}, {0, 3, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.x, c.y); got != c.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}
