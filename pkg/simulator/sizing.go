package simulator

import (
	"strings"

	"github.com/dshills/sysgrid/pkg/model"
)

// countLinks counts how many links in tree reference sys's canonicalId on
// either endpoint, treating a reference to any descendant of sys as a
// reference to sys too (prefix match), per spec.md S4.2 step 4.
func countLinks(tree *model.Tree, sys *model.System) int {
	n := 0
	for _, l := range tree.Links {
		if referencesCanonical(l.A, sys.CanonicalID) || referencesCanonical(l.B, sys.CanonicalID) {
			n++
		}
	}
	return n
}

func referencesCanonical(endpoint, canonicalID string) bool {
	if canonicalID == "" {
		return false
	}
	if endpoint == canonicalID {
		return true
	}
	return strings.HasPrefix(endpoint, canonicalID+".")
}

// sizeAndPorts implements spec.md S4.2 step 4's sizing rule. Ports are
// returned as offsets relative to the box's own world position (not yet
// translated to grid space).
func sizeAndPorts(linkCount int) (model.Size, []model.Point) {
	if linkCount <= 4 {
		w, h := 3, 3
		return model.Size{Width: w, Height: h}, []model.Point{
			{X: 1, Y: -1},  // top
			{X: w, Y: 1},   // right
			{X: 1, Y: h},   // bottom
			{X: -1, Y: 1},  // left
		}
	}

	h := 3
	w := 3 + ((linkCount - 4) % 2)
	ports := []model.Point{
		{X: -1, Y: 1}, // left
		{X: w, Y: 1},  // right
	}
	for x := 1; x < w-1; x += 2 {
		ports = append(ports, model.Point{X: x, Y: -1})
		ports = append(ports, model.Point{X: x, Y: h})
	}
	return model.Size{Width: w, Height: h}, ports
}
