package validation

import (
	"fmt"

	"github.com/dshills/sysgrid/pkg/model"
)

// Kind categorizes a semantic validation error.
type Kind string

const (
	// KindSelfReference fires when a link's two endpoints are the same
	// declared path.
	KindSelfReference Kind = "self-reference"

	// KindMissing fires when an endpoint path does not resolve to any
	// system in the tree.
	KindMissing Kind = "missing"

	// KindInaccurate fires when an endpoint resolves to an interior node
	// that still has children -- the model forbids linking to a
	// non-leaf container while it has children.
	KindInaccurate Kind = "inaccurate"

	// KindDuplicate fires on every link sharing an unordered endpoint
	// pair with another link in the list.
	KindDuplicate Kind = "duplicate"
)

// Error is one semantic validation failure, carrying a JSON-pointer-style
// path into the original /links array.
type Error struct {
	Kind    Kind
	Path    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks every link in the tree and returns the full list of
// semantic errors found. It never mutates the tree and never aborts.
func Validate(tree *model.Tree) []Error {
	if tree == nil {
		return nil
	}

	var errs []Error

	for i, link := range tree.Links {
		base := fmt.Sprintf("/links/%d", i)

		if link.A == link.B {
			errs = append(errs, Error{
				Kind:    KindSelfReference,
				Path:    base,
				Message: "link endpoints must be distinct",
			})
			// A self-referencing link is still checked for
			// missing/inaccurate below, matching the teacher's
			// pattern of accumulating every applicable result
			// rather than short-circuiting on the first failure.
		}

		errs = append(errs, checkEndpoint(link.ASystem, base+"/a")...)
		errs = append(errs, checkEndpoint(link.BSystem, base+"/b")...)
	}

	errs = append(errs, checkDuplicates(tree.Links)...)

	return errs
}

// checkEndpoint reports missing (unresolved) or inaccurate (interior node
// with children) for a single resolved endpoint.
func checkEndpoint(sys *model.System, path string) []Error {
	if sys == nil {
		return []Error{{
			Kind:    KindMissing,
			Path:    path,
			Message: "endpoint does not resolve to any system",
		}}
	}
	if !sys.IsLeaf() {
		return []Error{{
			Kind:    KindInaccurate,
			Path:    path,
			Message: fmt.Sprintf("endpoint %q is a non-leaf container with children", sys.CanonicalID),
		}}
	}
	return nil
}

// checkDuplicates flags every link whose unordered (a,b) pair is shared
// with at least one other link, regardless of declaration order.
func checkDuplicates(links []*model.Link) []Error {
	groups := make(map[string][]int)
	for i, link := range links {
		groups[unorderedKey(link.A, link.B)] = append(groups[unorderedKey(link.A, link.B)], i)
	}

	var errs []Error
	for i, link := range links {
		if len(groups[unorderedKey(link.A, link.B)]) > 1 {
			errs = append(errs, Error{
				Kind:    KindDuplicate,
				Path:    fmt.Sprintf("/links/%d", i),
				Message: "duplicate",
			})
		}
	}
	return errs
}

// unorderedKey builds a symmetric key so (a,b) and (b,a) collide.
func unorderedKey(a, b string) string {
	if a <= b {
		return a + "\x00" + b
	}
	return b + "\x00" + a
}
