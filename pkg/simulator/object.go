package simulator

import "github.com/dshills/sysgrid/pkg/model"

// ObjectKind discriminates the tagged-union Object stored in each grid
// cell's stack, adapted from the teacher's flat-array TileMap cells to a
// proper sum type since objects here carry kind-specific attributes
// (spec.md's Design Notes calls this out explicitly).
type ObjectKind int

const (
	KindSystem ObjectKind = iota
	KindPort
	KindLink
	KindSystemMargin
	KindSystemTitle
	KindSystemTitlePadding
)

func (k ObjectKind) String() string {
	switch k {
	case KindSystem:
		return "System"
	case KindPort:
		return "Port"
	case KindLink:
		return "Link"
	case KindSystemMargin:
		return "SystemMargin"
	case KindSystemTitle:
		return "SystemTitle"
	case KindSystemTitlePadding:
		return "SystemTitlePadding"
	default:
		return "Unknown"
	}
}

// SystemVariant places a System-kind cell within its box: one of the
// four corners, one of the four edge midpoints, or the centre.
type SystemVariant int

const (
	VariantTopLeft SystemVariant = iota
	VariantTop
	VariantTopRight
	VariantLeft
	VariantCenter
	VariantRight
	VariantBottomLeft
	VariantBottom
	VariantBottomRight
)

// LinkVariant classifies a routed path cell by the turn it makes between
// its predecessor and successor.
type LinkVariant int

const (
	LinkHorizontal LinkVariant = iota
	LinkVertical
	LinkBottomToRight
	LinkBottomToLeft
	LinkTopToRight
	LinkTopToLeft
)

// Object is the tagged union stored in grid.Grid[Object]'s per-cell
// stack. Only the fields relevant to Kind are populated.
type Object struct {
	Kind ObjectKind

	// System, SystemVariant, Blackbox: Kind == KindSystem.
	System        *model.System
	SystemVariant SystemVariant
	Blackbox      bool

	// Link, LinkVariant: Kind == KindLink.
	Link        *model.Link
	LinkVariant LinkVariant

	// Port: Kind == KindPort. Owner identifies the box the port belongs to.
	Owner *model.System

	// Text: Kind == KindSystemTitle, a TitleCharsPerSquare-sized slice of
	// the owning system's title.
	Text string
}
