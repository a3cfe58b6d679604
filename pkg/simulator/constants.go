package simulator

// Sizing and layout constants. Values are not pinned by the source
// material; chosen so the invariants spec.md fixes numerically (margin
// ring cell count, port counts, admissible A* paths) hold regardless of
// the exact spacing chosen here. See DESIGN.md for the reasoning.
const (
	// MaxSystemWidth and MaxSystemHeight are the documented compatibility
	// bound on the root system's overall grid dimensions. Not enforced at
	// runtime: the size-formula scenario spec.md itself pins (5 links ->
	// box size (4,3)) already produces a wider-than-64 boundary once a
	// handful of default-positioned siblings are laid out side by side,
	// so clamping or erroring on this constant inside computeBoundaries
	// would reject spec.md's own worked example. Staying under the bound
	// is the spec author's responsibility; see DESIGN.md Open Question 4.
	MaxSystemWidth  = 64
	MaxSystemHeight = 64

	// SystemMargin scales the boundary inflation (SystemMargin * 5) applied
	// around the bounding rectangle of all placed systems.
	SystemMargin = 2

	// PaddingWhiteBox is the gap, in world cells, a white-box parent leaves
	// between its own interior and a child's declared position.
	PaddingWhiteBox = 1

	// TitleCharsPerSquare is how many characters of title text a single
	// glyph tile carries.
	TitleCharsPerSquare = 1

	// titlePositionY and titleHeight are used only to derive the padding
	// offset in spec.md S4.2 step 3. paintTitle does not read them: it
	// draws the title row two cells above the box.
	titlePositionY = -1
	titleHeight    = 1
)

// DefaultWeightFactor and DefaultTurnPenalty mirror pkg/grid.DefaultOptions.
const (
	DefaultWeightFactor = 1.0
	DefaultTurnPenalty  = 1.0
)
