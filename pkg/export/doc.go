// Package export renders a computed simulator.Simulator to external
// formats: indented JSON for machine consumers and SVG for visual
// inspection.
package export
