// Package grid implements the weighted raster grid and the turn-penalised
// A* search that pkg/simulator uses to route links between port pairs.
// Cells carry a mutable scalar weight (Infinity, i.e. math.MaxFloat64,
// means impassable) plus
// an ordered stack of caller-supplied objects, mirroring the teacher's
// flat-array tile-map primitives in pkg/carving/tilemap.go adapted from
// dungeon tiles to layout cells.
package grid
