// Package simulator computes world-coordinate geometry for a hydrated
// model.Tree: per-system visibility, position, size and ports; a
// rasterised 2D grid of SimulatorObjects; and routed link paths produced
// by pkg/grid's weighted A*.
//
// Compute runs the nine ordered steps exactly once and is not safe to
// call concurrently with itself; the resulting Simulator is read-only
// thereafter and safe for concurrent reads.
package simulator
