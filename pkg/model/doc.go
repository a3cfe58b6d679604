// Package model holds the hydrated runtime tree produced by pkg/loader:
// systems augmented with index, canonical id, parent back-reference,
// position, size and ports, plus resolved links and flows. The tree's
// structure (systems, links, flows) is built once and not changed
// afterwards; pkg/simulator writes its computed geometry (Hidden,
// WorldPosition, Size, Ports) onto the systems.
package model
