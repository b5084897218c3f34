// SPDX-License-Identifier: MIT

// Package graph defines the compressed graph object assembled by the
// construct package: one compressed adjacency block per local partition
// cell, graph-wide vertex/edge counts, the symmetry/multigraph property
// flags, storage orientation, density-tier tables, the optional sparse
// "hot vertex" index sets, and the local slice of the renumber map.
//
// A Graph is immutable in adjacency content after assembly. The
// transform operators (construct.Symmetrize, construct.Transpose,
// construct.TransposeStorage) follow a build-then-replace contract:
// they return a brand-new Graph and the caller owns the replace step.
// DecompressToEdgelist is the only destructive method here, and only
// when asked (destroy=true), to bound peak memory while a transform
// rebuilds.
//
// Downstream algorithms consume a Graph through View, a read-only
// surface over the blocks plus partition metadata. Consumers must not
// assume any neighbor ordering beyond "ascending by minor index within
// a block", and must translate hypersparse majors through the explicit
// vertex list (Block.NeighborRange does this) instead of doing direct
// offset arithmetic.
package graph
