// SPDX-License-Identifier: MIT

// Package segsort canonicalizes a compressed adjacency block in place:
// every major's neighbor sub-array (and its paired weights) is put into
// ascending minor order. Compression scatters neighbors in atomic-claim
// arrival order, which is scheduling-dependent and therefore
// non-deterministic across runs and machines; this sort is what makes
// block contents reproducible.
//
// Sorting per vertex would launch millions of tiny sorts on real
// graphs, so the block is processed in large contiguous chunks instead,
// sized by a byte budget that bounds scratch memory independently of
// how many vertices a chunk spans. Chunk boundaries are found by binary
// searching the cumulative offsets for the vertex nearest each
// byte-budget target, so a boundary always falls between two vertices -
// one vertex's neighbor list is never split across chunks (a vertex
// whose list alone exceeds the budget gets an oversized chunk of its
// own).
//
// Within a chunk a single segmented sort runs over composite
// (segment, minor) keys, where the segment id is the vertex's position
// rebased to the chunk's local coordinate system. The sort itself is
// sorty's parallel in-place sort with a lesswap closure that swaps the
// segment ids, the minors and the weights together.
package segsort
