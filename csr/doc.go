// SPDX-License-Identifier: MIT

// Package csr implements the compressed adjacency block: the
// offsets+indices (CSR/CSC) representation every edgepress graph is made
// of, with an optional hypersparse (DCSR/DCSC) tail for major ranges
// that are mostly empty.
//
// Compression is a bucketed counting sort with two parallel passes over
// the edge list:
//
//  1. histogram edges by major index with one atomic increment each,
//     then exclusive-prefix-sum the histogram into offsets;
//  2. scatter each edge into its major's reserved span, claiming a slot
//     with one atomic add on a separate per-major cursor array.
//
// The cursor array costs O(majors) extra memory but keeps the claim
// counters out of the output buffer, so no slot is ever read back
// before its final value is written. (The classic trick of spinning the
// counter in the bucket's last output slot saves that allocation but
// demands a much subtler race argument; the compress_test.go hammer
// test exists to catch any reintroduction of it going wrong.)
//
// Neighbor lists come out of the scatter in arrival order, which is
// scheduling-dependent; package segsort canonicalizes them afterwards.
//
// Hypersparse tail: for majors at or beyond a caller-chosen boundary,
// only those with non-zero local degree are kept, listed in a strictly
// increasing explicit vertex index. The dense offsets entries they
// replace are squeezed out whenever that makes the block smaller.
// Consumers must translate majors in the tail through the vertex list
// (PositionOf / NeighborRange) rather than doing offset arithmetic.
package csr
