// Package edgepress turns raw edge lists into validated, compressed,
// analytics-ready adjacency structures — on one worker or partitioned
// across many.
//
// 🚀 What is edgepress?
//
//	A graph construction & compressed-storage engine that brings together:
//		• Edge lists: flat COO buffers (sources, destinations, optional weights)
//		• Validation: range, symmetry and no-parallel-edge checks, opt-in per check
//		• Compression: CSR/CSC offsets+indices with an optional hypersparse
//		  (DCSR/DCSC) tail for mostly-empty vertex ranges
//		• Canonical ordering: chunked segmented sort of every neighbor list
//		• Distribution: a 2-D (row × column) partition grid with blocking
//		  MPI-style collectives between in-process workers
//		• Transforms: symmetrize, transpose, transpose-storage, decompress
//
// ✨ Why choose edgepress?
//
//   - Deterministic – same edges, same options ⇒ bit-identical blocks
//   - Rock-solid guarantees – every block is checkable against its offsets
//     invariants; expensive checks are one option away
//   - Move-don't-copy – buffers are owned by exactly one stage and handed
//     over, so peak memory stays bounded during transforms
//   - Partition-transparent – 1 worker or a P-worker grid produce the same
//     edge multiset on decompression
//
// Under the hood, everything is organized under eight subpackages:
//
//	edgelist/  — COO edge-list value type + validator
//	partition/ — immutable 2-D partition descriptor & ownership arithmetic
//	comm/      — in-process workers, row/col subgroups, blocking collectives
//	parallel/  — For, PackIndex, ExclusiveScan building blocks
//	csr/       — compressed adjacency blocks (compress / decompress)
//	segsort/   — byte-budgeted chunked segmented neighbor-list sort
//	graph/     — the Graph object and its read-only View
//	construct/ — the partitioned builder and the transform operators
//
// Quick ASCII example:
//
//	edges {(0,1),(1,3),(1,4),(2,0),(2,1),(2,3),(3,5),(4,5)} over 6 vertices
//
//	offsets = [0 1 3 6 7 8 8]
//	indices = [1 | 3 4 | 0 1 3 | 5 | 5]
//
// i.e. vertex 2's neighbors live at indices[3:6], already in ascending order.
//
// Dive into DESIGN.md for the partitioning scheme, the hypersparse split
// rules, and the collective-communication model.
//
//	go get github.com/avellane/edgepress
package edgepress
