// SPDX-License-Identifier: MIT

// Package partition models the 2-D decomposition of an adjacency matrix
// over a grid of workers as an explicit immutable value type, so that
// ownership arithmetic lives in one place instead of being scattered
// across call sites.
//
// A Grid2D factors the worker count P into rows × cols with cols chosen
// as the largest divisor of P not exceeding √P. Worker rank r sits at
// cell (r/cols, r%cols). The vertex space [0,V) is cut into P contiguous
// near-equal ranges, one per global rank, and every ownership question
// reduces to a binary search over the resulting boundary table:
//
//   - VertexOwner(v): which global rank's vertex range contains v.
//   - EdgeOwner(major, minor): which worker stores the edge, and in
//     which of that worker's local adjacency cells.
//
// A worker holds one compressed adjacency cell per member of its column
// communicator group (LocalCellCount() == rows): cell k of the worker in
// grid column j covers the major interval of global rank k*cols+j and
// the worker's full aggregate minor interval (the union of its grid
// row's vertex ranges, which is contiguous by construction).
//
// Grid2D is a pure value: all methods are read-only, O(1) or O(log P),
// and safe for concurrent use.
package partition
