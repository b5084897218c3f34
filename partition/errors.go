// SPDX-License-Identifier: MIT
// Package partition: sentinel error set.

package partition

import "errors"

var (
	// ErrBadGrid indicates a non-positive worker count.
	ErrBadGrid = errors.New("partition: worker count must be > 0")

	// ErrBadVertexCount indicates a negative vertex-space size.
	ErrBadVertexCount = errors.New("partition: vertex count must be >= 0")

	// ErrRankOutOfRange indicates a rank outside [0, Size()).
	ErrRankOutOfRange = errors.New("partition: rank out of range")

	// ErrVertexOutOfRange indicates a vertex id outside [0, NumVertices()).
	ErrVertexOutOfRange = errors.New("partition: vertex out of range")
)
