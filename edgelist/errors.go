// SPDX-License-Identifier: MIT
// Package edgelist: sentinel error set.
//
// All validation failures share the ErrInvalidInput root so that callers
// can branch on the single error kind this engine surfaces, while the
// specific sentinels below identify the violated invariant. Match with
// errors.Is; both the root and the specific sentinel match.

package edgelist

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root cause of every validation failure raised by
// this package. It is the only error category the construction core
// produces: there is no retry and no repair behind it.
var ErrInvalidInput = errors.New("edgelist: invalid input")

var (
	// ErrSizeMismatch indicates the parallel src/dst/weight buffers
	// disagree in length (cheap check, always on).
	ErrSizeMismatch = fmt.Errorf("%w: parallel arrays disagree in length", ErrInvalidInput)

	// ErrNegativeVertex indicates a negative vertex id in src or dst
	// (cheap check, always on).
	ErrNegativeVertex = fmt.Errorf("%w: negative vertex id", ErrInvalidInput)

	// ErrOutOfRange indicates an endpoint outside the partition range the
	// caller declared via WithRange (expensive check).
	ErrOutOfRange = fmt.Errorf("%w: endpoint outside declared partition range", ErrInvalidInput)

	// ErrAsymmetric indicates the edge set did not survive a
	// symmetrization round-trip unchanged although the graph claims
	// symmetry (expensive check).
	ErrAsymmetric = fmt.Errorf("%w: edge set is not symmetric", ErrInvalidInput)

	// ErrParallelEdges indicates a duplicate (src,dst) pair although the
	// graph claims to be simple (expensive check).
	ErrParallelEdges = fmt.Errorf("%w: parallel edges present in a simple graph", ErrInvalidInput)
)
