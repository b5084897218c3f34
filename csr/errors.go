// SPDX-License-Identifier: MIT
// Package csr: sentinel error set. All sentinels wrap ErrInvalidInput,
// the single error kind this engine surfaces; match either level with
// errors.Is.

package csr

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root cause of every failure in this package.
var ErrInvalidInput = errors.New("csr: invalid input")

var (
	// ErrBadRange indicates an inconsistent major range or hypersparse
	// boundary (majorFirst ≤ hyperFirst ≤ majorLast violated).
	ErrBadRange = fmt.Errorf("%w: inconsistent major range", ErrInvalidInput)

	// ErrOutOfRange indicates an edge whose major endpoint lies outside
	// the block's major range.
	ErrOutOfRange = fmt.Errorf("%w: major endpoint outside block range", ErrInvalidInput)

	// ErrCorruptBlock indicates a block violating its structural
	// invariants (non-monotone offsets, dangling weights, unsorted or
	// empty-degree hypersparse vertices).
	ErrCorruptBlock = fmt.Errorf("%w: corrupt adjacency block", ErrInvalidInput)
)
