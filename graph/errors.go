// SPDX-License-Identifier: MIT
// Package graph: sentinel error set.

package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root cause of every assembly failure.
var ErrInvalidInput = errors.New("graph: invalid input")

var (
	// ErrBadAssembly indicates structurally inconsistent assembly
	// inputs (cell count vs grid, missing blocks, count mismatches).
	ErrBadAssembly = fmt.Errorf("%w: inconsistent assembly", ErrInvalidInput)

	// ErrBadOrientation indicates an Orientation outside the enum.
	ErrBadOrientation = fmt.Errorf("%w: unknown storage orientation", ErrInvalidInput)

	// ErrDestroyed indicates an operation on a graph whose blocks were
	// already released by DecompressToEdgelist(destroy=true).
	ErrDestroyed = errors.New("graph: storage already destroyed")
)
