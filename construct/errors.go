// SPDX-License-Identifier: MIT
// Package construct: sentinel error set.
//
// Validation failures from the underlying packages (edgelist, csr,
// graph) are surfaced as-is; the sentinels below cover the failures the
// builder itself detects.

package construct

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root cause of every builder-level failure.
var ErrInvalidInput = errors.New("construct: invalid input")

var (
	// ErrCommMismatch indicates a communicator whose size disagrees
	// with the graph's partition grid, or a nil communicator for a
	// distributed operation.
	ErrCommMismatch = fmt.Errorf("%w: communicator does not match partition grid", ErrInvalidInput)

	// ErrCountMismatch indicates the post-shuffle allreduce edge-count
	// cross-check failed against the declared global total.
	ErrCountMismatch = fmt.Errorf("%w: edge count mismatch after shuffle", ErrInvalidInput)

	// ErrVertexCount indicates a WithNumVertices value too small for
	// the vertex ids actually present in the edge list.
	ErrVertexCount = fmt.Errorf("%w: declared vertex count below max vertex id", ErrInvalidInput)

	// ErrNoRenumberMap indicates an un-renumber request against a graph
	// built without renumbering.
	ErrNoRenumberMap = fmt.Errorf("%w: graph carries no renumber map", ErrInvalidInput)

	// ErrPeerAbort indicates a peer worker failed validation; this rank's
	// own inputs were fine, but the construction is abandoned world-wide.
	ErrPeerAbort = fmt.Errorf("%w: aborted by peer worker failure", ErrInvalidInput)
)
