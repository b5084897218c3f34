// SPDX-License-Identifier: MIT
// Package comm: sentinel error set.

package comm

import "errors"

var (
	// ErrBadWorldSize indicates a non-positive worker count.
	ErrBadWorldSize = errors.New("comm: world size must be > 0")

	// ErrBadSendCount indicates an AllToAll send table whose length does
	// not equal the group size.
	ErrBadSendCount = errors.New("comm: all-to-all send table length must equal group size")

	// ErrBadRoot indicates a Gather root outside [0, group size).
	ErrBadRoot = errors.New("comm: gather root out of range")
)
