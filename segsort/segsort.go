// SPDX-License-Identifier: MIT
// Package segsort - chunked segmented sort of neighbor lists.

package segsort

import (
	"runtime"
	"sort"
	"sync"

	"github.com/jfcg/sorty"
	"golang.org/x/sync/errgroup"

	"github.com/avellane/edgepress/csr"
)

// DefaultChunkBytes is the default scratch budget per chunk (segment-id
// array plus the in-flight key material), chosen so a handful of
// concurrent chunks stay comfortably inside L3 on commodity hardware.
const DefaultChunkBytes = 4 << 20

// config is the resolved sorter configuration.
type config struct {
	chunkBytes int
}

// Option adjusts the sorter configuration.
type Option func(*config)

// WithChunkBytes overrides the per-chunk scratch budget. Non-positive
// values are ignored (keep default). Small budgets force many chunks,
// which the tests use to exercise boundary handling.
func WithChunkBytes(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkBytes = n
		}
	}
}

var tuneOnce sync.Once

// SortAdjacency sorts every neighbor list of b into ascending minor
// order, in place, carrying weights along when present. No-op for a nil
// or empty block. Chunks are sorted concurrently; each chunk runs one
// parallel segmented sort.
// Complexity: O(E log E) work, O(chunk) scratch per in-flight chunk.
func SortAdjacency(b *csr.Block, opts ...Option) {
	if b == nil || len(b.Indices) == 0 {
		return
	}
	cfg := config{chunkBytes: DefaultChunkBytes}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	tuneOnce.Do(func() { sorty.Mxg = uint32(runtime.NumCPU()) })

	// Budget → elements: 8B minor + 4B segment id (+8B weight).
	bytesPerElem := 12
	if b.Weighted() {
		bytesPerElem += 8
	}
	chunkElems := int64(cfg.chunkBytes / bytesPerElem)
	if chunkElems < 1 {
		chunkElems = 1
	}

	positions := b.PositionCount()
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))

	p0 := 0
	for p0 < positions {
		base := b.Offsets[p0]
		if base == b.Offsets[positions] {
			break // trailing zero-degree positions only
		}
		// Nearest vertex boundary at or past the byte-budget target.
		target := base + chunkElems
		p1 := sort.Search(positions-p0, func(k int) bool {
			return b.Offsets[p0+k+1] >= target
		}) + p0 + 1
		if p1 > positions {
			p1 = positions
		}

		lo, hi := p0, p1
		eg.Go(func() error {
			sortChunk(b, lo, hi)
			return nil
		})
		p0 = p1
	}
	_ = eg.Wait() // chunk sorts cannot fail
}

// sortChunk runs one segmented sort over positions [lo,hi) of b.
// Segment ids are rebased to the chunk so they fit int32 scratch.
func sortChunk(b *csr.Block, lo, hi int) {
	base := b.Offsets[lo]
	span := int(b.Offsets[hi] - base)
	if span < 2 {
		return
	}

	seg := make([]int32, span)
	for p := lo; p < hi; p++ {
		for s := b.Offsets[p] - base; s < b.Offsets[p+1]-base; s++ {
			seg[s] = int32(p - lo)
		}
	}

	idx := b.Indices[base : base+int64(span)]
	var wgt []float64
	if b.Weighted() {
		wgt = b.Weights[base : base+int64(span)]
	}

	sorty.Sort(span, func(i, k, r, s int) bool {
		if seg[i] != seg[k] {
			if seg[i] < seg[k] {
				if r != s {
					swapElem(seg, idx, wgt, r, s)
				}
				return true
			}
			return false
		}
		if idx[i] < idx[k] || (idx[i] == idx[k] && wgt != nil && i != k && wgt[i] < wgt[k]) {
			if r != s {
				swapElem(seg, idx, wgt, r, s)
			}
			return true
		}
		return false
	})
}

// swapElem exchanges one composite element across the parallel arrays.
func swapElem(seg []int32, idx []int64, wgt []float64, r, s int) {
	seg[r], seg[s] = seg[s], seg[r]
	idx[r], idx[s] = idx[s], idx[r]
	if wgt != nil {
		wgt[r], wgt[s] = wgt[s], wgt[r]
	}
}
