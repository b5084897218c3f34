// SPDX-License-Identifier: MIT
// Package parallel - For, PackIndex and ExclusiveScan.

package parallel

import (
	"runtime"
	"sync"
)

// For splits [0,n) into one near-equal chunk per available CPU and runs
// fn(lo,hi) on each chunk concurrently, returning when all chunks are
// done. fn must be safe to run concurrently against disjoint ranges.
// n <= 0 is a no-op. For n below the worker count, one chunk per index.
// Complexity: O(n/P) span, O(P) goroutines.
func For(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// PackIndex compacts a dense boolean mask into the sorted list of
// indices whose entry is true. Each worker packs its chunk into a
// private local slice; locals are concatenated in chunk order, so the
// result is ascending.
// Complexity: O(n) work, O(true-count) space.
func PackIndex(dense []bool) []int64 {
	n := len(dense)
	if n == 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	locals := make([][]int64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(idx, lo, hi int) {
			defer wg.Done()
			var local []int64
			for i := lo; i < hi; i++ {
				if dense[i] {
					local = append(local, int64(i))
				}
			}
			locals[idx] = local
		}(w, lo, hi)
	}
	wg.Wait()

	total := 0
	for _, l := range locals {
		total += len(l)
	}
	out := make([]int64, 0, total)
	for _, l := range locals {
		out = append(out, l...)
	}
	return out
}

// ExclusiveScan converts a count array into exclusive prefix sums in a
// fresh array one entry longer: out[0]=0, out[i]=Σcounts[:i], and the
// final entry is the grand total. This is the histogram→offsets step of
// the bucketed counting sort.
// Complexity: O(n) sequential; the scan is never the bottleneck next to
// the O(E) counting passes around it.
func ExclusiveScan(counts []int64) []int64 {
	out := make([]int64, len(counts)+1)
	for i, c := range counts {
		out[i+1] = out[i] + c
	}
	return out
}
