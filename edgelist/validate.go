// SPDX-License-Identifier: MIT
// Package edgelist - the edge validator.
//
// Contract: cheap checks always run; the expensive checks (range,
// symmetry, no-parallel-edge) are opt-in and independently toggleable so
// callers can trade assurance for throughput on trusted inputs. On
// failure the validator reports ErrInvalidInput (wrapped by a specific
// sentinel); it never retries and never repairs.

package edgelist

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultEpsilon is the tolerance used when comparing edge weights in the
// symmetry check. Mirrors the engine-wide numeric policy: weights are
// finite float64 and equality is epsilon-bounded.
const DefaultEpsilon = 1e-9

// checkConfig is the resolved, immutable validator configuration.
type checkConfig struct {
	rangeCheck bool
	majorFirst int64
	majorLast  int64
	minorFirst int64
	minorLast  int64

	symmetry      bool
	noParallel    bool
	weightEpsilon float64
}

// CheckOption toggles one expensive validator check.
type CheckOption func(*checkConfig)

// WithRange enables the endpoint-range check: every source must lie in
// [majorFirst, majorLast) and every destination in [minorFirst,
// minorLast). The half-open convention matches partition ranges.
func WithRange(majorFirst, majorLast, minorFirst, minorLast int64) CheckOption {
	return func(c *checkConfig) {
		c.rangeCheck = true
		c.majorFirst, c.majorLast = majorFirst, majorLast
		c.minorFirst, c.minorLast = minorFirst, minorLast
	}
}

// WithSymmetry enables the symmetry round-trip check: the list must be
// invariant (as a sorted triple multiset) under SymmetrizeUnion, and for
// weighted lists each (u,v) weight multiset must equal the (v,u) weight
// multiset within epsilon.
func WithSymmetry() CheckOption {
	return func(c *checkConfig) { c.symmetry = true }
}

// WithNoParallelEdges enables the duplicate-pair check: no (src,dst) pair
// may repeat, regardless of weight.
func WithNoParallelEdges() CheckOption {
	return func(c *checkConfig) { c.noParallel = true }
}

// WithEpsilon overrides the weight-comparison tolerance used by the
// symmetry check. Non-positive values are ignored (keep default).
func WithEpsilon(eps float64) CheckOption {
	return func(c *checkConfig) {
		if eps > 0 {
			c.weightEpsilon = eps
		}
	}
}

// Validate runs the cheap checks and then every enabled expensive check,
// in the fixed order range → no-parallel-edge → symmetry. The first
// violation wins.
//
// Errors: ErrSizeMismatch, ErrNegativeVertex, ErrOutOfRange,
// ErrParallelEdges, ErrAsymmetric - all wrapping ErrInvalidInput.
//
// Complexity: cheap O(E); range O(E); no-parallel-edge O(E log E);
// symmetry O(E log E) time, O(E) space (works on a sorted clone, the
// input list is never reordered).
func Validate(el Edgelist, opts ...CheckOption) error {
	cfg := checkConfig{weightEpsilon: DefaultEpsilon}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if err := el.CheapCheck(); err != nil {
		return err
	}
	if cfg.rangeCheck {
		if err := checkRange(el, cfg); err != nil {
			return err
		}
	}
	if cfg.noParallel {
		if err := checkNoParallel(el); err != nil {
			return err
		}
	}
	if cfg.symmetry {
		if err := checkSymmetry(el, cfg.weightEpsilon); err != nil {
			return err
		}
	}
	return nil
}

// checkRange verifies every endpoint against the declared half-open
// partition ranges.
func checkRange(el Edgelist, cfg checkConfig) error {
	for i := range el.Src {
		if el.Src[i] < cfg.majorFirst || el.Src[i] >= cfg.majorLast {
			return fmt.Errorf("Validate: edge %d source %d outside [%d,%d): %w",
				i, el.Src[i], cfg.majorFirst, cfg.majorLast, ErrOutOfRange)
		}
		if el.Dst[i] < cfg.minorFirst || el.Dst[i] >= cfg.minorLast {
			return fmt.Errorf("Validate: edge %d destination %d outside [%d,%d): %w",
				i, el.Dst[i], cfg.minorFirst, cfg.minorLast, ErrOutOfRange)
		}
	}
	return nil
}

// checkNoParallel sorts a clone of the triples and scans for adjacent
// duplicate (src,dst) pairs.
func checkNoParallel(el Edgelist) error {
	sorted := el.Clone()
	sorted.SortTriples()
	for i := 1; i < sorted.Len(); i++ {
		if sorted.Src[i] == sorted.Src[i-1] && sorted.Dst[i] == sorted.Dst[i-1] {
			return fmt.Errorf("Validate: pair (%d,%d) repeats: %w",
				sorted.Src[i], sorted.Dst[i], ErrParallelEdges)
		}
	}
	return nil
}

// checkSymmetry runs the same symmetrization procedure as the production
// build path (SymmetrizeUnion) and compares the sorted triple multiset
// before and after for exact equality. Cardinality comparison happens
// first: any added reverse edge means some pair lacked its counterpart.
// For weighted lists a second pass compares, per unordered pair, the
// multiset of u→v weights against the v→u weights within eps, since the
// pure closure comparison is weight-agnostic when both directions exist.
func checkSymmetry(el Edgelist, eps float64) error {
	closure := SymmetrizeUnion(el)
	if closure.Len() != el.Len() {
		return fmt.Errorf("Validate: symmetrization added %d reverse edges: %w",
			closure.Len()-el.Len(), ErrAsymmetric)
	}

	if !el.Weighted() {
		// Unweighted: equal cardinality already implies every reverse
		// pair existed, which is the whole claim.
		return nil
	}

	// Weighted: group weights by ordered pair and compare against the
	// reverse pair's group.
	groups := make(map[pairKey][]float64, el.Len())
	for i := range el.Src {
		k := pairKey{el.Src[i], el.Dst[i]}
		groups[k] = append(groups[k], el.Weight[i])
	}
	for k, ws := range groups {
		if k.u == k.v {
			continue // self-loop is its own reverse
		}
		rs, ok := groups[pairKey{k.v, k.u}]
		if !ok || len(rs) != len(ws) {
			return fmt.Errorf("Validate: pair (%d,%d) has %d edges, reverse has %d: %w",
				k.u, k.v, len(ws), len(rs), ErrAsymmetric)
		}
		fw := append([]float64(nil), ws...)
		rw := append([]float64(nil), rs...)
		sort.Float64s(fw)
		sort.Float64s(rw)
		for i := range fw {
			if !scalar.EqualWithinAbsOrRel(fw[i], rw[i], eps, eps) {
				return fmt.Errorf("Validate: pair (%d,%d) weight %g != reverse weight %g: %w",
					k.u, k.v, fw[i], rw[i], ErrAsymmetric)
			}
		}
	}
	return nil
}
