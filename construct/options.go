// SPDX-License-Identifier: MIT
// Package construct: functional options for the builder.

package construct

import (
	"github.com/rs/zerolog"

	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/graph"
)

// DefaultHighDegree is the neighbor-count boundary between the dense
// and the sparse density tier in segment-offset tables.
const DefaultHighDegree int64 = 32

// config is the resolved builder configuration. In distributed mode it
// must resolve identically on every worker.
type config struct {
	renumber    bool
	expensive   bool
	orientation graph.Orientation
	numVertices int64 // <=0 means derive from the edge list

	highDegree      int64
	hypersparseDeg  float64 // <=0 disables the hypersparse tail
	sparseIndexFill float64 // <=0 disables sparse index derivation
	sortChunkBytes  int     // <=0 keeps the segsort default
	symmetryEpsilon float64
	log             zerolog.Logger
}

func defaultConfig() config {
	return config{
		orientation:     graph.StoreBySource,
		highDegree:      DefaultHighDegree,
		symmetryEpsilon: edgelist.DefaultEpsilon,
		log:             zerolog.Nop(),
	}
}

// Option adjusts the builder configuration.
type Option func(*config)

// WithRenumbering remaps vertex ids to a dense [0, V) range ordered by
// descending degree (ties by ascending external id). The map from local
// index back to external id is carried on the resulting graph; see
// Unrenumber. Without this option ids must already be dense.
func WithRenumbering() Option {
	return func(c *config) { c.renumber = true }
}

// WithExpensiveChecks enables the opt-in validation pass: per-block
// range checks, the no-parallel-edges check for simple graphs, the
// symmetry check for declared-symmetric graphs, structural block
// verification, and the edge-count cross-check.
func WithExpensiveChecks() Option {
	return func(c *config) { c.expensive = true }
}

// WithOrientation selects the storage convention. StoreBySource (the
// default) groups edges by source; StoreByDestination by destination.
func WithOrientation(o graph.Orientation) Option {
	return func(c *config) { c.orientation = o }
}

// WithNumVertices declares the vertex count instead of deriving it as
// max id + 1. Ignored when renumbering is on (the dense range is the
// unique endpoint count then). Required for graphs with zero edges but
// a non-empty vertex set.
func WithNumVertices(n int64) Option {
	return func(c *config) { c.numVertices = n }
}

// WithHighDegree overrides the density-tier boundary used for
// segment-offset tables. Non-positive values collapse the dense tier.
func WithHighDegree(d int64) Option {
	return func(c *config) { c.highDegree = d }
}

// WithHypersparseThreshold enables hypersparse storage: a partition
// cell whose average local major degree falls below avgDegree stores an
// explicit vertex list instead of a full-range offsets array.
// Non-positive (the default) keeps every cell dense.
func WithHypersparseThreshold(avgDegree float64) Option {
	return func(c *config) { c.hypersparseDeg = avgDegree }
}

// WithSparseIndexThreshold enables sparse property-index derivation:
// when the worst fill ratio of unique edge endpoints over the
// addressable range, across all workers, stays at or below fill, the
// sorted unique major/minor lists are materialized on the graph.
// Non-positive (the default) disables the derivation entirely.
func WithSparseIndexThreshold(fill float64) Option {
	return func(c *config) { c.sparseIndexFill = fill }
}

// WithSortChunkBytes overrides the neighbor-sort scratch budget per
// chunk; see segsort.WithChunkBytes.
func WithSortChunkBytes(n int) Option {
	return func(c *config) { c.sortChunkBytes = n }
}

// WithSymmetryEpsilon overrides the weight tolerance of the expensive
// symmetry check; see edgelist.WithEpsilon.
func WithSymmetryEpsilon(eps float64) Option {
	return func(c *config) { c.symmetryEpsilon = eps }
}

// WithLogger attaches a zerolog logger for stage-timing debug output.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.log = l }
}

func resolve(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
