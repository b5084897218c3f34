// SPDX-License-Identifier: MIT

// Package comm provides the inter-worker coordination layer of the
// engine: a World of in-process workers (one goroutine per rank), and
// MPI-flavoured blocking collectives over communicator groups: Barrier,
// AllGather, AllToAll, AllReduce, Gather, plus Split for deriving the
// row/column subgroups of a 2-D partition grid.
//
// Semantics are deliberately those of MPI:
//
//   - Every collective is synchronous and blocking: the calling worker
//     suspends until all members of the group have entered the same
//     collective. There is no cancellation; a stuck or failed peer
//     blocks all participants.
//   - All members of a group must issue the same sequence of
//     collectives in the same order. The implementation cannot detect
//     mismatched sequences; they deadlock, exactly as in MPI.
//   - Results are deterministic: contribution k always comes from group
//     rank k regardless of arrival order, and reductions fold in rank
//     order.
//
// A collective is a generation-counted rendezvous: members deposit
// their contribution into a shared per-group slot under a mutex; the
// last arrival snapshots the contributions, advances the generation and
// wakes the rest. The snapshot is immutable once published, so late
// readers never race the group's next collective.
//
// World.Run drives one goroutine per rank via errgroup and returns the
// first worker error after all workers have exited.
package comm
