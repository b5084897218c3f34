// SPDX-License-Identifier: MIT
package comm_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avellane/edgepress/comm"
)

func TestNewWorld(t *testing.T) {
	t.Parallel()

	_, err := comm.NewWorld(0)
	require.ErrorIs(t, err, comm.ErrBadWorldSize)

	w, err := comm.NewWorld(3)
	require.NoError(t, err)
	require.Equal(t, 3, w.Size())
}

func TestBarrier_AllArriveBeforeAnyLeaves(t *testing.T) {
	t.Parallel()

	w, err := comm.NewWorld(8)
	require.NoError(t, err)

	var entered int32
	err = w.Run(func(c *comm.Comm) error {
		atomic.AddInt32(&entered, 1)
		c.Barrier()
		// After the barrier every worker must observe all entries.
		require.Equal(t, int32(8), atomic.LoadInt32(&entered))
		return nil
	})
	require.NoError(t, err)
}

func TestAllGather_RankIndexedAndIdentical(t *testing.T) {
	t.Parallel()

	w, err := comm.NewWorld(5)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		got := comm.AllGather(c, int64(c.Rank()*10))
		require.Equal(t, []int64{0, 10, 20, 30, 40}, got)
		return nil
	})
	require.NoError(t, err)
}

func TestAllToAll_Exchange(t *testing.T) {
	t.Parallel()

	w, err := comm.NewWorld(4)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		// Rank r sends the single value 100*r+d to destination d.
		send := make([][]int, c.Size())
		for d := range send {
			send[d] = []int{100*c.Rank() + d}
		}
		recv, err := comm.AllToAll(c, send)
		require.NoError(t, err)
		require.Len(t, recv, 4)
		for src, chunk := range recv {
			require.Equal(t, []int{100*src + c.Rank()}, chunk)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestAllToAll_BadSendCount(t *testing.T) {
	t.Parallel()

	w, err := comm.NewWorld(2)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		// Validate-before-rendezvous: both ranks fail identically and
		// nobody blocks.
		_, err := comm.AllToAll(c, make([][]int, 3))
		return err
	})
	require.ErrorIs(t, err, comm.ErrBadSendCount)
}

func TestAllReduce_SumAndMax(t *testing.T) {
	t.Parallel()

	w, err := comm.NewWorld(6)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		sum := comm.AllReduce(c, int64(c.Rank()+1), comm.SumInt64)
		require.Equal(t, int64(21), sum)

		max := comm.AllReduce(c, float64(c.Rank())/10, comm.MaxFloat64)
		require.Equal(t, 0.5, max)
		return nil
	})
	require.NoError(t, err)
}

func TestGather_OnlyRootReceives(t *testing.T) {
	t.Parallel()

	w, err := comm.NewWorld(4)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		got, err := comm.Gather(c, c.Rank()*c.Rank(), 2)
		require.NoError(t, err)
		if c.Rank() == 2 {
			require.Equal(t, []int{0, 1, 4, 9}, got)
		} else {
			require.Nil(t, got)
		}

		_, err = comm.Gather(c, 0, 9)
		require.ErrorIs(t, err, comm.ErrBadRoot)
		return nil
	})
	require.NoError(t, err)
}

func TestSplit_RowColumnGroups(t *testing.T) {
	t.Parallel()

	// A 2×3 grid: rows {0,1,2},{3,4,5}; columns {0,3},{1,4},{2,5}.
	w, err := comm.NewWorld(6)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		row := c.Rank() / 3
		col := c.Rank() % 3

		rowComm := c.Split(row, col)
		require.Equal(t, 3, rowComm.Size())
		require.Equal(t, col, rowComm.Rank())
		require.Equal(t, c.Rank(), rowComm.GlobalRank())

		colComm := c.Split(col, row)
		require.Equal(t, 2, colComm.Size())
		require.Equal(t, row, colComm.Rank())

		// Collectives on subgroups stay inside the subgroup.
		rowSum := comm.AllReduce(rowComm, c.Rank(), func(a, b int) int { return a + b })
		require.Equal(t, row*9+3, rowSum) // 0+1+2 or 3+4+5

		colGather := comm.AllGather(colComm, c.Rank())
		require.Equal(t, []int{col, col + 3}, colGather)
		return nil
	})
	require.NoError(t, err)
}

func TestSplit_KeyControlsOrdering(t *testing.T) {
	t.Parallel()

	w, err := comm.NewWorld(4)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		// Reverse keys: rank 3 becomes subgroup rank 0.
		sub := c.Split(0, -c.Rank())
		require.Equal(t, 4, sub.Size())
		require.Equal(t, 3-c.Rank(), sub.Rank())

		got := comm.AllGather(sub, c.Rank())
		require.Equal(t, []int{3, 2, 1, 0}, got)
		return nil
	})
	require.NoError(t, err)
}

func TestCollectives_BackToBackGenerations(t *testing.T) {
	t.Parallel()

	// Hammer the generation counter: many rounds where a fast worker
	// may re-enter the next collective while slow peers still read the
	// previous result.
	w, err := comm.NewWorld(8)
	require.NoError(t, err)

	err = w.Run(func(c *comm.Comm) error {
		for round := 0; round < 500; round++ {
			got := comm.AllGather(c, round*100+c.Rank())
			for r, v := range got {
				require.Equal(t, round*100+r, v)
			}
		}
		return nil
	})
	require.NoError(t, err)
}
