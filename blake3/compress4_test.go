package blake3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCompress4MatchesScalarOnIdenticalLanes is the core correctness
// invariant of the batched path: running compress4 on four
// lane-identical inputs must reproduce compress on that same input in
// every lane.
func TestCompress4MatchesScalarOnIdenticalLanes(t *testing.T) {
	var cv [8]uint32
	for i := range cv {
		cv[i] = uint32(i*7 + 3)
	}
	var block [16]uint32
	for i := range block {
		block[i] = uint32(i*13 + 1)
	}
	const counter = 42
	const blockLen = BlockLen
	const flags = chunkStart | chunkEnd

	want := first8Words(compress(&cv, &block, counter, blockLen, flags))

	var cvs [4][8]uint32
	var blocks [4][16]uint32
	var counters [4]uint64
	var blockLens, blockFlags [4]uint32
	for lane := 0; lane < 4; lane++ {
		cvs[lane] = cv
		blocks[lane] = block
		counters[lane] = counter
		blockLens[lane] = blockLen
		blockFlags[lane] = flags
	}

	got := compress4(&cvs, &blocks, counters, blockLens, blockFlags)
	for lane := 0; lane < 4; lane++ {
		require.Equal(t, want, got[lane], "lane %d diverged from scalar compress", lane)
	}
}

// TestCompress4IsLaneIndependent checks that perturbing a single lane's
// input never affects the other three lanes' output.
func TestCompress4IsLaneIndependent(t *testing.T) {
	var cvs [4][8]uint32
	var blocks [4][16]uint32
	var counters [4]uint64
	var blockLens, blockFlags [4]uint32
	for lane := 0; lane < 4; lane++ {
		for i := range cvs[lane] {
			cvs[lane][i] = uint32(lane*100 + i)
		}
		for i := range blocks[lane] {
			blocks[lane][i] = uint32(lane*1000 + i)
		}
		counters[lane] = uint64(lane)
		blockLens[lane] = BlockLen
		blockFlags[lane] = chunkStart | chunkEnd
	}

	before := compress4(&cvs, &blocks, counters, blockLens, blockFlags)

	// Perturb only lane 2's block.
	blocks[2][0] ^= 0xffffffff
	after := compress4(&cvs, &blocks, counters, blockLens, blockFlags)

	for lane := 0; lane < 4; lane++ {
		if lane == 2 {
			require.NotEqual(t, before[lane], after[lane])
			continue
		}
		require.Equal(t, before[lane], after[lane], "lane %d changed after perturbing lane 2", lane)
	}
}

func TestChunkCVs4MatchesPortable(t *testing.T) {
	input := testInput(4 * ChunkLen)
	keyWords := iv

	var batched [4][8]uint32
	chunkCVs4(input, keyWords, 0, 0, &batched)

	portable := make([][8]uint32, 4)
	chunkCVsPortable(input, keyWords, 0, 0, portable)

	for i := 0; i < 4; i++ {
		require.Equal(t, portable[i], batched[i], "chunk %d diverged", i)
	}
}

func TestChunkCVsDispatchMatchesPortableForOddCounts(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 9, 16} {
		input := testInput(n * ChunkLen)
		keyWords := iv

		out := make([][8]uint32, n)
		chunkCVs(input, keyWords, 0, 0, out)

		want := make([][8]uint32, n)
		chunkCVsPortable(input, keyWords, 0, 0, want)

		require.Equal(t, want, out, "mismatch at n=%d chunks", n)
	}
}
