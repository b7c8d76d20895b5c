package blake3

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParallelDispatchMatchesSerialAcrossWorkerCounts confirms that the
// worker-pool chunk dispatcher is bit-identical to the serial path no
// matter how GOMAXPROCS happens to partition the work.
func TestParallelDispatchMatchesSerialAcrossWorkerCounts(t *testing.T) {
	prevProcs := runtime.GOMAXPROCS(0)
	defer runtime.GOMAXPROCS(prevProcs)

	chunks := parallelMinChunks*3 + 5
	input := testInput(chunks * ChunkLen)
	keyWords := iv

	serial := make([][8]uint32, chunks)
	chunkCVs(input, keyWords, 0, 0, serial)

	for _, procs := range []int{1, 2, 3, 4, 8, 16} {
		runtime.GOMAXPROCS(procs)
		parallelOut := getCVs(chunks)
		chunkCVsParallel(input, keyWords, 0, parallelOut)
		require.Equal(t, serial, parallelOut[:chunks], "GOMAXPROCS=%d diverged from serial", procs)
		putCVs(parallelOut)
	}
}

func TestShouldParallelThreshold(t *testing.T) {
	require.False(t, shouldParallel(parallelMinChunks-1))

	prevProcs := runtime.GOMAXPROCS(0)
	defer runtime.GOMAXPROCS(prevProcs)
	runtime.GOMAXPROCS(4)
	require.True(t, shouldParallel(parallelMinChunks))

	runtime.GOMAXPROCS(1)
	require.False(t, shouldParallel(parallelMinChunks))
}

func TestSumFastAboveParallelThresholdMatchesBelow(t *testing.T) {
	n := (parallelMinChunks+1)*ChunkLen + 17
	input := testInput(n)

	var viaHasher [OutLen]byte
	h := New()
	_, _ = h.Write(input)
	viaHasher = h.Sum256()

	viaSumFast := Sum256(input)
	require.Equal(t, viaHasher, viaSumFast)
}
