package blake3

import (
	"runtime"
	"sync"
)

// parallelMinChunks is the smallest full-chunk count worth handing off to
// a worker pool; below it the per-goroutine dispatch overhead outweighs
// any gain. 128 chunks is 128 KiB of input.
const parallelMinChunks = 128

var cvPool = sync.Pool{
	New: func() any {
		return make([][8]uint32, 0, parallelMinChunks)
	},
}

func getCVs(chunks int) [][8]uint32 {
	cvs := cvPool.Get().([][8]uint32)
	if cap(cvs) < chunks {
		return make([][8]uint32, chunks)
	}
	return cvs[:chunks]
}

func putCVs(cvs [][8]uint32) {
	cvPool.Put(cvs[:0])
}

func shouldParallel(fullChunks int) bool {
	if fullChunks < parallelMinChunks {
		return false
	}
	return runtime.GOMAXPROCS(0) > 1
}

// chunkCVsParallel partitions [0, len(out)) into one contiguous range per
// GOMAXPROCS worker and hashes each range concurrently. Every worker is a
// pure function of its input slice and its absolute chunk-counter offset
// and writes only into its own disjoint span of out, so the result is
// bit-identical to the serial chunkCVs call regardless of worker count.
func chunkCVsParallel(data []byte, keyWords [8]uint32, flags uint32, out [][8]uint32) {
	chunks := len(out)
	if chunks == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > chunks {
		workers = chunks
	}
	if workers < 2 {
		chunkCVs(data, keyWords, 0, flags, out)
		return
	}

	var wg sync.WaitGroup
	start := 0
	base := chunks / workers
	extra := chunks % workers
	for i := 0; i < workers; i++ {
		n := base
		if i < extra {
			n++
		}
		end := start + n
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			chunkCVs(data[start*ChunkLen:end*ChunkLen], keyWords, uint64(start), flags, out[start:end])
		}(start, end)
		start = end
	}
	wg.Wait()
}
