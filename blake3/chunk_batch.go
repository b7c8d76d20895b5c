package blake3

// maxChunkBatch is not read by any code path: Write hands every run of
// full chunks to chunkCVs in a single batch, with no upper bound on its
// size.
const maxChunkBatch = 8

// chunkCVsPortable computes one full chunk CV at a time using the scalar
// compression kernel. It is always correct and is the fallback for any
// tail that doesn't divide evenly into a batch width.
func chunkCVsPortable(input []byte, keyWords [8]uint32, counter uint64, flags uint32, out [][8]uint32) {
	for i := range out {
		start := i * ChunkLen
		out[i] = chunkCVFull(input[start:start+ChunkLen], keyWords, counter+uint64(i), flags)
	}
}

// chunkCVs4 computes exactly four chunk CVs with one compress4 call per
// block position, advancing all four chunks' chaining values together.
func chunkCVs4(input []byte, keyWords [8]uint32, counter uint64, flags uint32, out *[4][8]uint32) {
	var cvs [4][8]uint32
	for lane := 0; lane < 4; lane++ {
		cvs[lane] = keyWords
	}

	const blocksPerChunk = ChunkLen / BlockLen
	var blockLens [4]uint32
	for lane := range blockLens {
		blockLens[lane] = BlockLen
	}

	for block := 0; block < blocksPerChunk; block++ {
		var blocks [4][16]uint32
		var counters [4]uint64
		var blockFlags [4]uint32
		for lane := 0; lane < 4; lane++ {
			start := lane*ChunkLen + block*BlockLen
			loadWords(&blocks[lane], input[start:])
			counters[lane] = counter + uint64(lane)
			f := flags
			if block == 0 {
				f |= chunkStart
			}
			if block == blocksPerChunk-1 {
				f |= chunkEnd
			}
			blockFlags[lane] = f
		}
		cvs = compress4(&cvs, &blocks, counters, blockLens, blockFlags)
	}
	*out = cvs
}

// preferBatched reports whether the 4-wide batching kernel is worth its
// transpose overhead for n chunks. Below four chunks there is nothing to
// batch; the CPU-feature gate is a conservative heuristic matching the
// break-even point noted for real SIMD backends, not a correctness
// requirement - chunkCVs4 is correct on every platform regardless.
func preferBatched(n int) bool {
	return n >= 4 && (haveAVX2 || haveSSE41)
}

// chunkCVs fills out with the chaining values of len(out) consecutive
// full chunks starting at input[0:], batching four at a time while at
// least four remain and falling back to the scalar path for the tail.
func chunkCVs(input []byte, keyWords [8]uint32, counter uint64, flags uint32, out [][8]uint32) {
	n := len(out)
	offset := 0
	if preferBatched(n) {
		for n-offset >= 4 {
			var batch [4][8]uint32
			chunkCVs4(input[offset*ChunkLen:], keyWords, counter+uint64(offset), flags, &batch)
			copy(out[offset:offset+4], batch[:])
			offset += 4
		}
	}
	if offset < n {
		chunkCVsPortable(input[offset*ChunkLen:], keyWords, counter+uint64(offset), flags, out[offset:])
	}
}
