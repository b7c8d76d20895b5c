package blake3

import "encoding/binary"

// output defers the final compression of a node (chunk or parent) until
// its chaining value or root bytes are actually needed.
type output struct {
	inputChainingValue [8]uint32
	blockWords         [16]uint32
	counter            uint64
	blockLen           uint32
	flags              uint32
}

func (o output) chainingValue() [8]uint32 {
	return first8Words(compress(
		&o.inputChainingValue,
		&o.blockWords,
		o.counter,
		o.blockLen,
		o.flags,
	))
}

// rootBytes serializes len(out) bytes of extended output, re-running the
// root compression with successive output-block counters once the first
// 64 bytes are exhausted.
func (o output) rootBytes(out []byte) {
	var outputBlockCounter uint64
	for len(out) > 0 {
		words := compress(
			&o.inputChainingValue,
			&o.blockWords,
			outputBlockCounter,
			o.blockLen,
			o.flags|root,
		)
		for i := 0; i < 16 && len(out) > 0; i++ {
			if len(out) >= 4 {
				binary.LittleEndian.PutUint32(out, words[i])
				out = out[4:]
				continue
			}
			var tmp [4]byte
			binary.LittleEndian.PutUint32(tmp[:], words[i])
			copy(out, tmp[:len(out)])
			return
		}
		outputBlockCounter++
	}
}

// chunkState accumulates up to ChunkLen bytes into 64-byte blocks,
// compressing each as it fills, ready to be driven block-by-block by a
// streaming Hasher.Write or by sumFast for a trailing partial chunk.
// Complete chunks hashed in one pass go through chunkCVFull instead.
type chunkState struct {
	chainingValue    [8]uint32
	chunkCounter     uint64
	block            [BlockLen]byte
	blockLen         uint8
	blocksCompressed uint8
	flags            uint32
}

func newChunkState(keyWords [8]uint32, chunkCounter uint64, flags uint32) chunkState {
	return chunkState{
		chainingValue: keyWords,
		chunkCounter:  chunkCounter,
		flags:         flags,
	}
}

func (c *chunkState) len() int {
	return BlockLen*int(c.blocksCompressed) + int(c.blockLen)
}

func (c *chunkState) startFlag() uint32 {
	if c.blocksCompressed == 0 {
		return chunkStart
	}
	return 0
}

func (c *chunkState) update(input []byte) {
	for len(input) > 0 {
		if c.blockLen == BlockLen {
			var blockWords [16]uint32
			loadWords(&blockWords, c.block[:])
			c.chainingValue = first8Words(compress(
				&c.chainingValue,
				&blockWords,
				c.chunkCounter,
				BlockLen,
				c.flags|c.startFlag(),
			))
			c.blocksCompressed++
			clear(c.block[:])
			c.blockLen = 0
		}

		want := BlockLen - int(c.blockLen)
		if want > len(input) {
			want = len(input)
		}
		copy(c.block[int(c.blockLen):], input[:want])
		c.blockLen += uint8(want)
		input = input[want:]
	}
}

// output finalizes the chunk's current (possibly partial) final block
// without mutating c, so callers may keep writing if the chunk isn't
// full yet.
func (c *chunkState) output() output {
	var blockWords [16]uint32
	loadWords(&blockWords, c.block[:])
	return output{
		inputChainingValue: c.chainingValue,
		blockWords:         blockWords,
		counter:            c.chunkCounter,
		blockLen:           uint32(c.blockLen),
		flags:              c.flags | c.startFlag() | chunkEnd,
	}
}

func parentOutput(
	leftChildCV [8]uint32,
	rightChildCV [8]uint32,
	keyWords [8]uint32,
	flags uint32,
) output {
	var blockWords [16]uint32
	copy(blockWords[:8], leftChildCV[:])
	copy(blockWords[8:], rightChildCV[:])
	return output{
		inputChainingValue: keyWords,
		blockWords:         blockWords,
		counter:            0,
		blockLen:           BlockLen,
		flags:              parent | flags,
	}
}

func parentCV(
	leftChildCV [8]uint32,
	rightChildCV [8]uint32,
	keyWords [8]uint32,
	flags uint32,
) [8]uint32 {
	return parentOutput(leftChildCV, rightChildCV, keyWords, flags).chainingValue()
}

// chunkCVFull computes the chaining value of one complete 1024-byte chunk
// in a single pass, without going through the incremental chunkState.
func chunkCVFull(input []byte, keyWords [8]uint32, chunkCounter uint64, flags uint32) [8]uint32 {
	cv := keyWords
	var blockWords [16]uint32
	const blocksPerChunk = ChunkLen / BlockLen
	for block := 0; block < blocksPerChunk; block++ {
		loadWords(&blockWords, input[block*BlockLen:])
		blockFlags := flags
		if block == 0 {
			blockFlags |= chunkStart
		}
		if block == blocksPerChunk-1 {
			blockFlags |= chunkEnd
		}
		cv = first8Words(compress(&cv, &blockWords, chunkCounter, BlockLen, blockFlags))
	}
	return cv
}
