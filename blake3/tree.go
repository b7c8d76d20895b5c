package blake3

import "hash"

// Hasher incrementally computes a BLAKE3 digest. The zero value is not
// usable; construct one with New, NewKeyed, NewKeyedFromBytes, or
// NewDeriveKey. A Hasher implements hash.Hash for the 32-byte case, and
// FinalizeN/Finalize for any other output length.
//
// cvStack holds completed subtree chaining values not yet merged into
// their parent, one per set bit of the chunk count processed so far,
// with stack[0] the deepest (oldest) subtree. 54 entries cover every
// input shorter than 2^64 bytes (fewer than 2^54 chunks).
type Hasher struct {
	chunkState chunkState
	keyWords   [8]uint32
	cvStack    [54][8]uint32
	cvStackLen uint8
	flags      uint32
}

var _ hash.Hash = (*Hasher)(nil)

func (h *Hasher) pushStack(cv [8]uint32) {
	h.cvStack[h.cvStackLen] = cv
	h.cvStackLen++
}

func (h *Hasher) popStack() [8]uint32 {
	h.cvStackLen--
	return h.cvStack[h.cvStackLen]
}

// addChunkChainingValue folds a newly completed chunk's chaining value
// into the subtree stack, merging it with any already-completed subtree
// of equal size at every trailing zero bit of the chunk's 1-based total
// count - the standard binary-counter shape of BLAKE3's Merkle tree.
func (h *Hasher) addChunkChainingValue(newCV [8]uint32, totalChunks uint64) {
	for totalChunks&1 == 0 {
		newCV = parentCV(h.popStack(), newCV, h.keyWords, h.flags)
		totalChunks >>= 1
	}
	h.pushStack(newCV)
}

// Write implements io.Writer, feeding p into the chunk/tree engine. It
// never returns an error and always consumes all of p.
func (h *Hasher) Write(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		if h.chunkState.len() == ChunkLen {
			chunkCV := h.chunkState.output().chainingValue()
			totalChunks := h.chunkState.chunkCounter + 1
			h.addChunkChainingValue(chunkCV, totalChunks)
			h.chunkState = newChunkState(h.keyWords, totalChunks, h.flags)
		}

		want := ChunkLen - h.chunkState.len()
		if want > len(p) {
			want = len(p)
		}

		if want == ChunkLen && len(p) >= ChunkLen {
			batchLen := len(p) / ChunkLen
			if len(p)%ChunkLen == 0 {
				// Reserve the final chunk: until more input arrives (or
				// Write returns for good), we cannot know whether this
				// chunk is the last one, and only the last chunk may be
				// finalized with ROOT. Leave it for chunkState
				// to hold as the pending, not-yet-finalized chunk.
				batchLen--
			}
			if batchLen > 0 {
				cvs := make([][8]uint32, batchLen)
				chunkCVs(p[:batchLen*ChunkLen], h.keyWords, h.chunkState.chunkCounter, h.flags, cvs)
				for i, cv := range cvs {
					totalChunks := h.chunkState.chunkCounter + uint64(i) + 1
					h.addChunkChainingValue(cv, totalChunks)
				}
				h.chunkState = newChunkState(h.keyWords, h.chunkState.chunkCounter+uint64(batchLen), h.flags)
				p = p[batchLen*ChunkLen:]
				continue
			}
		}

		h.chunkState.update(p[:want])
		p = p[want:]
	}

	return n, nil
}

// finalize walks the subtree stack from the top down, applying the ROOT
// flag only to the final parent merge (or to the lone chunk output, if
// the input never grew past one chunk), and serializes out.
func (h *Hasher) finalize(out []byte) {
	if h.cvStackLen == 0 {
		h.chunkState.output().rootBytes(out)
		return
	}

	node := h.chunkState.output()
	cv := node.chainingValue()
	for i := int(h.cvStackLen) - 1; i > 0; i-- {
		cv = parentCV(h.cvStack[i], cv, h.keyWords, h.flags)
	}
	parentOutput(h.cvStack[0], cv, h.keyWords, h.flags).rootBytes(out)
}

// Sum implements hash.Hash: it appends the 32-byte digest of everything
// written so far to b and returns the result, without mutating h.
func (h *Hasher) Sum(b []byte) []byte {
	digest := h.Sum256()
	return append(b, digest[:]...)
}

// Sum256 returns the 32-byte digest of everything written so far,
// without mutating h.
func (h *Hasher) Sum256() [OutLen]byte {
	var out [OutLen]byte
	clone := *h
	clone.finalize(out[:])
	return out
}

// FinalizeN returns an outputLen-byte extended digest of everything
// written so far, without mutating h. It returns ErrInvalidOutputLength
// if outputLen is not positive.
func (h *Hasher) FinalizeN(outputLen int) ([]byte, error) {
	if outputLen <= 0 {
		return nil, ErrInvalidOutputLength
	}
	out := make([]byte, outputLen)
	clone := *h
	clone.finalize(out)
	return out, nil
}

// Finalize writes len(out) bytes of extended digest into out, without
// mutating h.
func (h *Hasher) Finalize(out []byte) {
	clone := *h
	clone.finalize(out)
}

// Reset restores h to the state it had immediately after construction,
// reusing its key words and mode flags.
func (h *Hasher) Reset() {
	*h = *newHasher(h.keyWords, h.flags)
}

// Size returns the number of bytes Sum appends: always 32.
func (h *Hasher) Size() int { return OutLen }

// BlockSize returns the hasher's natural block size, 64 bytes.
func (h *Hasher) BlockSize() int { return BlockLen }
