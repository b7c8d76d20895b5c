package blake3

// fillChunkCVs computes the chaining values of every full chunk in data
// into cvs[:fullChunks], dispatching to the worker pool above
// parallelMinChunks, and appends the trailing partial-chunk CV (if any)
// at cvs[fullChunks].
func fillChunkCVs(data []byte, keyWords [8]uint32, flags uint32, cvs [][8]uint32, fullChunks, rem int) {
	if fullChunks > 0 {
		if shouldParallel(fullChunks) {
			chunkCVsParallel(data[:fullChunks*ChunkLen], keyWords, flags, cvs[:fullChunks])
		} else {
			chunkCVs(data[:fullChunks*ChunkLen], keyWords, 0, flags, cvs[:fullChunks])
		}
	}
	if rem != 0 {
		cs := newChunkState(keyWords, uint64(fullChunks), flags)
		cs.update(data[fullChunks*ChunkLen:])
		cvs[fullChunks] = cs.output().chainingValue()
	}
}

// reduceCVsToOutput folds a complete, order-correct sequence of chunk
// chaining values up to the root output, batching four parent
// compressions at a time while at least four pairs remain at a given
// tree level. The last two nodes are returned as an uncompressed
// parentOutput without ROOT; the caller applies ROOT through rootBytes.
func reduceCVsToOutput(cvs [][8]uint32, keyWords [8]uint32, flags uint32) output {
	level := cvs
	for len(level) > 2 {
		outLen := len(level) / 2
		i := 0
		if preferBatched(outLen) {
			for ; outLen-i >= 4; i += 4 {
				var left, right [4][8]uint32
				for lane := 0; lane < 4; lane++ {
					left[lane] = level[(i+lane)*2]
					right[lane] = level[(i+lane)*2+1]
				}
				batch := parentCVs4(left, right, keyWords, flags)
				for lane := 0; lane < 4; lane++ {
					level[i+lane] = batch[lane]
				}
			}
		}
		for ; i < outLen; i++ {
			level[i] = parentCV(level[i*2], level[i*2+1], keyWords, flags)
		}
		if len(level)%2 == 1 {
			level[outLen] = level[len(level)-1]
			outLen++
		}
		level = level[:outLen]
	}
	return parentOutput(level[0], level[1], keyWords, flags)
}

// sumFast computes a digest of any length directly from a fully
// materialized buffer, without going through the incremental Hasher.
// This is the entry point used by every one-shot convenience function.
func sumFast(data []byte, keyWords [8]uint32, flags uint32, out []byte) {
	if len(data) <= ChunkLen {
		cs := newChunkState(keyWords, 0, flags)
		cs.update(data)
		cs.output().rootBytes(out)
		return
	}

	fullChunks := len(data) / ChunkLen
	rem := len(data) % ChunkLen
	totalChunks := fullChunks
	if rem != 0 {
		totalChunks++
	}
	if totalChunks <= 1 {
		cs := newChunkState(keyWords, 0, flags)
		cs.update(data)
		cs.output().rootBytes(out)
		return
	}

	cvs := getCVs(totalChunks)
	fillChunkCVs(data, keyWords, flags, cvs[:totalChunks], fullChunks, rem)
	reduceCVsToOutput(cvs[:totalChunks], keyWords, flags).rootBytes(out)
	putCVs(cvs)
}

// Sum256 returns the 32-byte BLAKE3 hash of data.
func Sum256(data []byte) [OutLen]byte {
	var out [OutLen]byte
	sumFast(data, iv, 0, out[:])
	return out
}

// Sum writes a digest of len(out) bytes for data into out.
func Sum(data []byte, out []byte) {
	sumFast(data, iv, 0, out)
}

// SumKeyed returns the 32-byte keyed BLAKE3 hash of data under key.
func SumKeyed(key [KeyLen]byte, data []byte) [OutLen]byte {
	var out [OutLen]byte
	sumFast(data, keyWordsFromBytes(&key), keyedHash, out[:])
	return out
}

// SumKeyedFromBytes is SumKeyed for callers holding a runtime-length key;
// it returns ErrInvalidKeyLength if len(key) != KeyLen.
func SumKeyedFromBytes(key, data []byte) ([OutLen]byte, error) {
	if len(key) != KeyLen {
		return [OutLen]byte{}, ErrInvalidKeyLength
	}
	var k [KeyLen]byte
	copy(k[:], key)
	return SumKeyed(k, data), nil
}

// DeriveKey writes a derived digest of len(out) bytes, computed from
// context (hashed in DERIVE_KEY_CONTEXT mode to produce the run's
// initial chaining value) and material (hashed in DERIVE_KEY_MATERIAL
// mode to produce the output).
func DeriveKey(context string, material []byte, out []byte) {
	sumFast(material, deriveContextKey(context), deriveKeyMaterial, out)
}
