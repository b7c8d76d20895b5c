package blake3

import "math/bits"

// vec4 holds one 32-bit word from each of four independent compressions,
// one per lane. It is the software analogue of a 4x32-bit SIMD register:
// every op below applies lanewise.
type vec4 [4]uint32

func addVec4(a, b vec4) vec4 {
	return vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func xorVec4(a, b vec4) vec4 {
	return vec4{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

func rotrVec4(a vec4, n int) vec4 {
	return vec4{
		bits.RotateLeft32(a[0], -n),
		bits.RotateLeft32(a[1], -n),
		bits.RotateLeft32(a[2], -n),
		bits.RotateLeft32(a[3], -n),
	}
}

func g4(a, b, c, d *vec4, mx, my vec4) {
	*a = addVec4(addVec4(*a, *b), mx)
	*d = rotrVec4(xorVec4(*d, *a), 16)
	*c = addVec4(*c, *d)
	*b = rotrVec4(xorVec4(*b, *c), 12)
	*a = addVec4(addVec4(*a, *b), my)
	*d = rotrVec4(xorVec4(*d, *a), 8)
	*c = addVec4(*c, *d)
	*b = rotrVec4(xorVec4(*b, *c), 7)
}

func permuteVec4(m *[16]vec4) {
	var permuted [16]vec4
	for i := 0; i < 16; i++ {
		permuted[i] = m[msgPermutation[i]]
	}
	*m = permuted
}

// compress4 runs Compress-1x four times, with the four instances' words
// packed lane-for-lane into vec4 registers, and returns their four
// truncated chaining values. Running it on four lane-identical inputs
// MUST produce four identical outputs equal to compress on that input
// (tested in compress4_test.go) - this is the core correctness invariant
// of the batched path.
func compress4(
	cvs *[4][8]uint32,
	blocks *[4][16]uint32,
	counters [4]uint64,
	blockLens [4]uint32,
	flags [4]uint32,
) [4][8]uint32 {
	var s [16]vec4
	for word := 0; word < 8; word++ {
		for lane := 0; lane < 4; lane++ {
			s[word][lane] = cvs[lane][word]
		}
	}
	for lane := 0; lane < 4; lane++ {
		s[8][lane] = iv[0]
		s[9][lane] = iv[1]
		s[10][lane] = iv[2]
		s[11][lane] = iv[3]
		s[12][lane] = uint32(counters[lane])
		s[13][lane] = uint32(counters[lane] >> 32)
		s[14][lane] = blockLens[lane]
		s[15][lane] = flags[lane]
	}

	var m [16]vec4
	for word := 0; word < 16; word++ {
		for lane := 0; lane < 4; lane++ {
			m[word][lane] = blocks[lane][word]
		}
	}

	for round := 0; round < 7; round++ {
		g4(&s[0], &s[4], &s[8], &s[12], m[0], m[1])
		g4(&s[1], &s[5], &s[9], &s[13], m[2], m[3])
		g4(&s[2], &s[6], &s[10], &s[14], m[4], m[5])
		g4(&s[3], &s[7], &s[11], &s[15], m[6], m[7])
		g4(&s[0], &s[5], &s[10], &s[15], m[8], m[9])
		g4(&s[1], &s[6], &s[11], &s[12], m[10], m[11])
		g4(&s[2], &s[7], &s[8], &s[13], m[12], m[13])
		g4(&s[3], &s[4], &s[9], &s[14], m[14], m[15])
		if round < 6 {
			permuteVec4(&m)
		}
	}

	var out [4][8]uint32
	for word := 0; word < 8; word++ {
		for lane := 0; lane < 4; lane++ {
			out[lane][word] = s[word][lane] ^ s[word+8][lane]
		}
	}
	return out
}

// parentCVs4 computes four parent chaining values in one batched call,
// given four (left, right) child-CV pairs that share a key and flag set.
func parentCVs4(left, right [4][8]uint32, keyWords [8]uint32, flags uint32) [4][8]uint32 {
	var cvs [4][8]uint32
	var blocks [4][16]uint32
	var counters [4]uint64
	var blockLens, blockFlags [4]uint32
	for lane := 0; lane < 4; lane++ {
		cvs[lane] = keyWords
		copy(blocks[lane][:8], left[lane][:])
		copy(blocks[lane][8:], right[lane][:])
		blockLens[lane] = BlockLen
		blockFlags[lane] = parent | flags
	}
	return compress4(&cvs, &blocks, counters, blockLens, blockFlags)
}
