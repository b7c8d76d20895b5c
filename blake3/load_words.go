package blake3

import (
	"encoding/binary"
	"unsafe"
)

var isLittleEndian = *(*uint32)(unsafe.Pointer(&[4]byte{0, 0, 0, 1})) != 1

// loadWords packs 64 bytes into 16 little-endian 32-bit words. b must have
// at least BlockLen bytes; callers that hold a short tail zero-pad into a
// full BlockLen-sized buffer first.
func loadWords(dst *[16]uint32, b []byte) {
	_ = b[BlockLen-1]
	if isLittleEndian && uintptr(unsafe.Pointer(&b[0]))&3 == 0 {
		// Aligned and already little-endian: a direct reinterpretation
		// is safe and avoids sixteen Uint32 calls.
		*dst = *(*[16]uint32)(unsafe.Pointer(&b[0]))
		return
	}
	loadWordsSlow(dst, b)
}

func loadWordsSlow(dst *[16]uint32, b []byte) {
	_ = b[BlockLen-1]
	for i := 0; i < 16; i++ {
		dst[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
}

func keyWordsFromBytes(key *[KeyLen]byte) [8]uint32 {
	var words [8]uint32
	for i := 0; i < 8; i++ {
		words[i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	return words
}
