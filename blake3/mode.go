package blake3

// newHasher builds a Hasher rooted at chunk 0 with the given key words
// and domain-separation flags, shared by every mode constructor below.
func newHasher(keyWords [8]uint32, flags uint32) *Hasher {
	return &Hasher{
		chunkState: newChunkState(keyWords, 0, flags),
		keyWords:   keyWords,
		flags:      flags,
	}
}

// New returns a Hasher computing the unkeyed BLAKE3 hash.
func New() *Hasher {
	return newHasher(iv, 0)
}

// NewKeyed returns a Hasher computing the keyed BLAKE3 hash under key.
func NewKeyed(key [KeyLen]byte) *Hasher {
	return newHasher(keyWordsFromBytes(&key), keyedHash)
}

// NewKeyedFromBytes is NewKeyed for callers holding a runtime-length key
// slice; it returns ErrInvalidKeyLength if len(key) != KeyLen.
func NewKeyedFromBytes(key []byte) (*Hasher, error) {
	if len(key) != KeyLen {
		return nil, ErrInvalidKeyLength
	}
	var k [KeyLen]byte
	copy(k[:], key)
	return NewKeyed(k), nil
}

// deriveContextKey hashes context in DERIVE_KEY_CONTEXT mode down to the
// 32-byte chaining value that seeds key derivation for actual key
// material. context may be any length; it is driven through the same
// general-purpose chunk/tree machinery as any other input.
func deriveContextKey(context string) [8]uint32 {
	var out [KeyLen]byte
	sumFast([]byte(context), iv, deriveKeyContext, out[:])
	return keyWordsFromBytes(&out)
}

// NewDeriveKey returns a Hasher that derives key material for the given
// application-defined context string. Bytes written to the returned
// Hasher are the key material; context is hashed immediately.
func NewDeriveKey(context string) *Hasher {
	return newHasher(deriveContextKey(context), deriveKeyMaterial)
}
