package blake3

import "errors"

// Sentinel errors describing caller-level contract violations. Wrap them
// with fmt.Errorf("...: %w", ...) at call sites that need more context;
// errors.Is(err, ErrInvalidKeyLength) keeps working through the wrap.
var (
	// ErrInvalidKeyLength is returned when a keyed_hash key is not
	// exactly KeyLen bytes.
	ErrInvalidKeyLength = errors.New("blake3: key must be exactly 32 bytes")

	// ErrInvalidOutputLength is returned when a caller requests a
	// zero or negative length digest.
	ErrInvalidOutputLength = errors.New("blake3: output length must be positive")
)
