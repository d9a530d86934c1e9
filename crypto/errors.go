package crypto

import "errors"

var (
	// ErrInvalidKey is returned when a key has no letters left after normalization.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidCiphertext is returned when a ciphertext letter has no place in the substitution alphabet.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	// ErrInvalidLength is returned for a negative original length.
	ErrInvalidLength = errors.New("invalid length")
)
