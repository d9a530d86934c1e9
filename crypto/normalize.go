package crypto

import (
	"strings"
	"unicode"
)

func isLetter(r rune) bool {
	return ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z')
}

// CleanText keeps only the ASCII letters of s, uppercased, in order.
// It drops exactly the runes that Vigenère copies through unchanged.
func CleanText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// CleanKey normalizes a key the same way CleanText normalizes text.
// The result may be empty; ciphers reject that with ErrInvalidKey.
func CleanKey(s string) string {
	return CleanText(s)
}

// ValidateKey reports whether key still has letters after normalization.
func ValidateKey(key string) error {
	if CleanKey(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
