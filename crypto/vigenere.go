// Package crypto contains the classical ciphers: Vigenère, columnar transposition and the keyed table cipher.
package crypto

import (
	"fmt"
	"strings"
)

type Vigenere struct {
	key []byte
}

func NewVigenere(key string) (*Vigenere, error) {
	cleaned := CleanKey(key)
	if cleaned == "" {
		return nil, fmt.Errorf("vigenere: %w: key %q has no letters", ErrInvalidKey, key)
	}
	return &Vigenere{
		key: []byte(cleaned),
	}, nil
}

// Key returns the normalized key.
func (v *Vigenere) Key() string {
	return string(v.key)
}

func (v *Vigenere) Encrypt(text string) string {
	return v.apply(text, 1)
}

func (v *Vigenere) Decrypt(text string) string {
	return v.apply(text, -1)
}

// apply shifts every ASCII letter by the key letter under the cursor.
// Anything else is copied as is and does not move the cursor.
func (v *Vigenere) apply(text string, direction int) string {
	var b strings.Builder
	b.Grow(len(text))

	keyLen := len(v.key)
	keyIndex := 0
	for _, char := range text {
		if !isLetter(char) {
			b.WriteRune(char)
			continue
		}

		base := 'A'
		if char >= 'a' {
			base = 'a'
		}
		shift := int(v.key[keyIndex%keyLen]-'A') * direction
		// (P + K) mod 26 to encrypt, (C - K + 26) mod 26 to decrypt
		shifted := (int(char-base) + shift + 26) % 26
		b.WriteRune(base + rune(shifted))
		keyIndex++
	}

	return b.String()
}

// VigenereEncrypt encrypts text with key, preserving case and non-letters.
func VigenereEncrypt(text, key string) (string, error) {
	v, err := NewVigenere(key)
	if err != nil {
		return "", err
	}
	return v.Encrypt(text), nil
}

// VigenereDecrypt reverses VigenereEncrypt.
func VigenereDecrypt(text, key string) (string, error) {
	v, err := NewVigenere(key)
	if err != nil {
		return "", err
	}
	return v.Decrypt(text), nil
}
