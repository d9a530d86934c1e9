package crypto

import (
	"fmt"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Table is a keyed monoalphabetic substitution.
type Table struct {
	substitution string
	inverse      [26]int
}

// SubstitutionAlphabet returns the key letters without repeats, in first
// occurrence order, followed by the unused letters of the alphabet.
func SubstitutionAlphabet(key string) string {
	var b strings.Builder
	var used [26]bool
	for _, c := range CleanKey(key) + alphabet {
		idx := c - 'A'
		if used[idx] {
			continue
		}
		used[idx] = true
		b.WriteRune(c)
	}
	return b.String()
}

func NewTable(key string) (*Table, error) {
	if CleanKey(key) == "" {
		return nil, fmt.Errorf("table: %w: key %q has no letters", ErrInvalidKey, key)
	}
	return newTableFromAlphabet(SubstitutionAlphabet(key)), nil
}

func newTableFromAlphabet(substitution string) *Table {
	t := &Table{substitution: substitution}
	for i := range t.inverse {
		t.inverse[i] = -1
	}
	for i := 0; i < len(substitution); i++ {
		c := substitution[i]
		if c >= 'A' && c <= 'Z' && t.inverse[c-'A'] < 0 {
			t.inverse[c-'A'] = i
		}
	}
	return t
}

// Substitution returns the 26 letter substitution alphabet.
func (t *Table) Substitution() string {
	return t.substitution
}

func (t *Table) Encrypt(text string) string {
	cleaned := CleanText(text)
	out := make([]byte, len(cleaned))
	for i := 0; i < len(cleaned); i++ {
		out[i] = t.substitution[cleaned[i]-'A']
	}
	return string(out)
}

func (t *Table) Decrypt(text string) (string, error) {
	cleaned := CleanText(text)
	out := make([]byte, len(cleaned))
	for i := 0; i < len(cleaned); i++ {
		idx := t.inverse[cleaned[i]-'A']
		if idx < 0 || idx >= len(alphabet) {
			return "", fmt.Errorf("table: %w: letter %q is not in the substitution alphabet", ErrInvalidCiphertext, cleaned[i])
		}
		out[i] = alphabet[idx]
	}
	return string(out), nil
}

// TableEncrypt substitutes every letter of the cleaned text.
func TableEncrypt(text, key string) (string, error) {
	t, err := NewTable(key)
	if err != nil {
		return "", err
	}
	return t.Encrypt(text), nil
}

// TableDecrypt reverses TableEncrypt.
func TableDecrypt(text, key string) (string, error) {
	t, err := NewTable(key)
	if err != nil {
		return "", err
	}
	return t.Decrypt(text)
}
