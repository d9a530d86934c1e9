package crypto

import (
	"fmt"
	"sort"
	"strings"
)

// Filler pads the last grid row of a transposition.
const Filler = 'X'

// TranspositionOrder returns the column read order for key: the original
// indices of the key letters sorted by letter, equal letters left to right.
func TranspositionOrder(key string) []int {
	cleaned := CleanKey(key)
	order := make([]int, len(cleaned))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cleaned[order[i]] < cleaned[order[j]]
	})
	return order
}

func transpositionOrder(key string) ([]int, error) {
	order := TranspositionOrder(key)
	if len(order) == 0 {
		return nil, fmt.Errorf("transposition: %w: key %q has no letters", ErrInvalidKey, key)
	}
	return order, nil
}

// SimpleTranspositionEncrypt writes the cleaned text row by row into a grid
// as wide as the key and reads it out column by column in key order.
// It returns the ciphertext and the cleaned text length.
func SimpleTranspositionEncrypt(text, key string) (string, int, error) {
	order, err := transpositionOrder(key)
	if err != nil {
		return "", 0, err
	}

	cleaned := CleanText(text)
	origLen := len(cleaned)
	cols := len(order)
	rows := (origLen + cols - 1) / cols

	padded := cleaned + strings.Repeat(string(Filler), rows*cols-origLen)

	var b strings.Builder
	b.Grow(len(padded))
	for _, col := range order {
		for row := 0; row < rows; row++ {
			b.WriteByte(padded[row*cols+col])
		}
	}

	return b.String(), origLen, nil
}

// SimpleTranspositionDecrypt refills the grid column by column in key order
// and reads it back row by row, truncated to origLen.
func SimpleTranspositionDecrypt(ciphertext, key string, origLen int) (string, error) {
	order, err := transpositionOrder(key)
	if err != nil {
		return "", err
	}
	if origLen < 0 {
		return "", fmt.Errorf("transposition: %w: %d", ErrInvalidLength, origLen)
	}

	chars := []rune(ciphertext)
	cols := len(order)
	rows := (len(chars) + cols - 1) / cols

	grid := make([]rune, rows*cols)
	pos := 0
	for _, col := range order {
		for row := 0; row < rows; row++ {
			if pos < len(chars) {
				grid[row*cols+col] = chars[pos]
				pos++
			} else {
				grid[row*cols+col] = Filler
			}
		}
	}

	if origLen < len(grid) {
		grid = grid[:origLen]
	}
	return string(grid), nil
}

// DoubleTranspositionEncrypt applies key1 then key2.
func DoubleTranspositionEncrypt(text, key1, key2 string) (string, int, error) {
	firstPass, origLen, err := SimpleTranspositionEncrypt(text, key1)
	if err != nil {
		return "", 0, err
	}
	secondPass, _, err := SimpleTranspositionEncrypt(firstPass, key2)
	if err != nil {
		return "", 0, err
	}
	return secondPass, origLen, nil
}

// DoubleTranspositionDecrypt undoes key2 first, then key1.
func DoubleTranspositionDecrypt(ciphertext, key1, key2 string, origLen int) (string, error) {
	if origLen < 0 {
		return "", fmt.Errorf("transposition: %w: %d", ErrInvalidLength, origLen)
	}
	order1, err := transpositionOrder(key1)
	if err != nil {
		return "", err
	}

	// The first pass was padded to a whole number of key1 rows.
	cols := len(order1)
	firstLen := (origLen + cols - 1) / cols * cols

	firstPass, err := SimpleTranspositionDecrypt(ciphertext, key2, firstLen)
	if err != nil {
		return "", err
	}
	return SimpleTranspositionDecrypt(firstPass, key1, origLen)
}
