package analysis

import (
	"math"
	"strings"
	"unicode/utf8"
)

// GuessKey recovers a probable key of keyLength letters. Column i holds the
// characters at positions i, i+keyLength, ... of ciphertext; its key letter
// is the Caesar shift whose un-shifted letter distribution is closest to
// reference by summed absolute difference. Columns without letters get 'A'.
func GuessKey(ciphertext string, keyLength int, reference [26]float64) string {
	if keyLength <= 0 {
		return ""
	}

	// columns past the end of the text are empty
	columns := make([]strings.Builder, min(keyLength, utf8.RuneCountInString(ciphertext)))
	i := 0
	for _, r := range ciphertext {
		columns[i%keyLength].WriteRune(r)
		i++
	}

	var key strings.Builder
	key.Grow(keyLength)
	for c := range columns {
		key.WriteByte('A' + byte(bestShift(columns[c].String(), reference)))
	}
	for c := len(columns); c < keyLength; c++ {
		key.WriteByte('A')
	}
	return key.String()
}

// bestShift returns the first shift with the lowest score.
func bestShift(group string, reference [26]float64) int {
	counts, total := NewProfile(group)
	if total == 0 {
		return 0
	}

	best := 0
	bestScore := math.Inf(1)
	for shift := 0; shift < 26; shift++ {
		score := 0.0
		for j := 0; j < 26; j++ {
			observed := float64(counts[(j+shift)%26]) / float64(total)
			score += math.Abs(observed - reference[j])
		}
		if score < bestScore {
			bestScore = score
			best = shift
		}
	}
	return best
}
