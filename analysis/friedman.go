package analysis

import "math"

const (
	// EnglishIC is the index of coincidence of English plaintext.
	EnglishIC = 0.065
	// RandomIC is the index of coincidence of uniformly random letters.
	RandomIC = 1.0 / 26
)

// Estimate is the outcome of the Friedman test.
type Estimate struct {
	IC        float64
	KeyLength int
	// OK is false when the text gives no estimate at all.
	OK bool
}

// Friedman estimates the key length from the index of coincidence of the
// letters in ciphertext, using englishIC as the plaintext reference.
// There is no estimate for fewer than two letters or an IC exactly at the
// random baseline. The length is rounded half to even and may be zero or
// negative for near-random text.
func Friedman(ciphertext string, englishIC float64) Estimate {
	_, total := NewProfile(ciphertext)
	if total < 2 {
		return Estimate{}
	}
	ic := IndexOfCoincidence(ciphertext)
	if ic == RandomIC {
		return Estimate{IC: ic}
	}
	length := math.RoundToEven((englishIC - RandomIC) / (ic - RandomIC))
	return Estimate{IC: ic, KeyLength: int(length), OK: true}
}
