// Package analysis estimates the key length of Vigenère ciphertext and recovers a probable key.
package analysis

// Profile counts the letters A-Z of a text.
type Profile [26]int

// NewProfile counts the ASCII letters of text, case-insensitively, and
// returns the profile with the number of letters counted.
func NewProfile(text string) (Profile, int) {
	var p Profile
	total := 0
	for _, r := range text {
		switch {
		case 'A' <= r && r <= 'Z':
			p[r-'A']++
		case 'a' <= r && r <= 'z':
			p[r-'a']++
		default:
			continue
		}
		total++
	}
	return p, total
}

// englishFrequencies are the relative letter frequencies of English text, A-Z.
var englishFrequencies = [26]float64{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015, // A-G
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749, // H-N
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758, // O-U
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074, // V-Z
}

// EnglishFrequencies returns a copy of the English reference table.
func EnglishFrequencies() [26]float64 {
	return englishFrequencies
}

// IndexOfCoincidence is the probability that two letters drawn from text
// without replacement are equal. Texts with fewer than two letters score 0.
func IndexOfCoincidence(text string) float64 {
	p, total := NewProfile(text)
	if total < 2 {
		return 0
	}
	var sum int
	for _, f := range p {
		sum += f * (f - 1)
	}
	return float64(sum) / (float64(total) * float64(total-1))
}
