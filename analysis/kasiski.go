package analysis

import (
	"context"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// TopCandidates is how many divisors Examine reports.
const TopCandidates = 25

// Candidate is a possible key length with the number of repeat distances it divides.
type Candidate struct {
	Length int
	Count  int
}

// Examiner runs the Kasiski examination.
type Examiner struct {
	// MinLength is the shortest repeated substring considered.
	MinLength int
	// Workers bounds how many substring lengths are scanned at once.
	Workers int
}

// Examine runs a sequential Kasiski examination of ciphertext.
func Examine(ciphertext string, minLen int) []Candidate {
	candidates, _ := Examiner{MinLength: minLen, Workers: 1}.Examine(context.Background(), ciphertext)
	return candidates
}

// Examine scans every substring length from MinLength up to half the text
// and records, for each repeat, the distance to the first occurrence of the
// same substring. Every divisor from 2 up to each distance is tallied and
// the TopCandidates most frequent divisors are returned, highest count
// first, equal counts in the order the divisors were first seen.
func (e Examiner) Examine(ctx context.Context, ciphertext string) ([]Candidate, error) {
	seq, width := fixedWidth(ciphertext)
	n := len(seq) / width

	minLen := e.MinLength
	if minLen < 1 {
		minLen = 1
	}
	maxLen := n / 2
	if minLen >= maxLen {
		return []Candidate{}, nil
	}

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	// A substring of k+1 characters can only repeat if its first k do, so
	// once a length has no repeats no longer length has any either.
	perLength := make([][]int, maxLen-minLen)
	for start := minLen; start < maxLen; start += workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+workers, maxLen)

		g, gctx := errgroup.WithContext(ctx)
		for seqLen := start; seqLen < end; seqLen++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				perLength[seqLen-minLen] = repeatDistances(seq, width, seqLen)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		exhausted := false
		for seqLen := start; seqLen < end; seqLen++ {
			if len(perLength[seqLen-minLen]) == 0 {
				exhausted = true
				break
			}
		}
		if exhausted {
			break
		}
	}

	// merge in substring length order so ties resolve the same way for any worker count
	t := newTally()
	for _, distances := range perLength {
		for _, d := range distances {
			for f := 2; f <= d; f++ {
				if d%f == 0 {
					t.add(f)
				}
			}
		}
	}
	return t.top(TopCandidates), nil
}

// repeatDistances returns, in scan order, the distance of every repeated
// substring of seqLen characters to the first place it was seen.
func repeatDistances(seq string, width, seqLen int) []int {
	n := len(seq) / width
	firstSeen := make(map[string]int)
	var distances []int
	for i := 0; i+seqLen <= n; i++ {
		sub := seq[i*width : (i+seqLen)*width]
		if first, ok := firstSeen[sub]; ok {
			distances = append(distances, i-first)
		} else {
			firstSeen[sub] = i
		}
	}
	return distances
}

// fixedWidth returns text laid out with one fixed-width cell per character
// so substrings can be sliced by character position. ASCII text is used as is.
func fixedWidth(text string) (string, int) {
	if utf8.RuneCountInString(text) == len(text) {
		return text, 1
	}
	buf := make([]byte, 0, 4*len(text))
	for _, r := range text {
		buf = append(buf, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
	}
	return string(buf), 4
}

type tally struct {
	counts map[int]int
	order  []int
}

func newTally() *tally {
	return &tally{counts: make(map[int]int)}
}

func (t *tally) add(v int) {
	if _, ok := t.counts[v]; !ok {
		t.order = append(t.order, v)
	}
	t.counts[v]++
}

func (t *tally) top(k int) []Candidate {
	out := make([]Candidate, 0, len(t.order))
	for _, v := range t.order {
		out = append(out, Candidate{Length: v, Count: t.counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}
