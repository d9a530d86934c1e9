package analysis

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"classical-cipher-backend/crypto"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid analysis config")
	// ErrTextTooLong is returned for ciphertext longer than Config.MaxTextLength characters.
	ErrTextTooLong = errors.New("ciphertext too long")
)

// Config holds the thresholds and reference data for a cryptanalysis run.
type Config struct {
	MinThreshold       int
	MaxKeyLength       int
	MinKeyLength       int
	MinSubstringLength int
	SampleLength       int
	Workers            int
	// MaxTextLength bounds the characters analyzed; the Kasiski scan is quadratic in it.
	MaxTextLength      int
	EnglishIC          float64
	Reference          [26]float64
}

func DefaultConfig() Config {
	return Config{
		MinThreshold:       50,
		MaxKeyLength:       40,
		MinKeyLength:       5,
		MinSubstringLength: 3,
		SampleLength:       200,
		Workers:            1,
		MaxTextLength:      2000,
		EnglishIC:          EnglishIC,
		Reference:          EnglishFrequencies(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.MinThreshold < 0:
		return fmt.Errorf("%w: min threshold %d must not be negative", ErrInvalidConfig, c.MinThreshold)
	case c.MinKeyLength < 1:
		return fmt.Errorf("%w: min key length %d must be at least 1", ErrInvalidConfig, c.MinKeyLength)
	case c.MaxKeyLength < c.MinKeyLength:
		return fmt.Errorf("%w: max key length %d is below min key length %d", ErrInvalidConfig, c.MaxKeyLength, c.MinKeyLength)
	case c.MinSubstringLength < 1:
		return fmt.Errorf("%w: min substring length %d must be at least 1", ErrInvalidConfig, c.MinSubstringLength)
	case c.SampleLength < 1:
		return fmt.Errorf("%w: sample length %d must be at least 1", ErrInvalidConfig, c.SampleLength)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalidConfig, c.Workers)
	case c.MaxTextLength < 1:
		return fmt.Errorf("%w: max text length %d must be at least 1", ErrInvalidConfig, c.MaxTextLength)
	}
	return nil
}

// Strategy names how the key length was chosen.
type Strategy string

const (
	StrategyKasiski  Strategy = "kasiski"
	StrategyFriedman Strategy = "friedman"
	StrategyNone     Strategy = "none"
)

// Result is a best effort guess; nothing guarantees the key is right.
type Result struct {
	Found     bool
	KeyLength int
	Key       string
	Sample    string
	Strategy  Strategy
}

type Analyzer struct {
	cfg    Config
	logger zerolog.Logger
}

func NewAnalyzer(cfg Config, logger zerolog.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg, logger: logger}, nil
}

// Config returns a copy of the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Candidates returns the Kasiski divisor candidates and the Friedman estimate for ciphertext.
func (a *Analyzer) Candidates(ctx context.Context, ciphertext string) ([]Candidate, Estimate, error) {
	if err := a.checkLength(ciphertext); err != nil {
		return nil, Estimate{}, err
	}
	examiner := Examiner{MinLength: a.cfg.MinSubstringLength, Workers: a.cfg.Workers}
	candidates, err := examiner.Examine(ctx, ciphertext)
	if err != nil {
		return nil, Estimate{}, err
	}
	return candidates, Friedman(ciphertext, a.cfg.EnglishIC), nil
}

// Run picks a key length, Kasiski first with Friedman as the fallback,
// recovers a key of that length and decrypts a sample of the ciphertext.
// A result with Found false means neither strategy gave a usable length.
func (a *Analyzer) Run(ctx context.Context, ciphertext string) (Result, error) {
	if err := a.checkLength(ciphertext); err != nil {
		return Result{}, err
	}
	examiner := Examiner{MinLength: a.cfg.MinSubstringLength, Workers: a.cfg.Workers}
	candidates, err := examiner.Examine(ctx, ciphertext)
	if err != nil {
		return Result{}, err
	}

	keyLength, strategy := a.pickLength(candidates, ciphertext)
	if strategy == StrategyNone {
		a.logger.Debug().Int("candidates", len(candidates)).Msg("no usable key length")
		return Result{Strategy: StrategyNone}, nil
	}

	key := GuessKey(ciphertext, keyLength, a.cfg.Reference)
	plaintext, err := crypto.VigenereDecrypt(ciphertext, key)
	if err != nil {
		return Result{}, fmt.Errorf("decrypt with recovered key: %w", err)
	}

	a.logger.Debug().
		Str("strategy", string(strategy)).
		Int("key_length", keyLength).
		Str("key", key).
		Msg("key recovered")

	return Result{
		Found:     true,
		KeyLength: keyLength,
		Key:       key,
		Sample:    truncate(plaintext, a.cfg.SampleLength),
		Strategy:  strategy,
	}, nil
}

func (a *Analyzer) pickLength(candidates []Candidate, ciphertext string) (int, Strategy) {
	// candidates are sorted by count, so the first match is the best one
	for _, c := range candidates {
		if c.Count >= a.cfg.MinThreshold && c.Length >= a.cfg.MinKeyLength && c.Length <= a.cfg.MaxKeyLength {
			return c.Length, StrategyKasiski
		}
	}

	// near the random baseline the estimate can exceed the text itself,
	// and a key longer than the text has nothing to recover from
	estimate := Friedman(ciphertext, a.cfg.EnglishIC)
	if !estimate.OK || estimate.KeyLength <= 0 || estimate.KeyLength > utf8.RuneCountInString(ciphertext) {
		return 0, StrategyNone
	}
	return estimate.KeyLength, StrategyFriedman
}

func (a *Analyzer) checkLength(ciphertext string) error {
	if n := utf8.RuneCountInString(ciphertext); n > a.cfg.MaxTextLength {
		return fmt.Errorf("%w: %d characters, limit %d", ErrTextTooLong, n, a.cfg.MaxTextLength)
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// KasiskiTest runs the default analysis with the given thresholds.
func KasiskiTest(ciphertext string, minThreshold, maxKeyLength, minKeyLength int) (Result, error) {
	cfg := DefaultConfig()
	cfg.MinThreshold = minThreshold
	cfg.MaxKeyLength = maxKeyLength
	cfg.MinKeyLength = minKeyLength

	a, err := NewAnalyzer(cfg, zerolog.Nop())
	if err != nil {
		return Result{}, err
	}
	return a.Run(context.Background(), ciphertext)
}
