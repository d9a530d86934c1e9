// Package models contain the request and response bodies of the cipher API
package models

// CipherRequest is the body of the Vigenère and table cipher endpoints
type CipherRequest struct {
	Text string `json:"text"`
	Key  string `json:"key" binding:"required"`
}

// TranspositionDecryptRequest carries the original length returned by encryption
type TranspositionDecryptRequest struct {
	Text   string `json:"text"`
	Key    string `json:"key" binding:"required"`
	Length int    `json:"length" binding:"min=0"`
}

type DoubleTranspositionRequest struct {
	Text string `json:"text"`
	Key1 string `json:"key1" binding:"required"`
	Key2 string `json:"key2" binding:"required"`
}

type DoubleTranspositionDecryptRequest struct {
	Text   string `json:"text"`
	Key1   string `json:"key1" binding:"required"`
	Key2   string `json:"key2" binding:"required"`
	Length int    `json:"length" binding:"min=0"`
}

// CombinedRequest runs Vigenère with VigenereKey and the table cipher with TableKey
type CombinedRequest struct {
	Text        string `json:"text"`
	VigenereKey string `json:"vigenere_key" binding:"required"`
	TableKey    string `json:"table_key" binding:"required"`
}

// CipherResponse represents the response of every cipher endpoint
type CipherResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Result  string `json:"result,omitempty"`
	Length  *int   `json:"length,omitempty"`
}

// KasiskiRequest overrides the configured thresholds when a field is set
type KasiskiRequest struct {
	Ciphertext   string `json:"ciphertext" binding:"required"`
	MinThreshold *int   `json:"min_threshold" binding:"omitempty,min=0"`
	MaxKeyLength *int   `json:"max_key_length" binding:"omitempty,min=1"`
	MinKeyLength *int   `json:"min_key_length" binding:"omitempty,min=1"`
}

// KasiskiResponse represents the outcome of a cryptanalysis run. Found is
// false when no key length could be estimated.
type KasiskiResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Found     bool   `json:"found"`
	KeyLength int    `json:"key_length,omitempty"`
	Key       string `json:"key,omitempty"`
	Sample    string `json:"sample,omitempty"`
	Strategy  string `json:"strategy,omitempty"`
}

type CandidatesRequest struct {
	Ciphertext string `json:"ciphertext" binding:"required"`
	MinLength  *int   `json:"min_len" binding:"omitempty,min=1"`
}

type Candidate struct {
	Length int `json:"length"`
	Count  int `json:"count"`
}

type FriedmanEstimate struct {
	IC        float64 `json:"ic"`
	KeyLength int     `json:"key_length"`
	OK        bool    `json:"ok"`
}

// CandidatesResponse lists the Kasiski divisors and the Friedman estimate
type CandidatesResponse struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Candidates []Candidate      `json:"candidates"`
	Friedman   FriedmanEstimate `json:"friedman"`
}
