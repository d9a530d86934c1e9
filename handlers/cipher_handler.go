// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"classical-cipher-backend/analysis"
	"classical-cipher-backend/crypto"
	"classical-cipher-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CipherHandler struct {
	analyzer *analysis.Analyzer
	logger   zerolog.Logger
}

func NewCipherHandler(analyzer *analysis.Analyzer, logger zerolog.Logger) *CipherHandler {
	return &CipherHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Register mounts every cipher and analysis route on api.
func Register(api *gin.RouterGroup, h *CipherHandler) {
	api.GET("/health", h.HealthCheck)

	vigenere := api.Group("/vigenere")
	{
		vigenere.POST("/encrypt", h.VigenereEncrypt)
		vigenere.POST("/decrypt", h.VigenereDecrypt)
	}

	transposition := api.Group("/transposition")
	{
		transposition.POST("/encrypt", h.TranspositionEncrypt)
		transposition.POST("/decrypt", h.TranspositionDecrypt)
		transposition.POST("/double/encrypt", h.DoubleTranspositionEncrypt)
		transposition.POST("/double/decrypt", h.DoubleTranspositionDecrypt)
	}

	table := api.Group("/table")
	{
		table.POST("/encrypt", h.TableEncrypt)
		table.POST("/decrypt", h.TableDecrypt)
	}

	combined := api.Group("/combined")
	{
		combined.POST("/encrypt", h.CombinedEncrypt)
		combined.POST("/decrypt", h.CombinedDecrypt)
	}

	analyze := api.Group("/analysis")
	{
		analyze.POST("/kasiski", h.Kasiski)
		analyze.POST("/candidates", h.Candidates)
	}
}

func (h *CipherHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Classical cipher API is running",
		"version": "1.0.0",
	})
}

func (h *CipherHandler) VigenereEncrypt(c *gin.Context) {
	h.textCipher(c, crypto.VigenereEncrypt)
}

func (h *CipherHandler) VigenereDecrypt(c *gin.Context) {
	h.textCipher(c, crypto.VigenereDecrypt)
}

func (h *CipherHandler) TableEncrypt(c *gin.Context) {
	h.textCipher(c, crypto.TableEncrypt)
}

func (h *CipherHandler) TableDecrypt(c *gin.Context) {
	h.textCipher(c, crypto.TableDecrypt)
}

func (h *CipherHandler) textCipher(c *gin.Context, fn func(text, key string) (string, error)) {
	var req models.CipherRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := fn(req.Text, req.Key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CipherResponse{Success: true, Result: result})
}

func (h *CipherHandler) TranspositionEncrypt(c *gin.Context) {
	var req models.CipherRequest
	if !bindJSON(c, &req) {
		return
	}

	result, length, err := crypto.SimpleTranspositionEncrypt(req.Text, req.Key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CipherResponse{Success: true, Result: result, Length: &length})
}

func (h *CipherHandler) TranspositionDecrypt(c *gin.Context) {
	var req models.TranspositionDecryptRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := crypto.SimpleTranspositionDecrypt(req.Text, req.Key, req.Length)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CipherResponse{Success: true, Result: result})
}

func (h *CipherHandler) DoubleTranspositionEncrypt(c *gin.Context) {
	var req models.DoubleTranspositionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, length, err := crypto.DoubleTranspositionEncrypt(req.Text, req.Key1, req.Key2)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CipherResponse{Success: true, Result: result, Length: &length})
}

func (h *CipherHandler) DoubleTranspositionDecrypt(c *gin.Context) {
	var req models.DoubleTranspositionDecryptRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := crypto.DoubleTranspositionDecrypt(req.Text, req.Key1, req.Key2, req.Length)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CipherResponse{Success: true, Result: result})
}

func (h *CipherHandler) CombinedEncrypt(c *gin.Context) {
	var req models.CombinedRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := crypto.CombinedEncrypt(req.Text, req.VigenereKey, req.TableKey)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CipherResponse{Success: true, Result: result})
}

func (h *CipherHandler) CombinedDecrypt(c *gin.Context) {
	var req models.CombinedRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := crypto.CombinedDecrypt(req.Text, req.VigenereKey, req.TableKey)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CipherResponse{Success: true, Result: result})
}

func (h *CipherHandler) Kasiski(c *gin.Context) {
	var req models.KasiskiRequest
	if !bindJSON(c, &req) {
		return
	}

	analyzer := h.analyzer
	if req.MinThreshold != nil || req.MaxKeyLength != nil || req.MinKeyLength != nil {
		cfg := analyzer.Config()
		if req.MinThreshold != nil {
			cfg.MinThreshold = *req.MinThreshold
		}
		if req.MaxKeyLength != nil {
			cfg.MaxKeyLength = *req.MaxKeyLength
		}
		if req.MinKeyLength != nil {
			cfg.MinKeyLength = *req.MinKeyLength
		}

		var err error
		analyzer, err = analysis.NewAnalyzer(cfg, h.logger)
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	res, err := analyzer.Run(c.Request.Context(), req.Ciphertext)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := models.KasiskiResponse{
		Success:  true,
		Found:    res.Found,
		Strategy: string(res.Strategy),
	}
	if res.Found {
		resp.KeyLength = res.KeyLength
		resp.Key = res.Key
		resp.Sample = res.Sample
	} else {
		resp.Message = "No key length could be estimated from this ciphertext"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CipherHandler) Candidates(c *gin.Context) {
	var req models.CandidatesRequest
	if !bindJSON(c, &req) {
		return
	}

	analyzer := h.analyzer
	if req.MinLength != nil {
		cfg := analyzer.Config()
		cfg.MinSubstringLength = *req.MinLength

		var err error
		analyzer, err = analysis.NewAnalyzer(cfg, h.logger)
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	candidates, estimate, err := analyzer.Candidates(c.Request.Context(), req.Ciphertext)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := models.CandidatesResponse{
		Success:    true,
		Candidates: make([]models.Candidate, 0, len(candidates)),
		Friedman: models.FriedmanEstimate{
			IC:        estimate.IC,
			KeyLength: estimate.KeyLength,
			OK:        estimate.OK,
		},
	}
	for _, cand := range candidates {
		resp.Candidates = append(resp.Candidates, models.Candidate{Length: cand.Length, Count: cand.Count})
	}
	c.JSON(http.StatusOK, resp)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.CipherResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid request: %v", err),
		})
		return false
	}
	return true
}

// fail answers 400 for caller mistakes and 500 for everything else.
func (h *CipherHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, crypto.ErrInvalidKey),
		errors.Is(err, crypto.ErrInvalidCiphertext),
		errors.Is(err, crypto.ErrInvalidLength),
		errors.Is(err, analysis.ErrInvalidConfig):
		status = http.StatusBadRequest
	case errors.Is(err, analysis.ErrTextTooLong):
		status = http.StatusRequestEntityTooLarge
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, models.CipherResponse{
		Success: false,
		Message: err.Error(),
	})
}
