package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"classical-cipher-backend/analysis"
	"classical-cipher-backend/crypto"
	"classical-cipher-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	analyzer, err := analysis.NewAnalyzer(analysis.DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID(), BodyLimit(1<<16))
	Register(r.Group("/api/v1"), NewCipherHandler(analyzer, zerolog.Nop()))
	return r
}

func post(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDIsKept(t *testing.T) {
	r := newTestRouter(t)
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestVigenereEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, "/vigenere/encrypt", models.CipherRequest{Text: "HELLO", Key: "KEY"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.CipherResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "RIJVS", resp.Result)

	w = post(t, r, "/vigenere/decrypt", models.CipherRequest{Text: "RIJVS", Key: "KEY"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HELLO", decode[models.CipherResponse](t, w).Result)
}

func TestInvalidKeyIsBadRequest(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/vigenere/encrypt", "/table/decrypt", "/transposition/encrypt"} {
		w := post(t, r, path, models.CipherRequest{Text: "HELLO", Key: "123"})
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		resp := decode[models.CipherResponse](t, w)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, crypto.ErrInvalidKey.Error())
	}

	w := post(t, r, "/vigenere/encrypt", map[string]string{"text": "HELLO"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[models.CipherResponse](t, w).Message, "Invalid request")
}

func TestMalformedJSON(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/table/encrypt", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranspositionEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, "/transposition/encrypt", models.CipherRequest{Text: "HELLO", Key: "ZEBRA"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.CipherResponse](t, w)
	assert.Equal(t, "OLELH", resp.Result)
	require.NotNil(t, resp.Length)
	assert.Equal(t, 5, *resp.Length)

	w = post(t, r, "/transposition/decrypt", models.TranspositionDecryptRequest{Text: "OLELH", Key: "ZEBRA", Length: 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HELLO", decode[models.CipherResponse](t, w).Result)

	w = post(t, r, "/transposition/decrypt", models.TranspositionDecryptRequest{Text: "OLELH", Key: "ZEBRA", Length: -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoubleTranspositionEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, "/transposition/double/encrypt", models.DoubleTranspositionRequest{
		Text: "WE ARE DISCOVERED", Key1: "ZEBRAS", Key2: "GLASS",
	})
	require.Equal(t, http.StatusOK, w.Code)
	enc := decode[models.CipherResponse](t, w)
	assert.Equal(t, "XSDREDOWVEXIAEEXCRXX", enc.Result)
	require.NotNil(t, enc.Length)

	w = post(t, r, "/transposition/double/decrypt", models.DoubleTranspositionDecryptRequest{
		Text: enc.Result, Key1: "ZEBRAS", Key2: "GLASS", Length: *enc.Length,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "WEAREDISCOVERED", decode[models.CipherResponse](t, w).Result)
}

func TestTableAndCombinedEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, "/table/encrypt", models.CipherRequest{Text: "Hello, World", Key: "KEYWORD"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AOGGJUJNGW", decode[models.CipherResponse](t, w).Result)

	w = post(t, r, "/combined/encrypt", models.CombinedRequest{Text: "Hello, World", VigenereKey: "LEMON", TableKey: "KEYWORD"})
	require.Equal(t, http.StatusOK, w.Code)
	ct := decode[models.CipherResponse](t, w).Result

	w = post(t, r, "/combined/decrypt", models.CombinedRequest{Text: ct, VigenereKey: "LEMON", TableKey: "KEYWORD"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HELLOWORLD", decode[models.CipherResponse](t, w).Result)
}

// "It was the best of times..." cleaned and encrypted under KEY.
const dickensKEY = "SXUKWRRIZOWRYJRSQCCMRGEQDLCGSPCXMPXGWIQSXUKWRRIYQIMPAGCHMWMRGEQDLCKKCYJDYSJSWFXIQCMRGEQDLCOTMMLMPFCVMCPMRGEQDLCOTMMLMPMLMVCNYJSXW"

func TestKasiskiEndpoint(t *testing.T) {
	r := newTestRouter(t)

	ct, err := crypto.VigenereEncrypt(strings.Repeat("ITISATRUTHUNIVERSALLYACKNOWLEDGEDTHATASINGLEMAN", 12), "LEMON")
	require.NoError(t, err)

	w := post(t, r, "/analysis/kasiski", models.KasiskiRequest{Ciphertext: ct})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.KasiskiResponse](t, w)
	assert.True(t, resp.Found)
	assert.Equal(t, 5, resp.KeyLength)
	assert.Equal(t, "LEMON", resp.Key)
	assert.Equal(t, "kasiski", resp.Strategy)
	assert.True(t, strings.HasSuffix(resp.Sample, "..."))
}

func TestKasiskiEndpointOverrides(t *testing.T) {
	r := newTestRouter(t)
	huge := 1 << 30

	w := post(t, r, "/analysis/kasiski", models.KasiskiRequest{Ciphertext: dickensKEY, MinThreshold: &huge})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.KasiskiResponse](t, w)
	assert.Equal(t, "friedman", resp.Strategy)
	assert.Equal(t, 2, resp.KeyLength)

	minLen, maxLen := 10, 4
	w = post(t, r, "/analysis/kasiski", models.KasiskiRequest{Ciphertext: dickensKEY, MinKeyLength: &minLen, MaxKeyLength: &maxLen})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKasiskiEndpointNoEstimate(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, "/analysis/kasiski", models.KasiskiRequest{Ciphertext: "ab"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.KasiskiResponse](t, w)
	assert.True(t, resp.Success)
	assert.False(t, resp.Found)
	assert.Equal(t, "none", resp.Strategy)
	assert.Zero(t, resp.KeyLength)
	assert.NotEmpty(t, resp.Message)
}

func TestCandidatesEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, "/analysis/candidates", models.CandidatesRequest{Ciphertext: dickensKEY})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"friedman":{"ic":`)
	assert.Contains(t, w.Body.String(), `"key_length":2,"ok":true}`)
	resp := decode[models.CandidatesResponse](t, w)
	require.NotEmpty(t, resp.Candidates)
	assert.Equal(t, models.Candidate{Length: 3, Count: 161}, resp.Candidates[0])
	assert.True(t, resp.Friedman.OK)
	assert.Equal(t, 2, resp.Friedman.KeyLength)

	minLen := 1
	w = post(t, r, "/analysis/candidates", models.CandidatesRequest{Ciphertext: "ABCDEABCDE", MinLength: &minLen})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[models.CandidatesResponse](t, w)
	require.NotEmpty(t, resp.Candidates)
	assert.Equal(t, 5, resp.Candidates[0].Length)
}

func TestBodyLimit(t *testing.T) {
	r := newTestRouter(t)
	w := post(t, r, "/vigenere/encrypt", models.CipherRequest{Text: strings.Repeat("A", 1<<17), Key: "KEY"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalysisTextLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := analysis.DefaultConfig()
	cfg.MaxTextLength = 64
	analyzer, err := analysis.NewAnalyzer(cfg, zerolog.Nop())
	require.NoError(t, err)

	r := gin.New()
	Register(r.Group("/api/v1"), NewCipherHandler(analyzer, zerolog.Nop()))

	for _, path := range []string{"/analysis/kasiski", "/analysis/candidates"} {
		w := post(t, r, path, models.KasiskiRequest{Ciphertext: dickensKEY})
		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, path)
		resp := decode[models.CipherResponse](t, w)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, analysis.ErrTextTooLong.Error())
	}
}
