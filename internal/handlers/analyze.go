package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/metrics"
	"github.com/shrimpsizemoose/nuitfeedback/internal/sentiment"
)

var validate = validator.New()

type AnalyzeHandler struct {
	analyzer   *sentiment.LexiconAnalyzer
	policyName string
}

func NewAnalyzeHandler(analyzer *sentiment.LexiconAnalyzer, policyName string) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, policyName: policyName}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type batchRequest struct {
	Texts []string `json:"texts" validate:"required,max=100"`
}

type batchResult struct {
	Input string `json:"input"`
	sentiment.Analysis
}

type batchResponse struct {
	Count   int           `json:"count"`
	Results []batchResult `json:"results"`
}

func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result := h.analyzer.Analyze(req.Text)
	metrics.AnalysesTotal.WithLabelValues(h.policyName, result.DominantSentiment).Inc()
	logger.Debug.Printf("Analyzed %d chars: %s (%+v)", len(req.Text), result.DominantSentiment, result.SentimentScore)

	writeJSON(w, http.StatusOK, result)
}

// HandleBatch scores up to a hundred texts in one call.
func (h *AnalyzeHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, fmt.Errorf("missing or invalid texts array: %w", err))
		return
	}

	analyses := h.analyzer.AnalyzeBatch(req.Texts)
	results := make([]batchResult, len(analyses))
	for i, a := range analyses {
		metrics.AnalysesTotal.WithLabelValues(h.policyName, a.DominantSentiment).Inc()
		results[i] = batchResult{Input: req.Texts[i], Analysis: a}
	}
	logger.Debug.Printf("Analyzed batch of %d texts", len(results))

	writeJSON(w, http.StatusOK, batchResponse{
		Count:   len(results),
		Results: results,
	})
}
