package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/app"
	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
)

const (
	apiVersion       = "1.0.0"
	defaultListLimit = 100
	maxListLimit     = 1000
)

type FeedbackHandler struct {
	service *app.Service
}

func NewFeedbackHandler(service *app.Service) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

type submitResponse struct {
	Status    string `json:"status"`
	Sentiment string `json:"sentiment"`
	Message   string `json:"message"`
}

type simulateResponse struct {
	Status    string                   `json:"status"`
	Simulated bool                     `json:"simulated"`
	Data      models.SimulatedFeedback `json:"data"`
	Sentiment string                   `json:"sentiment"`
}

func (h *FeedbackHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error.Printf("Failed to read request body: %v", err)
		writeError(w, fmt.Errorf("failed to read request body: %w", err))
		return
	}
	logger.Debug.Printf("Received request body: %s", string(body))

	var req models.FeedbackRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	feedback, err := h.service.SubmitFeedback(r.Context(), req)
	if err != nil {
		logger.Error.Printf("Failed to submit feedback: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Status:    "success",
		Sentiment: feedback.Sentiment,
		Message:   "Retour enregistré avec succès",
	})
}

func (h *FeedbackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = min(n, maxListLimit)
	}

	entries, err := h.service.ListFeedback(r.Context(), limit)
	if err != nil {
		logger.Error.Printf("Failed to list feedback: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": entries,
	})
}

func (h *FeedbackHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		logger.Error.Printf("Failed to build dashboard: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *FeedbackHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	data, feedback, err := h.service.Simulate(r.Context())
	if err != nil {
		logger.Error.Printf("Failed to simulate feedback: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, simulateResponse{
		Status:    "success",
		Simulated: true,
		Data:      data,
		Sentiment: feedback.Sentiment,
	})
}

func (h *FeedbackHandler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": models.Activities,
	})
}

func (h *FeedbackHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		logger.Error.Printf("Failed to compute stats: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleLive streams newly stored feedback as server-sent events until the
// client goes away.
func (h *FeedbackHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming unsupported"))
		return
	}

	sub, err := h.service.Live.Subscribe(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	messages := sub.Channel()
	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: feedback\ndata: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}

func (h *FeedbackHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "API Nuit des Chercheurs 2025 - Analyse des sentiments en temps réel",
		"version": apiVersion,
		"endpoints": map[string]string{
			"dashboard":  "/api/dashboard",
			"feedback":   "/api/feedback (POST, GET)",
			"simulate":   "/api/simulate (POST)",
			"activities": "/api/activities",
			"stats":      "/api/stats",
			"live":       "/api/live (SSE)",
			"metrics":    "/metrics",
		},
		"status": "active",
	})
}
