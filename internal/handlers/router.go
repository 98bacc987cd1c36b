package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/nuitfeedback/internal/app"
)

func NewRouter(service *app.Service) http.Handler {
	mux := http.NewServeMux()
	feedback := NewFeedbackHandler(service)
	limiter := NewClientLimiter(service.Config.Server.RateLimitPerMinute)
	api := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, limiter.Limit(h))
	}

	api("POST /api/feedback", feedback.HandleSubmit)
	api("GET /api/feedback", feedback.HandleList)
	api("GET /api/dashboard", feedback.HandleDashboard)
	api("POST /api/simulate", feedback.HandleSimulate)
	api("GET /api/activities", feedback.HandleActivities)
	api("GET /api/stats", feedback.HandleStats)
	api("GET /api/live", feedback.HandleLive)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{$}", feedback.HandleIndex)

	return CORS(WithLogging(mux))
}

// NewAnalyzerRouter serves the standalone lexicon analyzer.
func NewAnalyzerRouter(analyze *AnalyzeHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /analyze", analyze.HandleAnalyze)
	mux.HandleFunc("POST /analyze/batch", analyze.HandleBatch)
	mux.HandleFunc("POST /{$}", analyze.HandleAnalyze)
	mux.Handle("GET /metrics", promhttp.Handler())

	return CORS(WithLogging(mux))
}
