// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
)

const (
	OtherLabel     = "other"
	UnmatchedLabel = "unmatched"
)

var (
	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_total",
			Help: "Total number of stored feedback entries",
		},
		[]string{"activity", "sentiment", "source"},
	)

	RatingHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedback_rating",
			Help:    "Distribution of feedback ratings",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
		[]string{"activity"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexicon_analyses_total",
			Help: "Total number of texts scored by the lexicon analyzer",
		},
		[]string{"policy", "dominant"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)

var knownActivities = func() map[string]struct{} {
	known := make(map[string]struct{}, len(models.Activities))
	for _, name := range models.ActivityNames() {
		known[name] = struct{}{}
	}
	return known
}()

// ActivityLabel keeps free-text activities from growing the label set.
func ActivityLabel(activity string) string {
	if _, ok := knownActivities[activity]; ok {
		return activity
	}
	return OtherLabel
}

// PathLabel is the route pattern that served the request, or
// UnmatchedLabel when no route did.
func PathLabel(r *http.Request) string {
	if r.Pattern == "" {
		return UnmatchedLabel
	}
	return r.Pattern
}

func MethodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodHead,
		http.MethodPut, http.MethodPatch, http.MethodDelete:
		return method
	}
	return OtherLabel
}
