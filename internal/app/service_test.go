package app

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/nuitfeedback/internal/metrics"
	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
	"github.com/shrimpsizemoose/nuitfeedback/internal/sentiment"
)

// setupTestService builds a service on a fresh SQLite file with a fixed clock
func setupTestService(t *testing.T) (*Service, func()) {
	config := DefaultConfig()
	config.Database.DSN = filepath.Join(t.TempDir(), "feedback.db")
	config.Database.SeedOnStart = false

	store, err := NewStore(config.Database.DSN)
	require.NoError(t, err)

	live, err := NewLivePublisher(config)
	require.NoError(t, err)

	service := NewServiceWith(config, store, live)
	service.now = func() time.Time {
		return time.Date(2025, 9, 26, 14, 7, 0, 0, time.Local)
	}
	require.NoError(t, service.Prepare(context.Background()))

	cleanup := func() {
		require.NoError(t, service.Close())
	}
	return service, cleanup
}

func intPtr(v int) *int {
	return &v
}

func TestSubmitFeedback(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("classifies and stores", func(t *testing.T) {
		got, err := service.SubmitFeedback(ctx, models.FeedbackRequest{
			Activity: "Robotique",
			Comment:  "Excellent atelier",
			Rating:   intPtr(9),
			QRCode:   "QR001",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "positive", got.Sentiment)
		assert.Equal(t, "2025-09-26T14:07:00.000000", got.Timestamp)

		stored, err := service.ListFeedback(ctx, 10)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, *got, stored[0])
	})

	t.Run("missing fields take defaults", func(t *testing.T) {
		got, err := service.SubmitFeedback(ctx, models.FeedbackRequest{Activity: "Astronomie"})
		require.NoError(t, err)
		assert.Equal(t, models.DefaultRating, got.Rating)
		assert.Equal(t, "", got.Comment)
		assert.Equal(t, "", got.QRCode)
		assert.Equal(t, "neutral", got.Sentiment)
	})

	t.Run("out of range rating is rejected", func(t *testing.T) {
		_, err := service.SubmitFeedback(ctx, models.FeedbackRequest{Activity: "Astronomie", Rating: intPtr(11)})
		assert.Error(t, err)

		total, err := service.Store.CountFeedback(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestSimulate_UsesSubmissionPath(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		echo, stored, err := service.Simulate(ctx)
		require.NoError(t, err)

		counted := testutil.ToFloat64(metrics.FeedbackTotal.WithLabelValues(stored.Activity, stored.Sentiment, SourceSimulated))
		assert.GreaterOrEqual(t, counted, 1.0)

		assert.Equal(t, echo.Activity, stored.Activity)
		assert.Equal(t, echo.Comment, stored.Comment)
		assert.Equal(t, echo.Rating, stored.Rating)
		assert.Equal(t, echo.QRCode, stored.QRCode)
		assert.Equal(t, string(sentiment.ClassifyKeywords(echo.Comment, echo.Rating)), stored.Sentiment)
	}

	total, err := service.Store.CountFeedback(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
}

func TestPrepare_SeedsThroughClassifier(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, service.Seed(ctx))

	stored, err := service.ListFeedback(ctx, 100)
	require.NoError(t, err)
	require.Len(t, stored, len(seedFeedback))
	for _, f := range stored {
		assert.Equal(t, string(sentiment.ClassifyKeywords(f.Comment, f.Rating)), f.Sentiment)
	}

	// reset on start wipes everything
	service.Config.Database.SeedOnStart = false
	require.NoError(t, service.Prepare(ctx))
	total, err := service.Store.CountFeedback(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPrepare_WithoutReset(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	_, err := service.SubmitFeedback(ctx, models.FeedbackRequest{Activity: "Robotique", Rating: intPtr(8)})
	require.NoError(t, err)

	service.Config.Database.ResetOnStart = false
	require.NoError(t, service.Prepare(ctx))

	total, err := service.Store.CountFeedback(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDashboardAndStats(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	empty, err := service.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 85.0, empty.SatisfactionRate)
	assert.Equal(t, int64(50), empty.TotalParticipants)

	for _, r := range []int{9, 10} {
		_, err := service.SubmitFeedback(ctx, models.FeedbackRequest{Activity: "Robotique", Comment: "Top", Rating: intPtr(r)})
		require.NoError(t, err)
	}

	got, err := service.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(52), got.TotalParticipants)
	assert.Equal(t, 95.0, got.SatisfactionRate)
	assert.Equal(t, models.SentimentBreakdown{Positive: 100}, got.Sentiment)
	require.Len(t, got.RecentFeedback, 2)
	assert.Equal(t, "14:07", got.RecentFeedback[0].Time)

	stats, err := service.GetStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.HourlyStats, 6)
	assert.Equal(t, models.HourlyStat{Hour: "14:00", Participants: 2, Satisfaction: 95}, stats.HourlyStats[4])
	assert.Equal(t, []string{"L'atelier Robotique performe excellemment - envisager d'augmenter la capacité"}, stats.Recommendations)
}

func TestSubmitFeedback_FreeTextActivityKeepsMetricsBounded(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	feedbackBefore := testutil.CollectAndCount(metrics.FeedbackTotal)
	ratingBefore := testutil.CollectAndCount(metrics.RatingHistogram)

	for i := 0; i < 50; i++ {
		_, err := service.SubmitFeedback(ctx, models.FeedbackRequest{Activity: fmt.Sprintf("x%d", i)})
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, testutil.CollectAndCount(metrics.FeedbackTotal), feedbackBefore+1)
	assert.LessOrEqual(t, testutil.CollectAndCount(metrics.RatingHistogram), ratingBefore+1)
	assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.FeedbackTotal.WithLabelValues(metrics.OtherLabel, "neutral", SourceManual)), 50.0)

	stored, err := service.ListFeedback(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "x49", stored[0].Activity, "the record keeps the submitted activity")
}
