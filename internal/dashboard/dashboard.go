// Package dashboard turns stored feedback into the figures shown on the
// live screen: participation, satisfaction, sentiment split, activity
// ranking, recent comments, hourly breakdown and recommendations.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
	"github.com/shrimpsizemoose/nuitfeedback/internal/sentiment"
	"github.com/shrimpsizemoose/nuitfeedback/internal/store"
)

// Source is the read side of the feedback store.
type Source interface {
	CountFeedback(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (*float64, error)
	SentimentCounts(ctx context.Context) ([]store.SentimentCount, error)
	ActivityStats(ctx context.Context) ([]store.ActivityStat, error)
	RecentComments(ctx context.Context, limit int) ([]models.Feedback, error)
	HourStats(ctx context.Context, hour int) (*store.HourStat, error)
}

// Settings holds the fixed numbers the dashboard falls back on.
type Settings struct {
	// ParticipantOffset accounts for visitors who never scan a QR code
	ParticipantOffset         int64                     `toml:"participant_offset" validate:"gte=0"`
	DefaultAverageRating      float64                   `toml:"default_average_rating" validate:"gte=0,lte=10"`
	DefaultSentiment          models.SentimentBreakdown `toml:"default_sentiment"`
	RecentLimit               int                       `toml:"recent_limit" validate:"gt=0"`
	HourlyStart               int                       `toml:"hourly_start" validate:"gte=0,lte=23"`
	HourlyHours               int                       `toml:"hourly_hours" validate:"gt=0,lte=24"`
	HourlyDefaultSatisfaction float64                   `toml:"hourly_default_satisfaction"`
	ExcellentRating           float64                   `toml:"excellent_rating"`
	AccessibleRating          float64                   `toml:"accessible_rating"`
}

func DefaultSettings() Settings {
	return Settings{
		ParticipantOffset:    50,
		DefaultAverageRating: 8.5,
		DefaultSentiment: models.SentimentBreakdown{
			Positive: 65,
			Neutral:  25,
			Negative: 10,
		},
		RecentLimit:               5,
		HourlyStart:               10,
		HourlyHours:               6,
		HourlyDefaultSatisfaction: 85,
		ExcellentRating:           9,
		AccessibleRating:          6,
	}
}

// GenericRecommendations are returned when no activity stands out.
var GenericRecommendations = []string{
	"Le sentiment général est très positif - maintenir cette dynamique",
	"Envisager d'ajouter plus d'activités interactives",
	"Excellente participation des visiteurs",
}

type Aggregator struct {
	source   Source
	settings Settings
}

func NewAggregator(source Source, settings Settings) *Aggregator {
	return &Aggregator{source: source, settings: settings}
}

func (a *Aggregator) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	total, err := a.source.CountFeedback(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := a.source.AverageRating(ctx)
	if err != nil {
		return nil, err
	}
	mean := a.settings.DefaultAverageRating
	if avg != nil {
		mean = *avg
	}

	breakdown, err := a.sentimentBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	top, err := a.topActivities(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := a.recentFeedback(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		TotalParticipants: total + a.settings.ParticipantOffset,
		SatisfactionRate:  round1(mean * 10),
		Sentiment:         breakdown,
		TopActivities:     top,
		RecentFeedback:    recent,
	}, nil
}

func (a *Aggregator) Stats(ctx context.Context) (*models.Stats, error) {
	hourly, err := a.hourlyStats(ctx)
	if err != nil {
		return nil, err
	}

	recommendations, err := a.recommendations(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		HourlyStats:     hourly,
		Recommendations: recommendations,
	}, nil
}

func (a *Aggregator) sentimentBreakdown(ctx context.Context) (models.SentimentBreakdown, error) {
	counts, err := a.source.SentimentCounts(ctx)
	if err != nil {
		return models.SentimentBreakdown{}, err
	}

	byLabel := make(map[sentiment.Label]int64, len(sentiment.Labels))
	var total int64
	for _, c := range counts {
		byLabel[sentiment.Label(c.Sentiment)] += c.Total
		total += c.Total
	}
	if total == 0 {
		return a.settings.DefaultSentiment, nil
	}

	percent := func(l sentiment.Label) float64 {
		return round1(float64(byLabel[l]) / float64(total) * 100)
	}
	return models.SentimentBreakdown{
		Positive: percent(sentiment.Positive),
		Neutral:  percent(sentiment.Neutral),
		Negative: percent(sentiment.Negative),
	}, nil
}

func (a *Aggregator) topActivities(ctx context.Context) ([]models.TopActivity, error) {
	stats, err := a.source.ActivityStats(ctx)
	if err != nil {
		return nil, err
	}

	top := make([]models.TopActivity, 0, len(stats))
	for _, s := range stats {
		top = append(top, models.TopActivity{
			Name:         s.Activity,
			Participants: s.Participants,
			Satisfaction: round1(s.AvgRating),
		})
	}
	return top, nil
}

func (a *Aggregator) recentFeedback(ctx context.Context) ([]models.RecentFeedback, error) {
	entries, err := a.source.RecentComments(ctx, a.settings.RecentLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]models.RecentFeedback, 0, len(entries))
	for i, e := range entries {
		recent = append(recent, models.RecentFeedback{
			ID:        i + 1,
			Activity:  e.Activity,
			Comment:   e.Comment,
			Sentiment: e.Sentiment,
			Time:      clockTime(e.Timestamp),
		})
	}
	return recent, nil
}

func (a *Aggregator) hourlyStats(ctx context.Context) ([]models.HourlyStat, error) {
	hourly := make([]models.HourlyStat, 0, a.settings.HourlyHours)
	for hour := a.settings.HourlyStart; hour < a.settings.HourlyStart+a.settings.HourlyHours; hour++ {
		stat, err := a.source.HourStats(ctx, hour)
		if err != nil {
			return nil, err
		}

		satisfaction := a.settings.HourlyDefaultSatisfaction
		if stat.AvgRating != nil && *stat.AvgRating != 0 {
			satisfaction = round1(*stat.AvgRating * 10)
		}
		hourly = append(hourly, models.HourlyStat{
			Hour:         fmt.Sprintf("%02d:00", hour),
			Participants: stat.Participants,
			Satisfaction: satisfaction,
		})
	}
	return hourly, nil
}

func (a *Aggregator) recommendations(ctx context.Context) ([]string, error) {
	stats, err := a.source.ActivityStats(ctx)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, s := range stats {
		switch {
		case s.AvgRating >= a.settings.ExcellentRating:
			out = append(out, fmt.Sprintf("L'atelier %s performe excellemment - envisager d'augmenter la capacité", s.Activity))
		case s.AvgRating < a.settings.AccessibleRating:
			out = append(out, fmt.Sprintf("%s nécessite peut-être une approche plus accessible", s.Activity))
		}
	}
	if len(out) == 0 {
		return append([]string(nil), GenericRecommendations...), nil
	}
	return out, nil
}

var timestampLayouts = []string{
	models.TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// clockTime renders a stored timestamp as HH:MM, or 00:00 when it cannot
// be parsed.
func clockTime(ts string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("15:04")
		}
	}
	return "00:00"
}

func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
