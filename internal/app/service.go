package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/dashboard"
	"github.com/shrimpsizemoose/nuitfeedback/internal/metrics"
	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
	"github.com/shrimpsizemoose/nuitfeedback/internal/sentiment"
	"github.com/shrimpsizemoose/nuitfeedback/internal/simulator"
	"github.com/shrimpsizemoose/nuitfeedback/internal/store"
)

const (
	SourceManual    = "manual"
	SourceSimulated = "simulated"
	SourceSeed      = "seed"
)

type Service struct {
	Config    *Config
	Store     store.FeedbackStore
	Live      *LivePublisher
	Dashboard *dashboard.Aggregator
	Simulator *simulator.Generator

	now func() time.Time
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := NewStore(config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	live, err := NewLivePublisher(config)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to init live feed: %w", err)
	}

	return NewServiceWith(config, store, live), nil
}

// NewServiceWith assembles a service from already built parts.
func NewServiceWith(config *Config, store store.FeedbackStore, live *LivePublisher) *Service {
	return &Service{
		Config:    config,
		Store:     store,
		Live:      live,
		Dashboard: dashboard.NewAggregator(store, config.Dashboard),
		Simulator: simulator.NewGenerator(nil),
		now:       time.Now,
	}
}

// Prepare resets and seeds the feedback table as configured. Without a
// reset the schema is only created when missing.
func (s *Service) Prepare(ctx context.Context) error {
	if s.Config.Database.ResetOnStart {
		logger.Info.Println("Resetting feedback table")
		if err := s.Store.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset store: %w", err)
		}
	} else if err := s.Store.ApplyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if s.Config.Database.SeedOnStart {
		if err := s.Seed(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	return s.submit(ctx, req, SourceManual)
}

// Simulate draws a synthetic submission and stores it exactly like a
// manual one.
func (s *Service) Simulate(ctx context.Context) (models.SimulatedFeedback, *models.Feedback, error) {
	req := s.Simulator.Next()
	echo := models.SimulatedFeedback{
		Activity: req.Activity,
		Comment:  req.Comment,
		Rating:   req.RatingOrDefault(),
		QRCode:   req.QRCode,
	}

	feedback, err := s.submit(ctx, req, SourceSimulated)
	if err != nil {
		return echo, nil, err
	}
	return echo, feedback, nil
}

func (s *Service) submit(ctx context.Context, req models.FeedbackRequest, source string) (*models.Feedback, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid feedback: %w", err)
	}

	label := sentiment.ClassifyKeywords(req.Comment, req.RatingOrDefault())
	feedback := models.NewFeedback(req, string(label), s.now())

	if err := s.Store.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	activity := metrics.ActivityLabel(feedback.Activity)
	metrics.FeedbackTotal.WithLabelValues(activity, feedback.Sentiment, source).Inc()
	metrics.RatingHistogram.WithLabelValues(activity).Observe(float64(feedback.Rating))
	logger.Debug.Printf("Stored %s feedback #%d for %q: %s", source, feedback.ID, feedback.Activity, feedback.Sentiment)

	if err := s.Live.Publish(ctx, feedback); err != nil {
		logger.Error.Printf("Live feed: %v", err)
	}

	return feedback, nil
}

func (s *Service) ListFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	return s.Store.ListFeedback(ctx, limit)
}

func (s *Service) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	return s.Dashboard.Dashboard(ctx)
}

func (s *Service) GetStats(ctx context.Context) (*models.Stats, error) {
	return s.Dashboard.Stats(ctx)
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Live.Close(); err != nil {
		errs = append(errs, fmt.Errorf("live: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
