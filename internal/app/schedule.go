package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/shrimpsizemoose/trekker/logger"
)

// SimulationScheduler submits a simulated feedback on every tick.
type SimulationScheduler struct {
	service   *Service
	scheduler *gocron.Scheduler
}

func NewSimulationScheduler(service *Service) (*SimulationScheduler, error) {
	interval, err := service.Config.SimulatorInterval()
	if err != nil {
		return nil, err
	}

	s := &SimulationScheduler{
		service:   service,
		scheduler: gocron.NewScheduler(time.UTC),
	}

	_, err = s.scheduler.Every(interval).SingletonMode().Do(s.tick)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule simulation: %w", err)
	}
	return s, nil
}

func (s *SimulationScheduler) tick() {
	data, feedback, err := s.service.Simulate(context.Background())
	if err != nil {
		logger.Error.Printf("Simulation failed: %v", err)
		return
	}
	logger.Info.Printf("Simulated %q rated %d: %s", data.Activity, data.Rating, feedback.Sentiment)
}

func (s *SimulationScheduler) Start() {
	s.scheduler.StartAsync()
}

func (s *SimulationScheduler) Stop() {
	s.scheduler.Stop()
}
