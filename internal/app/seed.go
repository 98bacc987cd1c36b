package app

import (
	"context"
	"fmt"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
)

func rating(v int) *int {
	return &v
}

// seedFeedback is what the demo screen shows before anyone has scanned a code.
var seedFeedback = []models.FeedbackRequest{
	{Activity: "Robotique", Comment: "Excellent atelier, très interactif! Les robots étaient impressionnants.", Rating: rating(9), QRCode: "QR001"},
	{Activity: "Astronomie", Comment: "Présentation claire et passionnante sur les exoplanètes.", Rating: rating(8), QRCode: "QR002"},
	{Activity: "Biotechnologie", Comment: "Un peu complexe mais très enrichissant.", Rating: rating(6), QRCode: "QR003"},
	{Activity: "IA & Machine Learning", Comment: "Excellente démonstration de ChatGPT!", Rating: rating(9), QRCode: "QR004"},
	{Activity: "Robotique", Comment: "Les enfants ont adoré programmer le robot.", Rating: rating(10), QRCode: "QR001"},
	{Activity: "Astronomie", Comment: "Télescope fascinant, on a vu Saturne!", Rating: rating(8), QRCode: "QR002"},
	{Activity: "Biotechnologie", Comment: "Expérience avec l'ADN très intéressante.", Rating: rating(7), QRCode: "QR003"},
}

// Seed stores the demo feedback through the regular submission path.
func (s *Service) Seed(ctx context.Context) error {
	for _, req := range seedFeedback {
		if _, err := s.submit(ctx, req, SourceSeed); err != nil {
			return fmt.Errorf("failed to seed feedback: %w", err)
		}
	}
	logger.Info.Printf("Seeded %d feedback entries", len(seedFeedback))
	return nil
}
