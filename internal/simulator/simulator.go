// Package simulator produces synthetic visitor feedback for demos.
package simulator

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
)

const (
	minRating  = 7
	maxRating  = 10
	qrStations = 4
)

var Comments = []string{
	"Absolument fantastique! Les robots étaient impressionnants.",
	"Présentation très claire sur les exoplanètes.",
	"Un peu complexe mais très enrichissant pour la science.",
	"Excellente démonstration de l'intelligence artificielle!",
	"Les enfants ont adoré programmer le robot.",
	"Télescope fascinant, on a pu voir les anneaux de Saturne!",
	"Expérience avec l'ADN très intéressante.",
	"Super atelier, très interactif et pédagogique.",
	"Démonstration époustouflante de la robotique moderne.",
	"Astronomie expliquée de façon passionnante.",
}

type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	activities []string
	comments   []string
}

// NewGenerator samples from the given source; pass nil for a randomly
// seeded one.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{
		rng:        rand.New(src),
		activities: models.ActivityNames(),
		comments:   Comments,
	}
}

// Next draws one submission. The QR code is drawn independently of the
// activity, so it does not necessarily match the activity's station.
func (g *Generator) Next() models.FeedbackRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	rating := minRating + g.rng.IntN(maxRating-minRating+1)
	return models.FeedbackRequest{
		Activity: g.activities[g.rng.IntN(len(g.activities))],
		Comment:  g.comments[g.rng.IntN(len(g.comments))],
		Rating:   &rating,
		QRCode:   fmt.Sprintf("QR%03d", 1+g.rng.IntN(qrStations)),
	}
}
