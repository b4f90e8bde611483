package service

import (
	"math/rand"

	"feedbackpro/internal/model"
)

// SentimentAnalyzer scores a submitted response on the 0-5 valence scale.
// Injected into the response service so a real analyzer can replace the
// placeholder without touching the intake path.
type SentimentAnalyzer interface {
	Score(survey *model.Survey, answers map[string]string) float64
}

// PlaceholderAnalyzer assigns a uniform-random score. This mirrors the
// stand-in behavior the product shipped with: the score is not derived
// from the answers at all. Keep the hook point, swap the implementation.
type PlaceholderAnalyzer struct{}

// NewPlaceholderAnalyzer creates the stock random analyzer
func NewPlaceholderAnalyzer() *PlaceholderAnalyzer {
	return &PlaceholderAnalyzer{}
}

func (a *PlaceholderAnalyzer) Score(_ *model.Survey, _ map[string]string) float64 {
	return rand.Float64() * 5
}
