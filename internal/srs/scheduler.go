// Package srs implements the SM-2 spaced-repetition scheduling engine.
// Review and Preview are pure given the current wall-clock time; all
// state lives on the card itself.
package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/flashdeck/flashdeck/internal/models"
)

const (
	// MinEaseFactor is the floor below which ease never drops.
	MinEaseFactor = 1.3
	// AgainPenalty is subtracted from ease on a failed review.
	AgainPenalty = 0.2

	firstInterval  = 1
	secondInterval = 6
)

// Scheduler computes SM-2 scheduling transitions. The zero value is ready
// to use; it carries no mutable state.
type Scheduler struct{}

// New creates a Scheduler.
func New() Scheduler {
	return Scheduler{}
}

// IntervalPreview pairs a rating with the human label of the interval that
// rating would produce, e.g. "1d" or "13d".
type IntervalPreview struct {
	Rating models.Rating
	Label  string
}

// Review applies a rating to a card and returns the updated card. The
// input card is not modified.
func (s Scheduler) Review(card models.Card, rating models.Rating) models.Card {
	now := time.Now()

	if rating == models.RatingAgain {
		card.Repetitions = 0
		card.Interval = firstInterval
		card.Lapses++
		card.EaseFactor = clampEase(card.EaseFactor - AgainPenalty)
	} else {
		card.Interval = nextInterval(card, rating)
		card.EaseFactor = clampEase(adjustEase(card.EaseFactor, rating))
		card.Repetitions++
	}

	due := now.Add(time.Duration(card.Interval) * 24 * time.Hour)
	card.DueDate = &due
	card.LastReviewed = &now
	card.TotalReviews++
	return card
}

// Preview computes, for every rating, the interval a review would produce,
// without mutating the card. Worst rating first.
func (s Scheduler) Preview(card models.Card) [4]IntervalPreview {
	var previews [4]IntervalPreview
	for i, rating := range models.Ratings() {
		days := firstInterval
		if rating != models.RatingAgain {
			days = nextInterval(card, rating)
		}
		previews[i] = IntervalPreview{Rating: rating, Label: FormatInterval(days)}
	}
	return previews
}

// FormatInterval renders a day count as a short label.
func FormatInterval(days int) string {
	return fmt.Sprintf("%dd", days)
}

// nextInterval returns the interval a successful review would set. New
// cards always bootstrap at one day regardless of ease.
func nextInterval(card models.Card, rating models.Rating) int {
	switch {
	case card.Repetitions == 0:
		return firstInterval
	case card.Repetitions == 1:
		return secondInterval
	default:
		ease := clampEase(adjustEase(card.EaseFactor, rating))
		next := int(math.Round(float64(card.Interval) * ease))
		if next < firstInterval {
			next = firstInterval
		}
		return next
	}
}

// adjustEase applies the SM-2 ease delta: up for Easy, unchanged for Good,
// down for Hard.
func adjustEase(ease float64, rating models.Rating) float64 {
	q := float64(rating)
	return ease + 0.1 - (3-q)*(0.08+(3-q)*0.02)
}

func clampEase(ease float64) float64 {
	if ease < MinEaseFactor {
		return MinEaseFactor
	}
	return ease
}
