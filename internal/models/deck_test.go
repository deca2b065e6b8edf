package models_test

import (
	"testing"
	"time"

	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard_Defaults(t *testing.T) {
	card := models.NewCard("front", "back")

	assert.Len(t, card.ID, 8, "card id should be a short opaque string")
	assert.Equal(t, models.DefaultEaseFactor, card.EaseFactor)
	assert.Equal(t, 0, card.Interval)
	assert.Equal(t, 0, card.Repetitions)
	assert.Nil(t, card.DueDate, "new card has no due date")
	assert.Nil(t, card.LastReviewed)
	assert.True(t, card.IsNew())
	assert.True(t, card.IsDue(), "card without due date is always due")
}

func TestCard_IsDue(t *testing.T) {
	card := models.NewCard("front", "back")

	past := time.Now().Add(-time.Hour)
	card.DueDate = &past
	assert.True(t, card.IsDue(), "past due date means due")

	future := time.Now().Add(time.Hour)
	card.DueDate = &future
	assert.False(t, card.IsDue(), "future due date means not due")
}

func TestCard_ResetProgress(t *testing.T) {
	card := models.NewCard("front", "back")
	now := time.Now()
	card.EaseFactor = 1.9
	card.Interval = 42
	card.Repetitions = 7
	card.Lapses = 3
	card.TotalReviews = 10
	card.DueDate = &now
	card.LastReviewed = &now

	card.ResetProgress()

	assert.Equal(t, models.DefaultEaseFactor, card.EaseFactor)
	assert.Equal(t, 0, card.Interval)
	assert.Equal(t, 0, card.Repetitions)
	assert.Equal(t, 0, card.Lapses)
	assert.Equal(t, 0, card.TotalReviews)
	assert.Nil(t, card.DueDate)
	assert.Nil(t, card.LastReviewed)
}

func TestDeck_Stats(t *testing.T) {
	deck := models.NewDeck("Stats")

	// New card
	deck.AddCard("new", "card")

	// Learning card, overdue
	learning := deck.AddCard("learning", "card")
	learning.Repetitions = 2
	learning.Interval = 6
	past := time.Now().Add(-24 * time.Hour)
	learning.DueDate = &past

	// Mature card, not due yet
	mature := deck.AddCard("mature", "card")
	mature.Repetitions = 8
	mature.Interval = 30
	future := time.Now().Add(10 * 24 * time.Hour)
	mature.DueDate = &future

	stats := deck.Stats()
	assert.Equal(t, 3, stats.TotalCards)
	assert.Equal(t, 1, stats.NewCards)
	assert.Equal(t, 1, stats.DueCards)
	assert.Equal(t, 1, stats.LearningCards)
	assert.Equal(t, 1, stats.MatureCards)
}

func TestRatingFromKey(t *testing.T) {
	for _, tc := range []struct {
		key  rune
		want models.Rating
	}{
		{'1', models.RatingAgain},
		{'2', models.RatingHard},
		{'3', models.RatingGood},
		{'4', models.RatingEasy},
	} {
		got, ok := models.RatingFromKey(tc.key)
		require.True(t, ok, "key %q should map to a rating", tc.key)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.key, got.Key())
	}

	_, ok := models.RatingFromKey('x')
	assert.False(t, ok, "unbound keys map to nothing")
}
