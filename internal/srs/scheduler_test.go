package srs_test

import (
	"testing"
	"time"

	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_NewCardBootstrap(t *testing.T) {
	scheduler := srs.New()

	for _, rating := range []models.Rating{models.RatingHard, models.RatingGood, models.RatingEasy} {
		card := models.NewCard("front", "back")
		updated := scheduler.Review(card, rating)

		assert.Equal(t, 1, updated.Interval, "%s on a new card bootstraps at one day", rating)
		assert.Equal(t, 1, updated.Repetitions)
		assert.Equal(t, 1, updated.TotalReviews)
		require.NotNil(t, updated.DueDate)
		require.NotNil(t, updated.LastReviewed)
		assert.True(t, updated.DueDate.After(time.Now()), "due date should be in the future")
	}
}

func TestReview_SecondReviewIsSixDays(t *testing.T) {
	scheduler := srs.New()
	card := models.NewCard("front", "back")

	card = scheduler.Review(card, models.RatingGood)
	card = scheduler.Review(card, models.RatingGood)

	assert.Equal(t, 6, card.Interval)
	assert.Equal(t, 2, card.Repetitions)
}

func TestReview_IntervalGrowth(t *testing.T) {
	scheduler := srs.New()
	card := models.NewCard("front", "back")

	prev := 0
	for i := 0; i < 6; i++ {
		card = scheduler.Review(card, models.RatingGood)
		assert.GreaterOrEqual(t, card.Interval, prev, "interval never shrinks under Good")
		prev = card.Interval
	}
	assert.Greater(t, card.Interval, 6, "interval grows past the bootstrap steps")
	assert.InDelta(t, models.DefaultEaseFactor, card.EaseFactor, 0.0001, "Good leaves ease unchanged")
}

func TestReview_AgainResets(t *testing.T) {
	scheduler := srs.New()
	card := models.NewCard("front", "back")
	card.Repetitions = 5
	card.Interval = 40
	card.EaseFactor = 2.5

	updated := scheduler.Review(card, models.RatingAgain)

	assert.Equal(t, 0, updated.Repetitions, "Again resets repetitions")
	assert.Equal(t, 1, updated.Interval, "Again schedules a one-day relearn")
	assert.Equal(t, 1, updated.Lapses, "Again increments lapses by exactly one")
	assert.InDelta(t, 2.3, updated.EaseFactor, 0.0001, "Again applies the ease penalty")
}

func TestReview_EaseFloor(t *testing.T) {
	scheduler := srs.New()
	card := models.NewCard("front", "back")

	for i := 0; i < 20; i++ {
		card = scheduler.Review(card, models.RatingAgain)
		assert.GreaterOrEqual(t, card.EaseFactor, srs.MinEaseFactor,
			"ease never drops below the floor")
	}
	assert.Equal(t, 20, card.Lapses)
	assert.Equal(t, 20, card.TotalReviews)
}

func TestReview_EaseDirectionPerRating(t *testing.T) {
	scheduler := srs.New()

	base := models.NewCard("front", "back")
	base.Repetitions = 3
	base.Interval = 10

	hard := scheduler.Review(base, models.RatingHard)
	good := scheduler.Review(base, models.RatingGood)
	easy := scheduler.Review(base, models.RatingEasy)

	assert.Less(t, hard.EaseFactor, base.EaseFactor, "Hard nudges ease down")
	assert.InDelta(t, base.EaseFactor, good.EaseFactor, 0.0001, "Good leaves ease unchanged")
	assert.Greater(t, easy.EaseFactor, base.EaseFactor, "Easy nudges ease up")

	assert.LessOrEqual(t, hard.Interval, good.Interval)
	assert.LessOrEqual(t, good.Interval, easy.Interval)
}

func TestPreview_NewCard(t *testing.T) {
	scheduler := srs.New()
	card := models.NewCard("front", "back")
	card.EaseFactor = 3.1 // ease must not affect the bootstrap preview

	previews := scheduler.Preview(card)

	require.Len(t, previews[:], 4)
	for _, p := range previews {
		assert.Equal(t, "1d", p.Label, "every rating on a new card previews the one-day bootstrap")
	}
	assert.Equal(t, models.RatingAgain, previews[0].Rating, "previews are ordered worst first")
	assert.Equal(t, models.RatingEasy, previews[3].Rating)
}

func TestPreview_DoesNotMutate(t *testing.T) {
	scheduler := srs.New()
	card := models.NewCard("front", "back")
	card.Repetitions = 4
	card.Interval = 12

	before := card
	previews := scheduler.Preview(card)

	assert.Equal(t, before, card, "preview must not change the card")
	assert.Equal(t, "1d", previews[0].Label, "Again always previews one day")
	assert.NotEqual(t, previews[1].Label, previews[3].Label,
		"Hard and Easy diverge once the interval is multiplicative")
}

func TestPreview_MatchesReview(t *testing.T) {
	scheduler := srs.New()
	card := models.NewCard("front", "back")
	card.Repetitions = 2
	card.Interval = 10

	previews := scheduler.Preview(card)
	for _, p := range previews {
		updated := scheduler.Review(card, p.Rating)
		assert.Equal(t, srs.FormatInterval(updated.Interval), p.Label,
			"preview for %s must match the interval Review produces", p.Rating)
	}
}
