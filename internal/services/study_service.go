package services

import (
	"context"
	"time"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/srs"
	"github.com/flashdeck/flashdeck/internal/store"
)

// StudyService applies review ratings to cards and writes the updated
// scheduling state back through the record store.
type StudyService interface {
	ReviewCard(ctx context.Context, deckID, cardID string, rating models.Rating) (*models.Card, error)
	PreviewCard(card models.Card) [4]srs.IntervalPreview
}

type studyService struct {
	store     *store.Store
	scheduler srs.Scheduler
}

// NewStudyService creates a new StudyService.
func NewStudyService(st *store.Store) StudyService {
	return &studyService{store: st, scheduler: srs.New()}
}

// ReviewCard applies the rating to the card, stamps the deck's
// last-studied time and persists the deck.
func (s *studyService) ReviewCard(ctx context.Context, deckID, cardID string, rating models.Rating) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("study")

	deck, err := s.store.Load(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	for i := range deck.Cards {
		if deck.Cards[i].ID != cardID {
			continue
		}
		deck.Cards[i] = s.scheduler.Review(deck.Cards[i], rating)
		now := time.Now()
		deck.LastStudied = &now

		if _, err := s.store.Save(ctx, deck); err != nil {
			return nil, err
		}
		log.Debug("reviewed card %s in deck %s: rating=%s, interval=%dd",
			cardID, deckID, rating, deck.Cards[i].Interval)
		return &deck.Cards[i], nil
	}
	return nil, errors.NewNotFoundError("card", cardID)
}

// PreviewCard returns, for each rating, the interval label a review
// would produce, without mutating anything.
func (s *studyService) PreviewCard(card models.Card) [4]srs.IntervalPreview {
	return s.scheduler.Preview(card)
}
