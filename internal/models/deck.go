package models

import "time"

// MatureInterval is the interval, in days, at which a card counts as mature.
const MatureInterval = 21

// Deck is an ordered collection of cards with a stable identity.
type Deck struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cards       []Card     `json:"cards"`
	CreatedAt   time.Time  `json:"created_at"`
	LastStudied *time.Time `json:"last_studied,omitempty"`
}

// NewDeck creates an empty deck with the given display name.
func NewDeck(name string) Deck {
	return Deck{
		ID:        NewID(),
		Name:      name,
		Cards:     []Card{},
		CreatedAt: time.Now(),
	}
}

// AddCard appends a fresh card and returns a pointer to it.
func (d *Deck) AddCard(front, back string) *Card {
	d.Cards = append(d.Cards, NewCard(front, back))
	return &d.Cards[len(d.Cards)-1]
}

// DueCards returns the indices of cards that are currently due.
func (d *Deck) DueCards() []int {
	var due []int
	for i := range d.Cards {
		if d.Cards[i].IsDue() {
			due = append(due, i)
		}
	}
	return due
}

// NewCards returns the indices of cards that have never been reviewed.
func (d *Deck) NewCards() []int {
	var fresh []int
	for i := range d.Cards {
		if d.Cards[i].IsNew() {
			fresh = append(fresh, i)
		}
	}
	return fresh
}

// DeckStats is a derived snapshot of a deck's scheduling state. It is
// recomputed on demand and never persisted.
type DeckStats struct {
	TotalCards    int
	NewCards      int
	DueCards      int
	LearningCards int
	MatureCards   int
}

// Stats computes counts of new, due, learning and mature cards.
// Learning means reviewed at least once with an interval below
// MatureInterval; mature means the interval has reached it.
func (d *Deck) Stats() DeckStats {
	stats := DeckStats{TotalCards: len(d.Cards)}
	for i := range d.Cards {
		card := &d.Cards[i]
		if card.IsNew() {
			stats.NewCards++
		} else if card.IsDue() {
			stats.DueCards++
		}
		if card.Interval < MatureInterval && !card.IsNew() {
			stats.LearningCards++
		} else if card.Interval >= MatureInterval {
			stats.MatureCards++
		}
	}
	return stats
}
