package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEaseFactor is the starting ease for a card that has never been reviewed.
const DefaultEaseFactor = 2.5

// Card is a single flashcard with its SM-2 scheduling state.
type Card struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`

	// SM-2 scheduling state
	EaseFactor  float64 `json:"ease_factor"`
	Interval    int     `json:"interval"`
	Repetitions int     `json:"repetitions"`

	// Review tracking
	DueDate      *time.Time `json:"due_date,omitempty"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	TotalReviews int        `json:"total_reviews"`
	Lapses       int        `json:"lapses"`

	// Metadata
	Tags      []string  `json:"tags"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCard creates a card with fresh scheduling state.
func NewCard(front, back string) Card {
	return Card{
		ID:         NewID(),
		Front:      front,
		Back:       back,
		EaseFactor: DefaultEaseFactor,
		Tags:       []string{},
		CreatedAt:  time.Now(),
	}
}

// NewID returns a short opaque identifier for cards and decks.
func NewID() string {
	return uuid.NewString()[:8]
}

// IsNew reports whether the card has never been successfully reviewed.
func (c Card) IsNew() bool {
	return c.Repetitions == 0
}

// IsDue reports whether the card should be shown now. A card with no due
// date is always due.
func (c Card) IsDue() bool {
	if c.DueDate == nil {
		return true
	}
	return !time.Now().Before(*c.DueDate)
}

// ResetProgress clears all scheduling state, returning the card to "new".
func (c *Card) ResetProgress() {
	c.EaseFactor = DefaultEaseFactor
	c.Interval = 0
	c.Repetitions = 0
	c.DueDate = nil
	c.LastReviewed = nil
	c.TotalReviews = 0
	c.Lapses = 0
}
