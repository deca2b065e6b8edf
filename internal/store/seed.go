package store

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	_ "embed"

	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
)

//go:embed bundled/development_workflow.json
var starterDeckJSON []byte

// installStarterDeck seeds the bundled deck on first run. The gate is the
// absence of any deck record, not a persisted flag, so the operation is
// idempotent: once any record exists nothing is installed.
func (s *Store) installStarterDeck(ctx context.Context) {
	log := logger.FromContext(ctx).WithPrefix("store")

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Warn("cannot scan decks directory for seeding: %v", err)
		return
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), recordExt) {
			return // user already has decks
		}
	}

	var deck models.Deck
	if err := json.Unmarshal(starterDeckJSON, &deck); err != nil {
		log.Warn("bundled starter deck is invalid: %v", err)
		return
	}
	for i := range deck.Cards {
		deck.Cards[i].ResetProgress()
	}
	if _, err := s.Save(ctx, &deck); err != nil {
		log.Warn("failed to install starter deck: %v", err)
		return
	}
	log.Info("installed starter deck %q with %d cards", deck.Name, len(deck.Cards))
}
