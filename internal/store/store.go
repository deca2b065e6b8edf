// Package store persists decks as one JSON record per deck under a single
// directory. It is the source of truth: the interchange codecs read and
// write decks only through it.
package store

import (
	"context"
	stderrors "errors"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
)

const recordExt = ".json"

// DeckSummary is the listing view of a persisted deck record.
type DeckSummary struct {
	ID          string
	Name        string
	Description string
	CardCount   int
}

// Store maps deck identities to on-disk JSON records. It assumes
// exclusive single-process access to its directory.
type Store struct {
	dir string
}

// New opens a store rooted at dir, creating the directory if needed.
// On a first run with no existing records it installs the bundled
// starter deck with all scheduling state reset.
func New(ctx context.Context, dir string) (*Store, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("failed to create decks directory %s: %v", dir, err)
		return nil, errors.NewIOError("create decks directory", err)
	}

	s := &Store{dir: dir}
	s.installStarterDeck(ctx)
	return s, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) deckPath(id string) string {
	return filepath.Join(s.dir, id+recordExt)
}

// Save writes the deck record, replacing any prior version atomically.
// It returns the record's path.
func (s *Store) Save(ctx context.Context, deck *models.Deck) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("saving deck: id=%s, name=%s, cards=%d", deck.ID, deck.Name, len(deck.Cards))

	data, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		log.Error("failed to encode deck %s: %v", deck.ID, err)
		return "", errors.NewIOError("encode deck record", err)
	}

	path := s.deckPath(deck.ID)

	// Write to a temp file in the same directory and rename over the
	// target so a concurrent reader never sees a partial record.
	tmp, err := os.CreateTemp(s.dir, deck.ID+".*.tmp")
	if err != nil {
		log.Error("failed to create temp record for deck %s: %v", deck.ID, err)
		return "", errors.NewIOError("create temp record", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		log.Error("failed to write deck record %s: %v", deck.ID, err)
		return "", errors.NewIOError("write deck record", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.NewIOError("close deck record", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		log.Error("failed to replace deck record %s: %v", deck.ID, err)
		return "", errors.NewIOError("replace deck record", err)
	}

	log.Debug("deck saved: %s", path)
	return path, nil
}

// Load reads a deck record. It returns nil with no error when the record
// does not exist, and a CORRUPT_RECORD error when it exists but cannot
// be parsed.
func (s *Store) Load(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	data, err := os.ReadFile(s.deckPath(id))
	if stderrors.Is(err, fs.ErrNotExist) {
		log.Debug("deck record not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to read deck record %s: %v", id, err)
		return nil, errors.NewIOError("read deck record", err)
	}

	var deck models.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		log.Error("deck record %s is corrupt: %v", id, err)
		return nil, errors.NewCorruptRecordError(id, err)
	}
	normalize(&deck)
	return &deck, nil
}

// List scans all records and returns summaries sorted by deck name.
// Unparsable records are skipped, not fatal; a bad record must never hide
// the others.
func (s *Store) List(ctx context.Context) ([]DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Error("failed to read decks directory: %v", err)
		return nil, errors.NewIOError("read decks directory", err)
	}

	var summaries []DeckSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), recordExt)
		deck, err := s.Load(ctx, id)
		if err != nil || deck == nil {
			log.Warn("skipping unreadable deck record %s: %v", entry.Name(), err)
			continue
		}
		summaries = append(summaries, DeckSummary{
			ID:          deck.ID,
			Name:        deck.Name,
			Description: deck.Description,
			CardCount:   len(deck.Cards),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	log.Debug("listed %d decks", len(summaries))
	return summaries, nil
}

// Delete removes a deck record and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	err := os.Remove(s.deckPath(id))
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		log.Error("failed to delete deck record %s: %v", id, err)
		return false, errors.NewIOError("delete deck record", err)
	}
	log.Debug("deck deleted: id=%s", id)
	return true, nil
}

// NameExists reports whether any deck already uses the given display
// name, compared case-insensitively. Importers use it to avoid creating
// duplicates.
func (s *Store) NameExists(ctx context.Context, name string) (bool, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	lower := strings.ToLower(name)
	for _, summary := range summaries {
		if strings.ToLower(summary.Name) == lower {
			return true, nil
		}
	}
	return false, nil
}

// normalize fills forward-compatible defaults for fields older records
// may omit.
func normalize(deck *models.Deck) {
	if deck.Cards == nil {
		deck.Cards = []models.Card{}
	}
	for i := range deck.Cards {
		if deck.Cards[i].Tags == nil {
			deck.Cards[i].Tags = []string{}
		}
	}
}
