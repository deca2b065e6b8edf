package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/flashdeck/flashdeck/internal/anki"
	"github.com/flashdeck/flashdeck/internal/backup"
	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/store"
	"github.com/flashdeck/flashdeck/internal/textio"
)

// ImportedDeck reports one deck an import operation persisted.
type ImportedDeck struct {
	Name      string
	CardCount int
}

// InterchangeService moves decks between the record store and the
// external formats: delimited text, Anki packages and backup snapshots.
// All persistence goes through the record store; a failed import or
// export leaves it unchanged.
type InterchangeService interface {
	ImportCSVFile(ctx context.Context, path, deckName string) (*models.Deck, error)
	ImportFolder(ctx context.Context, dir string) (imported []ImportedDeck, skipped []string, err error)
	ImportForeign(ctx context.Context, path, fallbackName string) (imported []ImportedDeck, skipped []string, err error)
	ExportForeign(ctx context.Context, path string) (int, error)
	ExportBackup(ctx context.Context, path string) (int, error)
	ImportBackup(ctx context.Context, path string) (imported, skipped int, err error)
}

type interchangeService struct {
	store *store.Store
}

// NewInterchangeService creates a new InterchangeService backed by the
// given record store.
func NewInterchangeService(st *store.Store) InterchangeService {
	return &interchangeService{store: st}
}

// ImportCSVFile parses path into a deck named deckName and persists it.
// The caller is expected to have applied duplicate-name policy first.
func (s *interchangeService) ImportCSVFile(ctx context.Context, path, deckName string) (*models.Deck, error) {
	deck, err := textio.ImportCSV(ctx, path, deckName)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Save(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// ImportFolder imports every .csv file in dir, naming each deck from its
// filename in Title Case. Names that already exist, in the store or
// earlier in the same run, are skipped rather than silently overwritten.
func (s *interchangeService) ImportFolder(ctx context.Context, dir string) ([]ImportedDeck, []string, error) {
	log := logger.FromContext(ctx).WithPrefix("interchange")

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error("failed to read import folder %s: %v", dir, err)
		return nil, nil, errors.NewIOError("read import folder", err)
	}

	existing, err := s.existingNames(ctx)
	if err != nil {
		return nil, nil, err
	}

	var imported []ImportedDeck
	var skipped []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		deckName := textio.TitleCase(stem)
		if deckName == "" {
			deckName = "Imported Deck"
		}

		if existing[strings.ToLower(deckName)] {
			skipped = append(skipped, deckName)
			continue
		}

		deck, err := textio.ImportCSV(ctx, filepath.Join(dir, entry.Name()), deckName)
		if err != nil {
			log.Warn("failed to import %s: %v", entry.Name(), err)
			continue
		}
		if len(deck.Cards) == 0 {
			continue
		}
		if _, err := s.store.Save(ctx, deck); err != nil {
			return imported, skipped, err
		}
		existing[strings.ToLower(deckName)] = true
		imported = append(imported, ImportedDeck{Name: deckName, CardCount: len(deck.Cards)})
	}
	return imported, skipped, nil
}

// ImportForeign auto-detects the format of path and imports it: Anki
// packages may yield several decks, text files yield one named
// fallbackName (or the Title Case filename when empty). Decks whose name
// already exists are reported in skipped and not persisted.
func (s *interchangeService) ImportForeign(ctx context.Context, path, fallbackName string) ([]ImportedDeck, []string, error) {
	format, err := anki.DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}

	name := fallbackName
	if name == "" {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name = textio.TitleCase(stem)
	}

	var decks []models.Deck
	switch format {
	case anki.FormatPackage:
		decks, err = anki.Import(ctx, path)
	case anki.FormatCSV:
		var deck *models.Deck
		deck, err = textio.ImportCSV(ctx, path, name)
		if deck != nil {
			decks = []models.Deck{*deck}
		}
	default:
		var deck *models.Deck
		deck, err = textio.ImportAnkiText(ctx, path, name)
		if deck != nil {
			decks = []models.Deck{*deck}
		}
	}
	if err != nil {
		return nil, nil, err
	}

	var imported []ImportedDeck
	var skipped []string
	for i := range decks {
		deck := decks[i]
		exists, err := s.store.NameExists(ctx, deck.Name)
		if err != nil {
			return imported, skipped, err
		}
		if exists {
			skipped = append(skipped, deck.Name)
			continue
		}
		if _, err := s.store.Save(ctx, &deck); err != nil {
			return imported, skipped, err
		}
		imported = append(imported, ImportedDeck{Name: deck.Name, CardCount: len(deck.Cards)})
	}
	return imported, skipped, nil
}

// ExportForeign writes every loadable deck to an Anki package at path and
// returns the card count.
func (s *interchangeService) ExportForeign(ctx context.Context, path string) (int, error) {
	decks, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	return anki.ExportFile(ctx, path, decks)
}

// ExportBackup snapshots the store to path.
func (s *interchangeService) ExportBackup(ctx context.Context, path string) (int, error) {
	return backup.Export(ctx, s.store, path)
}

// ImportBackup restores a snapshot from path.
func (s *interchangeService) ImportBackup(ctx context.Context, path string) (int, int, error) {
	return backup.Import(ctx, s.store, path)
}

func (s *interchangeService) loadAll(ctx context.Context) ([]models.Deck, error) {
	summaries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	decks := make([]models.Deck, 0, len(summaries))
	for _, summary := range summaries {
		deck, err := s.store.Load(ctx, summary.ID)
		if err != nil || deck == nil {
			continue
		}
		decks = append(decks, *deck)
	}
	return decks, nil
}

func (s *interchangeService) existingNames(ctx context.Context) (map[string]bool, error) {
	summaries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(summaries))
	for _, summary := range summaries {
		names[strings.ToLower(summary.Name)] = true
	}
	return names, nil
}
