// Package backup snapshots the whole record store into a single file and
// restores it, skipping decks whose identity already exists.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/store"
)

// Version is the current snapshot format version.
const Version = 1

// Snapshot is the backup file payload: every loadable deck, in store
// listing order.
type Snapshot struct {
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	Decks     []models.Deck `json:"decks"`
}

// Export writes all loadable decks to a snapshot file and returns how
// many it wrote. Decks that fail to load are omitted, matching the
// store's graceful listing behavior.
func Export(ctx context.Context, st *store.Store, path string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("backup")

	summaries, err := st.List(ctx)
	if err != nil {
		return 0, err
	}

	snapshot := Snapshot{
		Version:   Version,
		CreatedAt: time.Now(),
		Decks:     []models.Deck{},
	}
	for _, summary := range summaries {
		deck, err := st.Load(ctx, summary.ID)
		if err != nil || deck == nil {
			log.Warn("skipping deck %s in backup: %v", summary.ID, err)
			continue
		}
		snapshot.Decks = append(snapshot.Decks, *deck)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return 0, errors.NewIOError("encode backup", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("failed to write backup file %s: %v", path, err)
		return 0, errors.NewIOError("write backup file", err)
	}

	log.Info("exported %d decks to %s", len(snapshot.Decks), path)
	return len(snapshot.Decks), nil
}

// Import restores decks from a snapshot file. A deck whose id already has
// a record is skipped wholesale; no per-card merging is attempted. It
// returns the imported and skipped counts.
func Import(ctx context.Context, st *store.Store, path string) (imported, skipped int, err error) {
	log := logger.FromContext(ctx).WithPrefix("backup")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read backup file %s: %v", path, err)
		return 0, 0, errors.NewIOError("read backup file", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return 0, 0, errors.NewCorruptRecordError(path, err)
	}

	summaries, err := st.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	existing := make(map[string]bool, len(summaries))
	for _, summary := range summaries {
		existing[summary.ID] = true
	}

	for i := range snapshot.Decks {
		deck := snapshot.Decks[i]
		if existing[deck.ID] {
			skipped++
			continue
		}
		if _, err := st.Save(ctx, &deck); err != nil {
			return imported, skipped, err
		}
		imported++
	}

	log.Info("backup import: %d imported, %d skipped", imported, skipped)
	return imported, skipped, nil
}

// DefaultPath returns a timestamped backup filename in the user's home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, fmt.Sprintf("flashdeck_backup_%s.json", time.Now().Format("20060102_150405")))
}
