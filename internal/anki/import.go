package anki

import (
	"archive/zip"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
)

// Import reads a .apkg package and reconstructs one deck per foreign deck
// id. The caller persists the returned decks and applies duplicate-name
// policy; Import itself never touches the record store.
func Import(ctx context.Context, path string) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("anki")
	log.Debug("importing package: %s", path)

	archive, err := zip.OpenReader(path)
	if err != nil {
		log.Error("failed to open package %s: %v", path, err)
		return nil, errors.NewIOError("open package", err)
	}
	defer archive.Close()

	dbFile := findCollection(&archive.Reader)
	if dbFile == nil {
		return nil, errors.NewUnsupportedContainerError(
			"no collection database found in package (expected " + dbNameAnki21 + " or " + dbNameAnki2 + ")")
	}
	log.Debug("found collection database: %s", dbFile.Name)

	// Extract to a scoped temp file; removed on every exit path.
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("anki_import_%s.db", uuid.NewString()))
	defer os.Remove(tmpPath)
	if err := extractFile(dbFile, tmpPath); err != nil {
		return nil, err
	}

	decks, err := readCollection(ctx, tmpPath)
	if err != nil {
		return nil, err
	}
	if len(decks) == 0 {
		return nil, errors.NewEmptyContainerError("no cards found in package")
	}
	log.Debug("import produced %d decks", len(decks))
	return decks, nil
}

// findCollection locates the embedded database entry, trying the newest
// schema filename first.
func findCollection(r *zip.Reader) *zip.File {
	for _, name := range []string{dbNameAnki21, dbNameAnki2} {
		for _, f := range r.File {
			if f.Name == name {
				return f
			}
		}
	}
	return nil
}

func extractFile(src *zip.File, dstPath string) error {
	in, err := src.Open()
	if err != nil {
		return errors.NewIOError("extract collection database", err)
	}
	defer in.Close()

	out, err := os.Create(dstPath)
	if err != nil {
		return errors.NewIOError("create temp database", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.NewIOError("extract collection database", err)
	}
	return out.Close()
}

// readCollection opens the extracted database and reconstructs decks from
// the notes-cards join.
func readCollection(ctx context.Context, dbPath string) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("anki")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.NewSchemaError("open collection database", err)
	}
	defer db.Close()

	deckNames := readDeckNames(ctx, db)

	rows, err := sqlBuilder.
		Select("n.flds", "c.did", "c.ivl", "c.factor", "c.reps", "c.lapses").
		From("notes n").
		Join("cards c ON c.nid = n.id").
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return nil, errors.NewSchemaError("query notes and cards", err)
	}
	defer rows.Close()

	now := time.Now()
	cardsByDeck := make(map[int64][]models.Card)
	for rows.Next() {
		var flds string
		var did, ivl, factor, reps, lapses int64
		if err := rows.Scan(&flds, &did, &ivl, &factor, &reps, &lapses); err != nil {
			return nil, errors.NewSchemaError("scan card row", err)
		}
		card, ok := reconstructCard(flds, ivl, factor, reps, lapses, now)
		if !ok {
			log.Debug("skipping note with unusable fields (did=%d)", did)
			continue
		}
		cardsByDeck[did] = append(cardsByDeck[did], card)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewSchemaError("iterate card rows", err)
	}

	// Deterministic deck order regardless of map iteration.
	dids := make([]int64, 0, len(cardsByDeck))
	for did := range cardsByDeck {
		dids = append(dids, did)
	}
	sort.Slice(dids, func(i, j int) bool { return dids[i] < dids[j] })

	decks := make([]models.Deck, 0, len(dids))
	for _, did := range dids {
		name, ok := deckNames[did]
		if !ok || name == "" {
			name = fmt.Sprintf("Imported Deck %d", did)
		}
		deck := models.NewDeck(name)
		deck.Cards = cardsByDeck[did]
		decks = append(decks, deck)
	}
	return decks, nil
}

// readDeckNames builds the foreign deck-id to name lookup from the col
// table's decks JSON. Missing or malformed metadata is tolerated; affected
// decks are later named generically from their numeric id.
func readDeckNames(ctx context.Context, db *sql.DB) map[int64]string {
	log := logger.FromContext(ctx).WithPrefix("anki")
	names := make(map[int64]string)

	var decksJSON string
	err := sqlBuilder.
		Select("decks").
		From("col").
		RunWith(db).
		QueryRowContext(ctx).
		Scan(&decksJSON)
	if err != nil {
		log.Warn("cannot read deck metadata, using generic names: %v", err)
		return names
	}

	var raw map[string]struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(decksJSON), &raw); err != nil {
		log.Warn("deck metadata is malformed, using generic names: %v", err)
		return names
	}
	for idStr, entry := range raw {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		names[id] = entry.Name
	}
	return names
}

// reconstructCard rebuilds native scheduling state from the foreign
// columns. Rows with fewer than two fields, or an empty front or back
// after markup cleanup, are skipped rather than failing the import.
func reconstructCard(flds string, ivl, factor, reps, lapses int64, now time.Time) (models.Card, bool) {
	fields := splitFields(flds)
	if len(fields) < 2 {
		return models.Card{}, false
	}
	front := StripHTML(fields[0])
	back := StripHTML(fields[1])
	if front == "" || back == "" {
		return models.Card{}, false
	}

	card := models.NewCard(front, back)
	card.Interval = int(max64(0, ivl))
	card.EaseFactor = float64(factor) / 1000.0
	card.Repetitions = int(max64(0, reps))
	card.Lapses = int(max64(0, lapses))

	// The foreign due encoding is not reproduced; only the interval length
	// is trusted, re-anchored to now.
	if card.Interval > 0 {
		due := now.Add(time.Duration(card.Interval) * 24 * time.Hour)
		card.DueDate = &due
	}
	return card, true
}

func splitFields(flds string) []string {
	return strings.Split(flds, fieldSeparator)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
