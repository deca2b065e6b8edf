// Package anki encodes and decodes Anki .apkg packages: a zip archive
// holding a SQLite collection database plus a media manifest. The codec
// maps between native decks and the foreign scheduling columns, and talks
// to the record store only through its caller.
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
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Database filename variants inside a package, newest schema first.
const (
	dbNameAnki21 = "collection.anki21"
	dbNameAnki2  = "collection.anki2"
)

// Foreign card lifecycle encoding (type and queue columns).
const (
	cardTypeNew      = 0
	cardTypeLearning = 1
	cardTypeReview   = 2
)

// ExportFile writes the decks to a .apkg package at path. It returns the
// number of cards written. An empty selection fails with
// NOTHING_TO_EXPORT before any file is created.
func ExportFile(ctx context.Context, path string, decks []models.Deck) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("anki")

	if len(decks) == 0 {
		return 0, errors.NewNothingToExportError()
	}

	out, err := os.Create(path)
	if err != nil {
		log.Error("failed to create package file %s: %v", path, err)
		return 0, errors.NewIOError("create package file", err)
	}

	count, err := Export(ctx, out, decks)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = errors.NewIOError("close package file", cerr)
	}
	if err != nil {
		os.Remove(path) // a failed export leaves no output behind
		return 0, err
	}
	log.Info("exported %d cards to %s", count, path)
	return count, nil
}

// Export writes the decks as a .apkg package to w and returns the number
// of cards written.
func Export(ctx context.Context, w io.Writer, decks []models.Deck) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("anki")

	if len(decks) == 0 {
		return 0, errors.NewNothingToExportError()
	}
	log.Debug("exporting %d decks", len(decks))

	// The collection database is materialized in a scoped temp file that
	// is removed on every exit path.
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("anki_export_%s.db", uuid.NewString()))
	defer os.Remove(tmpPath)

	if err := buildCollection(ctx, tmpPath, decks); err != nil {
		return 0, err
	}

	count := 0
	for _, deck := range decks {
		count += len(deck.Cards)
	}

	if err := writePackage(w, tmpPath); err != nil {
		log.Error("failed to write package: %v", err)
		return 0, err
	}
	log.Debug("export complete: %d cards", count)
	return count, nil
}

// buildCollection creates the collection database at dbPath and fills it
// from the decks: one col row, one note and one card row per card.
func buildCollection(ctx context.Context, dbPath string, decks []models.Deck) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return errors.NewSchemaError("open collection database", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, collectionSchema); err != nil {
		return errors.NewSchemaError("create collection schema", err)
	}

	now := time.Now().Unix()
	nowMillis := now * 1000

	if err := insertCollectionRow(ctx, db, decks, now, nowMillis); err != nil {
		return err
	}

	// Note and card ids are seeded from wall-clock milliseconds and
	// incremented per card, matching the foreign convention of
	// timestamp-based ids.
	noteID := nowMillis
	cardID := nowMillis

	for deckIdx, deck := range decks {
		deckID := exportDeckID(deckIdx)
		for _, card := range deck.Cards {
			noteID++
			cardID++
			if err := insertNote(ctx, db, noteID, card, now); err != nil {
				return err
			}
			if err := insertCard(ctx, db, cardID, noteID, deckID, card, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertCollectionRow(ctx context.Context, db *sql.DB, decks []models.Deck, now, nowMillis int64) error {
	decksJSON, err := json.Marshal(buildDeckEntries(decks, now))
	if err != nil {
		return errors.NewSchemaError("encode decks metadata", err)
	}
	modelsJSON, err := json.Marshal(buildNoteModels(now))
	if err != nil {
		return errors.NewSchemaError("encode note models", err)
	}
	dconfJSON, err := json.Marshal(buildDeckConfigs())
	if err != nil {
		return errors.NewSchemaError("encode deck configs", err)
	}

	_, err = sqlBuilder.
		Insert("col").
		Columns("id", "crt", "mod", "scm", "ver", "dty", "usn", "ls", "conf", "models", "decks", "dconf", "tags").
		Values(1, now, now, nowMillis, 11, 0, -1, 0, "{}", string(modelsJSON), string(decksJSON), string(dconfJSON), "{}").
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return errors.NewSchemaError("insert collection row", err)
	}
	return nil
}

func insertNote(ctx context.Context, db *sql.DB, noteID int64, card models.Card, now int64) error {
	flds := card.Front + fieldSeparator + card.Back
	tags := strings.Join(card.Tags, " ")

	_, err := sqlBuilder.
		Insert("notes").
		Columns("id", "guid", "mid", "mod", "usn", "tags", "flds", "sfld", "csum", "flags", "data").
		Values(noteID, card.ID, basicModelID, now, -1, tags, flds, card.Front, fieldChecksum(card.Front), 0, "").
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return errors.NewSchemaError("insert note", err)
	}
	return nil
}

func insertCard(ctx context.Context, db *sql.DB, cardID, noteID, deckID int64, card models.Card, now int64) error {
	cardType, queue, due := classifyCard(card, noteID, now)

	_, err := sqlBuilder.
		Insert("cards").
		Columns("id", "nid", "did", "ord", "mod", "usn", "type", "queue", "due",
			"ivl", "factor", "reps", "lapses", "left", "odue", "odid", "flags", "data").
		Values(cardID, noteID, deckID, 0, now, -1, cardType, queue, due,
			card.Interval, int64(card.EaseFactor*1000), card.Repetitions, card.Lapses, 0, 0, 0, 0, "").
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return errors.NewSchemaError("insert card", err)
	}
	return nil
}

// classifyCard maps a card's lifecycle stage onto the foreign type/queue/
// due encoding: new cards are ordered by note id, learning cards are due
// now, review cards carry a day offset.
func classifyCard(card models.Card, noteID, now int64) (cardType, queue, due int64) {
	switch {
	case card.Repetitions == 0:
		return cardTypeNew, cardTypeNew, noteID
	case card.Interval == 0:
		return cardTypeLearning, cardTypeLearning, now
	default:
		return cardTypeReview, cardTypeReview, int64(card.Interval)
	}
}

// fieldChecksum computes the additive checksum the notes table requires
// over the front field's bytes. It is not cryptographic; the foreign
// schema only uses it for duplicate detection.
func fieldChecksum(front string) int64 {
	var sum int64
	for _, b := range []byte(front) {
		sum += int64(b)
	}
	return sum % 2147483647
}

// writePackage zips the collection database and an empty media manifest
// into the package layout the foreign application expects.
func writePackage(w io.Writer, dbPath string) error {
	zw := zip.NewWriter(w)

	dbEntry, err := zw.Create(dbNameAnki2)
	if err != nil {
		return errors.NewIOError("create database entry", err)
	}
	dbBytes, err := os.ReadFile(dbPath)
	if err != nil {
		return errors.NewIOError("read collection database", err)
	}
	if _, err := dbEntry.Write(dbBytes); err != nil {
		return errors.NewIOError("write database entry", err)
	}

	mediaEntry, err := zw.Create("media")
	if err != nil {
		return errors.NewIOError("create media entry", err)
	}
	if _, err := mediaEntry.Write([]byte("{}")); err != nil {
		return errors.NewIOError("write media entry", err)
	}

	if err := zw.Close(); err != nil {
		return errors.NewIOError("finalize package", err)
	}
	return nil
}
