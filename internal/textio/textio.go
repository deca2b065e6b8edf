// Package textio imports decks from line-oriented text files: comma
// separated values, and Anki text exports separated by tabs or
// semicolons.
package textio

import (
	"context"
	"os"
	"strings"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
)

// ImportCSV reads a comma-separated file into a new deck. A first row
// containing the word "front" (any case) is treated as a header and
// skipped. Rows with fewer than two non-empty columns are ignored.
func ImportCSV(ctx context.Context, path, deckName string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("textio")
	log.Debug("importing csv: path=%s, deck=%s", path, deckName)

	content, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read csv file %s: %v", path, err)
		return nil, errors.NewIOError("read csv file", err)
	}

	deck := models.NewDeck(deckName)
	for i, line := range strings.Split(string(content), "\n") {
		if i == 0 && strings.Contains(strings.ToLower(line), "front") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		front := strings.TrimSpace(parts[0])
		back := strings.TrimSpace(parts[1])
		if front != "" && back != "" {
			deck.AddCard(front, back)
		}
	}

	log.Debug("csv import produced %d cards", len(deck.Cards))
	return &deck, nil
}

// ImportAnkiText reads an Anki text export into a new deck. Lines split
// on tab when one is present, otherwise on semicolon; an optional third
// column is whitespace-split into tags. Blank lines and '#' comments are
// skipped.
func ImportAnkiText(ctx context.Context, path, deckName string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("textio")
	log.Debug("importing anki text: path=%s, deck=%s", path, deckName)

	content, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read anki text file %s: %v", path, err)
		return nil, errors.NewIOError("read anki text file", err)
	}

	deck := models.NewDeck(deckName)
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var parts []string
		if strings.Contains(line, "\t") {
			parts = strings.Split(line, "\t")
		} else {
			parts = strings.Split(line, ";")
		}
		if len(parts) < 2 {
			continue
		}

		front := strings.TrimSpace(parts[0])
		back := strings.TrimSpace(parts[1])
		if front == "" || back == "" {
			continue
		}

		card := deck.AddCard(front, back)
		if len(parts) >= 3 {
			if tags := strings.Fields(parts[2]); len(tags) > 0 {
				card.Tags = tags
			}
		}
	}

	log.Debug("anki text import produced %d cards", len(deck.Cards))
	return &deck, nil
}

// TitleCase converts a snake_case or kebab-case filename stem into a
// Title Case deck name: "world_capitals" becomes "World Capitals".
func TitleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, word := range words {
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
