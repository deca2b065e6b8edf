package textio_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck/internal/textio"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCSV_HeaderDetection(t *testing.T) {
	path := writeFile(t, "greetings.csv", "Front,Back\nQué,What\nHola,Hello\n")

	deck, err := textio.ImportCSV(context.Background(), path, "Greetings")
	require.NoError(t, err)

	require.Len(t, deck.Cards, 2, "header row is skipped")
	assert.Equal(t, "Qué", deck.Cards[0].Front)
	assert.Equal(t, "What", deck.Cards[0].Back)
	assert.Equal(t, "Hola", deck.Cards[1].Front)
	assert.Equal(t, "Hello", deck.Cards[1].Back)
	assert.Equal(t, "Greetings", deck.Name)
}

func TestImportCSV_NoHeader(t *testing.T) {
	path := writeFile(t, "nums.csv", "uno,one\ndos,two\n")

	deck, err := textio.ImportCSV(context.Background(), path, "Numbers")
	require.NoError(t, err)

	require.Len(t, deck.Cards, 2, "first row without 'front' is data")
	assert.Equal(t, "uno", deck.Cards[0].Front)
}

func TestImportCSV_SkipsBadRows(t *testing.T) {
	path := writeFile(t, "messy.csv", "only-one-column\n , \nfront1,back1\n")

	deck, err := textio.ImportCSV(context.Background(), path, "Messy")
	require.NoError(t, err)

	require.Len(t, deck.Cards, 1)
	assert.Equal(t, "front1", deck.Cards[0].Front)
}

func TestImportAnkiText_TabSeparated(t *testing.T) {
	path := writeFile(t, "export.txt", "# exported from anki\nhello\tbonjour\tfrench greetings\nbye\tau revoir\n")

	deck, err := textio.ImportAnkiText(context.Background(), path, "French")
	require.NoError(t, err)

	require.Len(t, deck.Cards, 2, "comment line is skipped")
	assert.Equal(t, "hello", deck.Cards[0].Front)
	assert.Equal(t, "bonjour", deck.Cards[0].Back)
	assert.Equal(t, []string{"french", "greetings"}, deck.Cards[0].Tags,
		"third column splits into tags")
	assert.Empty(t, deck.Cards[1].Tags)
}

func TestImportAnkiText_SemicolonFallback(t *testing.T) {
	path := writeFile(t, "export.txt", "hola;hello\nadiós;goodbye\n")

	deck, err := textio.ImportAnkiText(context.Background(), path, "Spanish")
	require.NoError(t, err)

	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "adiós", deck.Cards[1].Front)
	assert.Equal(t, "goodbye", deck.Cards[1].Back)
}

func TestTitleCase(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"world_capitals", "World Capitals"},
		{"spanish-verbs", "Spanish Verbs"},
		{"GREETINGS", "Greetings"},
		{"mixed_CASE-words", "Mixed Case Words"},
		{"single", "Single"},
	} {
		assert.Equal(t, tc.want, textio.TitleCase(tc.in), "TitleCase(%q)", tc.in)
	}
}
