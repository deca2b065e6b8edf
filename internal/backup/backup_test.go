package backup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck/internal/backup"
	apperrors "github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/testutil"
)

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := testutil.NewTestStore(t)

	spanish := models.NewDeck("Spanish")
	spanish.AddCard("Hola", "Hello")
	spanish.AddCard("Adiós", "Goodbye")
	_, err := src.Save(ctx, &spanish)
	require.NoError(t, err)

	music := models.NewDeck("Music")
	music.AddCard("Forte", "Loud")
	_, err = src.Save(ctx, &music)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	count, err := backup.Export(ctx, src, path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	dst := testutil.NewTestStore(t)
	imported, skipped, err := backup.Import(ctx, dst, path)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 0, skipped)

	restored, err := dst.Load(ctx, spanish.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "Spanish", restored.Name)
	assert.Len(t, restored.Cards, 2)
}

func TestImport_SkipsExistingIDs(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewTestStore(t)

	deck := models.NewDeck("Kept")
	deck.AddCard("original", "content")
	_, err := st.Save(ctx, &deck)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	_, err = backup.Export(ctx, st, path)
	require.NoError(t, err)

	// Mutate the stored deck; re-import must not roll it back.
	deck.Cards[0].Back = "edited"
	_, err = st.Save(ctx, &deck)
	require.NoError(t, err)

	imported, skipped, err := backup.Import(ctx, st, path)
	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Equal(t, 1, skipped, "a deck whose id exists is skipped wholesale")

	loaded, err := st.Load(ctx, deck.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "edited", loaded.Cards[0].Back, "skip must never overwrite")
}

func TestImport_CorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewTestStore(t)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad"), 0o644))

	_, _, err := backup.Import(ctx, st, path)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCorruptRecord))
}

func TestExport_EmptyStoreWritesEmptySnapshot(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewTestStore(t)

	path := filepath.Join(t.TempDir(), "backup.json")
	count, err := backup.Export(ctx, st, path)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.FileExists(t, path)
}
