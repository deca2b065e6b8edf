package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck/internal/store"
)

// NewTestStore creates a record store rooted in a fresh temp directory.
// The starter deck the store seeds on first run is removed so tests start
// from an empty store.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	s, err := store.New(ctx, t.TempDir())
	require.NoError(t, err)

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	for _, summary := range summaries {
		_, err := s.Delete(ctx, summary.ID)
		require.NoError(t, err)
	}
	return s
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
