package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml"))

	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns
// an equal snapshot.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "state.yaml")
	repo := NewFileRepository(file)

	ts := time.Now().UTC().Truncate(time.Second)
	want := &Snapshot{
		State:      domain.StateCelebrated,
		Complete:   true,
		Celebrated: []string{"Europe/Moscow", "Pacific/Auckland"},
		SavedAt:    ts,
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want.State, got.State)
	require.Equal(t, want.Complete, got.Complete)
	require.Equal(t, want.Celebrated, got.Celebrated)
	require.Equal(t, want.SavedAt.Unix(), got.SavedAt.Unix())

	_, err = os.Stat(file)
	require.NoError(t, err)
}

// TestFileRepository_CorruptFile verifies malformed YAML surfaces a decode error.
func TestFileRepository_CorruptFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(file, []byte("{not yaml"), 0o600))

	repo := NewFileRepository(file)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
