package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solo/internal/game"
)

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	s, err := game.New("crane", nil)
	require.NoError(t, err)

	_, err = m.Get(ctx, s.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, s))
	got, err := m.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Delete(ctx, s.ID()))
	require.NoError(t, m.Delete(ctx, "unknown"))
	_, err = m.Get(ctx, s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Expire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	old, err := game.New("crane", nil)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, old))

	now = now.Add(2 * time.Hour)
	fresh, err := game.New("slate", nil)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, fresh))

	assert.Equal(t, 1, m.Expire(time.Hour))
	assert.Equal(t, 1, m.Len())
	_, err = m.Get(ctx, fresh.ID())
	assert.NoError(t, err)
}
