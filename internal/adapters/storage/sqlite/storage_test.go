package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "onboarding.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	return s, path
}

func TestStorage_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := openTemp(t)
	defer s.Close()

	_, ok, err := s.GetItem(ctx, "spabc_mock_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(ctx, "spabc_mock_user", `{"email":"a@b.c"}`))
	require.NoError(t, s.SetItem(ctx, "spabc_mock_user", `{"email":"x@y.z"}`))

	v, ok, err := s.GetItem(ctx, "spabc_mock_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"email":"x@y.z"}`, v)

	require.NoError(t, s.RemoveItem(ctx, "spabc_mock_user"))
	_, ok, err = s.GetItem(ctx, "spabc_mock_user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, path := openTemp(t)
	require.NoError(t, s.SetItem(ctx, "spabc_mock_shifts:a@b.c", `[]`))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.GetItem(ctx, "spabc_mock_shifts:a@b.c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}
