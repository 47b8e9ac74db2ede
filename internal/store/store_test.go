package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, s *Store, key string) ([]byte, bool) {
	t.Helper()
	data, ok, err := s.Get(key)
	require.NoError(t, err)
	return data, ok
}

func TestMemoryStore(t *testing.T) {
	s, err := NewStore("", "")
	require.NoError(t, err)
	defer s.Close()

	_, ok := get(t, s, "missing")
	assert.False(t, ok)

	require.NoError(t, s.Set("k", []byte("v1")))
	got, ok := get(t, s, "k")
	require.True(t, ok)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, s.Delete("k"))
	_, ok = get(t, s, "k")
	assert.False(t, ok)

	require.NoError(t, s.Delete("never-set"), "deleting a missing key is fine")
	assert.Empty(t, s.Path())
}

func TestGetReturnsCopy(t *testing.T) {
	s, err := NewStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.Set("k", []byte("abc")))
	got, _ := get(t, s, "k")
	got[0] = 'X'

	again, _ := get(t, s, "k")
	assert.Equal(t, "abc", string(again))
}

func TestBoltStorePersists(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir, "https://api.mangadex.org")
	require.NoError(t, err)
	require.NoError(t, s.Set("readingHistory", []byte(`{"m":1}`)))
	path := s.Path()
	require.NoError(t, s.Close())

	assert.Equal(t, filepath.Join(dir, hashOrigin("https://api.mangadex.org"), "mangaland.db"), path)

	reopened, err := NewStore(dir, "https://api.mangadex.org/")
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := get(t, reopened, "readingHistory")
	require.True(t, ok, "trailing slash maps to the same origin")
	assert.Equal(t, `{"m":1}`, string(got))

	require.NoError(t, reopened.Delete("readingHistory"))
	_, ok = get(t, reopened, "readingHistory")
	assert.False(t, ok)
}

func TestOriginsAreIsolated(t *testing.T) {
	dir := t.TempDir()

	a, err := NewStore(dir, "https://api.mangadex.org")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewStore(dir, "https://mirror.example.org")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Set("k", []byte("a")))
	_, ok := get(t, b, "k")
	assert.False(t, ok)
}

func TestGetReportsReadFailure(t *testing.T) {
	s, err := NewStore(t.TempDir(), "https://api.mangadex.org")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, ok, err := s.Get("readingHistory")
	require.Error(t, err, "a closed database is a failure, not a missing key")
	assert.False(t, ok)
}
