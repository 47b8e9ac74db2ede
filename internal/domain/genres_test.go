package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTag(t *testing.T) {
	tag, ok := MatchTag("romance", KnownGenres)
	require.True(t, ok)
	assert.Equal(t, "391b0423-d847-456f-aff0-8b0cfc03066b", tag.ID)

	tag, ok = MatchTag("4d32cc48-9f00-4cca-9b5a-a839f0764984", KnownGenres)
	require.True(t, ok)
	assert.Equal(t, "Comedy", tag.Name)

	tag, ok = MatchTag("actn", KnownGenres)
	require.True(t, ok)
	assert.Equal(t, "Action", tag.Name)

	_, ok = MatchTag("zzzz", KnownGenres)
	assert.False(t, ok)

	_, ok = MatchTag("", KnownGenres)
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("Completed")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, st)

	st, ok = ParseStatus("in progress")
	require.True(t, ok)
	assert.Equal(t, StatusOngoing, st)

	_, ok = ParseStatus("finished")
	assert.False(t, ok)
}
