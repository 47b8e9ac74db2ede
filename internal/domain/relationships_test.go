package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCoverArt(t *testing.T) {
	rels := []Relationship{
		AuthorRef{ID: "a1", Name: "Oda"},
		CoverArt{ID: "c0"},
		CoverArt{ID: "c1", FileName: "cover.jpg"},
		CoverArt{ID: "c2", FileName: "other.jpg"},
	}

	cover, ok := FindCoverArt(rels)
	require.True(t, ok)
	assert.Equal(t, "cover.jpg", cover.FileName)

	_, ok = FindCoverArt([]Relationship{UnknownRelationship{ID: "x", Type: "creator"}})
	assert.False(t, ok)

	_, ok = FindCoverArt(nil)
	assert.False(t, ok)
}

func TestFindManga(t *testing.T) {
	rels := []Relationship{
		UnknownRelationship{ID: "g1", Type: "scanlation_group"},
		MangaRef{ID: "m1"},
	}

	ref, ok := FindManga(rels)
	require.True(t, ok)
	assert.Equal(t, "m1", ref.RelatedID())
}

func TestAuthorsDeduplicated(t *testing.T) {
	rels := []Relationship{
		AuthorRef{ID: "a", Name: "Ito", Role: "author"},
		AuthorRef{ID: "a", Name: "Ito", Role: "artist"},
		AuthorRef{ID: "b"},
		AuthorRef{ID: "c", Name: "Urasawa"},
	}
	assert.Equal(t, []string{"Ito", "Urasawa"}, Authors(rels))
}
