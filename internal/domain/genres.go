package domain

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// KnownGenres are offered by the catalog filter before the full tag list loads
var KnownGenres = []Tag{
	{ID: "b13b2a48-c720-44a9-9c77-39c9979373fb", Name: "Action", Group: "genre"},
	{ID: "391b0423-d847-456f-aff0-8b0cfc03066b", Name: "Romance", Group: "genre"},
	{ID: "4d32cc48-9f00-4cca-9b5a-a839f0764984", Name: "Comedy", Group: "genre"},
}

// FilterStatuses are the statuses offered by the catalog filter
var FilterStatuses = []Status{StatusOngoing, StatusCompleted}

// ParseStatus accepts a status value or its label, case-insensitively
func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range []Status{StatusOngoing, StatusCompleted, StatusHiatus, StatusCancelled} {
		if s == string(st) || s == strings.ToLower(st.Label()) {
			return st, true
		}
	}
	return "", false
}

// MatchTag resolves a tag by id or by (fuzzy) name. Exact id and
// case-insensitive name matches win; otherwise the closest fuzzy match is used.
func MatchTag(query string, tags []Tag) (Tag, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Tag{}, false
	}

	for _, t := range tags {
		if t.ID == query || strings.EqualFold(t.Name, query) {
			return t, true
		}
	}

	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return Tag{}, false
	}
	sort.Sort(ranks)
	return tags[ranks[0].OriginalIndex], true
}
