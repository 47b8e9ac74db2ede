package search

import (
	"strings"

	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/sahilm/fuzzy"
)

// FilterItem represents a searchable item
type FilterItem struct {
	Item  domain.ListItem // *Manga, *ChapterSummary, *HistoryEntry or *Tag
	Title string
}

// FilterResult represents a search result with match metadata
type FilterResult struct {
	FilterItem
	MatchedIndexes []int // Byte offsets in Title, for highlighting
	Score          int   // Higher is better
}

// FilterIndex implements sahilm/fuzzy.Source over pre-lowered titles
type FilterIndex struct {
	items       []FilterItem
	lowerTitles []string
}

// NewFilterIndex builds an index over items using their display titles
func NewFilterIndex(items []domain.ListItem) *FilterIndex {
	idx := &FilterIndex{
		items:       make([]FilterItem, 0, len(items)),
		lowerTitles: make([]string, 0, len(items)),
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		title := it.GetTitle()
		idx.items = append(idx.items, FilterItem{Item: it, Title: title})
		idx.lowerTitles = append(idx.lowerTitles, strings.ToLower(title))
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *FilterIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx *FilterIndex) Len() int { return len(idx.items) }

// Filter returns the items matching query, best match first.
// An empty query returns every item in its original order.
func (idx *FilterIndex) Filter(query string) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]FilterResult, len(idx.items))
		for i, it := range idx.items {
			results[i] = FilterResult{FilterItem: it}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, idx)

	results := make([]FilterResult, len(matches))
	for i, m := range matches {
		results[i] = FilterResult{
			FilterItem:     idx.items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Filter is a one-shot helper for NewFilterIndex(items).Filter(query)
func Filter[T domain.ListItem](query string, items []T) []FilterResult {
	list := make([]domain.ListItem, len(items))
	for i, it := range items {
		list[i] = it
	}
	return NewFilterIndex(list).Filter(query)
}

// Items unwraps the matched items
func Items(results []FilterResult) []domain.ListItem {
	out := make([]domain.ListItem, len(results))
	for i, r := range results {
		out[i] = r.Item
	}
	return out
}
