package domain

import "sort"

// ChapterIndex returns the position of id in chapters, or -1
func ChapterIndex(chapters []ChapterSummary, id string) int {
	for i, c := range chapters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// PreviousChapter returns the chapter immediately before currentID.
// Returns false when currentID is first or absent (e.g. the list is still loading).
func PreviousChapter(chapters []ChapterSummary, currentID string) (ChapterSummary, bool) {
	i := ChapterIndex(chapters, currentID)
	if i <= 0 {
		return ChapterSummary{}, false
	}
	return chapters[i-1], true
}

// NextChapter returns the chapter immediately after currentID.
// Returns false when currentID is last or absent.
func NextChapter(chapters []ChapterSummary, currentID string) (ChapterSummary, bool) {
	i := ChapterIndex(chapters, currentID)
	if i < 0 || i >= len(chapters)-1 {
		return ChapterSummary{}, false
	}
	return chapters[i+1], true
}

// SortChapters orders chapters ascending by numeric chapter value in place.
// Non-numeric and missing numbers sort as zero; equal values keep their order.
func SortChapters(chapters []ChapterSummary) {
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].NumericValue() < chapters[j].NumericValue()
	})
}
