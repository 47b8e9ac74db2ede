package tui

import (
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/service"
)

// Message types for the TUI. Fetch results carry the generation they were
// issued under; Update drops any whose slot has moved on.

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string

	slot slot
	gen  uint64
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogLoadedMsg carries the results of a filtered catalog query
type CatalogLoadedMsg struct {
	Gen     uint64
	Query   domain.CatalogQuery
	Results []*domain.Manga
}

// PopularLoadedMsg carries the most followed titles
type PopularLoadedMsg struct {
	Gen     uint64
	Results []*domain.Manga
}

// ShelfLoadedMsg carries the continue-reading entries with covers resolved
type ShelfLoadedMsg struct {
	Gen     uint64
	Entries []domain.HistoryEntry
}

// GenresLoadedMsg carries the genre list for the catalog filter
type GenresLoadedMsg struct {
	Gen    uint64
	Genres []domain.Tag
}

// DetailLoadedMsg carries manga metadata and its chapter list
type DetailLoadedMsg struct {
	Gen    uint64
	Detail *service.MangaDetail
}

// ChapterLoadedMsg carries everything the reader shows for one chapter
type ChapterLoadedMsg struct {
	Gen   uint64
	State *service.ReaderState
}

// PagesOpenedMsg signals that pages were handed to the image viewer
type PagesOpenedMsg struct {
	Count int
}

// VisitRemovedMsg signals that a manga was dropped from the reading history
type VisitRemovedMsg struct {
	MangaID string
	Title   string
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
