package domain

import (
	"time"
)

// HistoryEntry is the last-read position for one manga
type HistoryEntry struct {
	MangaID       string    `json:"mangaId"`
	ChapterID     string    `json:"chapterId"`
	Title         string    `json:"title"`
	ChapterNumber string    `json:"chapterNumber,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// CoverURL is resolved at read time and never persisted
	CoverURL string `json:"-"`
}

// ChapterLabel returns "Chapter N", or the special label when no number was stored
func (h HistoryEntry) ChapterLabel() string {
	return ChapterSummary{Number: h.ChapterNumber}.Label()
}

// ListItem interface implementation for HistoryEntry

func (h *HistoryEntry) GetID() string          { return h.MangaID }
func (h *HistoryEntry) GetTitle() string       { return h.Title }
func (h *HistoryEntry) GetDescription() string { return h.ChapterLabel() }
