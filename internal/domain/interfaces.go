package domain

// ListItem is the polymorphic interface for items that can be displayed in lists.
// It provides a common API for display and local filtering across content types.
// Manga, ChapterSummary, Tag and HistoryEntry implement this interface directly.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display (e.g., "Completed · 2019", "Vol. 3")
	GetDescription() string
}
