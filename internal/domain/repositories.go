package domain

import (
	"context"
)

// CatalogRepository provides read access to the remote manga catalog
type CatalogRepository interface {
	// SearchManga returns one page of manga matching every filter set on q
	SearchManga(ctx context.Context, q CatalogQuery) ([]*Manga, error)

	// GetManga returns a single manga with its cover art resolved
	GetManga(ctx context.Context, mangaID string) (*Manga, error)

	// GetChapters returns one page of the manga's chapters in the given language,
	// ascending by number, plus the total number of chapters.
	// The service layer loops over pages when it needs the full list.
	GetChapters(ctx context.Context, mangaID, language string, offset, limit int) ([]ChapterSummary, int, error)

	// GetChapter returns one chapter's metadata including the owning manga id
	GetChapter(ctx context.Context, chapterID string) (*Chapter, error)

	// GetPageManifest returns where the chapter's page images are served from
	GetPageManifest(ctx context.Context, chapterID string) (*PageManifest, error)

	// GetTags returns every tag the catalog knows
	GetTags(ctx context.Context) ([]Tag, error)
}
