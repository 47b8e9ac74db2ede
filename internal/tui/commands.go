package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/service"
)

// Command factories for async operations. Each takes the context and
// generation handed out by fetches.begin.

// LoadCatalogCmd runs a filtered catalog query
func LoadCatalogCmd(ctx context.Context, gen uint64, svc *service.CatalogService, q domain.CatalogQuery) tea.Cmd {
	return func() tea.Msg {
		results, err := svc.Browse(ctx, q)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading catalog", slot: slotCatalog, gen: gen}
		}
		return CatalogLoadedMsg{Gen: gen, Query: q, Results: results}
	}
}

// LoadPopularCmd loads the most followed titles
func LoadPopularCmd(ctx context.Context, gen uint64, svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		results, err := svc.Popular(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading popular titles", slot: slotPopular, gen: gen}
		}
		return PopularLoadedMsg{Gen: gen, Results: results}
	}
}

// LoadShelfCmd loads the continue-reading shelf. Cover lookups fail soft,
// so this never produces an error.
func LoadShelfCmd(ctx context.Context, gen uint64, svc *service.HistoryService) tea.Cmd {
	return func() tea.Msg {
		return ShelfLoadedMsg{Gen: gen, Entries: svc.ContinueReading(ctx)}
	}
}

// LoadGenresCmd loads the genre list, falling back to the built-in genres
func LoadGenresCmd(ctx context.Context, gen uint64, svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		return GenresLoadedMsg{Gen: gen, Genres: svc.Genres(ctx)}
	}
}

// LoadDetailCmd loads a manga and its chapter list
func LoadDetailCmd(ctx context.Context, gen uint64, svc *service.CatalogService, mangaID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := svc.Detail(ctx, mangaID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading manga", slot: slotDetail, gen: gen}
		}
		return DetailLoadedMsg{Gen: gen, Detail: detail}
	}
}

// OpenChapterCmd loads a chapter for the reader, recording the visit
func OpenChapterCmd(ctx context.Context, gen uint64, svc *service.ReaderService, chapterID string) tea.Cmd {
	return func() tea.Msg {
		state, err := svc.OpenChapter(ctx, chapterID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading chapter", slot: slotReader, gen: gen}
		}
		return ChapterLoadedMsg{Gen: gen, State: state}
	}
}

// OpenPagesCmd hands page URLs to the image viewer
func OpenPagesCmd(svc *service.ReaderService, urls []string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.OpenPages(urls...); err != nil {
			return ErrMsg{Err: err, Context: "opening viewer"}
		}
		return PagesOpenedMsg{Count: len(urls)}
	}
}

// ForgetCmd removes a manga from the reading history
func ForgetCmd(svc *service.HistoryService, entry domain.HistoryEntry) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Forget(entry.MangaID); err != nil {
			return ErrMsg{Err: err, Context: "updating history"}
		}
		return VisitRemovedMsg{MangaID: entry.MangaID, Title: entry.Title}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
