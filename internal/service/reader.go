package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/mangaland/internal/domain"
	"golang.org/x/sync/errgroup"
)

// viewer abstracts the external image viewer (consumer-defined interface)
type viewer interface {
	Open(urls ...string) error
}

// visitRecorder is the part of the history store the reader writes to
type visitRecorder interface {
	RecordVisitNumber(mangaID, chapterID, title, chapterNumber string) error
}

// ReaderState is everything the reader view shows for one chapter
type ReaderState struct {
	Chapter  *domain.Chapter
	Manifest *domain.PageManifest
	Pages    []string // Page image URLs in reading order

	// Filled by the second fetch stage; nil/empty when it failed
	Manga    *domain.Manga
	Chapters []domain.ChapterSummary
	Previous *domain.ChapterSummary
	Next     *domain.ChapterSummary

	// Recorded is true when the visit was written to history
	Recorded bool
	// Partial holds the second stage error, if any
	Partial error
}

// Title returns the manga title, or the placeholder while it is unknown
func (s *ReaderState) Title() string {
	if s.Manga == nil {
		return domain.PlaceholderTitle
	}
	return s.Manga.DisplayTitle()
}

// ReaderService orchestrates chapter reading
type ReaderService struct {
	repo      domain.CatalogRepository
	catalog   *CatalogService
	history   visitRecorder
	viewer    viewer
	dataSaver bool
	logger    *slog.Logger
}

// NewReaderService creates a new reader service. Chapter lists go through
// catalog so navigation reuses its cache.
func NewReaderService(
	repo domain.CatalogRepository,
	catalog *CatalogService,
	history visitRecorder,
	viewer viewer,
	dataSaver bool,
	logger *slog.Logger,
) *ReaderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReaderService{
		repo:      repo,
		catalog:   catalog,
		history:   history,
		viewer:    viewer,
		dataSaver: dataSaver,
		logger:    logger,
	}
}

// OpenChapter loads a chapter in two stages. The chapter metadata and page
// manifest are required; once the owning manga is known, the manga and its
// chapter list are fetched concurrently and failures there only leave the
// state partial. The visit is recorded when the manga has a title.
func (s *ReaderService) OpenChapter(ctx context.Context, chapterID string) (*ReaderState, error) {
	state := &ReaderState{}

	// Stage 1: chapter + manifest
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ch, err := s.repo.GetChapter(gctx, chapterID)
		state.Chapter = ch
		return err
	})
	g.Go(func() error {
		m, err := s.repo.GetPageManifest(gctx, chapterID)
		state.Manifest = m
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to open chapter", "error", err, "chapterID", chapterID)
		return nil, err
	}

	state.Pages = state.Manifest.PageURLs()
	if s.dataSaver && len(state.Manifest.DataSaverFiles) > 0 {
		state.Pages = state.Manifest.DataSaverURLs()
	}

	// Stage 2: manga + chapter list, each failing soft
	mangaID := state.Chapter.MangaID
	var (
		wg                    sync.WaitGroup
		mangaErr, chaptersErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		state.Manga, mangaErr = s.catalog.Manga(ctx, mangaID)
	}()
	go func() {
		defer wg.Done()
		state.Chapters, chaptersErr = s.catalog.Chapters(ctx, mangaID)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	switch {
	case mangaErr != nil:
		state.Partial = fmt.Errorf("failed to load manga: %w", mangaErr)
	case chaptersErr != nil:
		state.Partial = fmt.Errorf("failed to load chapters: %w", chaptersErr)
	}

	if prev, ok := domain.PreviousChapter(state.Chapters, chapterID); ok {
		state.Previous = &prev
	}
	if next, ok := domain.NextChapter(state.Chapters, chapterID); ok {
		state.Next = &next
	}

	if state.Manga != nil && state.Manga.HasTitle() {
		title := state.Manga.TitleIn(s.catalog.Language())
		if err := s.history.RecordVisitNumber(mangaID, chapterID, title, state.Chapter.Number); err != nil {
			s.logger.Warn("failed to record visit", "error", err, "mangaID", mangaID)
		} else {
			state.Recorded = true
		}
	}

	s.logger.Info("opened chapter", "chapterID", chapterID, "mangaID", mangaID, "pages", len(state.Pages))
	return state, nil
}

// OpenPages hands page URLs to the external viewer
func (s *ReaderService) OpenPages(urls ...string) error {
	if len(urls) == 0 {
		return nil
	}
	if s.viewer == nil {
		return fmt.Errorf("no image viewer configured")
	}

	s.logger.Info("launching viewer", "pages", len(urls))
	return s.viewer.Open(urls...)
}
