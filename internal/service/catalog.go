package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/mmcdole/mangaland/internal/domain"
	"golang.org/x/sync/errgroup"
)

// chapterCacheTTL bounds how long a chapter list is reused for navigation
const chapterCacheTTL = 5 * time.Minute

// MangaDetail is everything the detail view shows for one manga
type MangaDetail struct {
	Manga    *domain.Manga
	Chapters []domain.ChapterSummary
}

// CatalogService handles catalog browsing with a memory cache for
// tags and chapter lists
type CatalogService struct {
	repo     domain.CatalogRepository
	language string
	logger   *slog.Logger
	cache    *memoryCache
}

// NewCatalogService creates a new catalog service. Chapters are listed in language.
func NewCatalogService(repo domain.CatalogRepository, language string, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if language == "" {
		language = "en"
	}
	return &CatalogService{
		repo:     repo,
		language: language,
		logger:   logger,
		cache:    newMemoryCache(chapterCacheTTL),
	}
}

// Language returns the translation language chapters are listed in
func (s *CatalogService) Language() string {
	return s.language
}

// Browse returns one page of manga matching every filter set on q
func (s *CatalogService) Browse(ctx context.Context, q domain.CatalogQuery) ([]*domain.Manga, error) {
	list, err := s.repo.SearchManga(ctx, q)
	if err != nil {
		s.logger.Error("failed to browse catalog", "error", err, "title", q.Title, "genre", q.GenreID, "status", q.Status)
		return nil, err
	}
	s.logger.Info("loaded catalog page", "count", len(list), "filtered", q.IsFiltered())
	return list, nil
}

// Popular returns the most followed titles
func (s *CatalogService) Popular(ctx context.Context) ([]*domain.Manga, error) {
	return s.Browse(ctx, domain.PopularQuery())
}

// Manga returns a single manga
func (s *CatalogService) Manga(ctx context.Context, mangaID string) (*domain.Manga, error) {
	m, err := s.repo.GetManga(ctx, mangaID)
	if err != nil {
		s.logger.Error("failed to get manga", "error", err, "mangaID", mangaID)
		return nil, err
	}
	return m, nil
}

// Chapters returns every chapter of a manga in the service language,
// ascending by chapter number. The list is cached; callers get their own copy.
func (s *CatalogService) Chapters(ctx context.Context, mangaID string) ([]domain.ChapterSummary, error) {
	key := chaptersKey(mangaID, s.language)
	if cached, ok := s.cache.get(key); ok {
		s.logger.Debug("cache hit", "key", key)
		return slices.Clone(cached.([]domain.ChapterSummary)), nil
	}

	chapters, err := fetchAll(ctx, func(ctx context.Context, offset, limit int) ([]domain.ChapterSummary, int, error) {
		return s.repo.GetChapters(ctx, mangaID, s.language, offset, limit)
	}, defaultChunkSize)
	if err != nil {
		s.logger.Error("failed to get chapters", "error", err, "mangaID", mangaID)
		return nil, err
	}

	domain.SortChapters(chapters)
	if chapters == nil {
		chapters = []domain.ChapterSummary{}
	}
	s.cache.set(key, chapters)
	return slices.Clone(chapters), nil
}

// Detail fetches a manga and its chapter list concurrently
func (s *CatalogService) Detail(ctx context.Context, mangaID string) (*MangaDetail, error) {
	var detail MangaDetail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.Manga(gctx, mangaID)
		detail.Manga = m
		return err
	})
	g.Go(func() error {
		chapters, err := s.Chapters(gctx, mangaID)
		detail.Chapters = chapters
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Tags returns the catalog's tag list (cached)
func (s *CatalogService) Tags(ctx context.Context) ([]domain.Tag, error) {
	if cached, ok := s.cache.get(KeyTags); ok {
		return cached.([]domain.Tag), nil
	}

	tags, err := s.repo.GetTags(ctx)
	if err != nil {
		s.logger.Error("failed to get tags", "error", err)
		return nil, err
	}

	s.cache.set(KeyTags, tags)
	s.logger.Info("loaded tags", "count", len(tags))
	return tags, nil
}

// Genres returns the tags in the genre group, or the built-in genres when
// the tag list cannot be loaded
func (s *CatalogService) Genres(ctx context.Context) []domain.Tag {
	tags, err := s.Tags(ctx)
	if err != nil {
		return domain.KnownGenres
	}

	var genres []domain.Tag
	for _, t := range tags {
		if t.Group == "genre" {
			genres = append(genres, t)
		}
	}
	if len(genres) == 0 {
		return domain.KnownGenres
	}
	return genres
}

// Refresh drops cached chapter lists and tags
func (s *CatalogService) Refresh() {
	s.cache.invalidate(PrefixChapters, KeyTags)
}
