package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/history"
	"golang.org/x/sync/errgroup"
)

// maxCoverLookups bounds concurrent cover fetches for the shelf
const maxCoverLookups = 4

// HistoryService builds the "continue reading" shelf
type HistoryService struct {
	history *history.Store
	repo    domain.CatalogRepository
	logger  *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(store *history.Store, repo domain.CatalogRepository, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{
		history: store,
		repo:    repo,
		logger:  logger,
	}
}

// Entries returns the history without touching the network
func (s *HistoryService) Entries() []domain.HistoryEntry {
	return s.history.ListVisits()
}

// ContinueReading returns the history, most recent first, with cover URLs.
// Cover lookups run concurrently; a failed lookup leaves CoverURL empty.
func (s *HistoryService) ContinueReading(ctx context.Context) []domain.HistoryEntry {
	entries := s.history.ListVisits()
	if s.repo == nil {
		return entries
	}

	var g errgroup.Group
	g.SetLimit(maxCoverLookups)
	for i := range entries {
		g.Go(func() error {
			m, err := s.repo.GetManga(ctx, entries[i].MangaID)
			if err != nil {
				s.logger.Warn("cover lookup failed", "error", err, "mangaID", entries[i].MangaID)
				return nil
			}
			entries[i].CoverURL = m.CoverURL
			return nil
		})
	}
	_ = g.Wait()

	return entries
}

// Forget removes a manga from the history
func (s *HistoryService) Forget(mangaID string) error {
	if err := s.history.RemoveVisit(mangaID); err != nil {
		s.logger.Error("failed to remove visit", "error", err, "mangaID", mangaID)
		return err
	}
	return nil
}

// Clear drops the whole history
func (s *HistoryService) Clear() error {
	return s.history.Clear()
}
