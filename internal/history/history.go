package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/mangaland/internal/domain"
)

// Key is the single storage key holding the whole history blob
const Key = "readingHistory"

// Store keeps the "continue reading" history: one entry per manga,
// persisted as a single JSON object keyed by manga id.
// Every operation reads and rewrites the whole blob.
type Store struct {
	kv     domain.KeyValue
	now    func() time.Time
	logger *slog.Logger

	mu sync.Mutex // Serializes read-modify-write cycles
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for UpdatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for soft failures
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a history store over kv
func NewStore(kv domain.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordVisit sets the last-read chapter for a manga, overwriting any previous entry
func (s *Store) RecordVisit(mangaID, chapterID, title string) error {
	return s.RecordVisitNumber(mangaID, chapterID, title, "")
}

// RecordVisitNumber is RecordVisit with the chapter number kept for display
func (s *Store) RecordVisitNumber(mangaID, chapterID, title, chapterNumber string) error {
	if strings.TrimSpace(mangaID) == "" || strings.TrimSpace(chapterID) == "" || strings.TrimSpace(title) == "" {
		return domain.ErrInvalidHistoryEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[mangaID] = domain.HistoryEntry{
		MangaID:       mangaID,
		ChapterID:     chapterID,
		Title:         title,
		ChapterNumber: chapterNumber,
		UpdatedAt:     s.now().UTC(),
	}

	if err := s.save(entries); err != nil {
		return err
	}
	s.logger.Debug("recorded visit", "mangaID", mangaID, "chapterID", chapterID)
	return nil
}

// ListVisits returns every entry, most recently updated first
func (s *Store) ListVisits() []domain.HistoryEntry {
	s.mu.Lock()
	entries, err := s.load()
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("reading history unavailable", "error", err)
	}

	list := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		list = append(list, e)
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].UpdatedAt.Equal(list[j].UpdatedAt) {
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		}
		return list[i].MangaID < list[j].MangaID
	})
	return list
}

// Get returns the entry for one manga
func (s *Store) Get(mangaID string) (domain.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		s.logger.Warn("reading history unavailable", "error", err)
		return domain.HistoryEntry{}, false
	}
	e, ok := entries[mangaID]
	return e, ok
}

// RemoveVisit deletes the entry for mangaID. Missing entries are a no-op.
func (s *Store) RemoveVisit(mangaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[mangaID]; !ok {
		return nil
	}

	delete(entries, mangaID)
	if err := s.save(entries); err != nil {
		return err
	}
	s.logger.Debug("removed visit", "mangaID", mangaID)
	return nil
}

// Clear drops the whole history
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(Key); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// load reads the blob. A missing or corrupt blob reads as empty and the next
// write replaces it. A storage read failure is returned so no write clobbers
// history that could not be read.
func (s *Store) load() (map[string]domain.HistoryEntry, error) {
	entries := make(map[string]domain.HistoryEntry)

	data, ok, err := s.kv.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok || len(data) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("discarding unreadable reading history", "error", err, "bytes", len(data))
		return make(map[string]domain.HistoryEntry), nil
	}
	// A stored null decodes without error into a nil map
	if entries == nil {
		s.logger.Warn("discarding null reading history")
		return make(map[string]domain.HistoryEntry), nil
	}

	// Drop entries that could not have been written by RecordVisit
	for id, e := range entries {
		if id == "" || e.ChapterID == "" {
			delete(entries, id)
			continue
		}
		if e.MangaID == "" {
			e.MangaID = id
			entries[id] = e
		}
	}
	return entries, nil
}

func (s *Store) save(entries map[string]domain.HistoryEntry) error {
	if entries == nil {
		entries = map[string]domain.HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.kv.Set(Key, data); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
