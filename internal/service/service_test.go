package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/history"
	"github.com/mmcdole/mangaland/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeRepo is an in-memory domain.CatalogRepository
type fakeRepo struct {
	mu sync.Mutex

	manga     map[string]*domain.Manga
	chapters  map[string][]domain.ChapterSummary
	chapter   map[string]*domain.Chapter
	manifests map[string]*domain.PageManifest
	tags      []domain.Tag

	errs  map[string]error // method name -> error
	calls map[string]int
	query domain.CatalogQuery
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		manga:     make(map[string]*domain.Manga),
		chapters:  make(map[string][]domain.ChapterSummary),
		chapter:   make(map[string]*domain.Chapter),
		manifests: make(map[string]*domain.PageManifest),
		errs:      make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (r *fakeRepo) hit(method string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[method]++
	return r.errs[method]
}

func (r *fakeRepo) count(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[method]
}

func (r *fakeRepo) SearchManga(_ context.Context, q domain.CatalogQuery) ([]*domain.Manga, error) {
	if err := r.hit("SearchManga"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.query = q
	r.mu.Unlock()

	var out []*domain.Manga
	for _, m := range r.manga {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeRepo) GetManga(_ context.Context, id string) (*domain.Manga, error) {
	if err := r.hit("GetManga"); err != nil {
		return nil, err
	}
	if m, ok := r.manga[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetChapters(_ context.Context, mangaID, _ string, offset, limit int) ([]domain.ChapterSummary, int, error) {
	if err := r.hit("GetChapters"); err != nil {
		return nil, 0, err
	}
	all := r.chapters[mangaID]
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > end {
		offset = end
	}
	return all[offset:end], len(all), nil
}

func (r *fakeRepo) GetChapter(_ context.Context, id string) (*domain.Chapter, error) {
	if err := r.hit("GetChapter"); err != nil {
		return nil, err
	}
	if c, ok := r.chapter[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetPageManifest(_ context.Context, id string) (*domain.PageManifest, error) {
	if err := r.hit("GetPageManifest"); err != nil {
		return nil, err
	}
	if p, ok := r.manifests[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetTags(context.Context) ([]domain.Tag, error) {
	if err := r.hit("GetTags"); err != nil {
		return nil, err
	}
	return r.tags, nil
}

// seedSeries adds manga m1 with chapters c1..cn and manifests for each
func seedSeries(r *fakeRepo, title map[string]string, n int) {
	r.manga["m1"] = &domain.Manga{ID: "m1", Titles: title, CoverURL: "https://u/covers/m1/c.jpg.256.jpg"}
	for i := n; i >= 1; i-- {
		id := fmt.Sprintf("c%d", i)
		summary := domain.ChapterSummary{ID: id, Number: fmt.Sprint(i)}
		r.chapters["m1"] = append(r.chapters["m1"], summary)
		r.chapter[id] = &domain.Chapter{ChapterSummary: summary, MangaID: "m1"}
		r.manifests[id] = &domain.PageManifest{
			BaseURL:        "https://node",
			Hash:           "h" + id,
			Files:          []string{"1.png", "2.png"},
			DataSaverFiles: []string{"1.jpg", "2.jpg"},
		}
	}
}

func newHistory(t *testing.T) *history.Store {
	t.Helper()
	kv, err := store.NewStore("", "")
	require.NoError(t, err)
	return history.NewStore(kv)
}

type fakeViewer struct {
	opened []string
	err    error
}

func (v *fakeViewer) Open(urls ...string) error {
	v.opened = append(v.opened, urls...)
	return v.err
}

func TestBrowseForwardsQuery(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCatalogService(repo, "en", nil)

	q := domain.CatalogQuery{Title: "love", GenreID: "391b0423-d847-456f-aff0-8b0cfc03066b", Status: domain.StatusCompleted}
	_, err := svc.Browse(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, q, repo.query)

	_, err = svc.Popular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PopularQuery(), repo.query)
}

func TestChaptersPaginatesSortsAndCaches(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "T"}, 250)
	svc := NewCatalogService(repo, "en", nil)

	chapters, err := svc.Chapters(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, chapters, 250)
	assert.Equal(t, "1", chapters[0].Number)
	assert.Equal(t, "250", chapters[249].Number)
	assert.Equal(t, 3, repo.count("GetChapters"))

	_, err = svc.Chapters(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 3, repo.count("GetChapters"), "second call is served from cache")

	svc.Refresh()
	_, err = svc.Chapters(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 6, repo.count("GetChapters"))
}

func TestChaptersReturnsCopyOfCache(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "T"}, 3)
	svc := NewCatalogService(repo, "en", nil)

	first, err := svc.Chapters(context.Background(), "m1")
	require.NoError(t, err)
	first[0].Number = "99"
	slices.Reverse(first)

	again, err := svc.Chapters(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, []string{again[0].Number, again[1].Number, again[2].Number})
	assert.Equal(t, 1, repo.count("GetChapters"), "served from cache")
}

func TestDetailFetchesBoth(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"pt": "Exemplo"}, 3)
	svc := NewCatalogService(repo, "en", nil)

	detail, err := svc.Detail(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "Exemplo", detail.Manga.DisplayTitle())
	assert.Len(t, detail.Chapters, 3)
}

func TestDetailFailsWhenEitherFetchFails(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "T"}, 3)
	repo.errs["GetChapters"] = domain.ErrServerOffline
	svc := NewCatalogService(repo, "en", nil)

	_, err := svc.Detail(context.Background(), "m1")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestGenresFallBackToKnownGenres(t *testing.T) {
	repo := newFakeRepo()
	repo.errs["GetTags"] = domain.ErrServerOffline
	svc := NewCatalogService(repo, "en", nil)
	assert.Equal(t, domain.KnownGenres, svc.Genres(context.Background()))

	repo = newFakeRepo()
	repo.tags = []domain.Tag{
		{ID: "a", Name: "Action", Group: "genre"},
		{ID: "b", Name: "Isekai", Group: "theme"},
	}
	svc = NewCatalogService(repo, "en", nil)
	assert.Equal(t, []domain.Tag{{ID: "a", Name: "Action", Group: "genre"}}, svc.Genres(context.Background()))
	svc.Genres(context.Background())
	assert.Equal(t, 1, repo.count("GetTags"))
}

func TestOpenChapterRecordsVisit(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "Title"}, 3)
	h := newHistory(t)
	reader := NewReaderService(repo, NewCatalogService(repo, "en", nil), h, nil, false, nil)

	state, err := reader.OpenChapter(context.Background(), "c2")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://node/data/hc2/1.png", "https://node/data/hc2/2.png"}, state.Pages)
	require.NotNil(t, state.Previous)
	require.NotNil(t, state.Next)
	assert.Equal(t, "c1", state.Previous.ID)
	assert.Equal(t, "c3", state.Next.ID)
	assert.True(t, state.Recorded)
	assert.NoError(t, state.Partial)

	visits := h.ListVisits()
	require.Len(t, visits, 1)
	assert.Equal(t, domain.HistoryEntry{
		MangaID:       "m1",
		ChapterID:     "c2",
		Title:         "Title",
		ChapterNumber: "2",
		UpdatedAt:     visits[0].UpdatedAt,
	}, visits[0])
}

func TestOpenChapterEdgesAndDataSaver(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "Title"}, 2)
	reader := NewReaderService(repo, NewCatalogService(repo, "en", nil), newHistory(t), nil, true, nil)

	state, err := reader.OpenChapter(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, state.Previous)
	require.NotNil(t, state.Next)
	assert.Equal(t, "https://node/data-saver/hc1/1.jpg", state.Pages[0])

	state, err = reader.OpenChapter(context.Background(), "c2")
	require.NoError(t, err)
	assert.Nil(t, state.Next)
}

func TestOpenChapterWithoutTitleDoesNotRecord(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{}, 2)
	h := newHistory(t)
	reader := NewReaderService(repo, NewCatalogService(repo, "en", nil), h, nil, false, nil)

	state, err := reader.OpenChapter(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, state.Recorded)
	assert.Equal(t, domain.PlaceholderTitle, state.Title())
	assert.Empty(t, h.ListVisits())
}

func TestOpenChapterStageTwoFailsSoft(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "Title"}, 2)
	repo.errs["GetManga"] = domain.ErrServerOffline
	h := newHistory(t)
	reader := NewReaderService(repo, NewCatalogService(repo, "en", nil), h, nil, false, nil)

	state, err := reader.OpenChapter(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, state.Pages, 2)
	assert.ErrorIs(t, state.Partial, domain.ErrServerOffline)
	assert.False(t, state.Recorded)
	assert.Empty(t, h.ListVisits())
	require.NotNil(t, state.Next, "chapter list still loaded")
}

func TestOpenChapterStageOneFailure(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "Title"}, 2)
	repo.errs["GetPageManifest"] = domain.ErrRateLimited
	reader := NewReaderService(repo, NewCatalogService(repo, "en", nil), newHistory(t), nil, false, nil)

	_, err := reader.OpenChapter(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Zero(t, repo.count("GetManga"), "stage two never starts")
}

func TestOpenPages(t *testing.T) {
	v := &fakeViewer{}
	reader := NewReaderService(newFakeRepo(), nil, nil, v, false, nil)

	require.NoError(t, reader.OpenPages())
	assert.Empty(t, v.opened)

	require.NoError(t, reader.OpenPages("a", "b"))
	assert.Equal(t, []string{"a", "b"}, v.opened)

	v.err = errors.New("no display")
	assert.Error(t, reader.OpenPages("c"))

	noViewer := NewReaderService(newFakeRepo(), nil, nil, nil, false, nil)
	assert.Error(t, noViewer.OpenPages("a"))
}

func TestContinueReadingResolvesCovers(t *testing.T) {
	repo := newFakeRepo()
	seedSeries(repo, map[string]string{"en": "Title"}, 1)
	h := newHistory(t)
	require.NoError(t, h.RecordVisit("m1", "c1", "Title"))
	require.NoError(t, h.RecordVisit("gone", "c9", "Removed"))

	svc := NewHistoryService(h, repo, nil)
	entries := svc.ContinueReading(context.Background())
	require.Len(t, entries, 2)

	covers := map[string]string{}
	for _, e := range entries {
		covers[e.MangaID] = e.CoverURL
	}
	assert.Equal(t, "https://u/covers/m1/c.jpg.256.jpg", covers["m1"])
	assert.Empty(t, covers["gone"], "failed lookup keeps the placeholder")
}

func TestForget(t *testing.T) {
	h := newHistory(t)
	require.NoError(t, h.RecordVisit("m1", "c1", "Title"))
	svc := NewHistoryService(h, nil, nil)

	require.NoError(t, svc.Forget("m1"))
	require.NoError(t, svc.Forget("m1"))
	assert.Empty(t, svc.Entries())
	assert.Empty(t, svc.ContinueReading(context.Background()))
}
