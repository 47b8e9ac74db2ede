package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	bluePeriodID = "7b2f4c55-1d5e-4a43-9f3e-2a4d0f1c8e01"
	chapterOneID = "4e9b6a10-0c1d-4b8e-8a55-3f6c1d2e0a01"
	chapterTwoID = "4e9b6a10-0c1d-4b8e-8a55-3f6c1d2e0a02"
	dramaTagID   = "b9af3a63-f058-46de-a9a0-e0c13906197a"
)

// catalogAPI serves a one-manga catalog in the wire format of the real API
func catalogAPI(t *testing.T) *httptest.Server {
	t.Helper()
	manga := fmt.Sprintf(`{"id":%q,"type":"manga","attributes":{
		"title":{"en":"Blue Period"},
		"altTitles":[{"ja":"ブルーピリオド"}],
		"description":{"en":"Yatora finds **painting**."},
		"status":"ongoing","year":2017,
		"tags":[{"id":%q,"type":"tag","attributes":{"name":{"en":"Drama"},"group":"genre"}}]}}`,
		bluePeriodID, dramaTagID)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/manga":
			if r.URL.Query().Get("status[]") == "cancelled" {
				fmt.Fprint(w, `{"result":"ok","data":[],"limit":10,"offset":0,"total":0}`)
				return
			}
			fmt.Fprintf(w, `{"result":"ok","data":[%s],"limit":10,"offset":0,"total":1}`, manga)
		case "/manga/tag":
			fmt.Fprintf(w, `{"result":"ok","data":[{"id":%q,"type":"tag","attributes":{"name":{"en":"Drama"},"group":"genre"}}]}`, dramaTagID)
		case "/manga/" + bluePeriodID:
			fmt.Fprintf(w, `{"result":"ok","data":%s}`, manga)
		case "/chapter":
			fmt.Fprintf(w, `{"result":"ok","data":[
				{"id":%q,"type":"chapter","attributes":{"chapter":"1","title":"Awakening","volume":"1"}},
				{"id":%q,"type":"chapter","attributes":{"chapter":"2"}}
			],"limit":100,"offset":0,"total":2}`, chapterOneID, chapterTwoID)
		case "/chapter/" + chapterOneID:
			fmt.Fprintf(w, `{"result":"ok","data":{"id":%q,"type":"chapter","attributes":{"chapter":"1","title":"Awakening"},"relationships":[{"id":%q,"type":"manga"}]}}`,
				chapterOneID, bluePeriodID)
		case "/at-home/server/" + chapterOneID:
			fmt.Fprint(w, `{"result":"ok","baseUrl":"https://node.example","chapter":{"hash":"abc","data":["1.png","2.png"],"dataSaver":["1.jpg","2.jpg"]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"result":"error","errors":[{"status":404,"title":"Not found"}]}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// configDirFor writes a config.yaml pointing at srv and keeping all state under t.TempDir
func configDirFor(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`api:
  base_url: %s
  uploads_url: https://uploads.example
  page_size: 10
storage:
  data_dir: %s
logging:
  file: %s
`, srv.URL, filepath.Join(dir, "data"), filepath.Join(dir, "mangaland.log"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0644))
	return dir
}

func run(t *testing.T, configDir string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configDir}, args...))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestSearchPrintsResults(t *testing.T) {
	dir := configDirFor(t, catalogAPI(t))

	out, _, err := run(t, dir, "search", "blue", "--genre", "drama", "--status", "ongoing")
	require.NoError(t, err)
	assert.Contains(t, out, bluePeriodID)
	assert.Contains(t, out, "Blue Period")
	assert.Contains(t, out, "In progress · 2017")

	out, _, err = run(t, dir, "search", "--status", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "No manga found.\n", out)
}

func TestSearchRejectsUnknownFilters(t *testing.T) {
	dir := configDirFor(t, catalogAPI(t))

	_, _, err := run(t, dir, "search", "--status", "paused")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "paused"`)

	_, _, err = run(t, dir, "search", "--genre", "zzzzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown genre "zzzzzz"`)
}

func TestShowPrintsDetailAndChapters(t *testing.T) {
	dir := configDirFor(t, catalogAPI(t))

	out, _, err := run(t, dir, "show", bluePeriodID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Blue Period\n"))
	assert.Contains(t, out, "Also known as: ブルーピリオド")
	assert.Contains(t, out, "Status: In progress, 2017")
	assert.Contains(t, out, "Genres: Drama")
	assert.Contains(t, out, "Yatora finds **painting**.", "markdown is left raw outside a terminal")
	assert.Contains(t, out, "Chapters (2)")
	assert.Contains(t, out, chapterOneID)
	assert.Contains(t, out, "Chapter 1: Awakening")
}

func TestShowUnknownManga(t *testing.T) {
	dir := configDirFor(t, catalogAPI(t))

	_, _, err := run(t, dir, "show", "00000000-0000-4000-8000-000000000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReadRecordsHistory(t *testing.T) {
	dir := configDirFor(t, catalogAPI(t))

	out, stderr, err := run(t, dir, "read", chapterOneID)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, out, "Blue Period - Chapter 1: Awakening")
	assert.Contains(t, out, "Next: Chapter 2 ("+chapterTwoID+")")
	assert.NotContains(t, out, "Previous:")
	assert.Contains(t, out, "https://node.example/data/abc/1.png\nhttps://node.example/data/abc/2.png\n")

	out, _, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, bluePeriodID)
	assert.Contains(t, out, "Blue Period")
	assert.Contains(t, out, "Chapter 1")
	assert.Contains(t, out, "just now")

	out, _, err = run(t, dir, "history", "rm", bluePeriodID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed "+bluePeriodID)

	out, _, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Equal(t, "No reading history yet.\n", out)
}

func TestHistoryClear(t *testing.T) {
	dir := configDirFor(t, catalogAPI(t))

	_, _, err := run(t, dir, "read", chapterOneID)
	require.NoError(t, err)

	out, _, err := run(t, dir, "history", "clear")
	require.NoError(t, err)
	assert.Equal(t, "History cleared.\n", out)

	out, _, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Equal(t, "No reading history yet.\n", out)
}

func TestConfigInitWritesFile(t *testing.T) {
	srv := catalogAPI(t)
	dir := configDirFor(t, srv)
	require.NoError(t, os.Remove(filepath.Join(dir, "config.yaml")))

	out, _, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "config.yaml")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: https://api.mangadex.org")

	out, _, err = run(t, dir, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "viewer:      auto-detect")
}

func TestVersionFlag(t *testing.T) {
	out, _, err := run(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Equal(t, "mangaland dev\n", out)
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "unknown"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
		{time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), "2025-07-04"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ago(now, tt.at))
	}
}
