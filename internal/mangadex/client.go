package mangadex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/mangaland/internal/domain"
)

const (
	DefaultBaseURL    = "https://api.mangadex.org"
	DefaultUploadsURL = "https://uploads.mangadex.org"
	DefaultLanguage   = "en"

	// ChapterPageSize is the largest page the chapter feed accepts
	ChapterPageSize = 100

	defaultTimeout = 30 * time.Second
	userAgent      = "Mangaland/1.0"
)

// Client implements domain.CatalogRepository for the MangaDex API
type Client struct {
	baseURL    string
	uploadsURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new MangaDex API client. Empty URLs use the public
// API and uploads hosts; a zero timeout uses the default.
func NewClient(baseURL, uploadsURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if uploadsURL == "" {
		uploadsURL = DefaultUploadsURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsURL: strings.TrimRight(uploadsURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the API origin the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadsURL returns the host cover images are served from
func (c *Client) UploadsURL() string {
	return c.uploadsURL
}

// doRequest performs a GET and returns the body of a successful response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("mangadex request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("mangadex request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn("mangadex rate limit hit", "url", reqURL, "retryAfter", resp.Header.Get("X-RateLimit-Retry-After"))
		return nil, domain.ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("mangadex request error", "status", resp.StatusCode, "detail", errorDetail(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// errorDetail extracts the first error message from an error body
func errorDetail(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Errors) == 0 {
		return ""
	}
	e := env.Errors[0]
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// decode parses a response body into v after checking the result envelope
func (c *Client) decode(body []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	if env.Result == "error" {
		if detail := errorDetail(body); detail != "" {
			return fmt.Errorf("mangadex error: %s", detail)
		}
		return errors.New("mangadex error")
	}
	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	return c.decode(body, v)
}

// SearchManga returns one page of manga matching q
func (c *Client) SearchManga(ctx context.Context, q domain.CatalogQuery) ([]*domain.Manga, error) {
	var resp MangaListResponse
	if err := c.get(ctx, "/manga", q.Values(), &resp); err != nil {
		return nil, err
	}

	list, skipped := MapMangaList(resp.Data, c.uploadsURL)
	if skipped > 0 {
		c.logger.Warn("skipped invalid manga entries", "count", skipped)
	}
	return list, nil
}

// GetManga returns a single manga with its cover art resolved
func (c *Client) GetManga(ctx context.Context, mangaID string) (*domain.Manga, error) {
	query := url.Values{}
	query.Add("includes[]", "cover_art")
	query.Add("includes[]", "author")

	var resp MangaResponse
	if err := c.get(ctx, "/manga/"+url.PathEscape(mangaID), query, &resp); err != nil {
		return nil, err
	}
	return MapManga(resp.Data, c.uploadsURL)
}

// GetChapters returns one page of a manga's chapters in language with the
// feed's total. A limit of 0 uses the largest page the feed accepts.
func (c *Client) GetChapters(ctx context.Context, mangaID, language string, offset, limit int) ([]domain.ChapterSummary, int, error) {
	if language == "" {
		language = DefaultLanguage
	}
	if limit <= 0 || limit > ChapterPageSize {
		limit = ChapterPageSize
	}

	query := url.Values{}
	query.Set("manga", mangaID)
	query.Add("translatedLanguage[]", language)
	query.Set("order[chapter]", "asc")
	query.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	var resp ChapterListResponse
	if err := c.get(ctx, "/chapter", query, &resp); err != nil {
		return nil, 0, err
	}

	total := resp.Total
	if total < offset+len(resp.Data) {
		total = offset + len(resp.Data)
	}
	return MapChapterSummaries(resp.Data), total, nil
}

// GetChapter returns one chapter's metadata including the owning manga id
func (c *Client) GetChapter(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	var resp ChapterResponse
	if err := c.get(ctx, "/chapter/"+url.PathEscape(chapterID), nil, &resp); err != nil {
		return nil, err
	}
	return MapChapter(resp.Data)
}

// GetPageManifest returns where the chapter's page images are served from
func (c *Client) GetPageManifest(ctx context.Context, chapterID string) (*domain.PageManifest, error) {
	var resp AtHomeResponse
	if err := c.get(ctx, "/at-home/server/"+url.PathEscape(chapterID), nil, &resp); err != nil {
		return nil, err
	}
	return MapPageManifest(resp)
}

// GetTags returns every tag the catalog knows, ordered by name
func (c *Client) GetTags(ctx context.Context) ([]domain.Tag, error) {
	var resp TagListResponse
	if err := c.get(ctx, "/manga/tag", nil, &resp); err != nil {
		return nil, err
	}

	tags := MapTags(resp.Data)
	sortTags(tags)
	return tags, nil
}
