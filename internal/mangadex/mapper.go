package mangadex

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/mangaland/internal/domain"
)

// Cover sizes served by the uploads host
const (
	CoverThumbnail = ".256.jpg"
	CoverMedium    = ".512.jpg"
	CoverOriginal  = ""
)

// CoverURL builds the image URL for a manga cover file
func CoverURL(uploadsURL, mangaID, fileName, size string) string {
	if mangaID == "" || fileName == "" {
		return ""
	}
	return fmt.Sprintf("%s/covers/%s/%s%s", strings.TrimRight(uploadsURL, "/"), mangaID, fileName, size)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// MapManga converts a manga entity, rejecting it when the id is not a UUID
func MapManga(d MangaData, uploadsURL string) (*domain.Manga, error) {
	if !validID(d.ID) {
		return nil, fmt.Errorf("%w: manga id %q", domain.ErrInvalidResponse, d.ID)
	}
	if d.Type != "" && d.Type != "manga" {
		return nil, fmt.Errorf("%w: expected manga, got %q", domain.ErrInvalidResponse, d.Type)
	}

	a := d.Attributes
	m := &domain.Manga{
		ID:           d.ID,
		Titles:       map[string]string(a.Title),
		Descriptions: map[string]string(a.Description),
		Status:       mapStatus(a.Status),
		Year:         a.Year,
		Tags:         MapTags(a.Tags),
	}
	if m.Titles == nil {
		m.Titles = map[string]string{}
	}
	if m.Descriptions == nil {
		m.Descriptions = map[string]string{}
	}

	for _, alt := range a.AltTitles {
		if t := domain.LocalizedText(alt, "", domain.TitlePreference...); t != "" {
			m.AltTitles = append(m.AltTitles, t)
		}
	}

	rels := MapRelationships(d.Relationships)
	m.Authors = domain.Authors(rels)
	if cover, ok := domain.FindCoverArt(rels); ok {
		m.CoverFileName = cover.FileName
		m.CoverURL = CoverURL(uploadsURL, m.ID, cover.FileName, CoverThumbnail)
	}

	return m, nil
}

// MapMangaList converts a page of manga, skipping invalid entries.
// The second return value is the number of entries skipped.
func MapMangaList(data []MangaData, uploadsURL string) ([]*domain.Manga, int) {
	list := make([]*domain.Manga, 0, len(data))
	skipped := 0
	for _, d := range data {
		m, err := MapManga(d, uploadsURL)
		if err != nil {
			skipped++
			continue
		}
		list = append(list, m)
	}
	return list, skipped
}

func mapStatus(s string) domain.Status {
	switch st := domain.Status(strings.ToLower(s)); st {
	case domain.StatusOngoing, domain.StatusCompleted, domain.StatusHiatus, domain.StatusCancelled:
		return st
	default:
		return ""
	}
}

// MapTags converts tag entities. Tags without a valid id or any name are dropped.
func MapTags(data []TagData) []domain.Tag {
	tags := make([]domain.Tag, 0, len(data))
	for _, t := range data {
		if !validID(t.ID) {
			continue
		}
		name := domain.LocalizedText(t.Attributes.Name, "", "en")
		if name == "" {
			continue
		}
		tags = append(tags, domain.Tag{ID: t.ID, Name: name, Group: t.Attributes.Group})
	}
	return tags
}

func sortTags(tags []domain.Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
}

// MapRelationships decodes the relationship list into its typed variants.
// Attributes that fail to decode are treated as absent.
func MapRelationships(data []RelationshipData) []domain.Relationship {
	rels := make([]domain.Relationship, 0, len(data))
	for _, r := range data {
		switch r.Type {
		case "cover_art":
			var attrs coverArtAttributes
			decodeAttributes(r.Attributes, &attrs)
			rels = append(rels, domain.CoverArt{ID: r.ID, FileName: attrs.FileName})
		case "manga":
			rels = append(rels, domain.MangaRef{ID: r.ID})
		case "author", "artist":
			var attrs authorAttributes
			decodeAttributes(r.Attributes, &attrs)
			rels = append(rels, domain.AuthorRef{ID: r.ID, Name: strings.TrimSpace(attrs.Name), Role: r.Type})
		default:
			rels = append(rels, domain.UnknownRelationship{ID: r.ID, Type: r.Type})
		}
	}
	return rels
}

func decodeAttributes(raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}

// MapChapterSummaries converts a chapter page, skipping entries without a
// valid id, and orders the result by chapter number.
func MapChapterSummaries(data []ChapterData) []domain.ChapterSummary {
	chapters := make([]domain.ChapterSummary, 0, len(data))
	for _, d := range data {
		if !validID(d.ID) {
			continue
		}
		chapters = append(chapters, mapSummary(d))
	}
	domain.SortChapters(chapters)
	return chapters
}

func mapSummary(d ChapterData) domain.ChapterSummary {
	a := d.Attributes
	return domain.ChapterSummary{
		ID:       d.ID,
		Number:   strings.TrimSpace(a.Chapter),
		Title:    strings.TrimSpace(a.Title),
		Volume:   strings.TrimSpace(a.Volume),
		Language: a.TranslatedLanguage,
		Pages:    a.Pages,
	}
}

// MapChapter converts a chapter entity. A chapter must name its manga.
func MapChapter(d ChapterData) (*domain.Chapter, error) {
	if !validID(d.ID) {
		return nil, fmt.Errorf("%w: chapter id %q", domain.ErrInvalidResponse, d.ID)
	}

	ref, ok := domain.FindManga(MapRelationships(d.Relationships))
	if !ok || !validID(ref.ID) {
		return nil, fmt.Errorf("%w: chapter %s has no manga", domain.ErrInvalidResponse, d.ID)
	}

	ch := &domain.Chapter{
		ChapterSummary: mapSummary(d),
		MangaID:        ref.ID,
	}
	if t, err := time.Parse(time.RFC3339, d.Attributes.PublishAt); err == nil {
		ch.PublishedAt = t
	}
	return ch, nil
}

// MapPageManifest converts an at-home server response
func MapPageManifest(r AtHomeResponse) (*domain.PageManifest, error) {
	if r.BaseURL == "" || r.Chapter.Hash == "" {
		return nil, fmt.Errorf("%w: page manifest without base url or hash", domain.ErrInvalidResponse)
	}
	return &domain.PageManifest{
		BaseURL:        r.BaseURL,
		Hash:           r.Chapter.Hash,
		Files:          nonEmpty(r.Chapter.Data),
		DataSaverFiles: nonEmpty(r.Chapter.DataSaver),
	}, nil
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
