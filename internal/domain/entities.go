package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Placeholders shown when the catalog omits an optional field
const (
	PlaceholderTitle       = "No title"
	PlaceholderDescription = "No description available."
	PlaceholderStatus      = "unknown"
	SpecialChapterLabel    = "Special"
)

// TitlePreference is the locale order tried before falling back to
// whatever locale the catalog happens to provide.
var TitlePreference = []string{"en", "pt"}

// Status is the publication status of a manga
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusCancelled Status = "cancelled"
)

// Label returns a human-readable status, or the unknown placeholder
func (s Status) Label() string {
	switch s {
	case StatusOngoing:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusHiatus:
		return "On hiatus"
	case StatusCancelled:
		return "Cancelled"
	default:
		return PlaceholderStatus
	}
}

// Tag is a catalog tag (genre, theme, format)
type Tag struct {
	ID    string // Catalog UUID
	Name  string // English name, or first available
	Group string // "genre", "theme", "format", "content"
}

// Manga represents a catalog title. Transient: fetched per view, never persisted.
type Manga struct {
	ID            string            // Catalog UUID
	Titles        map[string]string // locale -> title
	AltTitles     []string          // Alternative titles, first locale of each entry
	Descriptions  map[string]string // locale -> markdown description
	Status        Status            // Empty when the catalog omits it
	Year          int               // Publication year (0 = unknown)
	Tags          []Tag
	Authors       []string
	CoverFileName string // Empty when there is no cover art relationship
	CoverURL      string // Thumbnail URL, empty when no cover
}

// DisplayTitle returns the title in the preferred locales, falling back to
// the first available locale and finally the placeholder.
func (m Manga) DisplayTitle() string {
	return LocalizedText(m.Titles, PlaceholderTitle, TitlePreference...)
}

// TitleIn is DisplayTitle with lang tried first
func (m Manga) TitleIn(lang string) string {
	return LocalizedText(m.Titles, PlaceholderTitle, append([]string{lang}, TitlePreference...)...)
}

// HasTitle reports whether the catalog gave the manga any non-empty title
func (m Manga) HasTitle() bool {
	return LocalizedText(m.Titles, "") != ""
}

// DisplayDescription returns the description or the placeholder
func (m Manga) DisplayDescription() string {
	return LocalizedText(m.Descriptions, PlaceholderDescription, TitlePreference...)
}

// Genres returns the names of the tags in the genre group
func (m Manga) Genres() []string {
	var names []string
	for _, t := range m.Tags {
		if t.Group == "genre" {
			names = append(names, t.Name)
		}
	}
	return names
}

// LocalizedText picks a value from a locale map. Preferred locales are tried
// in order; otherwise the first non-empty value in locale order is used so the
// result does not depend on map iteration.
func LocalizedText(values map[string]string, fallback string, preferred ...string) string {
	for _, lang := range preferred {
		if v := strings.TrimSpace(values[lang]); v != "" {
			return v
		}
	}

	locales := make([]string, 0, len(values))
	for lang := range values {
		locales = append(locales, lang)
	}
	sort.Strings(locales)

	for _, lang := range locales {
		if v := strings.TrimSpace(values[lang]); v != "" {
			return v
		}
	}
	return fallback
}

// ChapterSummary is one entry of a manga's chapter list
type ChapterSummary struct {
	ID       string
	Number   string // Raw chapter number, empty for specials/oneshots
	Title    string // Chapter title, often empty
	Volume   string
	Language string
	Pages    int
}

// NumericValue returns the chapter number as a float; missing or non-numeric
// numbers count as zero.
func (c ChapterSummary) NumericValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Number), 64)
	if err != nil {
		return 0
	}
	return v
}

// Label returns "Chapter N" or the special label
func (c ChapterSummary) Label() string {
	if strings.TrimSpace(c.Number) == "" {
		return SpecialChapterLabel
	}
	return "Chapter " + c.Number
}

// DisplayTitle returns the label plus the chapter title when there is one
func (c ChapterSummary) DisplayTitle() string {
	if c.Title == "" {
		return c.Label()
	}
	return fmt.Sprintf("%s: %s", c.Label(), c.Title)
}

// Chapter is a single chapter's metadata, including its owning manga
type Chapter struct {
	ChapterSummary
	MangaID     string
	PublishedAt time.Time
}

// PageManifest describes where a chapter's page images live
type PageManifest struct {
	BaseURL        string   // Delivery node chosen by the catalog
	Hash           string   // Chapter content hash
	Files          []string // Full quality file names, in reading order
	DataSaverFiles []string // Compressed file names, in reading order
}

// PageURLs returns the full quality page image URLs in reading order
func (p PageManifest) PageURLs() []string {
	return p.urls("data", p.Files)
}

// DataSaverURLs returns compressed page image URLs in reading order
func (p PageManifest) DataSaverURLs() []string {
	return p.urls("data-saver", p.DataSaverFiles)
}

func (p PageManifest) urls(mode string, files []string) []string {
	base := strings.TrimRight(p.BaseURL, "/")
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, fmt.Sprintf("%s/%s/%s/%s", base, mode, p.Hash, f))
	}
	return urls
}

// ListItem interface implementation for Manga

func (m *Manga) GetID() string    { return m.ID }
func (m *Manga) GetTitle() string { return m.DisplayTitle() }
func (m *Manga) GetDescription() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s · %d", m.Status.Label(), m.Year)
	}
	return m.Status.Label()
}

// ListItem interface implementation for ChapterSummary

func (c *ChapterSummary) GetID() string    { return c.ID }
func (c *ChapterSummary) GetTitle() string { return c.DisplayTitle() }
func (c *ChapterSummary) GetDescription() string {
	if c.Volume != "" {
		return "Vol. " + c.Volume
	}
	return ""
}

// ListItem interface implementation for Tag

func (t *Tag) GetID() string          { return t.ID }
func (t *Tag) GetTitle() string       { return t.Name }
func (t *Tag) GetDescription() string { return t.Group }
