package tui

import (
	"fmt"
	"path"

	"github.com/mmcdole/mangaland/internal/domain"
)

func mangaItems(list []*domain.Manga) []domain.ListItem {
	items := make([]domain.ListItem, 0, len(list))
	for _, m := range list {
		if m != nil {
			items = append(items, m)
		}
	}
	return items
}

func chapterItems(chapters []domain.ChapterSummary) []domain.ListItem {
	items := make([]domain.ListItem, len(chapters))
	for i := range chapters {
		items[i] = &chapters[i]
	}
	return items
}

// pageItem is one page image of the open chapter
type pageItem struct {
	number int
	url    string
}

func (p pageItem) GetID() string          { return p.url }
func (p pageItem) GetTitle() string       { return fmt.Sprintf("Page %d", p.number) }
func (p pageItem) GetDescription() string { return path.Base(p.url) }

func pageItems(urls []string) []domain.ListItem {
	items := make([]domain.ListItem, len(urls))
	for i, u := range urls {
		items[i] = pageItem{number: i + 1, url: u}
	}
	return items
}
