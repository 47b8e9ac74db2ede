package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/service"
	"github.com/mmcdole/mangaland/internal/tui/components"
	"github.com/mmcdole/mangaland/internal/tui/styles"
)

// Share of the width given to the description panel
const detailInfoPercent = 55

// detailView shows one manga: metadata, description and chapter list
type detailView struct {
	mangaID  string
	manga    *domain.Manga
	chapters []domain.ChapterSummary
	list     *components.ListColumn

	description string // Rendered markdown
	loading     bool

	width  int
	height int
}

func newDetailView() *detailView {
	l := components.NewListColumn("Chapters", "No chapters in this language")
	l.SetFocused(true)
	return &detailView{list: l}
}

// load resets the view for mangaID while its data is fetched
func (v *detailView) load(mangaID string) {
	if v.mangaID != mangaID {
		v.manga = nil
		v.chapters = nil
		v.description = ""
		v.list.SetItems(nil)
	}
	v.mangaID = mangaID
	v.loading = true
	v.list.SetLoading(true)
}

func (v *detailView) setDetail(d *service.MangaDetail) {
	v.loading = false
	v.manga = d.Manga
	v.chapters = d.Chapters
	v.list.SetItems(chapterItems(d.Chapters))
	v.list.SetTitle(fmt.Sprintf("Chapters (%d)", len(d.Chapters)))
	v.renderDescription()
}

func (v *detailView) fail() {
	v.loading = false
	v.list.SetLoading(false)
}

func (v *detailView) selectedChapter() (domain.ChapterSummary, bool) {
	item, ok := v.list.Selected()
	if !ok {
		return domain.ChapterSummary{}, false
	}
	ch, ok := item.(*domain.ChapterSummary)
	if !ok {
		return domain.ChapterSummary{}, false
	}
	return *ch, true
}

func (v *detailView) infoWidth() int {
	return max(v.width*detailInfoPercent/100, 30)
}

func (v *detailView) renderDescription() {
	if v.manga == nil {
		v.description = ""
		return
	}
	v.description = renderMarkdown(v.manga.DisplayDescription(), v.infoWidth()-4)
}

// renderMarkdown renders catalog markdown for the terminal, returning the
// plain text when rendering fails
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func (v *detailView) SetSize(width, height int) {
	resized := width != v.width
	v.width = width
	v.height = height
	v.list.SetSize(max(width-v.infoWidth(), 24), height)
	if resized {
		v.renderDescription()
	}
}

func (v *detailView) View(spinner string) string {
	info := v.renderInfo(spinner)
	panel := styles.InactiveBorder.
		Width(max(v.infoWidth()-components.BorderWidth, 0)).
		Height(max(v.height-components.BorderHeight, 0)).
		Render(info)
	return lipgloss.JoinHorizontal(lipgloss.Top, panel, v.list.View())
}

func (v *detailView) renderInfo(spinner string) string {
	if v.manga == nil {
		if v.loading {
			return styles.SpinnerStyle.Render(spinner) + styles.DimStyle.Render(" Loading manga...")
		}
		return styles.DimStyle.Render(domain.UserMessage)
	}

	m := v.manga
	inner := v.infoWidth() - 4
	lines := []string{
		styles.TitleStyle.Render(styles.Truncate(m.DisplayTitle(), inner)),
	}
	if len(m.AltTitles) > 0 {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(strings.Join(m.AltTitles, " / "), inner)))
	}

	meta := styles.BadgeStyle.Render(m.Status.Label())
	if m.Year > 0 {
		meta += " " + styles.DimBadgeStyle.Render(fmt.Sprint(m.Year))
	}
	lines = append(lines, "", meta)

	if len(m.Authors) > 0 {
		lines = append(lines, styles.SubtitleStyle.Render("By "+strings.Join(m.Authors, ", ")))
	}
	if genres := m.Genres(); len(genres) > 0 {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(strings.Join(genres, " · "), inner)))
	}
	if m.CoverURL != "" {
		lines = append(lines, styles.LinkStyle.Render(styles.Truncate(m.CoverURL, inner)))
	}
	lines = append(lines, "", v.description)

	return strings.Join(lines, "\n")
}
