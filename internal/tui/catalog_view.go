package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/tui/components"
	"github.com/mmcdole/mangaland/internal/tui/styles"
)

// catalogPane is a focusable region of the catalog view
type catalogPane int

const (
	paneSearch catalogPane = iota
	paneShelf
	panePopular
	paneResults
	paneCount
)

const (
	// Search line plus filter line
	catalogHeaderLines = 2
	// Shelf title plus one card (content, chapter, cover, border)
	shelfLines = 6
	cardWidth  = 24
)

// catalogView is the landing screen: search box, genre and status
// selectors, the continue-reading shelf, popular titles and results.
type catalogView struct {
	search textinput.Model

	genres       []domain.Tag
	genre        int // index into genres, -1 for any
	defaultGenre string
	status       int // index into domain.FilterStatuses, -1 for any
	pageSize     int

	shelf       []domain.HistoryEntry
	shelfCursor int
	shelfOffset int

	popular *components.ListColumn
	results *components.ListColumn

	focus catalogPane

	width  int
	height int
}

func newCatalogView(defaultGenre, defaultStatus string, pageSize int) *catalogView {
	ti := textinput.New()
	ti.Placeholder = "search titles..."
	ti.Prompt = "Search: "
	ti.PromptStyle = styles.AccentStyle
	ti.CharLimit = 200

	v := &catalogView{
		search:       ti,
		genre:        -1,
		status:       -1,
		defaultGenre: defaultGenre,
		pageSize:     pageSize,
		popular:      components.NewListColumn("Most popular", "Nothing here yet"),
		results:      components.NewListColumn("Catalog", "No manga found"),
		focus:        paneResults,
	}

	if st, ok := domain.ParseStatus(defaultStatus); ok {
		for i, s := range domain.FilterStatuses {
			if s == st {
				v.status = i
			}
		}
	}
	v.setGenres(domain.KnownGenres)
	v.applyFocus()
	return v
}

// Query builds the catalog query from the current filters
func (v *catalogView) Query() domain.CatalogQuery {
	q := domain.CatalogQuery{Title: strings.TrimSpace(v.search.Value()), Limit: v.pageSize}
	if v.genre >= 0 && v.genre < len(v.genres) {
		q.GenreID = v.genres[v.genre].ID
	}
	if v.status >= 0 && v.status < len(domain.FilterStatuses) {
		q.Status = domain.FilterStatuses[v.status]
	}
	return q
}

// setGenres replaces the genre list, keeping the selection by id. Returns
// true when the selected genre changed.
func (v *catalogView) setGenres(genres []domain.Tag) bool {
	prev := ""
	if v.genre >= 0 && v.genre < len(v.genres) {
		prev = v.genres[v.genre].ID
	}

	v.genres = genres
	v.genre = -1
	if prev != "" {
		for i, g := range genres {
			if g.ID == prev {
				v.genre = i
			}
		}
	} else if v.defaultGenre != "" {
		if tag, ok := domain.MatchTag(v.defaultGenre, genres); ok {
			for i, g := range genres {
				if g.ID == tag.ID {
					v.genre = i
				}
			}
			v.defaultGenre = ""
		}
	}

	current := ""
	if v.genre >= 0 {
		current = v.genres[v.genre].ID
	}
	return current != prev
}

func (v *catalogView) cycleGenre() {
	v.genre++
	if v.genre >= len(v.genres) {
		v.genre = -1
	}
}

func (v *catalogView) cycleStatus() {
	v.status++
	if v.status >= len(domain.FilterStatuses) {
		v.status = -1
	}
}

func (v *catalogView) genreLabel() string {
	if v.genre < 0 || v.genre >= len(v.genres) {
		return "Any"
	}
	return v.genres[v.genre].Name
}

func (v *catalogView) statusLabel() string {
	if v.status < 0 || v.status >= len(domain.FilterStatuses) {
		return "Any"
	}
	return domain.FilterStatuses[v.status].Label()
}

func (v *catalogView) setShelf(entries []domain.HistoryEntry) {
	v.shelf = entries
	if v.shelfCursor >= len(entries) {
		v.shelfCursor = max(len(entries)-1, 0)
	}
	v.ensureShelfVisible()
}

func (v *catalogView) removeFromShelf(mangaID string) {
	kept := v.shelf[:0]
	for _, e := range v.shelf {
		if e.MangaID != mangaID {
			kept = append(kept, e)
		}
	}
	v.setShelf(kept)
}

func (v *catalogView) selectedShelf() (domain.HistoryEntry, bool) {
	if v.shelfCursor < 0 || v.shelfCursor >= len(v.shelf) {
		return domain.HistoryEntry{}, false
	}
	return v.shelf[v.shelfCursor], true
}

func (v *catalogView) moveShelf(delta int) {
	if len(v.shelf) == 0 {
		return
	}
	v.shelfCursor = min(max(v.shelfCursor+delta, 0), len(v.shelf)-1)
	v.ensureShelfVisible()
}

func (v *catalogView) visibleCards() int {
	return max(v.width/cardWidth, 1)
}

func (v *catalogView) ensureShelfVisible() {
	n := v.visibleCards()
	if v.shelfCursor < v.shelfOffset {
		v.shelfOffset = v.shelfCursor
	}
	if v.shelfCursor >= v.shelfOffset+n {
		v.shelfOffset = v.shelfCursor - n + 1
	}
}

// focusedList returns the list under focus, if the focus is on a list
func (v *catalogView) focusedList() *components.ListColumn {
	switch v.focus {
	case panePopular:
		return v.popular
	case paneResults:
		return v.results
	}
	return nil
}

func (v *catalogView) setFocus(p catalogPane) {
	v.focus = p
	v.applyFocus()
}

func (v *catalogView) cycleFocus(delta int) {
	v.setFocus(catalogPane((int(v.focus) + delta + int(paneCount)) % int(paneCount)))
}

func (v *catalogView) applyFocus() {
	v.popular.SetFocused(v.focus == panePopular)
	v.results.SetFocused(v.focus == paneResults)
	if v.focus == paneSearch {
		v.search.Focus()
	} else {
		v.search.Blur()
	}
}

// typing reports whether keys go to a text input
func (v *catalogView) typing() bool {
	if v.focus == paneSearch {
		return true
	}
	if l := v.focusedList(); l != nil {
		return l.IsFiltering()
	}
	return false
}

func (v *catalogView) setSpinner(frame string) {
	v.popular.SetSpinner(frame)
	v.results.SetSpinner(frame)
}

// SetSize lays out the view within width x height
func (v *catalogView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.search.Width = max(width-lipgloss.Width(v.search.Prompt)-2, 10)

	listHeight := max(height-catalogHeaderLines-shelfLines, 5)
	popularWidth := max(width/3, 24)
	v.popular.SetSize(popularWidth, listHeight)
	v.results.SetSize(max(width-popularWidth, 24), listHeight)
	v.ensureShelfVisible()
}

func (v *catalogView) View() string {
	searchLine := v.search.View()
	if v.focus != paneSearch && v.search.Value() == "" {
		searchLine = styles.DimStyle.Render(v.search.Prompt + v.search.Placeholder)
	}

	filters := styles.DimStyle.Render("Genre ") + styles.BadgeStyle.Render(v.genreLabel()) +
		styles.DimStyle.Render("  Status ") + styles.BadgeStyle.Render(v.statusLabel())

	lists := lipgloss.JoinHorizontal(lipgloss.Top, v.popular.View(), v.results.View())
	return lipgloss.JoinVertical(lipgloss.Left, searchLine, filters, v.renderShelf(), lists)
}

func (v *catalogView) renderShelf() string {
	title := styles.TitleStyle.Render("Continue reading")
	if v.focus == paneShelf {
		title = styles.AccentStyle.Bold(true).Render("Continue reading")
	}

	if len(v.shelf) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			styles.DimStyle.Render("Chapters you read show up here."), "", "", "", "")
	}

	end := min(v.shelfOffset+v.visibleCards(), len(v.shelf))
	cards := make([]string, 0, end-v.shelfOffset)
	for i := v.shelfOffset; i < end; i++ {
		cards = append(cards, v.renderCard(v.shelf[i], i == v.shelfCursor && v.focus == paneShelf))
	}

	more := ""
	if len(v.shelf) > end-v.shelfOffset {
		more = styles.DimStyle.Render(fmt.Sprintf(" (%d)", len(v.shelf)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title+more, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func (v *catalogView) renderCard(e domain.HistoryEntry, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	inner := cardWidth - 6

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(styles.Truncate(e.Title, inner)),
		styles.SubtitleStyle.Render(e.ChapterLabel()),
		styles.DimStyle.Render(styles.Truncate(coverLabel(e.CoverURL), inner)),
	))
}

// coverLabel names the cover image, or the placeholder when there is none
func coverLabel(url string) string {
	if url == "" {
		return "[no cover]"
	}
	return "[" + path.Base(url) + "]"
}
