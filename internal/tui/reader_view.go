package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/service"
	"github.com/mmcdole/mangaland/internal/tui/components"
	"github.com/mmcdole/mangaland/internal/tui/styles"
)

// Header line plus navigation hint line
const readerHeaderLines = 2

// readerView lists the pages of one chapter next to the chapter selector
type readerView struct {
	chapterID string // Requested chapter, may differ from state while loading
	state     *service.ReaderState

	pages    *components.ListColumn
	chapters *components.ListColumn
	onList   bool // Focus on the chapter selector

	loading bool
	width   int
	height  int
}

func newReaderView() *readerView {
	v := &readerView{
		pages:    components.NewListColumn("Pages", "This chapter has no pages"),
		chapters: components.NewListColumn("Chapters", "Chapter list unavailable"),
	}
	v.pages.SetFocused(true)
	return v
}

func (v *readerView) load(chapterID string) {
	v.chapterID = chapterID
	v.loading = true
	v.pages.SetLoading(true)
}

func (v *readerView) setState(state *service.ReaderState) {
	v.loading = false
	v.state = state
	v.chapterID = state.Chapter.ID

	v.pages.SetItems(pageItems(state.Pages))
	v.pages.SetTitle(fmt.Sprintf("Pages (%d)", len(state.Pages)))
	v.chapters.SetItems(chapterItems(state.Chapters))
	v.chapters.SelectByID(state.Chapter.ID)
}

// fail ends a load; the previously loaded chapter, if any, stays current
func (v *readerView) fail() {
	v.loading = false
	v.pages.SetLoading(false)
	if v.state != nil && v.state.Chapter != nil {
		v.chapterID = v.state.Chapter.ID
	}
}

func (v *readerView) toggleFocus() {
	v.onList = !v.onList
	v.pages.SetFocused(!v.onList)
	v.chapters.SetFocused(v.onList)
}

func (v *readerView) focusedList() *components.ListColumn {
	if v.onList {
		return v.chapters
	}
	return v.pages
}

func (v *readerView) typing() bool {
	return v.focusedList().IsFiltering()
}

// currentPage returns the URL of the page under the cursor
func (v *readerView) currentPage() (string, bool) {
	item, ok := v.pages.Selected()
	if !ok {
		return "", false
	}
	return item.GetID(), true
}

// allPages returns every page URL in reading order
func (v *readerView) allPages() []string {
	if v.state == nil {
		return nil
	}
	return v.state.Pages
}

func (v *readerView) selectedChapter() (domain.ChapterSummary, bool) {
	item, ok := v.chapters.Selected()
	if !ok {
		return domain.ChapterSummary{}, false
	}
	ch, ok := item.(*domain.ChapterSummary)
	if !ok {
		return domain.ChapterSummary{}, false
	}
	return *ch, true
}

// neighbor returns the previous or next chapter of the loaded one. There is
// none while the requested chapter is still loading.
func (v *readerView) neighbor(next bool) (*domain.ChapterSummary, bool) {
	if v.loading || v.state == nil || v.state.Chapter == nil || v.state.Chapter.ID != v.chapterID {
		return nil, false
	}
	if next {
		return v.state.Next, v.state.Next != nil
	}
	return v.state.Previous, v.state.Previous != nil
}

func (v *readerView) setSpinner(frame string) {
	v.pages.SetSpinner(frame)
}

func (v *readerView) SetSize(width, height int) {
	v.width = width
	v.height = height
	listHeight := max(height-readerHeaderLines, 5)
	chaptersWidth := max(width*2/5, 24)
	v.chapters.SetSize(chaptersWidth, listHeight)
	v.pages.SetSize(max(width-chaptersWidth, 24), listHeight)
}

func (v *readerView) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderHeader(),
		v.renderNav(),
		lipgloss.JoinHorizontal(lipgloss.Top, v.pages.View(), v.chapters.View()),
	)
}

func (v *readerView) renderHeader() string {
	if v.state == nil {
		return styles.DimStyle.Render("Loading chapter...")
	}
	half := max(v.width/2-2, 10)
	header := styles.TitleStyle.Render(styles.Truncate(v.state.Title(), half)) +
		styles.SubtitleStyle.Render("  "+styles.Truncate(v.state.Chapter.DisplayTitle(), half))
	if v.state.Chapter.Volume != "" {
		header += styles.DimStyle.Render("  Vol. " + v.state.Chapter.Volume)
	}
	return header
}

func (v *readerView) renderNav() string {
	if v.loading {
		return styles.DimStyle.Render("loading chapter...")
	}
	prev := styles.DimStyle.Render("first chapter")
	if ch, ok := v.neighbor(false); ok {
		prev = styles.AccentStyle.Render("p") + styles.DimStyle.Render(" "+ch.Label())
	}
	next := styles.DimStyle.Render("last chapter")
	if ch, ok := v.neighbor(true); ok {
		next = styles.AccentStyle.Render("n") + styles.DimStyle.Render(" "+ch.Label())
	}
	return prev + styles.DimStyle.Render("  ·  ") + next
}
