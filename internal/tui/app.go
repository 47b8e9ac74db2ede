package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/service"
	"github.com/mmcdole/mangaland/internal/tui/components"
	"github.com/mmcdole/mangaland/internal/tui/styles"
)

// Layout constants
const (
	// Header line plus footer line
	ChromeHeight = 2

	statusTimeout      = 3 * time.Second
	errorStatusTimeout = 5 * time.Second
)

// Options tune the initial state of the TUI
type Options struct {
	DefaultGenre  string // Genre name or id preselected in the catalog filter
	DefaultStatus string // Status preselected in the catalog filter
	PageSize      int    // Catalog results per query, 0 for the default
	Timeout       time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	CatalogSvc *service.CatalogService
	ReaderSvc  *service.ReaderService
	HistorySvc *service.HistoryService

	// Views
	stack   *viewStack
	catalog *catalogView
	detail  *detailView
	reader  *readerView

	fetches *fetches
	spinner spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model
func NewModel(
	catalogSvc *service.CatalogService,
	readerSvc *service.ReaderService,
	historySvc *service.HistoryService,
	opts Options,
) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		CatalogSvc: catalogSvc,
		ReaderSvc:  readerSvc,
		HistorySvc: historySvc,
		stack:      newViewStack(),
		catalog:    newCatalogView(opts.DefaultGenre, opts.DefaultStatus, opts.PageSize),
		detail:     newDetailView(),
		reader:     newReaderView(),
		fetches:    newFetches(opts.Timeout),
		spinner:    sp,
	}
}

// Init loads everything the catalog view shows
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalog(),
		m.loadPopular(),
		m.loadShelf(),
		m.loadGenres(),
		m.spinner.Tick,
	)
}

func (m Model) loadCatalog() tea.Cmd {
	ctx, gen := m.fetches.begin(slotCatalog)
	m.catalog.results.SetLoading(true)
	return LoadCatalogCmd(ctx, gen, m.CatalogSvc, m.catalog.Query())
}

func (m Model) loadPopular() tea.Cmd {
	ctx, gen := m.fetches.begin(slotPopular)
	m.catalog.popular.SetLoading(true)
	return LoadPopularCmd(ctx, gen, m.CatalogSvc)
}

func (m Model) loadShelf() tea.Cmd {
	ctx, gen := m.fetches.begin(slotShelf)
	return LoadShelfCmd(ctx, gen, m.HistorySvc)
}

func (m Model) loadGenres() tea.Cmd {
	ctx, gen := m.fetches.begin(slotGenres)
	return LoadGenresCmd(ctx, gen, m.CatalogSvc)
}

func (m Model) loadDetail(mangaID string) tea.Cmd {
	ctx, gen := m.fetches.begin(slotDetail)
	m.detail.load(mangaID)
	return LoadDetailCmd(ctx, gen, m.CatalogSvc, mangaID)
}

func (m Model) openChapter(chapterID string) tea.Cmd {
	ctx, gen := m.fetches.begin(slotReader)
	m.reader.load(chapterID)
	return OpenChapterCmd(ctx, gen, m.ReaderSvc, chapterID)
}

// loading reports whether any fetch is in flight
func (m Model) loading() bool {
	for s := range slotCount {
		if m.fetches.pending(s) {
			return true
		}
	}
	return false
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		frame := m.spinner.View()
		m.catalog.setSpinner(frame)
		m.detail.list.SetSpinner(frame)
		m.reader.setSpinner(frame)
		return m, cmd

	case CatalogLoadedMsg:
		if !m.fetches.finish(slotCatalog, msg.Gen) {
			return m, nil
		}
		m.catalog.results.SetItems(mangaItems(msg.Results))
		m.catalog.results.SetTitle(catalogTitle(msg.Query, len(msg.Results)))
		return m, nil

	case PopularLoadedMsg:
		if !m.fetches.finish(slotPopular, msg.Gen) {
			return m, nil
		}
		m.catalog.popular.SetItems(mangaItems(msg.Results))
		return m, nil

	case ShelfLoadedMsg:
		if !m.fetches.finish(slotShelf, msg.Gen) {
			return m, nil
		}
		m.catalog.setShelf(msg.Entries)
		return m, nil

	case GenresLoadedMsg:
		if !m.fetches.finish(slotGenres, msg.Gen) {
			return m, nil
		}
		if m.catalog.setGenres(msg.Genres) {
			return m, m.loadCatalog()
		}
		return m, nil

	case DetailLoadedMsg:
		if !m.fetches.finish(slotDetail, msg.Gen) {
			return m, nil
		}
		m.detail.setDetail(msg.Detail)
		return m, nil

	case ChapterLoadedMsg:
		if !m.fetches.finish(slotReader, msg.Gen) {
			return m, nil
		}
		m.reader.setState(msg.State)

		var cmds []tea.Cmd
		if msg.State.Recorded {
			cmds = append(cmds, m.loadShelf())
		}
		if msg.State.Partial != nil {
			m.StatusMsg = "Some chapter details could not be loaded"
			m.StatusIsErr = true
			cmds = append(cmds, ClearStatusCmd(errorStatusTimeout))
		}
		return m, tea.Batch(cmds...)

	case PagesOpenedMsg:
		m.StatusMsg = fmt.Sprintf("Opened %d page(s) in the viewer", msg.Count)
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTimeout)

	case VisitRemovedMsg:
		m.catalog.removeFromShelf(msg.MangaID)
		m.StatusMsg = fmt.Sprintf("Removed %q from history", msg.Title)
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusTimeout)

	case ErrMsg:
		return m.handleErr(msg)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleErr shows a failed fetch in the status bar. Failures of superseded
// fetches are dropped like their results.
func (m Model) handleErr(msg ErrMsg) (tea.Model, tea.Cmd) {
	if msg.gen != 0 {
		if !m.fetches.finish(msg.slot, msg.gen) {
			return m, nil
		}
		switch msg.slot {
		case slotCatalog:
			m.catalog.results.SetLoading(false)
		case slotPopular:
			m.catalog.popular.SetLoading(false)
		case slotDetail:
			m.detail.fail()
		case slotReader:
			m.reader.fail()
		}
	}

	if errors.Is(msg.Err, domain.ErrNotFound) {
		m.StatusMsg = "Not found in the catalog"
	} else if msg.gen != 0 {
		m.StatusMsg = domain.UserMessage
	} else {
		m.StatusMsg = msg.Error()
	}
	m.StatusIsErr = true
	return m, ClearStatusCmd(errorStatusTimeout)
}

func catalogTitle(q domain.CatalogQuery, n int) string {
	if q.IsFiltered() {
		return fmt.Sprintf("Results (%d)", n)
	}
	return fmt.Sprintf("Catalog (%d)", n)
}

// handleKeyMsg routes keys to the help screen or the current view
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		m.fetches.dropAll()
		return m, tea.Quit
	}

	if !m.typing() {
		switch {
		case key.Matches(msg, Keys.Quit):
			m.fetches.dropAll()
			return m, tea.Quit
		case key.Matches(msg, Keys.Help):
			m.ShowHelp = true
			return m, nil
		}
	}

	switch m.stack.Top() {
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewReader:
		return m.handleReaderKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

// typing reports whether keys go to a text input of the current view
func (m Model) typing() bool {
	switch m.stack.Top() {
	case viewDetail:
		return m.detail.list.IsFiltering()
	case viewReader:
		return m.reader.typing()
	default:
		return m.catalog.typing()
	}
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.catalog

	// Search box: enter runs the query, everything else edits it
	if c.focus == paneSearch {
		switch {
		case key.Matches(msg, Keys.Enter):
			c.setFocus(paneResults)
			return m, m.loadCatalog()
		case key.Matches(msg, Keys.Escape):
			c.setFocus(paneResults)
			return m, nil
		case key.Matches(msg, Keys.NextPane):
			c.cycleFocus(1)
			return m, nil
		case key.Matches(msg, Keys.PrevPane):
			c.cycleFocus(-1)
			return m, nil
		}
		var cmd tea.Cmd
		c.search, cmd = c.search.Update(msg)
		return m, cmd
	}

	list := c.focusedList()
	if list != nil && list.IsFiltering() {
		return m, list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.NextPane):
		c.cycleFocus(1)
		return m, nil
	case key.Matches(msg, Keys.PrevPane):
		c.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, Keys.Search):
		c.setFocus(paneSearch)
		return m, textinput.Blink
	case key.Matches(msg, Keys.CycleGenre):
		c.cycleGenre()
		return m, m.loadCatalog()
	case key.Matches(msg, Keys.CycleStatus):
		c.cycleStatus()
		return m, m.loadCatalog()
	case key.Matches(msg, Keys.Refresh):
		m.CatalogSvc.Refresh()
		return m, tea.Batch(m.loadCatalog(), m.loadPopular(), m.loadShelf(), m.loadGenres())
	}

	if c.focus == paneShelf {
		switch {
		case msg.String() == "h" || msg.String() == "left":
			c.moveShelf(-1)
		case msg.String() == "l" || msg.String() == "right":
			c.moveShelf(1)
		case key.Matches(msg, Keys.Enter):
			if e, ok := c.selectedShelf(); ok {
				m.stack.Push(viewReader)
				return m, m.openChapter(e.ChapterID)
			}
		case key.Matches(msg, Keys.Forget):
			if e, ok := c.selectedShelf(); ok {
				return m, ForgetCmd(m.HistorySvc, e)
			}
		}
		return m, nil
	}

	if list == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Filter) && !list.FilterApplied():
		return m, list.StartFilter()
	case key.Matches(msg, Keys.Enter):
		if item, ok := list.Selected(); ok {
			m.stack.Push(viewDetail)
			return m, m.loadDetail(item.GetID())
		}
		return m, nil
	}
	return m, list.Update(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.detail
	if d.list.IsFiltering() {
		return m, d.list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Escape) && d.list.FilterApplied():
		return m, d.list.Update(msg)
	case key.Matches(msg, Keys.Back), key.Matches(msg, Keys.Escape):
		return m.goBack()
	case key.Matches(msg, Keys.Filter) && !d.list.FilterApplied():
		return m, d.list.StartFilter()
	case key.Matches(msg, Keys.Enter):
		if ch, ok := d.selectedChapter(); ok {
			m.stack.Push(viewReader)
			return m, m.openChapter(ch.ID)
		}
		return m, nil
	case key.Matches(msg, Keys.Refresh):
		m.CatalogSvc.Refresh()
		return m, m.loadDetail(d.mangaID)
	}
	return m, d.list.Update(msg)
}

func (m Model) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.reader
	list := r.focusedList()
	if list.IsFiltering() {
		return m, list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Escape) && list.FilterApplied():
		return m, list.Update(msg)
	case key.Matches(msg, Keys.Back), key.Matches(msg, Keys.Escape):
		return m.goBack()
	case key.Matches(msg, Keys.NextPane), key.Matches(msg, Keys.PrevPane):
		r.toggleFocus()
		return m, nil
	case key.Matches(msg, Keys.Filter) && !list.FilterApplied():
		return m, list.StartFilter()
	case key.Matches(msg, Keys.NextChapter):
		if ch, ok := r.neighbor(true); ok {
			return m, m.openChapter(ch.ID)
		}
		return m, nil
	case key.Matches(msg, Keys.PrevChapter):
		if ch, ok := r.neighbor(false); ok {
			return m, m.openChapter(ch.ID)
		}
		return m, nil
	case key.Matches(msg, Keys.OpenAll):
		return m, OpenPagesCmd(m.ReaderSvc, r.allPages())
	case key.Matches(msg, Keys.OpenPage):
		if url, ok := r.currentPage(); ok {
			return m, OpenPagesCmd(m.ReaderSvc, []string{url})
		}
		return m, nil
	case key.Matches(msg, Keys.Refresh):
		if r.chapterID != "" {
			m.CatalogSvc.Refresh()
			return m, m.openChapter(r.chapterID)
		}
		return m, nil
	case key.Matches(msg, Keys.Enter):
		if r.onList {
			if ch, ok := r.selectedChapter(); ok {
				return m, m.openChapter(ch.ID)
			}
			return m, nil
		}
		if url, ok := r.currentPage(); ok {
			return m, OpenPagesCmd(m.ReaderSvc, []string{url})
		}
		return m, nil
	}
	return m, list.Update(msg)
}

// goBack pops the current view and cancels its fetch
func (m Model) goBack() (tea.Model, tea.Cmd) {
	popped, ok := m.stack.Pop()
	if !ok {
		return m, nil
	}
	switch popped {
	case viewDetail:
		m.fetches.drop(slotDetail)
		m.detail.fail()
	case viewReader:
		m.fetches.drop(slotReader)
		m.reader.fail()
	}
	return m, nil
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	contentHeight := max(m.Height-ChromeHeight, 1)
	m.catalog.SetSize(m.Width, contentHeight)
	m.detail.SetSize(m.Width, contentHeight)
	m.reader.SetSize(m.Width, contentHeight)
}

// View renders the current screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var content string
	switch m.stack.Top() {
	case viewDetail:
		content = m.detail.View(m.spinner.View())
	case viewReader:
		content = m.reader.View()
	default:
		content = m.catalog.View()
	}

	content = lipgloss.NewStyle().
		MaxHeight(max(m.Height-ChromeHeight, 1)).
		MaxWidth(m.Width).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, m.renderFooter())
}

func (m Model) renderHeader() string {
	crumbs := m.stack.Breadcrumb()
	return styles.AccentStyle.Bold(true).Render("mangaland") +
		styles.DimStyle.Render("  "+strings.Join(crumbs, " > "))
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner + status when loading or status message active
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	} else if m.loading() {
		left = m.spinner.View() + " " + styles.DimStyle.Render("Loading...")
	}

	// Center section: context-specific hints
	var center string
	switch top := m.stack.Top(); {
	case m.typing() && top == viewCatalog && m.catalog.focus == paneSearch:
		center = hint("enter", "search")
	case m.typing():
		center = bindingHints(components.ListKeys.FilterHelp())
	case top == viewCatalog:
		if m.catalog.focus == paneShelf {
			center = hint("enter", "resume") + "  " + hint("x", "forget")
		} else {
			center = hint("f", "search") + "  " + hint("t", "genre") + "  " + hint("s", "status")
		}
	case top == viewDetail:
		center = hint("enter", "read") + "  " + hint("/", "filter")
	case top == viewReader:
		center = hint("o", "open page") + "  " + hint("O", "open all") + "  " + hint("n/p", "chapter")
	}

	// Right side: "? help" hint
	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func bindingHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, hint(h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}

func hint(k, desc string) string {
	return styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
CATALOG                         READER
  tab/S-tab  Switch pane            o      Open page in viewer
  f          Search titles          O      Open all pages
  t          Cycle genre            n/p    Next/previous chapter
  s          Cycle status           tab    Pages / chapters
  enter      Open / resume
  x          Forget (shelf)

LISTS                           OTHER
  j/k        Up/down                r      Refresh
  g/G        First/last item        h/esc  Back
  C-u/C-d    Half page              q      Quit
  /          Filter                 ?      This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(0, 2).Render(help))
}
