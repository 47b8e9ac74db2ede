package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/search"
	"github.com/mmcdole/mangaland/internal/tui/styles"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Header line plus scroll indicators ("↑ more" and "↓ more")
	chromeLines = 3
)

// ListColumn is a scrollable, filterable list of domain.ListItem
type ListColumn struct {
	items []domain.ListItem
	index *search.FilterIndex

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Column title (shown in header) and text shown when empty
	title string
	empty string

	// Loading state
	loading      bool
	spinnerFrame string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	results      []search.FilterResult // nil when no filter is applied
}

// NewListColumn creates an empty list column with the given title
func NewListColumn(title, empty string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		title:       title,
		empty:       empty,
		filterInput: ti,
		index:       search.NewFilterIndex(nil),
	}
}

// SetItems replaces the content, clearing any filter. The cursor is kept
// when it still fits.
func (c *ListColumn) SetItems(items []domain.ListItem) {
	c.items = items
	c.index = search.NewFilterIndex(items)
	c.loading = false
	c.clearFilter()
	if c.cursor >= len(items) {
		c.cursor = max(len(items)-1, 0)
	}
	c.ensureVisible()
}

// SetLoading toggles the loading indicator
func (c *ListColumn) SetLoading(loading bool) {
	c.loading = loading
}

// IsLoading reports whether the column shows its loading indicator
func (c *ListColumn) IsLoading() bool {
	return c.loading
}

// SetSpinner sets the frame shown while loading
func (c *ListColumn) SetSpinner(frame string) {
	c.spinnerFrame = frame
}

// SetEmptyText sets the text shown when the list has no items
func (c *ListColumn) SetEmptyText(text string) {
	c.empty = text
}

// ItemCount returns the number of visible (filtered) items
func (c *ListColumn) ItemCount() int {
	if c.results != nil {
		return len(c.results)
	}
	return len(c.items)
}

// Selected returns the item under the cursor
func (c *ListColumn) Selected() (domain.ListItem, bool) {
	if c.cursor < 0 || c.cursor >= c.ItemCount() {
		return nil, false
	}
	return c.itemAt(c.cursor), true
}

// SelectedIndex returns the cursor position
func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

// SelectByID moves the cursor to the item with id, returning false when absent
func (c *ListColumn) SelectByID(id string) bool {
	for i := 0; i < c.ItemCount(); i++ {
		if c.itemAt(i).GetID() == id {
			c.cursor = i
			c.ensureVisible()
			return true
		}
	}
	return false
}

func (c *ListColumn) itemAt(i int) domain.ListItem {
	if c.results != nil {
		return c.results[i].Item
	}
	return c.items[i]
}

// IsFiltering reports whether the filter input has focus
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive && c.filterInput.Focused()
}

// FilterApplied reports whether a filter is shown, focused or not
func (c *ListColumn) FilterApplied() bool {
	return c.filterActive
}

// StartFilter focuses the filter input
func (c *ListColumn) StartFilter() tea.Cmd {
	c.filterActive = true
	return c.filterInput.Focus()
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.results = nil
	c.cursor = min(c.cursor, max(len(c.items)-1, 0))
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	if strings.TrimSpace(query) == "" {
		c.results = nil
	} else {
		c.results = c.index.Filter(query)
	}
	c.cursor = 0
	c.offset = 0
}

// Update handles navigation and filter keys
func (c *ListColumn) Update(msg tea.Msg) tea.Cmd {
	// Handle filter input when active AND focused (typing mode)
	if c.IsFiltering() {
		if km, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(km, ListKeys.ClearFilter):
				c.clearFilter()
				return nil
			case key.Matches(km, ListKeys.AcceptFilter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case key.Matches(km, ListKeys.EraseFilter) && c.filterInput.Value() == "":
				c.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	// Filter applied but blurred (navigation mode with filter results)
	if c.filterActive {
		switch {
		case key.Matches(km, ListKeys.ClearFilter):
			c.clearFilter()
			return nil
		case key.Matches(km, ListKeys.Filter):
			return c.filterInput.Focus()
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	half := max(c.maxVisible/2, 1)
	switch {
	case key.Matches(km, ListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(km, ListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(km, ListKeys.First):
		c.cursor = 0
	case key.Matches(km, ListKeys.Last):
		c.cursor = count - 1
	case key.Matches(km, ListKeys.HalfDown):
		c.cursor = min(c.cursor+half, count-1)
	case key.Matches(km, ListKeys.HalfUp):
		c.cursor = max(c.cursor-half, 0)
	case key.Matches(km, ListKeys.PageDown):
		c.cursor = min(c.cursor+c.maxVisible, count-1)
	case key.Matches(km, ListKeys.PageUp):
		c.cursor = max(c.cursor-c.maxVisible, 0)
	}
	c.ensureVisible()
	return nil
}

// View renders the column with its border
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *ListColumn) renderContent() string {
	inner := max(c.width-BorderWidth, 0)
	var b strings.Builder

	header := styles.TitleStyle.Render(c.title)
	if c.loading {
		header += " " + styles.SpinnerStyle.Render(c.spinnerFrame)
	} else if c.results != nil {
		header += styles.DimStyle.Render(fmt.Sprintf(" (%d/%d)", len(c.results), len(c.items)))
	}
	b.WriteString(header)
	b.WriteString("\n")

	if c.filterActive {
		b.WriteString(c.filterInput.View())
		b.WriteString("\n")
	}

	count := c.ItemCount()
	if count == 0 {
		text := c.empty
		if c.loading {
			text = "Loading..."
		} else if c.results != nil {
			text = "No matches"
		}
		b.WriteString(styles.DimStyle.Render(text))
		return b.String()
	}

	if c.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more"))
	}
	b.WriteString("\n")

	end := min(c.offset+c.maxVisible, count)
	for i := c.offset; i < end; i++ {
		b.WriteString(c.renderRow(i, inner))
		b.WriteString("\n")
	}

	if end < count {
		b.WriteString(styles.DimStyle.Render("↓ more"))
	}
	return b.String()
}

func (c *ListColumn) renderRow(i, width int) string {
	item := c.itemAt(i)
	selected := i == c.cursor && c.focused

	title := item.GetTitle()
	desc := item.GetDescription()
	available := width - 2
	if desc != "" {
		available -= len([]rune(desc)) + 1
	}

	text := styles.Truncate(title, max(available, 1))
	if c.results != nil && text == title {
		text = styles.Highlight(text, c.results[i].MatchedIndexes, selected)
	}
	if desc != "" {
		text = styles.Pad(text, max(available, 1)) + " " + styles.DimStyle.Render(desc)
	}

	style := styles.NormalItemStyle
	if selected {
		style = styles.SelectedItemStyle
	}
	return style.Width(max(width, 1)).Render(text)
}

// SetSize sets the outer dimensions
func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible() // Scroll to show selected item now that we know the size
}

func (c *ListColumn) recalcMaxVisible() {
	lines := c.height - BorderHeight - chromeLines
	if c.filterActive {
		lines--
	}
	c.maxVisible = max(lines, 1)
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// SetFocused sets whether the column receives keys
func (c *ListColumn) SetFocused(focused bool) {
	c.focused = focused
}

// IsFocused reports whether the column receives keys
func (c *ListColumn) IsFocused() bool {
	return c.focused
}

// Title returns the column title
func (c *ListColumn) Title() string {
	return c.title
}

// SetTitle changes the column title
func (c *ListColumn) SetTitle(title string) {
	c.title = title
}
