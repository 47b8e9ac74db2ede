package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/mmcdole/mangaland/internal/service"
	"github.com/mmcdole/mangaland/internal/tui/styles"
	"golang.org/x/term"
)

// Width used when the output is not a terminal
const defaultOutputWidth = 100

// outputWidth returns the terminal width behind w, or the default
func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultOutputWidth
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printMangaList prints one manga per line with its id and status
func printMangaList(w io.Writer, list []*domain.Manga, width int) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No manga found.")
		return err
	}

	titleWidth := max(width-36-24, 20)
	tw := newTable(w)
	for _, m := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, styles.Truncate(m.DisplayTitle(), titleWidth), m.GetDescription())
	}
	return tw.Flush()
}

// printMangaDetail prints the metadata block of a manga followed by its chapters
func printMangaDetail(w io.Writer, d *service.MangaDetail, width int, markdown bool) error {
	m := d.Manga
	fmt.Fprintln(w, m.DisplayTitle())
	if len(m.AltTitles) > 0 {
		fmt.Fprintf(w, "Also known as: %s\n", strings.Join(m.AltTitles, " / "))
	}

	status := m.Status.Label()
	if m.Year > 0 {
		status = fmt.Sprintf("%s, %d", status, m.Year)
	}
	fmt.Fprintf(w, "Status: %s\n", status)
	if len(m.Authors) > 0 {
		fmt.Fprintf(w, "Authors: %s\n", strings.Join(m.Authors, ", "))
	}
	if genres := m.Genres(); len(genres) > 0 {
		fmt.Fprintf(w, "Genres: %s\n", strings.Join(genres, ", "))
	}
	if m.CoverURL != "" {
		fmt.Fprintf(w, "Cover: %s\n", m.CoverURL)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, description(m.DisplayDescription(), width, markdown))
	fmt.Fprintln(w)

	return printChapters(w, d.Chapters)
}

// description renders markdown for a terminal, or returns it as-is
func description(md string, width int, markdown bool) string {
	if !markdown {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func printChapters(w io.Writer, chapters []domain.ChapterSummary) error {
	fmt.Fprintf(w, "Chapters (%d)\n", len(chapters))
	if len(chapters) == 0 {
		_, err := fmt.Fprintln(w, "  No chapters in this language.")
		return err
	}

	tw := newTable(w)
	for _, c := range chapters {
		vol := ""
		if c.Volume != "" {
			vol = "Vol. " + c.Volume
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.ID, c.DisplayTitle(), vol)
	}
	return tw.Flush()
}

// printReaderState prints the chapter header, neighbors and page URLs
func printReaderState(w io.Writer, s *service.ReaderState) error {
	fmt.Fprintf(w, "%s - %s\n", s.Title(), s.Chapter.DisplayTitle())
	if s.Previous != nil {
		fmt.Fprintf(w, "Previous: %s (%s)\n", s.Previous.Label(), s.Previous.ID)
	}
	if s.Next != nil {
		fmt.Fprintf(w, "Next: %s (%s)\n", s.Next.Label(), s.Next.ID)
	}
	fmt.Fprintf(w, "Pages (%d)\n", len(s.Pages))
	for _, p := range s.Pages {
		fmt.Fprintln(w, p)
	}
	return nil
}

// printHistory prints the reading history, most recent first
func printHistory(w io.Writer, entries []domain.HistoryEntry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No reading history yet.")
		return err
	}

	tw := newTable(w)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.MangaID, e.Title, e.ChapterLabel(), e.ChapterID, ago(now, e.UpdatedAt))
	}
	return tw.Flush()
}

// ago formats a timestamp relative to now
func ago(now, t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
