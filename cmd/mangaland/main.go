package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/mangaland/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every command
type rootOptions struct {
	configDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "mangaland",
		Short: "Browse and read manga from MangaDex in the terminal",
		Long: `mangaland browses the MangaDex catalog, shows a title's chapters and
hands chapter pages to an image viewer. Chapters you open are remembered
on the continue-reading shelf.

Run without a command to start the interactive browser.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config", "", "directory holding config.yaml (default ~/.config/mangaland)")
	root.SetVersionTemplate("mangaland {{.Version}}\n")

	root.AddCommand(
		newSearchCmd(opts),
		newShowCmd(opts),
		newReadCmd(opts),
		newHistoryCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func runTUI(opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive browser needs a terminal; see 'mangaland --help' for plain commands")
	}

	a, err := newApp(opts.configDir)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting mangaland", "version", Version)

	model := tui.NewModel(a.catalog, a.reader, a.history, tui.Options{
		DefaultGenre:  a.cfg.UI.DefaultGenre,
		DefaultStatus: a.cfg.UI.DefaultStatus,
		PageSize:      a.cfg.API.PageSize,
		Timeout:       a.cfg.API.Timeout,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
