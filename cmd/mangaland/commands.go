package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/mangaland/internal/adapter"
	"github.com/mmcdole/mangaland/internal/domain"
	"github.com/spf13/cobra"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	var (
		title   string
		genre   string
		status  string
		limit   int
		popular bool
	)

	cmd := &cobra.Command{
		Use:   "search [title]",
		Short: "Search the catalog",
		Long: `Search the catalog by title, genre and publication status. Every
filter given is applied; without filters the catalog's default listing is
shown. --genre accepts a genre name (fuzzy) or tag id.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root.configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if popular {
				list, err := a.catalog.Popular(ctx)
				if err != nil {
					return fmt.Errorf("failed to load popular titles: %w", err)
				}
				return printMangaList(cmd.OutOrStdout(), list, outputWidth(cmd.OutOrStdout()))
			}

			if len(args) == 1 {
				title = args[0]
			}
			if limit <= 0 {
				limit = a.cfg.API.PageSize
			}
			q := domain.CatalogQuery{Title: title, Limit: limit}

			if status != "" {
				st, ok := domain.ParseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				q.Status = st
			}
			if genre != "" {
				tag, ok := domain.MatchTag(genre, a.catalog.Genres(ctx))
				if !ok {
					return fmt.Errorf("unknown genre %q", genre)
				}
				q.GenreID = tag.ID
			}

			list, err := a.catalog.Browse(ctx, q)
			if err != nil {
				return fmt.Errorf("failed to search catalog: %w", err)
			}
			return printMangaList(cmd.OutOrStdout(), list, outputWidth(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "title text to search for")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "genre name or tag id")
	cmd.Flags().StringVarP(&status, "status", "s", "", "publication status (ongoing, completed, hiatus, cancelled)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	cmd.Flags().BoolVar(&popular, "popular", false, "list the most followed titles instead")
	return cmd
}

func newShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <mangaId>",
		Short: "Show a manga and its chapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root.configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			detail, err := a.catalog.Detail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load manga %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			return printMangaDetail(out, detail, outputWidth(out), isTerminal(out))
		},
	}
}

func newReadCmd(root *rootOptions) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "read <chapterId>",
		Short: "Print a chapter's page URLs and remember it",
		Long: `Load a chapter, print its page image URLs in reading order and record
it on the continue-reading shelf. With --open the pages are handed to the
configured image viewer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root.configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			state, err := a.reader.OpenChapter(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load chapter %s: %w", args[0], err)
			}
			if state.Partial != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", state.Partial)
			}

			if err := printReaderState(cmd.OutOrStdout(), state); err != nil {
				return err
			}
			if open {
				return a.reader.OpenPages(state.Pages...)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&open, "open", "o", false, "open the pages in the image viewer")
	return cmd
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the continue-reading history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root.configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			return printHistory(cmd.OutOrStdout(), a.history.Entries(), time.Now())
		},
	}

	rmCmd := &cobra.Command{
		Use:     "rm <mangaId>",
		Aliases: []string{"remove"},
		Short:   "Forget a manga",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root.configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.history.Forget(args[0]); err != nil {
				return fmt.Errorf("failed to update history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from history.\n", args[0])
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every manga",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root.configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.history.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.AddCommand(rmCmd, clearCmd)
	return cmd
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config dir:  %s\n", configDir(root.configDir))
			fmt.Fprintf(out, "api:         %s (language %s)\n", cfg.API.BaseURL, cfg.API.Language)
			fmt.Fprintf(out, "uploads:     %s\n", cfg.API.UploadsURL)
			fmt.Fprintf(out, "data dir:    %s\n", cfg.Storage.DataDir)
			fmt.Fprintf(out, "log file:    %s (%s)\n", cfg.Logging.File, strings.ToLower(cfg.Logging.Level))
			viewer := cfg.Reader.Command
			if viewer == "" {
				viewer = "auto-detect"
			}
			fmt.Fprintf(out, "viewer:      %s\n", viewer)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current configuration to config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configDir)
			if err != nil {
				return err
			}

			dir := configDir(root.configDir)
			if err := adapter.SaveConfigTo(dir, cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s/config.yaml\n", dir)
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	return cmd
}

func loadConfig(dir string) (*adapter.Config, error) {
	var (
		cfg *adapter.Config
		err error
	)
	if dir != "" {
		cfg, err = adapter.LoadConfigFrom(dir)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func configDir(dir string) string {
	if dir != "" {
		return dir
	}
	return adapter.ConfigPath()
}
