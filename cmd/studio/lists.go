package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/state"
)

var (
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func feedCmd() *cobra.Command {
	var (
		tag     string
		asJSON  bool
		noStyle bool
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List public bookmarks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.sync.LoadFeed(cmd.Context(), tag); err != nil {
				return failure(err, "Failed to load feed")
			}
			return printList(os.Stdout, a.sync.Snapshot(), state.Feed, asJSON, noStyle)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only bookmarks with this tag")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&noStyle, "plain", false, "disable colors")
	return cmd
}

// listCmd builds the commands for the signed-in user's own lists.
func listCmd(use, short string, list state.List) *cobra.Command {
	var (
		asJSON  bool
		noStyle bool
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}
			if err := loadList(cmd.Context(), a, list); err != nil {
				return err
			}
			return printList(os.Stdout, a.sync.Snapshot(), list, asJSON, noStyle)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&noStyle, "plain", false, "disable colors")
	return cmd
}

func userCmd() *cobra.Command {
	var (
		asJSON  bool
		noStyle bool
	)

	cmd := &cobra.Command{
		Use:   "user <username>",
		Short: "List another user's public bookmarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			username := strings.TrimPrefix(strings.TrimSpace(args[0]), "@")
			if err := a.sync.LoadUser(cmd.Context(), username); err != nil {
				return failure(err, "Failed to load profile")
			}
			return printList(os.Stdout, a.sync.Snapshot(), state.Profile, asJSON, noStyle)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&noStyle, "plain", false, "disable colors")
	return cmd
}

// loadList fetches list into the synchronizer.
func loadList(ctx context.Context, a *app, list state.List) error {
	var err error
	switch list {
	case state.Mine:
		err = a.sync.LoadMine(ctx)
	case state.Saved:
		err = a.sync.LoadSaved(ctx)
	default:
		err = a.sync.LoadFeed(ctx, "")
	}
	return failure(err, "Failed to load bookmarks")
}

func printList(w io.Writer, snap state.State, list state.List, asJSON, plain bool) error {
	items := snap.Collection(list).Items()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, emptyText(list))
		return nil
	}
	for _, b := range items {
		printBookmark(w, b, snap, plain)
	}
	return nil
}

func emptyText(list state.List) string {
	switch list {
	case state.Mine:
		return "You have not published anything yet."
	case state.Saved:
		return "Nothing saved yet."
	case state.Profile:
		return "This user has no public bookmarks."
	default:
		return "No bookmarks yet."
	}
}

func printBookmark(w io.Writer, b model.Bookmark, snap state.State, plain bool) {
	render := func(s lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return s.Render(text)
	}

	var flags []string
	if b.Visibility == model.Private {
		flags = append(flags, "private")
	}
	if snap.IsSaved(b.ID) {
		flags = append(flags, "saved")
	}
	if snap.IsShared(b.ID) {
		flags = append(flags, "shared")
	}
	badge := ""
	if len(flags) > 0 {
		badge = " [" + strings.Join(flags, " ") + "]"
	}

	fmt.Fprintf(w, "%s  %s%s\n", render(idStyle, b.ID), render(titleStyle, b.Title), badge)
	fmt.Fprintf(w, "    %s\n", b.URL)

	meta := fmt.Sprintf("@%s · %d saves · %d shares · %s",
		b.Author.Username, b.SavedCount, b.SharedCount, b.CreatedAt.Local().Format(time.DateOnly))
	if len(b.Tags) > 0 {
		fmt.Fprintf(w, "    %s  %s\n", render(tagStyle, model.FormatTags(b.Tags)), render(metaStyle, meta))
	} else {
		fmt.Fprintf(w, "    %s\n", render(metaStyle, meta))
	}
}
