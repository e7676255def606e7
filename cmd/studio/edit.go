package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/model"
)

type draftFlags struct {
	title       string
	url         string
	description string
	tags        string
	addTags     string
	private     bool
	public      bool
}

func (f *draftFlags) register(cmd *cobra.Command, editing bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "bookmark title")
	cmd.Flags().StringVar(&f.url, "url", "", "http(s) URL")
	cmd.Flags().StringVarP(&f.description, "desc", "d", "", "description")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma separated tags")
	cmd.Flags().BoolVar(&f.private, "private", false, "only visible to you")
	if editing {
		cmd.Flags().StringVar(&f.addTags, "add-tags", "", "comma separated tags to add")
		cmd.Flags().BoolVar(&f.public, "public", false, "make the bookmark public")
		cmd.MarkFlagsMutuallyExclusive("private", "public")
		cmd.MarkFlagsMutuallyExclusive("tags", "add-tags")
	}
}

func addCmd() *cobra.Command {
	var f draftFlags

	cmd := &cobra.Command{
		Use:   "add [url]",
		Short: "Publish a new bookmark",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.url = args[0]
			}
			draft := model.NewDraft(model.NewDraftParams{
				Title:       f.title,
				URL:         f.url,
				Description: f.description,
				Tags:        f.tags,
				Private:     f.private,
			})
			if err := draft.Validate(); err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}
			b, err := a.sync.Create(cmd.Context(), draft)
			if err != nil {
				return failure(err, "Failed to publish")
			}
			fmt.Printf("Published %s (%s)\n", b.Title, b.ID)
			return nil
		},
	}

	f.register(cmd, false)
	return cmd
}

func editCmd() *cobra.Command {
	var f draftFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update one of your bookmarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.sync.LoadMine(cmd.Context()); err != nil {
				return failure(err, "Failed to load bookmarks")
			}
			existing := a.sync.Snapshot().Mine.Get(args[0])
			if existing == nil {
				return fmt.Errorf("bookmark %s is not one of yours", args[0])
			}

			draft := model.DraftFrom(*existing)
			flags := cmd.Flags()
			if flags.Changed("title") {
				draft.Title = f.title
			}
			if flags.Changed("url") {
				draft.URL = f.url
			}
			if flags.Changed("desc") {
				draft.Description = f.description
			}
			if flags.Changed("tags") {
				draft.Tags = model.ParseTags(f.tags)
			}
			if flags.Changed("add-tags") {
				draft.Tags = model.MergeTags(draft.Tags, f.addTags)
			}
			switch {
			case f.private:
				draft.Visibility = model.Private
			case f.public:
				draft.Visibility = model.Public
			}

			draft = draft.Normalize()
			if err := draft.Validate(); err != nil {
				return err
			}

			b, err := a.sync.Update(cmd.Context(), existing.ID, draft)
			if err != nil {
				return failure(err, "Failed to update")
			}
			fmt.Printf("Updated %s (%s)\n", b.Title, b.ID)
			return nil
		},
	}

	f.register(cmd, true)
	return cmd
}

func rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete one of your bookmarks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}

			id := args[0]
			if !yes {
				title := id
				if err := a.sync.LoadMine(cmd.Context()); err == nil {
					if b := a.sync.Snapshot().Mine.Get(id); b != nil {
						title = b.Title
					}
				}
				if !confirm(fmt.Sprintf("Delete %q?", title)) {
					fmt.Println("Cancelled")
					return nil
				}
			}

			if err := a.sync.Delete(cmd.Context(), id); err != nil {
				return failure(err, "Failed to delete")
			}
			fmt.Println("Bookmark deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Save a bookmark, or unsave it when already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}
			// The saved list decides the direction of the toggle.
			if err := a.sync.LoadSaved(cmd.Context()); err != nil {
				return failure(err, "Failed to load saved bookmarks")
			}
			if err := a.sync.ToggleSave(cmd.Context(), args[0]); err != nil {
				return failure(err, "Failed to save")
			}
			printNotice(a)
			return nil
		},
	}
}

func shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Share a bookmark and copy its link, or unshare it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), clipboard.NewSystem())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}
			if err := a.sync.ToggleShare(cmd.Context(), args[0]); err != nil {
				return failure(err, "Failed to share")
			}
			printNotice(a)
			return nil
		},
	}
}

func printNotice(a *app) {
	if n := a.sync.Snapshot().Notice; n != nil {
		fmt.Println(n.Text)
	}
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
