package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/culler"
	"github.com/nikbrunner/studio/internal/exporter"
	"github.com/nikbrunner/studio/internal/importer"
	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/picker"
	"github.com/nikbrunner/studio/internal/search"
	"github.com/nikbrunner/studio/internal/state"
)

func searchCmd() *cobra.Command {
	var (
		list      string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search a list, pick a result and open it",
		Long:  "Fuzzy search bookmark titles. A query starting with # filters by tag instead.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseList(list)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if name != state.Feed {
				if err := a.requireSession(); err != nil {
					return err
				}
			}
			if err := loadList(cmd.Context(), a, name); err != nil {
				return err
			}

			items := a.sync.Snapshot().Collection(name).Items()
			results := search.Search(items, query)
			if len(results) == 0 {
				fmt.Printf("No bookmarks found for '%s'\n", query)
				return nil
			}

			var selected *model.Bookmark
			if len(results) == 1 {
				selected = &results[0].Bookmark
			} else {
				program := tea.NewProgram(picker.New(results, query), tea.WithContext(cmd.Context()))
				finalModel, err := program.Run()
				if err != nil {
					return fmt.Errorf("run picker: %w", err)
				}
				p := finalModel.(picker.Picker)
				if p.Cancelled() {
					return nil
				}
				selected = p.SelectedBookmark()
			}
			if selected == nil {
				return nil
			}

			if printOnly {
				fmt.Println(selected.URL)
				return nil
			}
			fmt.Printf("Opening: %s\n", selected.Title)
			openURL(selected.URL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&list, "list", "l", string(state.Feed), "list to search: feed, mine, saved")
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "print the URL instead of opening it")
	return cmd
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

func importCmd() *cobra.Command {
	var (
		private bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Publish bookmarks from a browser HTML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer file.Close()

			drafts, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parse HTML: %w", err)
			}

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

			known := make(map[string]bool)
			for _, b := range a.sync.Snapshot().Mine.Items() {
				known[b.URL] = true
			}

			var added, duplicates, invalid, failed int
			for _, draft := range drafts {
				if private {
					draft.Visibility = model.Private
				}
				draft = draft.Normalize()
				if err := draft.Validate(); err != nil {
					invalid++
					a.log.Debugf("skip %q: %v", draft.URL, err)
					continue
				}
				if known[draft.URL] {
					duplicates++
					continue
				}
				known[draft.URL] = true

				if dryRun {
					fmt.Printf("would publish %s\n", draft.URL)
					added++
					continue
				}
				if _, err := a.sync.Create(cmd.Context(), draft); err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "  %s: %s\n", draft.URL, state.Message(err, "Failed to publish"))
					continue
				}
				added++
			}

			fmt.Printf("Imported %d bookmarks", added)
			if duplicates > 0 {
				fmt.Printf(", %d duplicates skipped", duplicates)
			}
			if invalid > 0 {
				fmt.Printf(", %d invalid", invalid)
			}
			if failed > 0 {
				fmt.Printf(", %d failed", failed)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&private, "private", false, "publish everything as private")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would be published")
	return cmd
}

func exportCmd() *cobra.Command {
	var list string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export a list to browser bookmark HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseList(list)
			if err != nil {
				return err
			}

			outputPath := ""
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				outputPath, err = exporter.DefaultExportPath(string(name))
				if err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if name != state.Feed {
				if err := a.requireSession(); err != nil {
					return err
				}
			}
			if err := loadList(cmd.Context(), a, name); err != nil {
				return err
			}

			items := a.sync.Snapshot().Collection(name).Items()
			html := exporter.ExportHTML("studio "+string(name), items)
			if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}

			fmt.Printf("Exported %d bookmarks to %s\n", len(items), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&list, "list", "l", string(state.Mine), "list to export: feed, mine, saved")
	return cmd
}

func checkCmd() *cobra.Command {
	var (
		list    string
		exclude []string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the links of a list for dead or unreachable URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseList(list)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), clipboard.Unsupported{})
			if err != nil {
				return err
			}
			defer a.Close()

			if name != state.Feed {
				if err := a.requireSession(); err != nil {
					return err
				}
			}
			if err := loadList(cmd.Context(), a, name); err != nil {
				return err
			}

			items := a.sync.Snapshot().Collection(name).Items()
			if len(items) == 0 {
				fmt.Println(emptyText(name))
				return nil
			}

			results := culler.CheckURLs(cmd.Context(), items, culler.Options{
				Concurrency:    a.cfg.Check.Concurrency,
				Timeout:        a.cfg.Check.Timeout,
				ExcludeDomains: append(append([]string(nil), a.cfg.Check.ExcludeDomains...), exclude...),
				Logger:         a.log,
				OnProgress: func(completed, total int) {
					fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
				},
			})
			fmt.Fprintln(os.Stderr)

			counts := map[culler.Status]int{}
			for _, r := range results {
				counts[r.Status]++
				if r.Status == culler.Healthy && !all {
					continue
				}
				detail := r.Error
				if r.StatusCode != 0 {
					detail = fmt.Sprintf("HTTP %d", r.StatusCode)
				}
				fmt.Printf("%-11s %s  %s  %s\n", r.Status, r.Bookmark.ID, r.Bookmark.URL, detail)
			}

			fmt.Printf("%d ok, %d dead, %d unreachable\n",
				counts[culler.Healthy], counts[culler.Dead], counts[culler.Unreachable])
			return nil
		},
	}

	cmd.Flags().StringVarP(&list, "list", "l", string(state.Mine), "list to check: feed, mine, saved")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "domains whose 404s are not reported as dead")
	cmd.Flags().BoolVar(&all, "all", false, "also print healthy links")
	return cmd
}
