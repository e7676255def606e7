package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/state"
	"github.com/nikbrunner/studio/internal/tui"
)

func tuiCmd() *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive client (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseList(tab)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), list)
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(state.Feed), "tab to open: feed, mine, saved")
	return cmd
}

// runTUI runs the full interactive client.
func runTUI(ctx context.Context, tab state.List) error {
	a, err := openApp(ctx, clipboard.NewSystem())
	if err != nil {
		return err
	}
	defer a.Close()

	app := tui.NewApp(tui.AppParams{
		Synchronizer: a.sync,
		Context:      ctx,
		Logger:       a.log,
		NoticeTTL:    a.cfg.UI.NoticeTTL,
		TrendingTags: a.cfg.UI.TrendingTags,
		Tab:          tab,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

func parseList(name string) (state.List, error) {
	switch l := state.List(name); l {
	case state.Feed, state.Mine, state.Saved:
		return l, nil
	default:
		return "", fmt.Errorf("unknown list %q (want feed, mine or saved)", name)
	}
}
