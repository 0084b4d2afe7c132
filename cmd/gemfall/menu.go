package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start gemfall with a mode and level picker",
	Long: `Start gemfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select. The campaign entry
continues after your highest passed level. After a game, B returns to
the menu while paused or game over.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scores
  Q            - Quit

Examples:
  gemfall menu
  gemfall menu --fps 30
  gemfall menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("gemfall")
	setup, err := loadSetup(logger)
	if err != nil {
		fail("%v", err)
	}

	store := openStore()
	runErr := tui.RunSession(store, setup, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("%v", runErr)
	}
}
