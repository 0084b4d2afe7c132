package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/games/match3"
)

var (
	flagListFrom  int
	flagListCount int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows board size, shape, budget, target and goal for campaign levels,
including overrides from --levels packs. Budgets are shown without the
per-seed jitter.

Examples:
  gemfall levels
  gemfall levels --from 20 --count 5
  gemfall levels --levels ./packs`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagListFrom, "from", 1, "First level to list")
	levelsCmd.Flags().IntVar(&flagListCount, "count", 20, "Number of levels to list")
}

func runLevels(_ *cobra.Command, _ []string) {
	setup, err := loadSetup(newLogger("gemfall"))
	if err != nil {
		fail("%v", err)
	}
	if flagListFrom < 1 {
		flagListFrom = 1
	}

	header := fmt.Sprintf("%3s  %-18s %-5s %-11s %-11s %-12s %s",
		"#", "Name", "Size", "Shape", "Budget", "Target", "Goal")
	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))

	for n := flagListFrom; n < flagListFrom+flagListCount; n++ {
		lvl := setup.Catalogue.Resolve(n, nil)
		line := match3.LevelLine(lvl)
		if setup.Catalogue.Overridden(n) {
			line += "  [" + lvl.Source + "]"
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println("Gems: " + strings.Join(match3.Legend(match3.FullPalette()), "  "))
	fmt.Println("Run 'gemfall play --level <n>' to start on a level.")
}
