package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/registry"
	"github.com/vovakirdan/gemfall/internal/storage"
)

var (
	flagShowRuns  bool
	flagShowBests bool
	flagLimit     int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and level runs",
	Long: `Display the top high scores for a game (default: gemfall), with
--runs the most recent finished levels, and with --bests the best result
per level.

Examples:
  gemfall scores
  gemfall scores gemfall_endless
  gemfall scores --runs --limit 20
  gemfall scores --bests`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Show recent level runs")
	scoresCmd.Flags().BoolVar(&flagShowBests, "bests", false, "Show best result per level")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "gemfall"
	if len(args) == 1 {
		gameID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagShowRuns:
		err = printRuns(store, gameID)
	case flagShowBests:
		err = printBests(store)
	default:
		err = printScores(store, gameID)
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
}

func printScores(store *storage.Store, gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gemfall play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.0f  Last played: %s\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}

func printRuns(store *storage.Store, gameID string) error {
	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent runs - %s\n\n", gameID)
	if len(runs) == 0 {
		fmt.Println("No levels finished yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-8s  %-5s  %-6s  %-6s  %-16s  %s\n", "Level", "Score", "Stars", "Result", "Moves", "Date", "Run")
	for _, r := range runs {
		result := "failed"
		if r.Passed {
			result = "passed"
		}
		fmt.Printf("  %-5d  %-8d  %-5s  %-6s  %-6d  %-16s  %s\n",
			r.Level, r.Score, stars(r.Stars), result, r.MovesUsed, r.CreatedAt.Format("2006-01-02 15:04"), r.ID)
	}
	return nil
}

func printBests(store *storage.Store) error {
	bests, err := store.LevelBests()
	if err != nil {
		return err
	}
	if len(bests) == 0 {
		fmt.Println("No levels finished yet.")
		return nil
	}

	nums := make([]int, 0, len(bests))
	for n := range bests {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	fmt.Printf("  %-5s  %-8s  %-5s  %-5s  %s\n", "Level", "Best", "Stars", "Plays", "Passes")
	for _, n := range nums {
		b := bests[n]
		fmt.Printf("  %-5d  %-8d  %-5s  %-5d  %d\n", n, b.BestScore, stars(b.BestStars), b.Plays, b.Passes)
	}

	highest, err := store.HighestPassed()
	if err != nil {
		return err
	}
	fmt.Printf("\nHighest passed level: %d\n", highest)
	return nil
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 3 {
		n = 3
	}
	return strings.Repeat("*", n) + strings.Repeat(".", 3-n)
}
