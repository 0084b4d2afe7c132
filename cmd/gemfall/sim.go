package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/games/match3/session"
	"github.com/vovakirdan/gemfall/internal/storage"
)

// simGameID is the id autoplayer runs are stored under.
const simGameID = "gemfall_sim"

var (
	flagSimFrom  int
	flagSimCount int
	flagSimSave  bool
	flagSimThink time.Duration
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autoplayer on campaign levels",
	Long: `Plays levels without a terminal UI. The autoplayer always makes the
first legal swap it finds, shuffles when stuck and lets the watchdog
repair dead boards. Each level prints its score, stars and cascades.

The same --seed gives the same results.

Examples:
  gemfall sim
  gemfall sim --from 10 --count 3 --seed 42
  gemfall sim --count 50 --difficulty hard --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrom, "from", 1, "First level to play")
	simCmd.Flags().IntVar(&flagSimCount, "count", 5, "Number of levels to play")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the runs in the scores database")
	simCmd.Flags().DurationVar(&flagSimThink, "think", 2*time.Second, "Simulated time per move on timed levels")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger("gemfall-sim")
	setup, err := loadSetup(logger)
	if err != nil {
		fail("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagSimSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	fmt.Printf("Autoplayer, seed %d\n\n", seed)
	fmt.Printf("  %-5s  %-18s  %-13s  %-5s  %-6s  %-5s  %-8s  %s\n",
		"Level", "Name", "Score", "Stars", "Result", "Moves", "Cascades", "Combo")

	ctrl := setup.NewController(seed)
	passed := 0
	for n := flagSimFrom; n < flagSimFrom+flagSimCount; n++ {
		sum := autoplay(ctrl, n, flagSimThink)
		if sum.Passed {
			passed++
		}
		result := "failed"
		if sum.Passed {
			result = "passed"
		}
		fmt.Printf("  %-5d  %-18s  %-13s  %-5s  %-6s  %-5d  %-8d  x%d\n",
			sum.Level, ctrl.Level().Name, fmt.Sprintf("%d/%d", sum.Score, sum.Target),
			stars(sum.Stars), result, sum.MovesUsed, sum.Cascades, sum.MaxCombo)

		if store != nil {
			if _, err := store.SaveRun(storage.Run{
				GameID:    simGameID,
				Level:     sum.Level,
				Score:     sum.Score,
				Stars:     sum.Stars,
				Passed:    sum.Passed,
				Chests:    sum.Chests,
				MovesUsed: sum.MovesUsed,
				Seed:      seed,
			}); err != nil {
				logger.Warn("could not save run", "level", sum.Level, "err", err)
			}
		}
	}

	fmt.Printf("\nPassed %d of %d levels\n", passed, flagSimCount)
}

// autoplay plays one level to the end on a simulated clock and returns
// its summary.
func autoplay(ctrl *session.Controller, level int, think time.Duration) session.Summary {
	ctrl.Start(level)
	now := time.Unix(0, 0)
	interval := ctrl.WatchdogInterval()

	// Bounded so a board the repairs cannot fix still ends.
	for i := 0; i < 10000 && !ctrl.GameOver(); i++ {
		now = now.Add(interval)
		if m, ok := ctrl.Hint(); ok {
			ctrl.Tap(m.From)
			ctrl.Tap(m.To)
			ctrl.Tick(think)
			continue
		}
		if ctrl.Shuffle() {
			continue
		}
		ctrl.WatchdogCheck(now)
		ctrl.Tick(interval)
	}
	return ctrl.Summary()
}
