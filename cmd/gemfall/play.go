package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/games/match3"
	"github.com/vovakirdan/gemfall/internal/platform/tui"
	"github.com/vovakirdan/gemfall/internal/registry"
)

var (
	flagStartLevel int
	flagEndless    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play gemfall",
	Long: `Start playing the campaign, or endless mode with --endless.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select a gem, then an adjacent gem to swap
  Mouse click  - Select the gem under the pointer
  X            - Shuffle (limited uses per level)
  H            - Toggle the hint
  P/Esc        - Pause
  R            - Restart the level
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - One extra shuffle and three extra moves per level
  normal - The config as loaded
  hard   - No shuffles and two fewer moves per level
  fixed  - The config file values, nothing adjusted

Examples:
  gemfall play
  gemfall play --level 10
  gemfall play --endless --difficulty hard
  gemfall play --config ./my-match3.yaml --levels ./packs`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Level to start on (default: 1)")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger("gemfall")
	if _, err := loadSetup(logger); err != nil {
		fail("%v", err)
	}

	// The game loads its setup from these on Reset
	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(flagDifficulty)
	match3.SetLevelsDir(flagLevelsDir)
	match3.SetStartLevel(flagStartLevel)
	match3.SetLogger(logger)

	gameID := "gemfall"
	if flagEndless {
		gameID = "gemfall_endless"
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fail("cannot create game: %v", err)
	}

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
