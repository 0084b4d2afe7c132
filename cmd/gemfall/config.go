package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/config"
)

var flagConfigWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default match3.yaml",
	Long: `Prints the built-in match3.yaml. With --write the file is saved to
~/.gemfall/configs/match3.yaml, where it is picked up on the next start.
An existing file is never overwritten.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Save to ~/.gemfall/configs/match3.yaml")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.DefaultYAML()
	if !flagConfigWrite {
		os.Stdout.Write(data)
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fail("cannot get home directory: %v", err)
	}
	path := filepath.Join(home, ".gemfall", "configs", "match3.yaml")
	if _, err := os.Stat(path); err == nil {
		fail("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fail("creating config directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fail("writing config: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
