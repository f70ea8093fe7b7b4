// sprog runs small pixel demos on a fixed-rate game loop, in the terminal,
// on a Linux framebuffer or headless into a recording.
//
// Usage:
//
//	sprog list               - List available demos
//	sprog run <demo>         - Run a demo
//	sprog menu               - Pick demos interactively
//	sprog stats [demo]       - Show logged sessions
//	sprog replay <file>      - Inspect or export a recording
//	sprog config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Override the configured frame rate
//	--config <path>     - Configuration file
//	--db <path>         - Session database (default: ~/.sprog/sessions.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import demos to register them
	_ "github.com/vovakirdan/sprog/internal/demos"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sprog",
	Short: "sprog - fixed-rate pixel demos for tiny displays",
	Long: `sprog runs pixel demos on a fixed-rate game loop with a 24-colour
indexed framebuffer and button input.

Available commands:
  list     - Show all available demos
  run      - Run a demo on the terminal, a framebuffer or a recording
  menu     - Interactive demo picker
  stats    - View logged sessions
  replay   - Inspect or export a recording
  config   - Print the effective configuration

Examples:
  sprog list
  sprog run plasma
  sprog run mover --fps 60
  sprog run tunnel --sink record --out tunnel.sprg --frames 300
  sprog run wave --sink fbdev
  sprog stats plasma`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sprog/sessions.db", "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (empty = from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
