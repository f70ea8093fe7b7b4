package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sprog/internal/platform/tui"
	"github.com/vovakirdan/sprog/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start sprog with a demo picker menu",
	Long: `Start sprog in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to run a demo in the terminal.
When a demo is quit, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Run demo
  Tab          - Session log
  Q            - Quit

Examples:
  sprog menu
  sprog menu --fps 60
  sprog menu --db ./sessions.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	st, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := runLogger(st, sinkTerminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		if menuResult.Quit {
			break
		}

		if menuResult.WantsSessions {
			goBack, sErr := tui.RunSessions(store, width, height)
			if sErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from the session log
		}

		if menuResult.DemoID == "" {
			break
		}

		opts := runOptions{demoID: menuResult.DemoID, sink: sinkTerminal}
		if _, err := runDemo(context.Background(), st, opts, store, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
