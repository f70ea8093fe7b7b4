package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sprog/internal/registry"
	"github.com/vovakirdan/sprog/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [demo]",
	Short: "Show logged sessions",
	Long: `Without a demo, show aggregate statistics for every demo that has run.
With a demo, list its most recent sessions.

Examples:
  sprog stats
  sprog stats plasma --limit 20
  sprog stats plasma --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of sessions to show")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the logged sessions instead")
}

func runStats(_ *cobra.Command, args []string) {
	demoID := ""
	if len(args) == 1 {
		demoID = args[0]
		if !registry.Exists(demoID) {
			fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
			fmt.Fprintln(os.Stderr, "Run 'sprog list' to see available demos.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagStatsClear:
		err = store.ClearSessions(demoID)
		if err == nil {
			fmt.Println("Sessions cleared.")
		}
	case demoID == "":
		err = printAllStats(store)
	default:
		err = printSessions(store, demoID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllDemoStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %5s  %9s  %6s  %8s  %6s  %s\n", "Demo", "Runs", "Frames", "FPS", "Overruns", "Failed", "Last run")
	fmt.Printf("  %-10s  %5s  %9s  %6s  %8s  %6s  %s\n", "----", "----", "------", "---", "--------", "------", "--------")
	for _, d := range registry.List() {
		s, ok := all[d.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s  %5d  %9d  %6.1f  %8d  %6d  %s\n",
			d.ID, s.Runs, s.TotalFrames, s.AvgFPS, s.Overruns, s.Failures, formatTime(s.LastPlayed))
	}
	return nil
}

func printSessions(store *storage.Store, demoID string) error {
	sessions, err := store.RecentSessions(demoID, flagStatsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Sessions - %s\n", demoID)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'sprog run %s' to log the first one.\n", demoID)
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %7s  %6s  %8s  %9s  %s\n", "Started", "Sink", "Frames", "FPS", "Overruns", "Max frame", "Result")
	fmt.Printf("  %-16s  %-8s  %7s  %6s  %8s  %9s  %s\n", "-------", "----", "------", "---", "--------", "---------", "------")
	for _, s := range sessions {
		result := "ok"
		if s.Error != "" {
			result = s.Error
		}
		fmt.Printf("  %-16s  %-8s  %7d  %6.1f  %8d  %9s  %s\n",
			formatTime(s.StartedAt), s.Sink, s.Frames, s.FPS(), s.Overruns,
			s.MaxFrame.Round(time.Microsecond), result)
	}

	st, err := store.GetDemoStats(demoID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Total: %d runs, %d frames, %.1f fps average\n", st.Runs, st.TotalFrames, st.AvgFPS)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
