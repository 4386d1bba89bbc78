package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/staff-wars/internal/platform/tui"
	"github.com/vovakirdan/staff-wars/internal/storage"
)

var (
	flagStatsPlain bool
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Browse the practice journal",
	Long: `Show how well each note has been read, weakest notes first, and the
most recent runs.

Examples:
  staffwars stats           # Interactive table
  staffwars stats --plain   # Print and exit
  staffwars stats --clear   # Forget every recorded run`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsPlain, "plain", false, "Print the note table instead of opening the browser")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete every recorded run")
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening journal: %w", err)
	}
	defer store.Close()

	if flagStatsClear {
		if err := store.ClearJournal(); err != nil {
			return err
		}
		fmt.Println("Journal cleared.")
		return nil
	}

	if flagStatsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printStats(store)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunStats(store, width, height)
}

func printStats(store *storage.Store) error {
	stats, err := store.NoteStats()
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println("Nothing recorded yet.")
		fmt.Println()
		fmt.Println("Play 'staffwars play' to start the journal!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %5s  %5s  %8s  %7s\n", "Note", "Seen", "Right", "Accuracy", "Avg")
	fmt.Printf("  %-4s  %5s  %5s  %8s  %7s\n", "----", "----", "-----", "--------", "---")

	for _, n := range stats {
		avg := "-"
		if n.Correct > 0 {
			avg = fmt.Sprintf("%dms", n.AvgMillis)
		}
		fmt.Printf("  %-4s  %5d  %5d  %7.0f%%  %7s\n", n.Label, n.Attempts, n.Correct, n.Accuracy()*100, avg)
	}
	return nil
}
