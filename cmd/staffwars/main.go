// staffwars is a timed note-reading drill for the terminal.
//
// Usage:
//
//	staffwars play           - Play in this terminal
//	staffwars serve          - Start SSH server for remote play
//	staffwars stats          - Browse the practice journal
//	staffwars presets        - List difficulty and range presets
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for a reproducible note sequence
//	--db <path>          - Set journal path (default: ~/.staffwars/journal.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file while the game owns the terminal
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/staff-wars/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "staffwars",
	Short: "Staff Wars - name the notes before they reach the line",
	Long: `Staff Wars is a terminal drill for reading music notation.

Notes travel along the staff toward a danger line. Name each one with its
letter (a-g) before it arrives. Correct answers score and speed the game up;
wrong or late answers cost a life.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  stats    - Browse per-note accuracy and recent runs
  presets  - List difficulty and note range presets

Examples:
  staffwars play
  staffwars play --clef bass --range intermediate
  staffwars serve --ssh :2222
  staffwars stats`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the practice journal")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(presetsCmd)
}

// newLogger builds the process logger from the global flags. fallback receives
// logs when no --log-file is given. The returned closer releases the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	var closer io.Closer = io.NopCloser(nil)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
