package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/staff-wars/internal/core"
	"github.com/vovakirdan/staff-wars/internal/platform/tui"
	"github.com/vovakirdan/staff-wars/internal/storage"
)

var playFlags gameFlags

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  A-G        - Name the note
  P/Space    - Pause
  R          - Play again (after game over)
  V          - Toggle answer reveal for the next game
  ?          - More keys
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower notes, gentler speed-up, 5 lives
  normal - Configured speed and lives
  hard   - Faster notes, steeper speed-up, 2 lives
  fixed  - Speed never increases

Examples:
  staffwars play
  staffwars play --clef bass
  staffwars play --range advanced --difficulty hard
  staffwars play --min C4 --max C5 --filter lines
  staffwars play --config ./my-staffwars.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playFlags.register(playCmd)
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := playFlags.load()
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs only go to --log-file
	logger, logCloser, err := newLogger("staffwars", io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open the journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	session, err := tui.NewSession(tui.SessionOptions{
		Config:     cfg,
		Difficulty: string(preset),
		Seed:       flagSeed,
		Store:      store,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Start(); err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
	if err := tui.Run(session, runtime); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
