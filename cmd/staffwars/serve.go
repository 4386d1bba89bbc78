package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/staff-wars/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	serveFlags      gameFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the staffwars SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with its own engine; nothing is shared
between players except the practice journal, which records each run under the
SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.staffwars/host_key

Examples:
  staffwars serve                           # Listen on :23234 with auto-generated key
  staffwars serve --ssh :2222               # Listen on port 2222
  staffwars serve --host-key ./my_host_key  # Use specific host key
  staffwars serve --clef bass --difficulty hard

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveFlags.register(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	game, preset, err := serveFlags.load()
	if err != nil {
		return err
	}

	logger, logCloser, err := newLogger("staffwars-ssh", os.Stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        game,
		Difficulty:  string(preset),
		TickRate:    flagFPS,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting staffwars SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
