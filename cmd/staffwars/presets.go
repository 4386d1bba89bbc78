package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/staff-wars/internal/config"
	"github.com/vovakirdan/staff-wars/internal/notes"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty and note range presets",
	Long:  `Shows the difficulty presets, note range presets and clefs that play and serve accept.`,
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	fmt.Println("Difficulty (--difficulty):")
	fmt.Println()
	for _, p := range config.Presets {
		marker := " "
		if config.IsFixedPreset(p.Preset) {
			marker = "*"
		}
		fmt.Printf("  %-8s %s %s\n", p.Preset, marker, p.Description)
	}
	fmt.Println()
	fmt.Println("  * disables leveling; the game stays at level 1")

	fmt.Println()
	fmt.Println("Note ranges (--range):")
	fmt.Println()
	for _, r := range notes.RangePresets {
		fmt.Printf("  %-13s %-4s - %-4s %s\n", r.Name, r.Min, r.Max, r.Label)
	}

	fmt.Println()
	fmt.Println("Clefs (--clef):")
	fmt.Println()
	for _, c := range notes.Clefs {
		lines := c.Lines()
		fmt.Printf("  %-7s lines %s to %s\n", c, lines[0], lines[len(lines)-1])
	}
}
