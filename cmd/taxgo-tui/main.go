package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/tui"
)

func main() {
	year := flag.Int("tax-year", 2024, "tax year of the embedded rules")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: taxgo-tui [--tax-year YEAR] [profile-file]")
		flag.PrintDefaults()
	}
	flag.Parse()

	profilePath := flag.Arg(0)
	if profilePath != "" {
		if _, err := os.Stat(profilePath); os.IsNotExist(err) {
			fmt.Printf("Error: profile file not found: %s\n", profilePath)
			os.Exit(1)
		}
	}

	engine, err := calculation.NewCalculationEngineForYear(*year)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(engine, profilePath),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
