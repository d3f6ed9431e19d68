package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kidcost/kidcost/internal/benefits"
	"github.com/kidcost/kidcost/internal/config"
	"github.com/kidcost/kidcost/internal/datasource"
	"github.com/kidcost/kidcost/internal/events"
	"github.com/kidcost/kidcost/internal/inflation"
	"github.com/kidcost/kidcost/internal/output"
	"github.com/kidcost/kidcost/internal/rates"
	"github.com/kidcost/kidcost/internal/sim"
	"github.com/kidcost/kidcost/internal/tax"
	"github.com/kidcost/kidcost/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: kidcost-tui <profile-file>")
		os.Exit(1)
	}
	profilePath := os.Args[1]

	profile, err := config.NewInputParser().LoadProfile(profilePath)
	if err != nil {
		fmt.Printf("Error loading profile: %v\n", err)
		os.Exit(1)
	}

	opts, err := config.DataSourceOptions()
	if err != nil {
		fmt.Printf("Error reading environment: %v\n", err)
		os.Exit(1)
	}

	tables := rates.NewTables2025()
	client := datasource.NewClient(opts, nil, slog.Default())
	adjuster := inflation.NewFromSource(context.Background(), client)

	taxEngine := tax.NewEngine(tables)
	benefitEngine := benefits.NewEngine(tables)
	generator := events.NewGenerator(taxEngine, benefitEngine, adjuster, tables)

	driver, err := sim.New(profile, generator, slog.Default())
	if err != nil {
		fmt.Printf("Error creating session: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewModel(driver, profile), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Final report after the TUI exits.
	snap := driver.Snapshot()
	output.WriteConsoleReport(os.Stdout, &snap)
}
