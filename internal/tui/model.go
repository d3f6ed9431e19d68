// Package tui is an interactive front-end for one simulation session. It
// paces the driver with a timer, surfaces pending events as they fire and
// lets the user decide them; pacing and rendering live here, never in the
// core.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/sim"
)

// tickMsg is the pacing heartbeat.
type tickMsg time.Time

// Model represents the application state: a driver plus view concerns.
type Model struct {
	driver  *sim.Driver
	profile *domain.Profile

	progress progress.Model
	width    int
	height   int

	paused bool
	err    error
}

// NewModel builds the TUI over a prepared driver.
func NewModel(driver *sim.Driver, profile *domain.Profile) Model {
	return Model{
		driver:   driver,
		profile:  profile,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) tickCmd() tea.Cmd {
	// Base cadence of one simulated month per 150ms, scaled by the
	// driver's tick-rate multiplier.
	interval := time.Duration(float64(150*time.Millisecond) / m.driver.TickRate())
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the session and the pacing timer.
func (m Model) Init() tea.Cmd {
	if err := m.driver.Start(); err != nil {
		m.err = err
		return tea.Quit
	}
	return m.tickCmd()
}

// Update handles pacing ticks and key input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-8, 60)
		return m, nil

	case tickMsg:
		if m.paused || m.driver.Status() != domain.StatusRunning {
			return m, m.tickCmd()
		}
		if err := m.driver.Tick(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.driver.Status() == domain.StatusStopped {
			return m, tea.Quit
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.driver.End()
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
		return m, nil
	case "+":
		m.err = m.driver.SetTickRate(m.driver.TickRate() * 2)
		return m, nil
	case "-":
		m.err = m.driver.SetTickRate(m.driver.TickRate() / 2)
		return m, nil
	}

	ev, ok := m.driver.NextPendingEvent()
	if !ok {
		return m, nil
	}

	if key == "a" && !ev.RequiresDecision {
		m.err = m.driver.Acknowledge(ev.ID)
		return m, nil
	}
	if key >= "1" && key <= "9" && len(ev.Options) > 0 {
		idx := int(key[0] - '1')
		if idx < len(ev.Options) {
			m.err = m.driver.Decide(ev.ID, idx)
		}
		return m, nil
	}
	return m, nil
}

// ageLabel formats an age in months as years and months.
func ageLabel(months int) string {
	return fmt.Sprintf("%dy %dm", months/12, months%12)
}
