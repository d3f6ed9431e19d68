package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kidcost/kidcost/internal/domain"
	"github.com/kidcost/kidcost/internal/output"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	eventStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the running session.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf(" kidcost · %s ", m.profile.ChildName)))
	b.WriteString("\n\n")

	snap := m.driver.Snapshot()
	age := m.driver.AgeMonths()
	path := m.driver.Path()
	terminal := domain.TerminalAgeMonths(m.profile.ChildGender, path)

	b.WriteString(m.progress.ViewAs(float64(age) / float64(terminal)))
	b.WriteString("\n\n")

	row := func(label string, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Age", ageLabel(age))
	row("Stage", string(domain.StageAt(age, m.profile.ChildGender, path)))
	row("Savings", output.FormatCurrency(snap.HouseholdSavings))
	row("Spent", output.FormatCurrency(snap.TotalExpenditure))
	row("Benefits", output.FormatCurrency(snap.TotalBenefits))
	b.WriteString("\n")

	if ev, ok := m.driver.NextPendingEvent(); ok {
		b.WriteString(m.renderEvent(ev))
	} else if m.paused {
		b.WriteString(alertStyle.Render("paused"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(alertStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · +/- speed · q quit"))
	return b.String()
}

func (m Model) renderEvent(ev domain.CostEvent) string {
	var b strings.Builder
	b.WriteString(valueStyle.Render(ev.Title))
	b.WriteString("\n")

	for _, item := range ev.CostItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n", item.Label, output.FormatCurrency(item.Amount)))
	}
	for _, item := range ev.BenefitItems {
		b.WriteString(fmt.Sprintf("  %s  +%s\n", item.Label, output.FormatCurrency(item.Amount)))
	}

	if len(ev.Options) > 0 {
		b.WriteString("\n")
		for i, opt := range ev.Options {
			b.WriteString(fmt.Sprintf("  [%d] %s (%s)\n", i+1, opt.Label, output.FormatCurrency(opt.OneTimeCost)))
		}
		b.WriteString(helpStyle.Render("  press a number to decide"))
	} else {
		b.WriteString(helpStyle.Render("  press a to acknowledge"))
	}
	b.WriteString("\n")
	return eventStyle.Render(b.String()) + "\n"
}
