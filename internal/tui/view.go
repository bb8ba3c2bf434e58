package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/picker"
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	timeStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	focusStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	alertStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("196")).Padding(1, 3)
	buttonStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("69")).Padding(0, 2)
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	if m.alertVisible {
		return m.place(renderAlert())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Countdown"))
	b.WriteString("\n\n")
	b.WriteString(renderTime(m))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.remainingFraction()))
	b.WriteString("\n\n")
	b.WriteString(renderPicker(m.picker, m.pickerLocked()))
	b.WriteString("\n\n")
	b.WriteString(renderStatus(m.engine.State()))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return m.place(b.String())
}

// place centers content once the terminal size is known.
func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func renderTime(m Model) string {
	style := timeStyle
	switch m.engine.State() {
	case countdown.Started:
		style = style.Foreground(lipgloss.Color("46"))
	case countdown.Finished:
		style = style.Foreground(lipgloss.Color("196"))
	case countdown.Reset:
	}
	return style.Render(countdown.Format(m.displayTime()))
}

// renderPicker draws both columns as small wheels with their unit labels.
func renderPicker(p picker.Picker, locked bool) string {
	columns := []string{
		renderWheel(p, picker.MinutesColumn, locked),
		renderUnit(picker.MinutesColumn),
		renderWheel(p, picker.SecondsColumn, locked),
		renderUnit(picker.SecondsColumn),
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, columns...)
}

func renderWheel(p picker.Picker, c picker.Column, locked bool) string {
	rows := picker.Rows(c)
	selected := p.Value(c)
	lines := make([]string, 0, 2*wheelRadius+1)
	for off := -wheelRadius; off <= wheelRadius; off++ {
		idx := (selected + off + len(rows)) % len(rows)
		label := fmt.Sprintf("%3s", rows[idx])
		switch {
		case off != 0:
			lines = append(lines, dimStyle.Render(" "+label+" "))
		case p.Focus == c && !locked:
			lines = append(lines, focusStyle.Render("›"+label+" "))
		default:
			lines = append(lines, selectedStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(lines, "\n")
}

func renderUnit(c picker.Column) string {
	return dimStyle.Render(c.Unit() + "  ")
}

func renderStatus(s countdown.State) string {
	switch s {
	case countdown.Started:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("● running")
	case countdown.Finished:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("■ finished")
	case countdown.Reset:
		return dimStyle.Render("○ ready")
	default:
		return ""
	}
}

func renderAlert() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		selectedStyle.Render(alertTitle),
		"",
		alertMessage,
		"",
		buttonStyle.Render(alertAction),
	)
	return alertStyle.Render(content)
}
