package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.today.View())
	case StateMedications:
		content = docStyle.Render(m.meds.View())
	case StateCompliance:
		content = docStyle.Render(m.report)
	case StateAddMedication:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Medications", "Compliance"} {
		active := m.state == SessionState(i) ||
			(m.state == StateAddMedication && SessionState(i) == StateMedications)
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, "  "+m.profile.Name)...)
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return dangerStyle.Render("✗ " + m.err.Error())
	case m.alert != "":
		return warningStyle.Render("⚠ " + m.alert)
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	return ""
}
