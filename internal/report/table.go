package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/doselog/internal/compliance"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	poorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Percentages at or above these render green and amber respectively.
const (
	goodThreshold = 90.0
	fairThreshold = 70.0
)

func percentStyle(p float64) lipgloss.Style {
	switch {
	case p >= goodThreshold:
		return goodStyle
	case p >= fairThreshold:
		return fairStyle
	default:
		return poorStyle
	}
}

func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// RenderTable returns the report as a summary line and a per-medication table.
func RenderTable(r compliance.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Compliance %s to %s", r.PeriodStart, r.PeriodEnd)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Overall: %s  (taken %d of %d, missed %d)\n",
		percentStyle(r.CompliancePercentage).Render(FormatPercent(r.CompliancePercentage)),
		r.TakenDoses, r.TotalScheduled, r.MissedDoses))

	if len(r.Medications) == 0 {
		b.WriteString(dimStyle.Render("No active medications."))
		return b.String()
	}

	rows := make([][]string, 0, len(r.Medications))
	for _, m := range r.Medications {
		rows = append(rows, []string{
			m.Name,
			m.Schedule,
			strconv.Itoa(m.Taken),
			strconv.Itoa(m.Expected),
			strconv.Itoa(m.Missed),
			FormatPercent(m.CompliancePercentage),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("MEDICATION", "SCHEDULE", "TAKEN", "EXPECTED", "MISSED", "COMPLIANCE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 5 {
				return cellStyle.Inherit(percentStyle(r.Medications[row].CompliancePercentage))
			}
			return cellStyle
		})

	b.WriteString(t.Render())
	return b.String()
}
