package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/doselog/internal/health"
	"github.com/julianstephens/doselog/internal/models"
)

// WriteVaccinations renders the vaccination report to w in format.
func WriteVaccinations(w io.Writer, rows []health.VaccineStatus, format string) error {
	return write(w, rows, format, func() string { return RenderVaccinationTable(rows) })
}

func vaccineStatusStyle(status string) lipgloss.Style {
	switch status {
	case health.StatusUpToDate, health.StatusCompleted:
		return goodStyle
	case health.StatusOverdue:
		return poorStyle
	case health.StatusPending, health.StatusNoRecord:
		return fairStyle
	default:
		return cellStyle
	}
}

func RenderVaccinationTable(rows []health.VaccineStatus) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Vaccinations"))
	b.WriteString("\n")

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.VaccineType, orDash(r.LastDate), r.Status, orDash(r.NextDue)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("VACCINE", "LAST DOSE", "STATUS", "NEXT DUE").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 {
				return cellStyle.Inherit(vaccineStatusStyle(rows[row].Status))
			}
			return cellStyle
		})
	b.WriteString(t.Render())
	return b.String()
}

// WriteDailyTotals renders per-day calorie totals to w in format.
func WriteDailyTotals(w io.Writer, days []models.DailyTotals, format string) error {
	return write(w, days, format, func() string { return RenderDailyTable(days) })
}

func RenderDailyTable(days []models.DailyTotals) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Calories"))
	b.WriteString("\n")

	cells := make([][]string, 0, len(days))
	for _, d := range days {
		cells = append(cells, []string{d.Date, formatKcal(d.Consumed), formatKcal(d.Burned), formatKcal(d.Net())})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("DATE", "CONSUMED", "BURNED", "NET").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	b.WriteString(t.Render())
	return b.String()
}

func formatKcal(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
