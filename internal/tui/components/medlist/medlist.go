package medlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/doselog/internal/models"
)

type AddMedicationMsg struct{}

type RefillMedicationMsg struct {
	Medication models.Medication
}

type Item struct {
	Medication models.Medication
}

func (i Item) Title() string { return i.Medication.Name }

func (i Item) Description() string {
	m := i.Medication
	days := "-"
	if m.DailyDoses > 0 {
		days = fmt.Sprintf("%.1f", m.DaysRemaining())
	}
	return fmt.Sprintf("%s | %d on hand | %s days left | %d refills", m.ScheduleAbbrev(), m.CurrentInventory, days, m.RefillsRemaining)
}

func (i Item) FilterValue() string { return i.Medication.Name }

type KeyMap struct {
	Add    key.Binding
	Refill key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Refill: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "refill"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(meds []models.Medication, width, height int) Model {
	l := list.New(items(meds), list.NewDefaultDelegate(), width, height)
	l.Title = "Medications"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Refill}
	}

	return Model{list: l, keys: keys}
}

func items(meds []models.Medication) []list.Item {
	out := make([]list.Item, len(meds))
	for i, m := range meds {
		out[i] = Item{Medication: m}
	}
	return out
}

func (m *Model) SetMedications(meds []models.Medication) {
	m.list.SetItems(items(meds))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMedicationMsg{} }
		case key.Matches(msg, m.keys.Refill):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RefillMedicationMsg(i) }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No medications yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
