package today

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/doselog/internal/models"
)

// Slot is one scheduled dose for the current day.
type Slot struct {
	MedicationID string
	Medication   string
	Window       models.Window
	Start        string
	Taken        bool
}

type LogDoseMsg struct {
	Slot Slot
}

type Item struct {
	Slot Slot
}

func (i Item) Title() string {
	if i.Slot.Taken {
		return "✓ " + i.Slot.Medication
	}
	return "○ " + i.Slot.Medication
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | from %s", i.Slot.Window, i.Slot.Start)
	if i.Slot.Taken {
		desc += " | taken"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Slot.Medication }

type KeyMap struct {
	Log key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Log: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "log dose"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(slots []Slot, width, height int) Model {
	l := list.New(items(slots), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Log}
	}

	return Model{list: l, keys: keys}
}

func items(slots []Slot) []list.Item {
	out := make([]list.Item, len(slots))
	for i, s := range slots {
		out[i] = Item{Slot: s}
	}
	return out
}

func (m *Model) SetSlots(slots []Slot) {
	m.list.SetItems(items(slots))
}

// Slots returns the slots currently shown, in display order.
func (m Model) Slots() []Slot {
	var out []Slot
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i.Slot)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Log) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return LogDoseMsg(i) }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing scheduled today.\n  Add a medication on the Medications tab."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
