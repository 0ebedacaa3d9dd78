package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/doselog/internal/tui/components/medlist"
	"github.com/julianstephens/doselog/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddMedication {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.today.SetSize(msg.Width-h, msg.Height-v-4)
		m.meds.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case today.LogDoseMsg:
		m.logDose(msg.Slot)
		return m, nil

	case medlist.AddMedicationMsg:
		m.medForm = NewMedicationFormModel()
		m.form = NewMedicationForm(m.medForm)
		m.state = StateAddMedication
		return m, m.form.Init()

	case medlist.RefillMedicationMsg:
		m.refill(msg.Medication.Name)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.clearStatus()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.today, cmd = m.today.Update(msg)
	case StateMedications:
		m.meds, cmd = m.meds.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateMedications
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.addMedication()
		m.state = StateMedications
	case huh.StateAborted:
		m.state = StateMedications
	}
	return m, cmd
}

// logDose records the slot's dose now, tagged with the slot's window so it
// counts for that slot regardless of the time of day.
func (m *Model) logDose(slot today.Slot) {
	m.clearStatus()
	if slot.Taken {
		m.status = fmt.Sprintf("%s already logged for %s", slot.Medication, slot.Window)
		return
	}

	w := slot.Window
	_, alert, err := m.svc.Doses.LogDose(m.profile.ID, slot.Medication, nil, &w)
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Logged %s (%s)", slot.Medication, slot.Window)
	if alert != nil {
		m.alert = alert.String()
	}
	m.refresh()
}

func (m *Model) addMedication() {
	m.clearStatus()
	med, err := m.medForm.Medication(m.profile.ID)
	if err != nil {
		m.err = err
		return
	}
	if med, err = m.svc.Medications.Add(med); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Added %s (%s)", med.Name, med.ScheduleAbbrev())
	m.refresh()
}

func (m *Model) refill(name string) {
	m.clearStatus()
	med, err := m.svc.Medications.Refill(m.profile.ID, name, 0)
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("Refilled %s: %d on hand, %d refills left", med.Name, med.CurrentInventory, med.RefillsRemaining)
	m.refresh()
}

func (m *Model) clearStatus() {
	m.status, m.alert, m.err = "", "", nil
}
