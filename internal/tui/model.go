package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/doselog/internal/compliance"
	"github.com/julianstephens/doselog/internal/constants"
	"github.com/julianstephens/doselog/internal/doses"
	"github.com/julianstephens/doselog/internal/models"
	"github.com/julianstephens/doselog/internal/report"
	"github.com/julianstephens/doselog/internal/storage"
	"github.com/julianstephens/doselog/internal/tui/components/medlist"
	"github.com/julianstephens/doselog/internal/tui/components/today"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateMedications
	StateCompliance
	StateAddMedication
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

// Services are the application services the TUI drives.
type Services struct {
	Doses       *doses.Logger
	Medications *doses.Medications
	Compliance  *compliance.Service
	Store       storage.Provider
}

type Model struct {
	svc      Services
	profile  models.Profile
	state    SessionState
	keys     KeyMap
	help     help.Model
	today    today.Model
	meds     medlist.Model
	report   string
	form     *huh.Form
	medForm  *MedicationFormModel
	status   string
	alert    string
	err      error
	quitting bool
	width    int
	height   int
	now      func() time.Time
}

func NewModel(svc Services, profile models.Profile) Model {
	m := Model{
		svc:     svc,
		profile: profile,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		today:   today.New(nil, 0, 0),
		meds:    medlist.New(nil, 0, 0),
		now:     time.Now,
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Enter)
	case StateMedications:
		keys = append(keys, m.keys.Add, m.keys.Refill)
	}
	return append(keys, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Enter}
	case StateMedications:
		actions = []key.Binding{m.keys.Add, m.keys.Refill}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the profile, medications, today's slots and the report.
func (m *Model) refresh() {
	if p, err := m.svc.Store.GetProfile(m.profile.ID); err == nil {
		m.profile = p
	}

	meds, err := m.svc.Medications.List(m.profile.ID, false)
	if err != nil {
		m.err = fmt.Errorf("failed to load medications: %w", err)
		return
	}
	m.meds.SetMedications(meds)

	bucketer := compliance.NewBucketer(m.profile)
	date := m.now().In(bucketer.Location()).Format(constants.DateFormat)
	from, to, err := compliance.QueryRange(date, date, bucketer.Location())
	if err != nil {
		m.err = err
		return
	}
	logs, err := m.svc.Doses.History(m.profile.ID, from, to)
	if err != nil {
		m.err = fmt.Errorf("failed to load dose logs: %w", err)
		return
	}
	m.today.SetSlots(TodaySlots(m.profile, meds, logs, date))

	r, err := m.svc.Compliance.Report(m.profile.ID)
	if err != nil {
		m.err = fmt.Errorf("failed to calculate compliance: %w", err)
		return
	}
	m.report = report.RenderTable(r)
}

// TodaySlots lists every slot meds are scheduled for on date, ordered by
// window start, with slots already covered by logs marked taken.
func TodaySlots(profile models.Profile, meds []models.Medication, logs []models.DoseLog, date string) []today.Slot {
	bucketer := compliance.NewBucketer(profile)
	taken := make(map[compliance.Slot]bool, len(logs))
	for _, l := range logs {
		w, d := bucketer.Bucket(l.TakenAt, l.Window)
		taken[compliance.Slot{MedicationID: l.MedicationID, Window: w, Date: d}] = true
	}

	names := make(map[string]string, len(meds))
	for _, med := range meds {
		names[med.ID] = med.Name
	}

	expected, _ := compliance.ExpectedSlots(meds, date, date)
	slots := make([]today.Slot, 0, len(expected))
	for _, s := range expected {
		slots = append(slots, today.Slot{
			MedicationID: s.MedicationID,
			Medication:   names[s.MedicationID],
			Window:       s.Window,
			Start:        profile.WindowStart(s.Window),
			Taken:        taken[s],
		})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].Medication < slots[j].Medication
	})
	return slots
}
