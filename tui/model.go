package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"safehours/compliance"
	"safehours/storage"
)

// ViewMode selects the range shown in the main panel.
type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewWeek
	ViewMonth
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeAdd
	modeConfirmDelete
	modeHelp
)

// Model is the dashboard state. The collection is only replaced after the
// store accepted the new version.
type Model struct {
	store      storage.Store
	collection storage.Collection

	today    storage.Date
	date     storage.Date
	selected int
	viewMode ViewMode
	mode     inputMode
	input    textinput.Model

	width, height int

	message      string
	messageError bool
}

// NewModel loads the collection from store and opens the dashboard on today.
func NewModel(store storage.Store, today storage.Date) (Model, error) {
	c, err := store.Load()
	if err != nil {
		return Model{}, fmt.Errorf("failed to load activities: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "HH:MM HOURS KIND [PRE/POST] [note]   e.g. 08:00 1.5 flight 0.5 steep turns"
	input.CharLimit = 160
	input.Width = 72
	input.Prompt = "+ "

	return Model{
		store:      store,
		collection: c,
		today:      today,
		date:       today,
		input:      input,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		}
		return m.updateNormal(msg)
	}

	if m.mode == modeAdd {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.mode == modeHelp {
		return renderHelpView(m)
	}
	return renderMainView(m)
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m = m.setDate(m.date.Previous())
	case "right", "l":
		m = m.setDate(m.date.AddDays(1))
	case "t":
		m = m.setDate(m.today)
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.dayEntries())-1 {
			m.selected++
		}
	case "1":
		m.viewMode = ViewDay
	case "2":
		m.viewMode = ViewWeek
	case "3":
		m.viewMode = ViewMonth
	case "n", "a":
		m.mode = modeAdd
		m.message = ""
		m.input.Reset()
		return m, m.input.Focus()
	case "d", "x":
		entry, ok := m.selectedEntry()
		if !ok {
			m.setMessage("Nothing to delete on "+m.date.String(), true)
			break
		}
		m.mode = modeConfirmDelete
		m.setMessage(fmt.Sprintf("Delete %s %s-%s? [y/N]", entry.Kind, entry.Start, entry.End), false)
	case "r":
		c, err := m.store.Load()
		if err != nil {
			m.setMessage(err.Error(), true)
			break
		}
		m.collection = c
		m = m.setDate(m.date)
		m.setMessage("Reloaded", false)
	case "?", "e":
		m.mode = modeHelp
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		m.message = ""
		return m, nil
	case tea.KeyEnter:
		return m.submitAdd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	cand, err := ParseQuickAdd(m.input.Value(), m.date)
	if err != nil {
		m.setMessage(err.Error(), true)
		return m, nil
	}

	next, entry, err := m.collection.Add(cand)
	if err != nil {
		m.setMessage(err.Error(), true)
		return m, nil
	}
	if err := m.store.Save(next); err != nil {
		m.setMessage(err.Error(), true)
		return m, nil
	}

	m.collection = next
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	for i, e := range m.dayEntries() {
		if e.ID == entry.ID {
			m.selected = i
		}
	}

	msg := fmt.Sprintf("Added %s %s-%s", entry.Kind, entry.Start, entry.End)
	m.setMessage(msg+alertSuffix(m.report()), false)
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	if msg.String() != "y" && msg.String() != "Y" {
		m.setMessage("Delete cancelled", false)
		return m, nil
	}

	entry, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}
	next := m.collection.Remove(entry.ID)
	if err := m.store.Save(next); err != nil {
		m.setMessage(err.Error(), true)
		return m, nil
	}

	logrus.WithField("id", entry.ID).Debug("removed activity")
	m.collection = next
	m = m.setDate(m.date)
	m.setMessage(fmt.Sprintf("Deleted %s %s-%s", entry.Kind, entry.Start, entry.End), false)
	return m, nil
}

func (m Model) setDate(d storage.Date) Model {
	m.date = d
	if n := len(m.dayEntries()); m.selected >= n {
		m.selected = max(0, n-1)
	}
	return m
}

func (m *Model) setMessage(text string, isError bool) {
	m.message = text
	m.messageError = isError
}

func (m Model) dayEntries() []storage.Entry {
	return m.collection.OnDate(m.date)
}

func (m Model) selectedEntry() (storage.Entry, bool) {
	entries := m.dayEntries()
	if m.selected < 0 || m.selected >= len(entries) {
		return storage.Entry{}, false
	}
	return entries[m.selected], true
}

func (m Model) report() compliance.Report {
	return compliance.BuildReport(m.collection.Records(), m.date)
}

// alertSuffix lists the metrics at the report's worst tier, if above normal.
func alertSuffix(report compliance.Report) string {
	worst := report.Worst()
	if worst == compliance.TierNormal {
		return ""
	}
	var names []string
	for _, a := range report.Assessments {
		if a.Tier == worst {
			names = append(names, a.Metric.String())
		}
	}
	return fmt.Sprintf(" | %s: %s", strings.ToUpper(worst.String()), strings.Join(names, ", "))
}

// ParseQuickAdd reads the dashboard's one-line add syntax:
//
//	HH:MM HOURS KIND [PRE/POST] [note...]
//
// A numeric fourth token is taken as pre/post hours.
func ParseQuickAdd(line string, date storage.Date) (storage.Candidate, error) {
	fields := strings.Fields(line)
	required := []string{"start", "duration", "activity"}
	if len(fields) < len(required) {
		return storage.Candidate{}, &storage.MissingFieldError{Field: required[len(fields)]}
	}

	cand := storage.Candidate{
		Date:     date.String(),
		Start:    fields[0],
		Duration: fields[1],
		Kind:     fields[2],
	}
	rest := fields[3:]
	if len(rest) > 0 {
		if _, err := strconv.ParseFloat(rest[0], 64); err == nil {
			cand.PrePost = rest[0]
			rest = rest[1:]
		}
	}
	cand.Note = strings.Join(rest, " ")
	return cand, nil
}
