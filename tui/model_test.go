package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"safehours/storage"
)

var testDay = storage.Date{Year: 2024, Month: time.March, Day: 7}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func newTestModel(t *testing.T, seed ...storage.Candidate) (Model, *storage.CSVStore) {
	t.Helper()
	store := storage.NewCSVStore(filepath.Join(t.TempDir(), "activities.csv"))
	c := storage.NewCollection()
	var err error
	for _, cand := range seed {
		c, _, err = c.Add(cand)
		require.NoError(t, err)
	}
	require.NoError(t, store.Save(c))

	m, err := NewModel(store, testDay)
	require.NoError(t, err)
	return m, store
}

func TestAddThroughInput(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, runes("n"))
	require.Equal(t, modeAdd, m.mode)

	m = press(t, m, runes("08:00 2 flight 0.5 pattern work"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeNormal, m.mode)
	require.False(t, m.messageError, m.message)
	require.Equal(t, "Added Flight 08:00-10:00", m.message)

	saved, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 1, saved.Len())
	e := saved.Entries()[0]
	require.Equal(t, testDay, e.Date)
	require.Equal(t, 0.5, e.PrePost)
	require.Equal(t, "pattern work", e.Note)
}

func TestAddOverlapKeepsInputOpen(t *testing.T) {
	m, store := newTestModel(t, storage.Candidate{Date: "2024-03-07", Start: "08:00", Duration: "2", Kind: "Flight"})

	m = press(t, m, runes("n"), runes("09:00 1 flight"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.messageError)
	require.Contains(t, m.message, "time conflict")
	require.Equal(t, modeAdd, m.mode, "the line stays open for correction")

	saved, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 1, saved.Len())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, modeNormal, m.mode)
}

func TestAddReportsViolation(t *testing.T) {
	m, _ := newTestModel(t, storage.Candidate{Date: "2024-03-07", Start: "06:00", Duration: "5", Kind: "Flight"})

	m = press(t, m, runes("n"), runes("12:00 4 flight"), tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.messageError)
	require.Contains(t, m.message, "| VIOLATION: Flight Instruction")
}

func TestNavigateDays(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, storage.Date{Year: 2024, Month: time.March, Day: 5}, m.date)

	m = press(t, m, runes("l"))
	require.Equal(t, storage.Date{Year: 2024, Month: time.March, Day: 6}, m.date)

	m = press(t, m, runes("t"))
	require.Equal(t, testDay, m.date)
}

func TestSelectAndDelete(t *testing.T) {
	m, store := newTestModel(t,
		storage.Candidate{Date: "2024-03-07", Start: "08:00", Duration: "1", Kind: "Flight"},
		storage.Candidate{Date: "2024-03-07", Start: "10:00", Duration: "1", Kind: "Ground"},
	)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.selected, "selection stops at the last entry")

	m = press(t, m, runes("d"))
	require.Equal(t, modeConfirmDelete, m.mode)
	m = press(t, m, runes("n"))
	require.Equal(t, modeNormal, m.mode)
	require.Equal(t, 2, m.collection.Len())

	m = press(t, m, runes("d"), runes("y"))
	require.Equal(t, 1, m.collection.Len())
	require.Equal(t, 0, m.selected)
	require.Equal(t, storage.KindFlight, m.dayEntries()[0].Kind)

	saved, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 1, saved.Len())
}

func TestDeleteOnEmptyDay(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("d"))
	require.Equal(t, modeNormal, m.mode)
	require.True(t, m.messageError)
}

func TestViewShowsDayAndMetrics(t *testing.T) {
	m, _ := newTestModel(t,
		storage.Candidate{Date: "2024-03-06", Start: "18:00", Duration: "4", Kind: "Ground"},
		storage.Candidate{Date: "2024-03-07", Start: "06:00", Duration: "2", Kind: "Flight", Note: "xc"},
	)
	m = press(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	view := m.View()
	require.Contains(t, view, "2024-03-07")
	require.Contains(t, view, "06:00-08:00")
	require.Contains(t, view, "CAUTION")
	require.Contains(t, view, "Rest Period")

	for _, key := range []string{"2", "3"} {
		m = press(t, m, runes(key))
		require.NotEmpty(t, m.View())
	}

	m = press(t, m, runes("?"))
	require.Contains(t, m.View(), "61.195(j)")
	m = press(t, m, runes("x"))
	require.Equal(t, modeNormal, m.mode)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestParseQuickAdd(t *testing.T) {
	cand, err := ParseQuickAdd("08:00 1.5 sim 0.5 holds and approaches", testDay)
	require.NoError(t, err)
	require.Equal(t, storage.Candidate{
		Date:     "2024-03-07",
		Start:    "08:00",
		Duration: "1.5",
		Kind:     "sim",
		PrePost:  "0.5",
		Note:     "holds and approaches",
	}, cand)

	cand, err = ParseQuickAdd("13:00 2 ground oral prep", testDay)
	require.NoError(t, err)
	require.Empty(t, cand.PrePost)
	require.Equal(t, "oral prep", cand.Note)

	_, err = ParseQuickAdd("13:00 2", testDay)
	var missing *storage.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "activity", missing.Field)

	_, err = ParseQuickAdd("  ", testDay)
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "start", missing.Field)
}

func TestGroupByKind(t *testing.T) {
	entries := []storage.Entry{
		{ID: "a", Record: storage.Record{Date: testDay, Start: 480, End: 540, Kind: storage.KindGround}},
		{ID: "b", Record: storage.Record{Date: testDay, Start: 600, End: 720, Kind: storage.KindFlight}},
		{ID: "c", Record: storage.Record{Date: testDay.Previous(), Start: 600, End: 660, Kind: storage.KindGround}},
		{ID: "d", Record: storage.Record{Date: testDay.AddDays(-10), Start: 600, End: 660, Kind: storage.KindGround}},
	}
	first, last := ViewRange(ViewWeek, testDay)
	groups := GroupByKind(FilterEntriesByRange(entries, first, last))

	require.Len(t, groups, 2)
	require.Equal(t, storage.KindFlight, groups[0].Kind)
	require.Equal(t, 2.0, groups[0].Hours)
	require.Equal(t, storage.KindGround, groups[1].Kind)
	require.Equal(t, "a", groups[1].Entries[0].ID, "newest first")
	require.Equal(t, "c", groups[1].Entries[1].ID)
}

func TestRunTimelineSteps(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(48, 14)

	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	last := runTimeline(s, nil, testDay)
	require.Equal(t, testDay.AddDays(1), last)
}

func TestReloadDoesNotLogToTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.StandardLogger()
	prev := logger.Out
	logger.SetOutput(&buf)
	defer logger.SetOutput(prev)

	m, store := newTestModel(t)
	bad := "Date,Start,End,Duration,Pre/Post,Activity,Note\n" +
		"2024-03-07,08:00,10:00,2,0,Flight,\n" +
		"not a row\n"
	require.NoError(t, os.WriteFile(store.Path, []byte(bad), 0644))

	restore := muteLogging()
	m = press(t, m, runes("r"))
	restore()
	require.Equal(t, 1, m.collection.Len())
	require.Empty(t, buf.String(), "skipped rows are not written over the screen")

	logrus.Warn("after")
	require.Contains(t, buf.String(), "after")
}
