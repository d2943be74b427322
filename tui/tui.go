package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"safehours/storage"
	"safehours/tui/components"
)

// LaunchTUI initializes and launches the terminal UI using Bubbletea.
func LaunchTUI(store storage.Store) error {
	defer muteLogging()()

	m, err := NewModel(store, storage.Today())
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// ShowTimeline opens a full-screen 24-hour timeline of date.
func ShowTimeline(records []storage.Record, date storage.Date) error {
	defer muteLogging()()

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer s.Fini()

	runTimeline(s, records, date)
	return nil
}

// muteLogging discards log output while a full-screen view owns the terminal,
// since a reload may log skipped rows. Call the returned func to restore it.
func muteLogging() func() {
	logger := logrus.StandardLogger()
	prev := logger.Out
	logger.SetOutput(io.Discard)
	return func() { logger.SetOutput(prev) }
}

// runTimeline draws date and steps through days on arrow keys until the user
// quits. It returns the last date shown.
func runTimeline(s tcell.Screen, records []storage.Record, date storage.Date) storage.Date {
	for {
		components.DrawTimeline(s, records, date)

		switch ev := s.PollEvent().(type) {
		case nil:
			return date
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyCtrlC:
				return date
			case tcell.KeyLeft:
				date = date.Previous()
			case tcell.KeyRight:
				date = date.AddDays(1)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q':
					return date
				case 'h':
					date = date.Previous()
				case 'l':
					date = date.AddDays(1)
				}
			}
		}
	}
}
