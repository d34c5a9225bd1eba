package console

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aanand-mishra/enrollment-system/internal/utils/response"
)

// HandlerFunc runs one menu action.
//
// Problems the user can fix (bad ids, rejected values) are reported on the
// session and do not surface as errors. A returned error means the session
// cannot continue; io.EOF ends it cleanly.
type HandlerFunc func(s *Session) error

type menuItem struct {
	label   string
	handler HandlerFunc
}

// Menu is a numbered list of actions. Items are numbered in the order they
// are registered, starting at 1; "Exit System" always comes last.
type Menu struct {
	title string
	items []menuItem
}

// NewMenu creates an empty menu shown under title.
func NewMenu(title string) *Menu {
	return &Menu{title: title}
}

// Handle registers h under the next free number.
func (m *Menu) Handle(label string, h HandlerFunc) {
	m.items = append(m.items, menuItem{label: label, handler: h})
}

func (m *Menu) exitChoice() int {
	return len(m.items) + 1
}

func (m *Menu) print(s *Session) {
	s.Printf("===== %s =====\n", m.title)
	for i, item := range m.items {
		s.Printf("%d. %s\n", i+1, item.label)
	}
	s.Printf("%d. Exit System\n", m.exitChoice())
}

// Run shows the menu and dispatches choices until the user exits or input
// ends. It returns nil in both cases, and the handler's error otherwise.
func (m *Menu) Run(s *Session) error {
	for {
		m.print(s)

		raw, err := s.Prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			slog.Info("input closed, ending session")
			return nil
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			s.Println(response.MsgInvalidMenuInput)
			s.Println()
			continue
		}

		switch {
		case choice == m.exitChoice():
			s.Println("Exiting system... Goodbye!")
			slog.Info("user exited")
			return nil

		case choice >= 1 && choice <= len(m.items):
			item := m.items[choice-1]
			slog.Debug("menu choice", slog.Int("choice", choice), slog.String("action", item.label))

			if err := item.handler(s); err != nil {
				if errors.Is(err, io.EOF) {
					slog.Info("input closed, ending session")
					return nil
				}
				return err
			}

		default:
			s.Println(response.MsgInvalidOption)
		}

		s.Println()
	}
}
