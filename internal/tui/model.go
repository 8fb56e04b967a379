// Package tui is the interactive variable browser and editor.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"envfetch/internal/model"
)

// Mode is the editor sub-state.
type Mode int

const (
	ModeList Mode = iota
	ModeEditKey
	ModeEditValue
	ModeCreateNew
)

func (m Mode) String() string {
	switch m {
	case ModeEditKey:
		return "edit key"
	case ModeEditValue:
		return "edit value"
	case ModeCreateNew:
		return "new variable"
	default:
		return "list"
	}
}

const (
	// defaultPageSize is used before the first WindowSizeMsg arrives.
	defaultPageSize = 22
	// scrollMargin is how many rows the cursor keeps from the bottom edge.
	scrollMargin = 4
	// listChrome is the number of rows around the list: title, blank line,
	// borders and the footer.
	listChrome = 8
)

// Service is what the editor needs from the variable service.
type Service interface {
	List() model.Snapshot
	Set(key, value string, persistent bool) error
	Delete(key string, persistent bool) error
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Entries model.Snapshot

	// UI State
	Mode              Mode
	CurrentIndex      int
	ScrollOffset      int
	ValueScrollOffset int
	InputBuffer       textinput.Model
	ErrorMessage      string
	WindowSize        tea.WindowSizeMsg
	Quitting          bool

	svc  Service
	keys KeyMap
	help help.Model
}

// New returns the initial state with a fresh snapshot.
func New(svc Service) AppModel {
	ti := textinput.New()
	ti.Prompt = ""

	return AppModel{
		Entries:     svc.List(),
		Mode:        ModeList,
		InputBuffer: ti,
		svc:         svc,
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
}

// Run starts the full-screen editor and blocks until it exits.
func Run(svc Service) error {
	m := New(svc)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Selected returns the entry under the cursor.
func (m AppModel) Selected() (model.Variable, bool) {
	if len(m.Entries) == 0 || m.CurrentIndex >= len(m.Entries) {
		return model.Variable{}, false
	}
	return m.Entries[m.CurrentIndex], true
}

// pageSize is the number of list rows visible at once.
func (m AppModel) pageSize() int {
	if m.WindowSize.Height == 0 {
		return defaultPageSize
	}
	if rows := m.WindowSize.Height - listChrome; rows > 1 {
		return rows
	}
	return 1
}

func (m AppModel) Init() tea.Cmd {
	return nil
}
