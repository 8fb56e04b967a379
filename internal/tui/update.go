package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.help.Width = msg.Width
		m.adjustScroll()
		return m, nil

	case tea.KeyMsg:
		if m.Mode == ModeList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m AppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.CurrentIndex < len(m.Entries)-1 {
			m.CurrentIndex++
		}
		m.ValueScrollOffset = 0
		m.adjustScroll()

	case key.Matches(msg, m.keys.Up):
		if m.CurrentIndex > 0 {
			m.CurrentIndex--
			m.ValueScrollOffset = 0
		}
		m.adjustScroll()

	case key.Matches(msg, m.keys.Left):
		if m.ValueScrollOffset > 0 {
			m.ValueScrollOffset--
		}

	case key.Matches(msg, m.keys.Right):
		if entry, ok := m.Selected(); ok && m.ValueScrollOffset < utf8.RuneCountInString(entry.Value) {
			m.ValueScrollOffset++
		}

	case key.Matches(msg, m.keys.Reload):
		m.Entries = m.svc.List()
		m.CurrentIndex = 0
		m.ScrollOffset = 0
		m.ValueScrollOffset = 0
		m.ErrorMessage = ""

	case key.Matches(msg, m.keys.Delete):
		entry, ok := m.Selected()
		if !ok {
			break
		}
		if err := m.svc.Delete(entry.Key, false); err != nil {
			m.ErrorMessage = err.Error()
			break
		}
		m.reload("")

	case key.Matches(msg, m.keys.EditKey):
		if entry, ok := m.Selected(); ok {
			return m, m.startInput(ModeEditKey, entry.Key)
		}

	case key.Matches(msg, m.keys.EditValue):
		if entry, ok := m.Selected(); ok {
			return m, m.startInput(ModeEditValue, entry.Value)
		}

	case key.Matches(msg, m.keys.New):
		return m, m.startInput(ModeCreateNew, "")
	}
	return m, nil
}

// startInput seeds the input with the cursor at the end and focuses it.
func (m *AppModel) startInput(mode Mode, seed string) tea.Cmd {
	m.Mode = mode
	m.ErrorMessage = ""
	m.InputBuffer.Reset()
	m.InputBuffer.SetValue(seed)
	m.InputBuffer.CursorEnd()
	return m.InputBuffer.Focus()
}

func (m *AppModel) stopInput() {
	m.Mode = ModeList
	m.InputBuffer.Reset()
	m.InputBuffer.Blur()
}

func (m AppModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopInput()
		m.ErrorMessage = ""
		return m, nil
	case key.Matches(msg, m.keys.Commit):
		m.commit()
		return m, nil
	}

	var cmd tea.Cmd
	m.InputBuffer, cmd = m.InputBuffer.Update(msg)
	return m, cmd
}

// commit applies the input buffer. Input that does not form a complete
// change is ignored and the editor stays in its current mode; a service
// error is shown and also keeps the mode.
func (m *AppModel) commit() {
	buffer := strings.TrimSpace(m.InputBuffer.Value())
	switch m.Mode {
	case ModeEditKey:
		entry, ok := m.Selected()
		if !ok || buffer == "" {
			return
		}
		if err := m.svc.Set(buffer, entry.Value, false); err != nil {
			m.ErrorMessage = err.Error()
			return
		}
		if buffer != entry.Key {
			_ = m.svc.Delete(entry.Key, false)
		}
		m.finish(buffer)

	case ModeEditValue:
		entry, ok := m.Selected()
		if !ok {
			return
		}
		if err := m.svc.Set(entry.Key, buffer, false); err != nil {
			m.ErrorMessage = err.Error()
			return
		}
		m.finish(entry.Key)

	case ModeCreateNew:
		name, value, found := strings.Cut(buffer, "=")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !found || name == "" || value == "" {
			return
		}
		if err := m.svc.Set(name, value, false); err != nil {
			m.ErrorMessage = err.Error()
			return
		}
		m.finish(name)
	}
}

func (m *AppModel) finish(focus string) {
	m.stopInput()
	m.ErrorMessage = ""
	m.reload(focus)
}

// reload replaces the snapshot, moving the cursor to focus when it is
// present and otherwise keeping it in range.
func (m *AppModel) reload(focus string) {
	m.Entries = m.svc.List()
	if focus != "" {
		if idx := m.Entries.Index(focus); idx >= 0 {
			m.CurrentIndex = idx
		}
	}
	if m.CurrentIndex >= len(m.Entries) {
		m.CurrentIndex = len(m.Entries) - 1
	}
	if m.CurrentIndex < 0 {
		m.CurrentIndex = 0
	}
	m.ValueScrollOffset = 0
	m.adjustScroll()
}

// adjustScroll recomputes ScrollOffset so the cursor sits inside the page
// and at least scrollMargin rows above its bottom edge where the list
// allows it.
func (m *AppModel) adjustScroll() {
	page := m.pageSize()
	margin := scrollMargin
	if margin > (page-1)/2 {
		margin = (page - 1) / 2
	}

	if m.CurrentIndex < m.ScrollOffset {
		m.ScrollOffset = m.CurrentIndex
	}
	if bottom := m.ScrollOffset + page - 1 - margin; m.CurrentIndex > bottom {
		m.ScrollOffset = m.CurrentIndex - (page - 1 - margin)
	}
	if maxOffset := len(m.Entries) - page; m.ScrollOffset > maxOffset {
		m.ScrollOffset = maxOffset
	}
	if m.ScrollOffset < 0 {
		m.ScrollOffset = 0
	}
}
