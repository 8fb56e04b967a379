package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"envfetch/internal/model"
	"envfetch/internal/vars"
)

type failingService struct {
	*vars.Service
	err error
}

func (f failingService) Set(string, string, bool) error { return f.err }
func (f failingService) Delete(string, bool) error     { return f.err }

func newTestModel(t *testing.T, initial map[string]string) (AppModel, *vars.MapEnv) {
	t.Helper()
	env := vars.NewMapEnv(initial)
	return New(vars.NewService(vars.Deps{Env: env})), env
}

func press(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(AppModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyCtrlQ}
	keyLoad  = tea.KeyMsg{Type: tea.KeyCtrlR}
)

func TestNavigationClamps(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"A": "1", "B": "2", "C": "3"})

	m = press(t, m, keyUp)
	if m.CurrentIndex != 0 {
		t.Fatalf("up at top moved cursor to %d", m.CurrentIndex)
	}
	m = press(t, m, keyDown, keyDown, keyDown, keyDown)
	if m.CurrentIndex != 2 {
		t.Fatalf("cursor = %d, want 2", m.CurrentIndex)
	}
	if sel, _ := m.Selected(); sel.Key != "C" {
		t.Fatalf("selected %q, want C", sel.Key)
	}
	m = press(t, m, keyUp)
	if m.CurrentIndex != 1 {
		t.Fatalf("cursor = %d, want 1", m.CurrentIndex)
	}
}

func TestEmptyListIgnoresEntryKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, keyDown, keyUp, keyRight, runes("d"), runes("e"), runes("v"))
	if m.Mode != ModeList || m.CurrentIndex != 0 || m.ValueScrollOffset != 0 {
		t.Fatalf("unexpected state: mode=%s cursor=%d hscroll=%d", m.Mode, m.CurrentIndex, m.ValueScrollOffset)
	}
	if _, ok := m.Selected(); ok {
		t.Fatal("Selected on empty list returned ok")
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	initial := map[string]string{}
	for i := 0; i < 30; i++ {
		initial[fmt.Sprintf("VAR_%02d", i)] = "x"
	}
	m, _ := newTestModel(t, initial)
	// ten visible rows
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: listChrome + 10})

	for i := 0; i < 29; i++ {
		m = press(t, m, keyDown)
		page := m.pageSize()
		if m.CurrentIndex < m.ScrollOffset || m.CurrentIndex >= m.ScrollOffset+page {
			t.Fatalf("cursor %d outside window [%d,%d)", m.CurrentIndex, m.ScrollOffset, m.ScrollOffset+page)
		}
		if m.ScrollOffset > len(m.Entries)-page {
			t.Fatalf("scroll offset %d past end", m.ScrollOffset)
		}
	}
	if m.CurrentIndex != 29 || m.ScrollOffset != 20 {
		t.Fatalf("cursor=%d scroll=%d, want 29 and 20", m.CurrentIndex, m.ScrollOffset)
	}

	for i := 0; i < 29; i++ {
		m = press(t, m, keyUp)
	}
	if m.ScrollOffset != 0 {
		t.Fatalf("scroll offset = %d after returning to top", m.ScrollOffset)
	}
}

func TestScrollMarginFromBottom(t *testing.T) {
	initial := map[string]string{}
	for i := 0; i < 30; i++ {
		initial[fmt.Sprintf("VAR_%02d", i)] = "x"
	}
	m, _ := newTestModel(t, initial)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: listChrome + 10})

	for i := 0; i < 5; i++ {
		m = press(t, m, keyDown)
	}
	if m.ScrollOffset != 0 {
		t.Fatalf("scrolled too early: offset %d at cursor %d", m.ScrollOffset, m.CurrentIndex)
	}
	m = press(t, m, keyDown)
	if m.ScrollOffset != 1 {
		t.Fatalf("offset = %d at cursor %d, want 1", m.ScrollOffset, m.CurrentIndex)
	}
}

func TestValueScroll(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"A": "héllo", "B": "x"})

	m = press(t, m, keyLeft)
	if m.ValueScrollOffset != 0 {
		t.Fatalf("left at 0 gave %d", m.ValueScrollOffset)
	}
	for i := 0; i < 10; i++ {
		m = press(t, m, keyRight)
	}
	if m.ValueScrollOffset != 5 {
		t.Fatalf("offset = %d, want rune length 5", m.ValueScrollOffset)
	}
	m = press(t, m, keyLeft)
	if m.ValueScrollOffset != 4 {
		t.Fatalf("offset = %d, want 4", m.ValueScrollOffset)
	}
	m = press(t, m, keyDown)
	if m.ValueScrollOffset != 0 {
		t.Fatalf("moving the cursor kept offset %d", m.ValueScrollOffset)
	}
}

func TestReloadResetsState(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"A": "1", "B": "2"})
	m = press(t, m, keyDown, keyRight)
	_ = env.Set("C", "3")

	m = press(t, m, keyLoad)
	if len(m.Entries) != 3 {
		t.Fatalf("entries = %d after reload", len(m.Entries))
	}
	if m.CurrentIndex != 0 || m.ScrollOffset != 0 || m.ValueScrollOffset != 0 {
		t.Fatalf("reload kept position: %d %d %d", m.CurrentIndex, m.ScrollOffset, m.ValueScrollOffset)
	}
}

func TestDeleteSelected(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"A": "1", "B": "2"})
	m = press(t, m, keyDown, runes("d"))

	if _, ok := env.Lookup("B"); ok {
		t.Fatal("B still set")
	}
	if len(m.Entries) != 1 || m.CurrentIndex != 0 {
		t.Fatalf("entries=%v cursor=%d", m.Entries, m.CurrentIndex)
	}
}

func TestEditKeyRenames(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"A": "1", "OLD": "value"})
	m = press(t, m, keyDown, runes("e"))
	if m.Mode != ModeEditKey || m.InputBuffer.Value() != "OLD" {
		t.Fatalf("mode=%s buffer=%q", m.Mode, m.InputBuffer.Value())
	}

	m = press(t, m, keyBack, keyBack, keyBack, runes("NEW"), keyEnter)
	if m.Mode != ModeList {
		t.Fatalf("mode = %s after commit", m.Mode)
	}
	if v, ok := env.Lookup("NEW"); !ok || v != "value" {
		t.Fatalf("NEW = %q, %v", v, ok)
	}
	if _, ok := env.Lookup("OLD"); ok {
		t.Fatal("OLD still set")
	}
	if sel, _ := m.Selected(); sel.Key != "NEW" {
		t.Fatalf("cursor on %q, want NEW", sel.Key)
	}
}

func TestEditKeySameNameKeepsVariable(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"SAME": "v"})
	m = press(t, m, runes("e"), keyEnter)
	if v, ok := env.Lookup("SAME"); !ok || v != "v" {
		t.Fatalf("SAME = %q, %v", v, ok)
	}
}

func TestEditKeyEmptyBufferIgnored(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"KEY": "v"})
	m = press(t, m, runes("e"), keyBack, keyBack, keyBack, keySpace, keyEnter)
	if m.Mode != ModeEditKey {
		t.Fatalf("mode = %s, want edit key", m.Mode)
	}
	if _, ok := env.Lookup("KEY"); !ok {
		t.Fatal("KEY removed")
	}
}

func TestEditCursorMovesWithinBuffer(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"KEY": "ac"})
	m = press(t, m, runes("v"), keyLeft, runes("b"), keyEnter)
	if v, _ := env.Lookup("KEY"); v != "abc" {
		t.Fatalf("KEY = %q, want abc", v)
	}
	if m.ValueScrollOffset != 0 {
		t.Fatalf("left in edit mode scrolled the value: %d", m.ValueScrollOffset)
	}
}

func TestEditValue(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"KEY": "old"})
	m = press(t, m, runes("v"))
	if m.InputBuffer.Value() != "old" || m.InputBuffer.Position() != 3 {
		t.Fatalf("buffer = %q, cursor %d", m.InputBuffer.Value(), m.InputBuffer.Position())
	}
	m = press(t, m, keyBack, keyBack, keyBack, runes("new"), keySpace, runes("value"), keySpace, keyEnter)
	if v, _ := env.Lookup("KEY"); v != "new value" {
		t.Fatalf("KEY = %q", v)
	}
	if m.Mode != ModeList {
		t.Fatalf("mode = %s", m.Mode)
	}
}

func TestCreateNew(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"A": "1"})
	m = press(t, m, runes("n"))
	if m.Mode != ModeCreateNew || m.InputBuffer.Value() != "" || !m.InputBuffer.Focused() {
		t.Fatalf("mode=%s buffer=%q focused=%v", m.Mode, m.InputBuffer.Value(), m.InputBuffer.Focused())
	}
	m = press(t, m, runes(" ZED = a=b "), keyEnter)

	if v, _ := env.Lookup("ZED"); v != "a=b" {
		t.Fatalf("ZED = %q", v)
	}
	if sel, _ := m.Selected(); sel.Key != "ZED" {
		t.Fatalf("cursor on %q", sel.Key)
	}
}

func TestCreateNewIncompleteIgnored(t *testing.T) {
	for _, input := range []string{"NOEQUALS", "=value", "KEY=", " = "} {
		t.Run(input, func(t *testing.T) {
			m, env := newTestModel(t, nil)
			m = press(t, m, runes("n"), runes(input), keyEnter)
			if m.Mode != ModeCreateNew {
				t.Fatalf("mode = %s", m.Mode)
			}
			if got := env.List(); len(got) != 0 {
				t.Fatalf("env = %v", got)
			}
			if m.ErrorMessage != "" {
				t.Fatalf("error = %q", m.ErrorMessage)
			}
		})
	}
}

func TestCreateNewInvalidName(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, runes("n"), runes("BAD NAME=v"), keyEnter)
	if m.Mode != ModeCreateNew {
		t.Fatalf("mode = %s", m.Mode)
	}
	if m.ErrorMessage == "" {
		t.Fatal("no error shown")
	}
}

func TestEscapeCancels(t *testing.T) {
	m, env := newTestModel(t, map[string]string{"KEY": "v"})
	m = press(t, m, runes("v"), runes("changed"), keyEsc)
	if m.Mode != ModeList || m.InputBuffer.Value() != "" || m.InputBuffer.Focused() {
		t.Fatalf("mode=%s buffer=%q focused=%v", m.Mode, m.InputBuffer.Value(), m.InputBuffer.Focused())
	}
	if v, _ := env.Lookup("KEY"); v != "v" {
		t.Fatalf("KEY = %q", v)
	}
}

func TestServiceErrorKeepsMode(t *testing.T) {
	env := vars.NewMapEnv(map[string]string{"KEY": "v"})
	svc := failingService{Service: vars.NewService(vars.Deps{Env: env}), err: errors.New("boom")}
	m := New(svc)

	m = press(t, m, runes("v"), runes("x"), keyEnter)
	if m.Mode != ModeEditValue || m.ErrorMessage != "boom" {
		t.Fatalf("mode=%s error=%q", m.Mode, m.ErrorMessage)
	}

	m = press(t, m, keyEsc, runes("d"))
	if m.ErrorMessage != "boom" || len(m.Entries) != 1 {
		t.Fatalf("error=%q entries=%d", m.ErrorMessage, len(m.Entries))
	}
}

func TestQuitOnlyFromList(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"KEY": "v"})

	next, _ := press(t, m, runes("n")).Update(keyQuit)
	if editing := next.(AppModel); editing.Quitting || editing.Mode != ModeCreateNew {
		t.Fatal("ctrl+q quit while editing")
	}

	next, cmd := m.Update(keyQuit)
	if cmd == nil || !next.(AppModel).Quitting {
		t.Fatal("ctrl+q did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("command is not tea.Quit")
	}

	next, _ = m.Update(runes("q"))
	if next.(AppModel).Quitting {
		t.Fatal("q should not quit")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"ALPHA": "first", "BETA": "second"})
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	out := m.View()
	for _, want := range []string{"Variables (1/2)", "ALPHA", "BETA", "first", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(t, m, runes("n"), runes("NEW=1"))
	out = m.View()
	if !strings.Contains(out, "KEY=VALUE") || !strings.Contains(out, "NEW=1") {
		t.Errorf("input prompt missing:\n%s", out)
	}

	m.Quitting = true
	if m.View() != "" {
		t.Error("quitting view not empty")
	}
}

func TestViewShowsError(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.ErrorMessage = "something failed"
	if out := m.View(); !strings.Contains(out, model.IconError+" something failed") {
		t.Errorf("error missing:\n%s", out)
	}
}

func TestVisibleValue(t *testing.T) {
	tests := []struct {
		value  string
		offset int
		width  int
		want   string
	}{
		{"short", 0, 10, "short"},
		{"abcdefghij", 0, 5, "abcd»"},
		{"abcdefghij", 3, 5, "«efg»"},
		{"abcdefghij", 5, 5, "«ghij"},
		{"abcdefghij", 10, 5, "«"},
		{"line\nnext", 0, 20, "line⏎next"},
		{"héllo", 1, 10, "«llo"},
	}
	for _, tt := range tests {
		if got := visibleValue(tt.value, tt.offset, tt.width); got != tt.want {
			t.Errorf("visibleValue(%q, %d, %d) = %q, want %q", tt.value, tt.offset, tt.width, got, tt.want)
		}
	}
}
