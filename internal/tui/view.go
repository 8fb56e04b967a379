package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"envfetch/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimmedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

// View renders the current state. It has no side effects.
func (m AppModel) View() string {
	if m.Quitting {
		return ""
	}

	// Subtracting 6 for the two borders of each pane plus a small buffer
	netWidth := m.WindowSize.Width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth
	page := m.pageSize()
	interiorHeight := page + 2

	listBorder := activeColor
	detailBorder := borderColor
	if m.Mode != ModeList {
		listBorder, detailBorder = borderColor, activeColor
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(listBorder).
		Render(m.renderList(leftWidth, page))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(detailBorder).
		Render(m.renderDetails(rightWidth))

	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.renderFooter())
}

func (m AppModel) renderList(width, page int) string {
	var b strings.Builder

	position := 0
	if len(m.Entries) > 0 {
		position = m.CurrentIndex + 1
	}
	title := fmt.Sprintf("Variables (%d/%d)", position, len(m.Entries))
	if m.ScrollOffset > 0 {
		title += " " + model.IconMoreAbove
	}
	if m.ScrollOffset+page < len(m.Entries) {
		title += " " + model.IconMoreBelow
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(dimmedStyle.Render("  (no variables)"))
		return b.String()
	}

	end := m.ScrollOffset + page
	if end > len(m.Entries) {
		end = len(m.Entries)
	}
	for i := m.ScrollOffset; i < end; i++ {
		line := truncate(m.Entries[i].Key, width-3)
		if i == m.CurrentIndex {
			b.WriteString(selectedStyle.Render(model.IconSelected + " " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m AppModel) renderDetails(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Details"))
	b.WriteString("\n\n")

	entry, ok := m.Selected()
	if !ok {
		b.WriteString(dimmedStyle.Render("Nothing selected. Press n to add a variable."))
		return b.String()
	}

	b.WriteString(labelStyle.Render("Key"))
	b.WriteString("\n")
	b.WriteString(truncate(entry.Key, width))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Value"))
	b.WriteString("\n")
	b.WriteString(visibleValue(entry.Value, m.ValueScrollOffset, width))
	return b.String()
}

func (m AppModel) renderFooter() string {
	var lines []string

	switch m.Mode {
	case ModeEditKey:
		lines = append(lines, m.renderPrompt("New key"))
	case ModeEditValue:
		lines = append(lines, m.renderPrompt("New value"))
	case ModeCreateNew:
		lines = append(lines, m.renderPrompt("KEY=VALUE"))
	}

	if m.ErrorMessage != "" {
		lines = append(lines, errorStyle.Render(model.IconError+" "+m.ErrorMessage))
	}

	if m.Mode == ModeList {
		lines = append(lines, m.help.View(m.keys))
	} else {
		lines = append(lines, m.help.View(inputKeys{m.keys}))
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderPrompt(label string) string {
	return promptStyle.Render(model.IconEditing+" "+label+": ") + m.InputBuffer.View()
}

// visibleValue returns the width-rune window of value starting at offset.
// Markers replace the edge runes when text is cut off on that side, and
// newlines are drawn as ⏎ so the window stays on one row.
func visibleValue(value string, offset, width int) string {
	runes := []rune(strings.ReplaceAll(value, "\n", "⏎"))
	if width < 3 {
		width = 3
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	if offset < 0 {
		offset = 0
	}

	end := offset + width
	if end > len(runes) {
		end = len(runes)
	}
	window := runes[offset:end]

	if offset > 0 && len(window) > 0 {
		window = append([]rune(model.IconScrollLeft), window[1:]...)
	} else if offset > 0 {
		window = []rune(model.IconScrollLeft)
	}
	if end < len(runes) {
		window = append(window[:len(window)-1], []rune(model.IconScrollRight)...)
	}
	return string(window)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width < 4 || len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
