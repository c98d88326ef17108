package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"minitodo/internal/todo"
)

type styles struct {
	header   lipgloss.Style
	done     lipgloss.Style
	category lipgloss.Style
	overdue  lipgloss.Style
	dueSoon  lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true),
		done:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		category: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		dueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		selected: lipgloss.NewStyle().Reverse(true),
		status:   lipgloss.NewStyle().Faint(true),
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.header.Render("MINIMAL TODO TUI"))
	b.WriteString("\n")
	category, status, search := m.filter.Describe()
	b.WriteString(fmt.Sprintf("Filter: %s | Status: %s | Search: %s", category, status, search))
	b.WriteString("\n\n")

	switch visible := m.filter.Visible(m.store); {
	case m.store.Len() == 0:
		b.WriteString(fmt.Sprintf("No todos yet. Press '%s' to add one.\n", keyLabel(m.cfg.Keys.Add)))
	case len(visible) == 0:
		b.WriteString("No matching todos found.\n")
	default:
		for _, pos := range visible {
			t, _ := m.store.At(pos)
			b.WriteString(m.renderRow(t, pos == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch m.mode {
	case modePrompt:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.help.View(promptKeys{confirm: m.keys.Confirm, cancel: m.keys.Cancel}))
	default:
		if m.status != "" {
			b.WriteString(m.styles.status.Render(m.status))
		}
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// renderRow styles each segment on its own. A selected row reverses every
// segment, since an outer style would be cut short by the inner resets.
func (m Model) renderRow(t todo.Todo, selected bool) string {
	plain := lipgloss.NewStyle()
	text, category, date := plain, m.styles.category, plain
	if t.Done {
		text = m.styles.done
	}
	if t.HasDue() {
		switch dueState(t.Due, m.now(), m.cfg.DueSoonDays) {
		case dueOverdue:
			date = m.styles.overdue
		case dueSoon:
			date = m.styles.dueSoon
		}
	}
	if selected {
		plain = m.styles.selected
		text = text.Reverse(true)
		category = category.Reverse(true)
		date = date.Reverse(true)
	}

	checkbox := "[ ]"
	if t.Done {
		checkbox = "[X]"
	}
	parts := []string{plain.Render(checkbox + " "), text.Render(t.Text)}
	if t.Category != "" {
		parts = append(parts, plain.Render(" "), category.Render("("+t.Category+")"))
	}
	row := strings.Join(parts, "")

	if t.HasDue() {
		due := todo.FormatDate(t.Due)
		gap := m.width - lipgloss.Width(row) - len(due) - 1
		row += plain.Render(strings.Repeat(" ", max(gap, 1))) + date.Render(due)
	}
	return row
}

type dueStatus int

const (
	dueLater dueStatus = iota
	dueSoon
	dueOverdue
)

// dueState compares against the current instant: a date is overdue once its
// local midnight has passed and due soon when it falls within the next
// soonDays days.
func dueState(due, now time.Time, soonDays int) dueStatus {
	switch {
	case due.Before(now):
		return dueOverdue
	case due.Before(now.Add(time.Duration(soonDays) * 24 * time.Hour)):
		return dueSoon
	default:
		return dueLater
	}
}
