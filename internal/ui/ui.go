package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"minitodo/internal/config"
	"minitodo/internal/logging"
	"minitodo/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modePrompt
	modeConfirmDelete
)

type promptKind int

const (
	promptAdd promptKind = iota
	promptEdit
	promptCategory
	promptDueDate
	promptFilterCategory
	promptSearch
)

func (p promptKind) label() string {
	switch p {
	case promptEdit:
		return "Edit todo: "
	case promptCategory:
		return "Category: "
	case promptDueDate:
		return "Due date (YYYY-MM-DD or blank to clear): "
	case promptFilterCategory:
		return "Filter by category (blank for all): "
	case promptSearch:
		return "Search: "
	default:
		return "New todo: "
	}
}

const defaultWidth = 80

// Params is everything the shell needs from main.
type Params struct {
	Store  *todo.Store
	Config config.Config
	Logger *log.Logger
	// Status is shown on the first frame, e.g. a load warning.
	Status string
}

// Model is the bubbletea model for the todo shell. cursor is a store
// position; it is only acted on while that record passes the filter.
type Model struct {
	store  *todo.Store
	cfg    config.Config
	logger *log.Logger
	keys   keyMap
	help   help.Model
	styles styles

	filter todo.Filter
	cursor int
	mode   mode
	prompt promptKind
	// target is the ID of the record an edit, category or due-date prompt
	// applies to.
	target     string
	pendingDel string
	input      textinput.Model
	status     string
	width      int
	now        func() time.Time
}

func New(p Params) Model {
	ti := textinput.New()
	ti.CharLimit = todo.MaxLength - 1
	ti.Width = 40

	logger := p.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	store := p.Store
	if store == nil {
		store = todo.NewStore(nil)
	}

	initial, _ := todo.ParseStatusFilter(p.Config.DefaultFilter)
	m := Model{
		store:  store,
		cfg:    p.Config,
		logger: logger,
		keys:   newKeyMap(p.Config.Keys),
		help:   help.New(),
		styles: newStyles(),
		filter: todo.Filter{Status: initial},
		mode:   modeList,
		input:  ti,
		status: p.Status,
		width:  defaultWidth,
		now:    time.Now,
	}
	m.resetCursor()
	return m
}

// Run blocks until the user quits. The store is left in its final state for
// the caller to save.
func Run(p Params) error {
	program := tea.NewProgram(New(p), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		return m, nil
	}
	if m.mode == modePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Add):
		if m.store.Len() >= todo.MaxTodos {
			m.rejectFull()
			return m, nil
		}
		return m.openPrompt(promptAdd, "", "")
	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.Toggle(m.cursor)
		m.status = fmt.Sprintf("Marked %q %s", t.Text, humanDone(!t.Done))
		m.revalidateCursor()
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.cfg.ConfirmDelete {
			m.mode = modeConfirmDelete
			m.pendingDel = t.ID
			m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
			return m, nil
		}
		m.deleteByID(t.ID)
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return m.openPrompt(promptEdit, t.ID, t.Text)
		}
	case key.Matches(msg, m.keys.DueDate):
		if t, ok := m.selected(); ok {
			return m.openPrompt(promptDueDate, t.ID, todo.FormatDate(t.Due))
		}
	case key.Matches(msg, m.keys.Category):
		if t, ok := m.selected(); ok {
			return m.openPrompt(promptCategory, t.ID, t.Category)
		}
	case key.Matches(msg, m.keys.FilterCategory):
		return m.openPrompt(promptFilterCategory, "", m.filter.Category)
	case key.Matches(msg, m.keys.FilterStatus):
		m.filter.Status = m.filter.Status.Next()
		m.resetCursor()
		m.status = "Status filter: " + m.filter.Status.String()
	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(promptSearch, "", m.filter.Search)
	case key.Matches(msg, m.keys.Reset):
		if !m.filter.Active() {
			m.status = "No filters to clear"
			return m, nil
		}
		m.filter.Reset()
		m.resetCursor()
		m.status = "Filters cleared"
	}
	return m, nil
}

func (m Model) openPrompt(kind promptKind, target, value string) (tea.Model, tea.Cmd) {
	m.mode = modePrompt
	m.prompt = kind
	m.target = target
	m.input.Reset()
	m.input.Prompt = kind.label()
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = modeList
	m.target = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		kind, target := m.prompt, m.target
		m.closePrompt()
		m.submit(kind, target, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(kind promptKind, target, value string) {
	switch kind {
	case promptAdd:
		pos, err := m.store.Add(value)
		switch {
		case errors.Is(err, todo.ErrFull):
			m.rejectFull()
		case errors.Is(err, todo.ErrEmptyText):
			m.status = "Todo text cannot be empty"
		case err == nil:
			t, _ := m.store.At(pos)
			m.logger.Debug("added todo", "id", t.ID)
			m.cursor = pos
			m.status = "Added todo"
		}
	case promptEdit:
		i, ok := m.targetIndex(target)
		if !ok {
			return
		}
		if err := m.store.Edit(i, value); err != nil {
			m.status = "Todo text cannot be empty; unchanged"
			return
		}
		m.status = "Updated todo"
	case promptCategory:
		i, ok := m.targetIndex(target)
		if !ok {
			return
		}
		m.store.SetCategory(i, value)
		m.revalidateCursor()
		if t, _ := m.store.At(i); t.Category == "" {
			m.status = "Category cleared"
		} else {
			m.status = fmt.Sprintf("Category set to %q", t.Category)
		}
	case promptDueDate:
		i, ok := m.targetIndex(target)
		if !ok {
			return
		}
		if err := m.store.SetDueDate(i, value); err != nil {
			m.logger.Warn("invalid due date", "id", target, "input", value)
			m.status = fmt.Sprintf("Invalid date %q; due date unchanged", strings.TrimSpace(value))
			return
		}
		if t, _ := m.store.At(i); t.HasDue() {
			m.status = "Due " + todo.FormatDate(t.Due)
		} else {
			m.status = "Due date cleared"
		}
	case promptFilterCategory:
		m.filter.Category = filterValue(value)
		m.resetCursor()
		category, _, _ := m.filter.Describe()
		m.status = "Category filter: " + category
	case promptSearch:
		m.filter.Search = filterValue(value)
		m.resetCursor()
		_, _, search := m.filter.Describe()
		m.status = "Search: " + search
	}
}

// filterValue keeps the term as typed so " x" only matches a space
// followed by x; blank input clears the criterion.
func filterValue(v string) string {
	if todo.IsBlank(v) {
		return ""
	}
	return todo.Truncate(v)
}

func (m *Model) targetIndex(id string) (int, bool) {
	i := m.store.IndexOf(id)
	if i < 0 {
		m.status = "Todo no longer exists"
		return -1, false
	}
	return i, true
}

func (m Model) updateDeleteConfirm(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
	case "y", "Y":
		m.deleteByID(m.pendingDel)
	default:
		return m, nil
	}
	m.mode = modeList
	m.pendingDel = ""
	return m, nil
}

func (m *Model) deleteByID(id string) {
	i := m.store.IndexOf(id)
	if i < 0 || !m.store.Delete(i) {
		m.status = "Nothing to delete"
		return
	}
	m.logger.Info("deleted todo", "id", id)
	if m.cursor >= m.store.Len() {
		m.cursor = clampCursor(m.store.Len()-1, m.store.Len())
	}
	m.revalidateCursor()
	m.status = "Deleted todo"
}

func (m *Model) rejectFull() {
	m.logger.Warn("todo list full", "capacity", todo.MaxTodos)
	m.status = fmt.Sprintf("Todo list is full (%d items)", todo.MaxTodos)
}

// selected returns the record under the cursor if it is currently visible.
func (m Model) selected() (todo.Todo, bool) {
	t, ok := m.store.At(m.cursor)
	if !ok || !m.filter.Matches(t) {
		return todo.Todo{}, false
	}
	return t, true
}

func (m *Model) moveCursor(delta int) {
	visible := m.filter.Visible(m.store)
	if len(visible) == 0 {
		return
	}
	idx := indexOf(visible, m.cursor)
	if idx < 0 {
		m.cursor = visible[0]
		return
	}
	m.cursor = visible[clampCursor(idx+delta, len(visible))]
}

// resetCursor selects the first visible record, or 0 when none is visible.
func (m *Model) resetCursor() {
	visible := m.filter.Visible(m.store)
	if len(visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = visible[0]
}

// revalidateCursor keeps the selection on a visible record after a mutation
// hid the selected one: the next visible record below it, else the last
// visible record above it.
func (m *Model) revalidateCursor() {
	m.cursor = clampCursor(m.cursor, m.store.Len())
	if _, ok := m.selected(); ok {
		return
	}
	visible := m.filter.Visible(m.store)
	if len(visible) == 0 {
		return
	}
	for _, pos := range visible {
		if pos > m.cursor {
			m.cursor = pos
			return
		}
	}
	m.cursor = visible[len(visible)-1]
}

func indexOf(positions []int, pos int) int {
	for i, p := range positions {
		if p == pos {
			return i
		}
	}
	return -1
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
