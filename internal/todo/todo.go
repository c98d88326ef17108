// Package todo holds the in-memory todo list and the filter applied to it.
package todo

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxTodos is the capacity of a Store.
	MaxTodos = 100
	// MaxLength is the size of the text and category buffers on disk,
	// including the terminating NUL.
	MaxLength = 128
)

var (
	ErrEmptyText   = errors.New("text cannot be empty")
	ErrFull        = errors.New("todo list is full")
	ErrNoSuchTodo  = errors.New("no such todo")
	ErrInvalidDate = errors.New("invalid date")
)

type Todo struct {
	// ID identifies the record for the lifetime of the process. It is not
	// persisted.
	ID       string
	Text     string
	Category string
	Due      time.Time
	Done     bool
}

func (t Todo) HasDue() bool {
	return !t.Due.IsZero()
}

// Store is an ordered, fixed-capacity list of todos. Positions shift down
// by one after a Delete.
type Store struct {
	todos []Todo
}

// NewStore builds a store from previously loaded records. Records past
// MaxTodos are dropped and records without an ID get one.
func NewStore(todos []Todo) *Store {
	if len(todos) > MaxTodos {
		todos = todos[:MaxTodos]
	}
	s := &Store{todos: make([]Todo, 0, MaxTodos)}
	for _, t := range todos {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		t.Text = Truncate(t.Text)
		t.Category = Truncate(t.Category)
		s.todos = append(s.todos, t)
	}
	return s
}

func (s *Store) Len() int {
	return len(s.todos)
}

// Todos returns a copy of the records in display order.
func (s *Store) Todos() []Todo {
	out := make([]Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *Store) At(i int) (Todo, bool) {
	if i < 0 || i >= len(s.todos) {
		return Todo{}, false
	}
	return s.todos[i], true
}

// IndexOf returns the current position of the todo with the given ID, or -1.
func (s *Store) IndexOf(id string) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a pending todo with no category or due date and returns its
// position.
func (s *Store) Add(text string) (int, error) {
	if IsBlank(text) {
		return -1, ErrEmptyText
	}
	if len(s.todos) >= MaxTodos {
		return -1, ErrFull
	}
	s.todos = append(s.todos, Todo{ID: uuid.NewString(), Text: Truncate(text)})
	return len(s.todos) - 1, nil
}

func (s *Store) Delete(i int) bool {
	if i < 0 || i >= len(s.todos) {
		return false
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return true
}

func (s *Store) Toggle(i int) bool {
	if i < 0 || i >= len(s.todos) {
		return false
	}
	s.todos[i].Done = !s.todos[i].Done
	return true
}

// Edit replaces the text of the todo at i. Blank input leaves it unchanged.
func (s *Store) Edit(i int, text string) error {
	if i < 0 || i >= len(s.todos) {
		return ErrNoSuchTodo
	}
	if IsBlank(text) {
		return ErrEmptyText
	}
	s.todos[i].Text = Truncate(text)
	return nil
}

// SetCategory replaces the category of the todo at i; blank input clears it.
func (s *Store) SetCategory(i int, category string) bool {
	if i < 0 || i >= len(s.todos) {
		return false
	}
	if IsBlank(category) {
		category = ""
	}
	s.todos[i].Category = Truncate(category)
	return true
}

// SetDueDate parses input with ParseDueDate in the local time zone. On a
// parse error the previous due date is kept.
func (s *Store) SetDueDate(i int, input string) error {
	if i < 0 || i >= len(s.todos) {
		return ErrNoSuchTodo
	}
	due, err := ParseDueDate(input, time.Local)
	if err != nil {
		return err
	}
	s.todos[i].Due = due
	return nil
}

// IsBlank reports whether s holds nothing but whitespace. Input is stored
// as typed; whitespace only matters for this check.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate bounds s to MaxLength-1 bytes without splitting a rune. NUL bytes
// are removed since they terminate the on-disk buffers.
func Truncate(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	limit := MaxLength - 1
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
