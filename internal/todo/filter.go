package todo

import (
	"fmt"
	"strings"
)

type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusPending
	StatusDone
)

// Next cycles all -> pending -> done -> all.
func (s StatusFilter) Next() StatusFilter {
	return (s + 1) % 3
}

func (s StatusFilter) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusDone:
		return "Done"
	default:
		return "All"
	}
}

func ParseStatusFilter(v string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return StatusAll, nil
	case "pending":
		return StatusPending, nil
	case "done":
		return StatusDone, nil
	}
	return StatusAll, fmt.Errorf("unknown status filter %q", v)
}

// Filter narrows what is displayed. The zero value shows everything.
type Filter struct {
	Status   StatusFilter
	Category string
	Search   string
}

// Matches reports whether t passes every active criterion. Category is an
// exact case-insensitive match; Search is a case-insensitive substring of
// the text or the category.
func (f Filter) Matches(t Todo) bool {
	switch f.Status {
	case StatusPending:
		if t.Done {
			return false
		}
	case StatusDone:
		if !t.Done {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Text), term) &&
			!strings.Contains(strings.ToLower(t.Category), term) {
			return false
		}
	}
	return true
}

// Visible returns the positions in s that pass the filter, in store order.
func (f Filter) Visible(s *Store) []int {
	visible := make([]int, 0, s.Len())
	for i, t := range s.todos {
		if f.Matches(t) {
			visible = append(visible, i)
		}
	}
	return visible
}

func (f Filter) Active() bool {
	return f.Status != StatusAll || f.Category != "" || f.Search != ""
}

func (f *Filter) Reset() {
	*f = Filter{}
}

// Describe returns the category, status and search labels shown in the
// header.
func (f Filter) Describe() (category, status, search string) {
	category, search = "All", "None"
	if f.Category != "" {
		category = f.Category
	}
	if f.Search != "" {
		search = f.Search
	}
	return category, f.Status.String(), search
}
