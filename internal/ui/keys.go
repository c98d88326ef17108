package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"minitodo/internal/config"
)

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Delete         key.Binding
	Toggle         key.Binding
	Edit           key.Binding
	DueDate        key.Binding
	Category       key.Binding
	FilterCategory key.Binding
	FilterStatus   key.Binding
	Search         key.Binding
	Reset          key.Binding
	Quit           key.Binding
	Confirm        key.Binding
	Cancel         key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys(k.Up, "up"),
			key.WithHelp(keyLabel(k.Up)+"/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(k.Down, "down"),
			key.WithHelp(keyLabel(k.Down)+"/↓", "down"),
		),
		Add:            binding(k.Add, "add"),
		Delete:         binding(k.Delete, "delete"),
		Toggle:         binding(k.Toggle, "toggle"),
		Edit:           binding(k.Edit, "edit"),
		DueDate:        binding(k.DueDate, "due"),
		Category:       binding(k.Category, "set-cat"),
		FilterCategory: binding(k.FilterCategory, "filter-cat"),
		FilterStatus:   binding(k.FilterStatus, "filter-status"),
		Search:         binding(k.Search, "search"),
		Reset:          binding(k.Reset, "reset"),
		Quit:           binding(k.Quit, "quit"),
		Confirm:        binding(k.Confirm, "submit"),
		Cancel:         binding(k.Cancel, "cancel"),
	}
}

func binding(k, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(keyLabel(k), desc))
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Add, k.Delete, k.Toggle, k.Edit, k.DueDate, k.Category,
		k.FilterCategory, k.FilterStatus, k.Search, k.Reset, k.Quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Delete, k.Toggle, k.Edit},
		{k.DueDate, k.Category, k.FilterCategory, k.FilterStatus, k.Search, k.Reset, k.Quit},
	}
}

// promptKeys is the footer shown while a prompt has focus.
type promptKeys struct {
	confirm key.Binding
	cancel  key.Binding
}

func (p promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{p.confirm, p.cancel}
}

func (p promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.ShortHelp()}
}
