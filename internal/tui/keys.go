package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/pokerdrill/internal/stats"
)

type keyMap struct {
	Actions  []key.Binding
	Undo     key.Binding
	AddLevel key.Binding
	Fail     key.Binding
	Privacy  key.Binding
	Sound    key.Binding
	Quit     key.Binding
}

func newKeyMap(actions []stats.Action) keyMap {
	km := keyMap{
		Undo:     key.NewBinding(key.WithKeys("u", "backspace"), key.WithHelp("u", "undo")),
		AddLevel: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add level")),
		Fail:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fail")),
		Privacy:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "privacy")),
		Sound:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sound")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for i, a := range actions {
		if i >= 9 {
			break
		}
		k := fmt.Sprintf("%d", i+1)
		km.Actions = append(km.Actions, key.NewBinding(key.WithKeys(k), key.WithHelp(k, a.Label())))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.AddLevel, k.Fail, k.Privacy, k.Sound, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.Actions, k.ShortHelp()}
}
