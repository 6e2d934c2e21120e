package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// Letter keys mirror the digit layout row by row.
var holeLetters = []string{"q", "w", "e", "a", "s", "d", "z", "x", "c"}

type keyMap struct {
	Start key.Binding
	Reset key.Binding
	Quit  key.Binding
	Holes []key.Binding
}

func newKeyMap(holes int) keyMap {
	km := keyMap{
		Start: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
	for i := 0; i < holes && i < len(holeLetters); i++ {
		digit := strconv.Itoa(i + 1)
		km.Holes = append(km.Holes, key.NewBinding(
			key.WithKeys(digit, holeLetters[i]),
			key.WithHelp(digit+"/"+holeLetters[i], "whack"),
		))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.Start, k.Reset, k.Quit}
	if len(k.Holes) > 0 {
		first := k.Holes[0]
		last := k.Holes[len(k.Holes)-1]
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(first.Keys()...),
			key.WithHelp("1-"+last.Keys()[0], "whack"),
		))
	}
	return bindings
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Reset, k.Quit}, k.Holes}
}

// holeFor returns the slot bound to msg, or -1.
func (k keyMap) holeFor(keys string) int {
	for i, b := range k.Holes {
		for _, candidate := range b.Keys() {
			if candidate == keys {
				return i
			}
		}
	}
	return -1
}
