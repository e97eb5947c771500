package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	nextContent key.Binding
	nextPhoto   key.Binding
	favorite    key.Binding
	sync        key.Binding
	copy        key.Binding
	info        key.Binding
	esc         key.Binding
	quit        key.Binding
}

var keys = keyMap{
	nextContent: key.NewBinding(key.WithKeys("n", "right", "l")),
	nextPhoto:   key.NewBinding(key.WithKeys("p")),
	favorite:    key.NewBinding(key.WithKeys("f")),
	sync:        key.NewBinding(key.WithKeys("s")),
	copy:        key.NewBinding(key.WithKeys("c")),
	info:        key.NewBinding(key.WithKeys("i", "v")),
	esc:         key.NewBinding(key.WithKeys("esc", "enter")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
