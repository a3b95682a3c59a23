package terminal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

func (m *Session) helpView() string {
	bindings := []key.Binding{m.keyBindings.Submit}
	if m.isChoice() {
		bindings = append(bindings, m.keyBindings.Up, m.keyBindings.Down)
	} else {
		bindings = append(bindings, m.keyBindings.NewLine)
	}
	bindings = append(bindings, m.keyBindings.NextFocus, m.keyBindings.RemoveImage, m.keyBindings.Cancel)

	items := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		items = append(items, help.Key+" "+help.Desc)
	}

	return helpStyle.Render(strings.Join(items, " • ") + "\npaste or drop an image file to attach it")
}
