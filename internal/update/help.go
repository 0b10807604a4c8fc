package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todo/internal/views"
)

var helpSections = []string{"List", "View", "Reorder", "General"}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	vp := m.helpViewport
	vp.SetContent(views.RenderMarkdown(helpMarkdown(m.Keys), m.Theme))
	return vp.View()
}

func helpMarkdown(keys KeyMap) string {
	var b strings.Builder
	b.WriteString("# Keys\n")
	for i, group := range keys.FullHelp() {
		title := "More"
		if i < len(helpSections) {
			title = helpSections[i]
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		for _, binding := range group {
			writeBinding(&b, binding)
		}
	}
	b.WriteString("\n## Commands\n\n")
	b.WriteString("`/add <text>` `/toggle <n>` `/rm <n>` `/clear` `/filter all|active|completed` `/theme [light|dark]` `/move <n> <m>`\n")
	b.WriteString("\nMouse: click the circle to toggle, the ✕ to delete, drag a row to reorder.\n")
	return b.String()
}

func writeBinding(b *strings.Builder, binding key.Binding) {
	h := binding.Help()
	fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
}
