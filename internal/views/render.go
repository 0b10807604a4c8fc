package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/todo/internal/model"
)

type AppData struct {
	Theme      model.Theme
	InputView  string
	ListView   string
	FooterView string
	StatusLine string
	IsError    bool
	HelpView   string
	KeysView   string
}

// Styles is the palette for one theme.
type Styles struct {
	Header    lipgloss.Style
	Panel     lipgloss.Style
	Row       lipgloss.Style
	Cursor    lipgloss.Style
	Dragging  lipgloss.Style
	Done      lipgloss.Style
	Check     lipgloss.Style
	Delete    lipgloss.Style
	Muted     lipgloss.Style
	FilterOn  lipgloss.Style
	FilterOff lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Empty     lipgloss.Style
}

func NewStyles(theme model.Theme) Styles {
	fg, muted, accent, panel := lipgloss.Color("237"), lipgloss.Color("246"), lipgloss.Color("63"), lipgloss.Color("252")
	if theme == model.ThemeDark {
		fg, muted, accent, panel = lipgloss.Color("252"), lipgloss.Color("241"), lipgloss.Color("111"), lipgloss.Color("238")
	}
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(panel).Padding(0, 1),
		Row:       lipgloss.NewStyle().Foreground(fg),
		Cursor:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Dragging:  lipgloss.NewStyle().Foreground(accent).Faint(true),
		Done:      lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Check:     lipgloss.NewStyle().Foreground(accent),
		Delete:    lipgloss.NewStyle().Foreground(muted),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		FilterOn:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		FilterOff: lipgloss.NewStyle().Foreground(muted),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Empty:     lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}

// ThemeIcon is the affordance shown for switching to the other theme.
func ThemeIcon(theme model.Theme) string {
	if theme == model.ThemeDark {
		return "☀"
	}
	return "☾"
}

// HeaderLines is the number of lines RenderApp prints above the first
// list row: header, input panel (three lines), and the list panel border.
const HeaderLines = 5

// PanelWidth is the outer width of each panel less its border; one column of
// padding sits on either side of the content.
const PanelWidth = 66

func RenderApp(data AppData) string {
	st := NewStyles(data.Theme)
	lines := []string{
		st.Header.Render("T O D O") + "  " + st.Muted.Render(ThemeIcon(data.Theme)),
		st.Panel.Width(PanelWidth).Render(data.InputView),
		st.Panel.Width(PanelWidth).Render(data.ListView + "\n" + data.FooterView),
	}
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, st.Error.Render(data.StatusLine))
		} else {
			lines = append(lines, st.Status.Render(data.StatusLine))
		}
	}
	if data.HelpView != "" {
		lines = append(lines, st.Panel.Width(PanelWidth).Render(data.HelpView))
	}
	if data.KeysView != "" {
		lines = append(lines, st.Muted.Render(data.KeysView))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, theme model.Theme) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if theme == model.ThemeDark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
