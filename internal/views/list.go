package views

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/sandeepkv93/todo/internal/model"
)

const EmptyText = "No todos to show"

// RowTextWidth is the room left for task text on a row once the cursor,
// check mark and delete affordance are placed: "> (✓) " + text + "  ✕".
const RowTextWidth = PanelWidth - 2 - 9

type RowData struct {
	Task     model.Task
	Selected bool
	Dragging bool
}

type ListData struct {
	Theme model.Theme
	Rows  []RowData
}

type FooterData struct {
	Theme       model.Theme
	ActiveCount int
	Filter      model.Filter
}

// EscapeText makes task text safe to print: terminal escape sequences are
// removed and any remaining control character is shown as U+FFFD, so the
// text is always displayed literally and cannot restyle or move the cursor.
func EscapeText(s string) string {
	stripped := ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return unicode.ReplacementChar
		default:
			return r
		}
	}, stripped)
}

// RowText is the escaped task text cut to RowTextWidth cells, so a task
// always occupies exactly one screen line.
func RowText(s string) string {
	return ansi.Truncate(EscapeText(s), RowTextWidth, "…")
}

func RenderTodoList(data ListData) string {
	st := NewStyles(data.Theme)
	if len(data.Rows) == 0 {
		return st.Empty.Render(EmptyText)
	}
	var b strings.Builder
	for i, row := range data.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRow(st, row))
	}
	return b.String()
}

func renderRow(st Styles, row RowData) string {
	cursor := "  "
	if row.Dragging {
		cursor = st.Cursor.Render("≡ ")
	} else if row.Selected {
		cursor = st.Cursor.Render("> ")
	}
	check := "( )"
	if row.Task.Completed {
		check = st.Check.Render("(✓)")
	}
	text := RowText(row.Task.Text)
	switch {
	case row.Dragging:
		text = st.Dragging.Render(text)
	case row.Task.Completed:
		text = st.Done.Render(text)
	default:
		text = st.Row.Render(text)
	}
	return fmt.Sprintf("%s%s %s  %s", cursor, check, text, st.Delete.Render("✕"))
}

func RenderFooter(data FooterData) string {
	st := NewStyles(data.Theme)
	noun := "items"
	if data.ActiveCount == 1 {
		noun = "item"
	}
	filters := make([]string, 0, 3)
	for i, f := range model.Filters() {
		label := fmt.Sprintf("%d:%s", i+1, f.Label())
		if f == data.Filter {
			filters = append(filters, st.FilterOn.Render(label))
		} else {
			filters = append(filters, st.FilterOff.Render(label))
		}
	}
	return st.Muted.Render(fmt.Sprintf("%d %s left", data.ActiveCount, noun)) +
		"  " + strings.Join(filters, " ") +
		"  " + st.Muted.Render("C:Clear completed")
}
