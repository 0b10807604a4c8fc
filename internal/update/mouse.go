package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/todo/internal/views"
)

// Column offsets inside the list panel: border, padding, cursor marker.
const (
	checkColStart = 4
	checkColEnd   = 6
	textColStart  = 8
)

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	row := msg.Y - views.HeaderLines
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		tasks := m.Todos.VisibleTasks()
		if row < 0 || row >= len(tasks) {
			return m
		}
		t := tasks[row]
		m.Focus = FocusList
		m.newInput.Blur()
		m.Cursor = row
		switch {
		case msg.X >= checkColStart && msg.X <= checkColEnd:
			m.applyIntent(ToggleTodoMsg{ID: t.ID})
		case msg.X == deleteCol(t.Text):
			m.applyIntent(DeleteTodoMsg{ID: t.ID})
		default:
			m.startDrag()
		}
	case tea.MouseActionMotion:
		if m.Drag == nil || !m.Drag.Active() {
			return m
		}
		order := m.Drag.Order()
		if row < 0 || row >= len(order) {
			return m
		}
		over := order[row]
		from := indexOf(order, m.Drag.Dragged())
		// Entering a row from below crosses its lower half first.
		m.Drag.Over(over, row < from)
		m.followDragged()
		m.surfaceStoreError()
	case tea.MouseActionRelease:
		m.finishDrag(false)
	}
	return m
}

func deleteCol(text string) int {
	return textColStart + lipgloss.Width(views.RowText(text)) + 2
}

func indexOf(ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
