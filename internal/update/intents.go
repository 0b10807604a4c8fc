package update

import (
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
)

// Intents the renderer emits. Each one maps to exactly one store operation.

type AddTodoMsg struct {
	Text string
}

type ToggleTodoMsg struct {
	ID int64
}

type DeleteTodoMsg struct {
	ID int64
}

type ReorderMsg struct {
	IDs []int64
}

type SetFilterMsg struct {
	Filter model.Filter
}

type ClearCompletedMsg struct{}

type ToggleThemeMsg struct{}

type SetThemeMsg struct {
	Theme model.Theme
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func (m *Model) applyIntent(msg any) bool {
	switch typed := msg.(type) {
	case AddTodoMsg:
		if task, ok := m.Todos.Add(typed.Text); ok {
			m.moveCursorTo(task.ID)
		}
	case ToggleTodoMsg:
		m.Todos.Toggle(typed.ID)
	case DeleteTodoMsg:
		m.Todos.Delete(typed.ID)
	case ReorderMsg:
		m.Todos.Reorder(typed.IDs)
	case SetFilterMsg:
		m.Todos.SetFilter(typed.Filter)
	case ClearCompletedMsg:
		if n := m.Todos.ClearCompleted(); n > 0 {
			m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed", n)}
		}
	case ToggleThemeMsg:
		m.setTheme(m.Theme.Toggle())
		return true
	case SetThemeMsg:
		m.setTheme(typed.Theme)
		return true
	default:
		return false
	}
	m.clampCursor()
	m.surfaceStoreError()
	return true
}

func (m *Model) setTheme(theme model.Theme) {
	if !theme.IsValid() {
		return
	}
	m.Theme = theme
	if m.themes == nil {
		return
	}
	if err := m.themes.Save(m.ctx, theme); err != nil {
		m.logger.Error("save theme", "err", err)
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

// surfaceStoreError shows a failed save in the status bar. The list on
// screen is still correct; only the stored copy is stale.
func (m *Model) surfaceStoreError() {
	if err := m.Todos.LastError(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "not saved: " + err.Error(), IsError: true}
	}
}

func (m Model) visibleIDs() []int64 {
	tasks := m.Todos.VisibleTasks()
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.Todos.VisibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.Todos.VisibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) moveCursorTo(id int64) {
	for i, visible := range m.visibleIDs() {
		if visible == id {
			m.Cursor = i
			return
		}
	}
}
