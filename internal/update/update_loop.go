package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/drag"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.applyIntent(msg) {
		return m, nil
	}

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.helpViewport.Width = min(typed.Width, 64)
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Drag != nil {
			return m.handleDragKey(typed), nil
		}
		if m.Focus == FocusInput {
			return m.handleInputKey(typed)
		}
		return m.handleListKey(typed)
	case tea.MouseMsg:
		if m.MouseRows {
			return m.handleMouse(typed), nil
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.applyIntent(AddTodoMsg{Text: m.newInput.Value()})
		m.newInput.SetValue("")
		return m, nil
	case "tab", "esc", "down":
		m.Focus = FocusList
		m.newInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.newInput, cmd = m.newInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.FocusInput):
		return m.focusInput()
	case key.Matches(msg, m.Keys.Palette):
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active"}
		cmd := m.commandInput.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		} else {
			return m.focusInput()
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Todos.VisibleTasks())-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Toggle):
		if t, ok := m.selectedTask(); ok {
			m.applyIntent(ToggleTodoMsg{ID: t.ID})
		}
	case key.Matches(msg, m.Keys.Delete):
		if t, ok := m.selectedTask(); ok {
			m.applyIntent(DeleteTodoMsg{ID: t.ID})
		}
	case key.Matches(msg, m.Keys.ClearCompleted):
		m.applyIntent(ClearCompletedMsg{})
	case key.Matches(msg, m.Keys.FilterAll):
		m.applyIntent(SetFilterMsg{Filter: model.FilterAll})
	case key.Matches(msg, m.Keys.FilterActive):
		m.applyIntent(SetFilterMsg{Filter: model.FilterActive})
	case key.Matches(msg, m.Keys.FilterDone):
		m.applyIntent(SetFilterMsg{Filter: model.FilterCompleted})
	case key.Matches(msg, m.Keys.Theme):
		m.applyIntent(ToggleThemeMsg{})
	case key.Matches(msg, m.Keys.PickUp):
		m.startDrag()
	case key.Matches(msg, m.Keys.MoveUp):
		m.nudge(-1)
	case key.Matches(msg, m.Keys.MoveDown):
		m.nudge(1)
	}
	return m, nil
}

func (m Model) focusInput() (tea.Model, tea.Cmd) {
	m.Focus = FocusInput
	cmd := m.newInput.Focus()
	return m, cmd
}

func (m *Model) startDrag() bool {
	t, ok := m.selectedTask()
	if !ok {
		return false
	}
	session, err := drag.Start(m.Todos, m.DragMode, m.visibleIDs(), t.ID)
	if err != nil {
		return false
	}
	m.Drag = session
	m.Status = StatusBar{Text: "dragging: j/k move, enter drop, esc cancel"}
	return true
}

// nudge is a complete pick-up, one-step move, and drop.
func (m *Model) nudge(delta int) {
	if !m.startDrag() {
		return
	}
	m.Drag.Step(delta)
	m.finishDrag(false)
}

func (m Model) handleDragKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.Drag.Step(-1)
	case key.Matches(msg, m.Keys.Down):
		m.Drag.Step(1)
	case key.Matches(msg, m.Keys.Drop):
		m.finishDrag(false)
		return m
	case key.Matches(msg, m.Keys.Cancel):
		m.finishDrag(true)
		return m
	}
	m.followDragged()
	m.surfaceStoreError()
	return m
}

func (m *Model) finishDrag(cancel bool) {
	if m.Drag == nil {
		return
	}
	if cancel {
		m.Drag.Cancel()
	} else {
		m.Drag.Drop()
	}
	dragged := m.Drag.Dragged()
	m.logger.Debug("drag finished", "id", dragged, "cancelled", cancel, "commits", m.Drag.Commits())
	m.Drag = nil
	m.Status = StatusBar{}
	m.moveCursorTo(dragged)
	m.surfaceStoreError()
}

// followDragged keeps the cursor on the dragged row as it moves in the
// proposed order.
func (m *Model) followDragged() {
	for i, id := range m.Drag.Order() {
		if id == m.Drag.Dragged() {
			m.Cursor = i
			return
		}
	}
}

func (m Model) View() string {
	return views.RenderApp(views.AppData{
		Theme:      m.Theme,
		InputView:  m.inputView(),
		ListView:   views.RenderTodoList(views.ListData{Theme: m.Theme, Rows: m.rows()}),
		FooterView: views.RenderFooter(views.FooterData{Theme: m.Theme, ActiveCount: m.Todos.ActiveCount(), Filter: m.Todos.Filter()}),
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		HelpView:   m.renderHelpIfVisible(),
		KeysView:   m.helpModel.View(m.Keys),
	})
}

func (m Model) inputView() string {
	if m.Palette.Active {
		return m.commandInput.View()
	}
	return m.newInput.View()
}

// rows returns the visible tasks, laid out in the drag session's proposed
// order while a drop-mode drag is in progress.
func (m Model) rows() []views.RowData {
	tasks := m.Todos.VisibleTasks()
	if m.Drag != nil && m.DragMode == drag.ModeDrop {
		byID := make(map[int64]model.Task, len(tasks))
		for _, t := range tasks {
			byID[t.ID] = t
		}
		ordered := make([]model.Task, 0, len(tasks))
		for _, id := range m.Drag.Order() {
			if t, ok := byID[id]; ok {
				ordered = append(ordered, t)
			}
		}
		tasks = ordered
	}
	out := make([]views.RowData, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, views.RowData{
			Task:     t,
			Selected: m.Focus == FocusList && i == m.Cursor,
			Dragging: m.Drag != nil && t.ID == m.Drag.Dragged(),
		})
	}
	return out
}
