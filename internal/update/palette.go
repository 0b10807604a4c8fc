package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/drag"
	"github.com/sandeepkv93/todo/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand(), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.applyIntent(AddTodoMsg{Text: a.Text})
			return commands.Result{Message: fmt.Sprintf("added: %s", a.Text)}, nil
		},
		Toggle: func(p commands.PositionArgs) (commands.Result, error) {
			t, err := m.taskAt(p.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.applyIntent(ToggleTodoMsg{ID: t.ID})
			return commands.Result{Message: fmt.Sprintf("toggled %d", p.Position)}, nil
		},
		Remove: func(p commands.PositionArgs) (commands.Result, error) {
			t, err := m.taskAt(p.Position)
			if err != nil {
				return commands.Result{}, err
			}
			m.applyIntent(DeleteTodoMsg{ID: t.ID})
			return commands.Result{Message: fmt.Sprintf("removed %d", p.Position)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.applyIntent(ClearCompletedMsg{})
			return commands.Result{Message: "cleared completed"}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.applyIntent(SetFilterMsg{Filter: f.Filter})
			return commands.Result{Message: "showing " + strings.ToLower(f.Filter.Label())}, nil
		},
		Theme: func(th commands.ThemeArgs) (commands.Result, error) {
			if th.Theme == "" {
				m.applyIntent(ToggleThemeMsg{})
			} else {
				m.applyIntent(SetThemeMsg{Theme: th.Theme})
			}
			return commands.Result{Message: "theme: " + string(m.Theme)}, nil
		},
		Move: func(mv commands.MoveArgs) (commands.Result, error) {
			from, err := m.taskAt(mv.From)
			if err != nil {
				return commands.Result{}, err
			}
			to, err := m.taskAt(mv.To)
			if err != nil {
				return commands.Result{}, err
			}
			session, err := drag.Start(m.Todos, drag.ModeDrop, m.visibleIDs(), from.ID)
			if err != nil {
				return commands.Result{}, err
			}
			session.Over(to.ID, mv.To < mv.From)
			session.Drop()
			m.moveCursorTo(from.ID)
			m.surfaceStoreError()
			return commands.Result{Message: fmt.Sprintf("moved %d to %d", mv.From, mv.To)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else if !m.Status.IsError {
		m.Status = StatusBar{Text: res.Message}
	}

	m.closePalette()
	return m
}

func (m Model) taskAt(position int) (model.Task, error) {
	tasks := m.Todos.VisibleTasks()
	if position < 1 || position > len(tasks) {
		return model.Task{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no todo at position %d", position),
		}
	}
	return tasks[position-1], nil
}
