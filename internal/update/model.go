package update

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/drag"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
)

type FocusArea string

const (
	FocusInput FocusArea = "input"
	FocusList  FocusArea = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// ThemeSaver persists the theme on every toggle.
type ThemeSaver interface {
	Save(ctx context.Context, theme model.Theme) error
}

type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	Theme          key.Binding
	PickUp         key.Binding
	MoveUp         key.Binding
	MoveDown       key.Binding
	Drop           key.Binding
	Cancel         key.Binding
	FocusInput     key.Binding
	Palette        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Delete:         key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Theme:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		PickUp:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "drag")),
		MoveUp:         key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:       key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Drop:           key.NewBinding(key.WithKeys("enter", "m", " "), key.WithHelp("enter", "drop")),
		Cancel:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		FocusInput:     key.NewBinding(key.WithKeys("tab", "i"), key.WithHelp("tab", "new todo")),
		Palette:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.FilterAll, k.FilterActive, k.FilterDone, k.PickUp, k.Theme, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete, k.ClearCompleted},
		{k.FilterAll, k.FilterActive, k.FilterDone, k.Theme},
		{k.PickUp, k.MoveUp, k.MoveDown, k.Drop, k.Cancel},
		{k.FocusInput, k.Palette, k.Help, k.Quit},
	}
}

type Options struct {
	Context     context.Context
	Logger      *log.Logger
	LiveReorder bool
	Mouse       bool
}

// Model renders a TodoStore and turns gestures into store operations. It
// keeps no copy of the task list: rows are fetched from the store on every
// render.
type Model struct {
	Todos       *store.TodoStore
	Theme       model.Theme
	Cursor      int
	Focus       FocusArea
	Drag        *drag.Session
	DragMode    drag.Mode
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool
	LastError   error
	MouseRows   bool

	themes       ThemeSaver
	ctx          context.Context
	logger       *log.Logger
	newInput     textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	helpViewport viewport.Model
	width        int
}

func NewModel(todos *store.TodoStore, themes ThemeSaver, theme model.Theme, opts Options) Model {
	if !theme.IsValid() {
		theme = model.ThemeLight
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	mode := drag.ModeDrop
	if opts.LiveReorder {
		mode = drag.ModeLive
	}
	m := Model{
		Todos:     todos,
		Theme:     theme,
		Focus:     FocusInput,
		DragMode:  mode,
		Keys:      DefaultKeyMap(),
		MouseRows: opts.Mouse,
		themes:    themes,
		ctx:       ctx,
		logger:    logger,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.newInput = textinput.New()
	m.newInput.Prompt = "○ "
	m.newInput.Placeholder = "Create a new todo..."
	m.newInput.CharLimit = 256
	m.newInput.Width = 54
	m.newInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 54

	m.helpModel = help.New()
	m.helpViewport = viewport.New(60, 14)
}
