// Package tui is the interactive todo app: a greeting, a clock, the form
// that creates todos and the list that edits them.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/todo"
	"github.com/idilsaglam/tada/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// rows used by everything but the list, borders included
	chromeHeight = 14
)

type focus int

const (
	focusForm focus = iota
	focusList
)

type appKeyMap struct {
	Create    key.Binding
	Focus     key.Binding
	Clock     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var appKeys = appKeyMap{
	Create:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
	Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
	Clock:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clock")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Options configure the app.
type Options struct {
	Greeting      Greeting
	ClockInterval time.Duration
	Logger        *log.Logger
}

// App is the root Bubble Tea model.
type App struct {
	store  *todo.Store
	logger *log.Logger

	greeting Greeting
	clock    Clock
	form     TodoForm
	list     TodoList
	help     help.Model

	focus         focus
	width, height int
}

// New builds the app around store with the form focused and the clock mounted.
func New(store *todo.Store, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := storeHandlers(store, logger)

	a := App{
		store:    store,
		logger:   logger,
		greeting: opts.Greeting,
		clock:    NewClock(opts.ClockInterval),
		form:     NewTodoForm(h.Create),
		list:     NewTodoList(h, defaultWidth, defaultHeight),
		help:     help.New(),
		focus:    focusForm,
	}
	// Init arms the first tick and the cursor blink.
	a.clock, _ = a.clock.Mount()
	a.form, _ = a.form.Focus()
	a.list, _ = a.list.Sync(store.Snapshot())
	return a.resize(defaultWidth, defaultHeight)
}

// storeHandlers wires the component callbacks to the store.
func storeHandlers(s *todo.Store, logger *log.Logger) Handlers {
	return Handlers{
		Create: func(text string) {
			t := s.Create(text)
			logger.Debug("todo created", "id", t.ID, "empty", text == "")
		},
		UpdateText: func(id, text string) {
			s.UpdateText(id, text)
			logger.Debug("todo text updated", "id", id)
		},
		Remove: func(id string) {
			s.Remove(id)
			logger.Debug("todo removed", "id", id)
		},
		ToggleComplete: func(id string) {
			s.ToggleComplete(id)
			logger.Debug("todo toggled", "id", id)
		},
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.clock.Init())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.resize(msg.Width, msg.Height), nil

	case clockTickMsg:
		a.clock, cmd = a.clock.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, appKeys.ForceQuit) {
			return a, tea.Quit
		}
		a, cmd = a.updateKey(msg)

	default:
		var formCmd, listCmd tea.Cmd
		a.form, formCmd = a.form.Update(msg)
		a.list, listCmd = a.list.Update(msg)
		cmd = tea.Batch(formCmd, listCmd)
	}

	var syncCmd tea.Cmd
	a.list, syncCmd = a.list.Sync(a.store.Snapshot())
	return a, tea.Batch(cmd, syncCmd)
}

func (a App) updateKey(msg tea.KeyMsg) (App, tea.Cmd) {
	var cmd tea.Cmd
	if a.focus == focusForm {
		if key.Matches(msg, appKeys.Focus) {
			a.form = a.form.Blur()
			a.focus = focusList
			return a, nil
		}
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}

	if !a.list.Editing() && !a.list.Filtering() {
		switch {
		case key.Matches(msg, appKeys.Focus):
			a.focus = focusForm
			a.form, cmd = a.form.Focus()
			return a, cmd
		case key.Matches(msg, appKeys.Clock):
			return a.toggleClock()
		case key.Matches(msg, appKeys.Quit):
			return a, tea.Quit
		}
	}
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a App) toggleClock() (App, tea.Cmd) {
	if a.clock.Mounted() {
		a.clock = a.clock.Unmount()
		a.logger.Debug("clock unmounted")
		return a, nil
	}
	var cmd tea.Cmd
	a.clock, cmd = a.clock.Mount()
	a.logger.Debug("clock mounted")
	return a, cmd
}

func (a App) resize(width, height int) App {
	a.width, a.height = width, height
	a.help.Width = width - 4
	listHeight := height - chromeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	a.list = a.list.SetSize(width-4, listHeight)
	return a
}

func (a App) View() string {
	t := ui.Current()
	snap := a.store.Snapshot()
	done, pending := snap.Stats()

	var b strings.Builder
	b.WriteString(a.greeting.View() + "\n")
	if c := a.clock.View(); c != "" {
		b.WriteString(c + "\n")
	}
	fmt.Fprintf(&b, "\n%s   %s %d  %s %d  %s %d\n",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymChecked), done,
		t.Pending.Render("•"), pending,
		t.Accent.Render("Total"), snap.Len(),
	)
	b.WriteString(t.Muted.Render(ui.ProgressBar(done, done+pending, 28)) + "\n\n")
	b.WriteString(a.form.View() + "\n\n")
	b.WriteString(a.list.View() + "\n")
	b.WriteString(a.help.ShortHelpView(a.bindings()))
	return ui.PanelString(b.String())
}

func (a App) bindings() []key.Binding {
	if a.focus == focusForm {
		return []key.Binding{appKeys.Create, appKeys.Focus, appKeys.ForceQuit}
	}
	if a.list.Editing() {
		return a.list.ShortHelp()
	}
	return append(a.list.ShortHelp(), appKeys.Focus, appKeys.Clock, appKeys.Quit)
}

// Run starts the app on the alternate screen and blocks until it quits.
// A cancelled ctx ends the program without an error.
func Run(ctx context.Context, store *todo.Store, opts Options) error {
	p := tea.NewProgram(New(store, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
