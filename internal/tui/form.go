package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Handlers are the todo operations the components call back into.
type Handlers struct {
	Create         func(text string)
	UpdateText     func(id, text string)
	Remove         func(id string)
	ToggleComplete func(id string)
}

// TodoForm is the input that creates todos on Enter.
type TodoForm struct {
	input  textinput.Model
	create func(text string)
}

func NewTodoForm(create func(text string)) TodoForm {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter new todo"
	ti.CharLimit = 200
	return TodoForm{input: ti, create: create}
}

func (f TodoForm) Focus() (TodoForm, tea.Cmd) {
	cmd := f.input.Focus()
	return f, cmd
}

func (f TodoForm) Blur() TodoForm {
	f.input.Blur()
	return f
}

func (f TodoForm) Focused() bool { return f.input.Focused() }

// Value is the text typed so far.
func (f TodoForm) Value() string { return f.input.Value() }

func (f TodoForm) Update(msg tea.Msg) (TodoForm, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		// Empty text is accepted here; only the item view flags it.
		f.create(f.input.Value())
		f.input.SetValue("")
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f TodoForm) View() string { return f.input.View() }
