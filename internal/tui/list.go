package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todo"
	"github.com/idilsaglam/tada/internal/ui"
)

type listKeyMap struct {
	Toggle key.Binding
	Remove key.Binding
	Edit   key.Binding
	Blur   key.Binding
}

var listKeys = listKeyMap{
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Remove: key.NewBinding(key.WithKeys("x", "d", "delete"), key.WithHelp("x", "remove")),
	Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Blur:   key.NewBinding(key.WithKeys("enter", "esc", "tab"), key.WithHelp("enter", "done")),
}

// todoItem adapts a todo to bubbles/list.Item.
type todoItem struct {
	model.Todo
	invalid bool
}

func (i todoItem) FilterValue() string { return i.Text }

// itemDelegate renders one todo per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.SymUnchecked)
	text := it.Text
	if it.IsCompleted {
		box = t.Success.Render(t.SymChecked)
		text = t.Done.Render(text)
	}
	if it.invalid {
		text = t.Error.Render("(empty)")
	}

	prefix, suffix := "  ", ""
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
		suffix = " " + t.Muted.Render("⨯")
	}
	fmt.Fprintf(w, "%s%s %s%s", prefix, box, text, suffix)
}

// TodoList shows the current snapshot and edits items in place.
// The invalid flags are presentation state only; they never block an update.
type TodoList struct {
	list    list.Model
	h       Handlers
	shown   *todo.Snapshot
	invalid map[string]bool

	editing bool
	editID  string
	editor  textinput.Model
}

func NewTodoList(h Handlers, width, height int) TodoList {
	l := list.New(nil, itemDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("todo", "todos")
	l.DisableQuitKeybindings()
	l.FilterInput.Prompt = "/ "
	l.Styles.NoItems = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Help

	ed := textinput.New()
	ed.Prompt = "> "
	ed.Placeholder = "Edit todo..."
	ed.CharLimit = 200

	return TodoList{
		list:    l,
		h:       h,
		invalid: make(map[string]bool),
		editor:  ed,
	}
}

// Sync rebuilds the rows when the snapshot pointer differs from the one
// already shown.
func (l TodoList) Sync(s *todo.Snapshot) (TodoList, tea.Cmd) {
	if s == l.shown {
		return l, nil
	}
	l.shown = s
	for id := range l.invalid {
		if _, ok := s.Find(id); !ok {
			delete(l.invalid, id)
		}
	}
	cmd := l.refresh()
	return l, cmd
}

func (l *TodoList) refresh() tea.Cmd {
	if l.shown == nil {
		return nil
	}
	todos := l.shown.Todos()
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoItem{Todo: t, invalid: l.invalid[t.ID]})
	}
	cmd := l.list.SetItems(items)
	if n := len(l.list.Items()); n > 0 && l.list.Index() >= n {
		l.list.Select(n - 1)
	}
	return cmd
}

func (l TodoList) Editing() bool { return l.editing }

// Filtering reports whether the list's filter input has the keyboard.
func (l TodoList) Filtering() bool { return l.list.FilterState() == list.Filtering }

// Invalid reports whether the todo was left empty the last time it was edited.
func (l TodoList) Invalid(id string) bool { return l.invalid[id] }

// Selected returns the todo under the cursor.
func (l TodoList) Selected() (model.Todo, bool) {
	it, ok := l.list.SelectedItem().(todoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.Todo, true
}

func (l TodoList) SetSize(width, height int) TodoList {
	l.list.SetSize(width, height)
	l.editor.Width = width - 4
	return l
}

func (l TodoList) Update(msg tea.Msg) (TodoList, tea.Cmd) {
	if l.editing {
		return l.updateEditor(msg)
	}

	k, isKey := msg.(tea.KeyMsg)
	if isKey && !l.Filtering() {
		switch {
		case key.Matches(k, listKeys.Toggle):
			if t, ok := l.Selected(); ok {
				l.h.ToggleComplete(t.ID)
			}
			return l, nil
		case key.Matches(k, listKeys.Remove):
			if t, ok := l.Selected(); ok {
				l.h.Remove(t.ID)
			}
			return l, nil
		case key.Matches(k, listKeys.Edit):
			if t, ok := l.Selected(); ok {
				l.editing = true
				l.editID = t.ID
				l.editor.SetValue(t.Text)
				l.editor.CursorEnd()
				cmd := l.editor.Focus()
				return l, cmd
			}
			return l, nil
		}
	}

	var cmd tea.Cmd
	l.list, cmd = l.list.Update(msg)
	return l, cmd
}

// updateEditor forwards keys to the inline editor. Every change is pushed
// to the store right away; leaving the editor is the blur check.
func (l TodoList) updateEditor(msg tea.Msg) (TodoList, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, listKeys.Blur) {
		return l.blur()
	}
	before := l.editor.Value()
	var cmd tea.Cmd
	l.editor, cmd = l.editor.Update(msg)
	if v := l.editor.Value(); v != before {
		l.h.UpdateText(l.editID, v)
	}
	return l, cmd
}

func (l TodoList) blur() (TodoList, tea.Cmd) {
	if l.editor.Value() == "" {
		l.invalid[l.editID] = true
	} else {
		delete(l.invalid, l.editID)
	}
	l.editor.Blur()
	l.editor.SetValue("")
	l.editing = false
	l.editID = ""
	cmd := l.refresh()
	return l, cmd
}

func (l TodoList) View() string {
	if !l.editing {
		return l.list.View()
	}
	t := ui.Current()
	title := "Edit todo"
	if l.editor.Value() == "" {
		title += " " + t.Error.Render("(text is empty)")
	}
	return l.list.View() + "\n" + ui.PanelString(title+"\n"+l.editor.View())
}

func (l TodoList) ShortHelp() []key.Binding {
	if l.editing {
		return []key.Binding{listKeys.Blur}
	}
	return []key.Binding{listKeys.Toggle, listKeys.Remove, listKeys.Edit}
}
