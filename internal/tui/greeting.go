package tui

import "github.com/idilsaglam/tada/internal/ui"

// Greeting renders the welcome heading and the hello line.
type Greeting struct {
	WelcomeName string
	FirstName   string
	LastName    string
}

func (g Greeting) FormatName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

func (g Greeting) View() string {
	t := ui.Current()
	name := g.FormatName()
	if name == "" {
		name = "Stranger"
	}
	return t.Title.Render("Welcome "+g.WelcomeName+"!") + "\n" + "Hello, " + name + "!"
}
