package dateinput

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/desktasks/pkg/task/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

// Model is a text input for due dates that shows what the input resolves to
// while the user types. An empty input means "no due date".
type Model struct {
	i     textinput.Model
	now   func() time.Time
	value *time.Time
}

func NewModel(now func() time.Time) Model {
	i := textinput.NewModel()
	i.Focus()
	i.CharLimit = 20
	i.Prompt = ""
	i.Width = 20
	return Model{
		i:   i,
		now: now,
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.value = m.parse()
		return m, cmd
	}
	return m, nil
}

func (m Model) parse() *time.Time {
	t, err := date.Parse(m.i.Value(), m.now())
	if err != nil {
		return nil
	}
	return &t
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Model) View() string {
	indicator := cross
	if m.i.Value() == "" {
		indicator = ""
	} else if m.value != nil {
		indicator = checkmark + " " + date.Format(*m.value) + " (" + date.Relative(*m.value, m.now()) + ")"
	}
	prefix := "due"
	return lipgloss.NewStyle().Foreground(faded).Render(prefix+": ") + m.i.View() + indicator
}

// Valid reports whether the input can be submitted, empty input clears the date
func (m Model) Valid() bool {
	return m.i.Value() == "" || m.value != nil
}

// Value returns the stored form of the input: YYYY-MM-DD, or "" for no date
func (m Model) Value() string {
	if m.value == nil {
		return ""
	}
	return date.Format(*m.value)
}

// SetValue fills the input with a stored due date
func (m *Model) SetValue(iso string) {
	m.i.SetValue(iso)
	m.value = m.parse()
	m.i.SetCursor(len(iso))
}
