package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/td0m/desktasks/internal/ui"
	"github.com/td0m/desktasks/pkg/dateinput"
	"github.com/td0m/desktasks/pkg/task"
	"github.com/td0m/desktasks/pkg/transfer"
)

const (
	headerHeight = 4
	footerHeight = 2
)

type mode int

const (
	modeNormal mode = iota
	modeNew
	modeSearch
	modeRename
	modeDescription
	modeDue
	modeImport
)

type Options struct {
	// Categories offered when creating and editing tasks
	Categories []string
	// ExportDir is where E writes exports
	ExportDir string
	Now       func() time.Time
	Log       zerolog.Logger
}

// App is the bubbletea model of the task list
type App struct {
	mode mode

	viewport viewport.Model
	input    textinput.Model
	due      dateinput.Model
	tabs     ui.Tabs

	store      *task.Store
	filter     task.Filter
	categories []string
	exportDir  string
	now        func() time.Time
	log        zerolog.Logger

	cursor  int
	visible []task.Task

	message    string
	messageErr bool
}

// New loads the store and creates the app
func New(store *task.Store, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Categories) == 0 {
		opts.Categories = task.DefaultCategories
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	i := textinput.NewModel()
	i.Prompt = ""
	i.Width = 40

	// one tab per task.Statuses entry
	tabs := []string{"All", "Pending", "Completed"}

	store.Load()
	m := &App{
		viewport:   viewport.Model{},
		input:      i,
		due:        dateinput.NewModel(opts.Now),
		tabs:       ui.NewTabs(tabs),
		store:      store,
		filter:     task.Filter{Status: task.StatusAll},
		categories: opts.Categories,
		exportDir:  opts.ExportDir,
		now:        opts.Now,
		log:        opts.Log,
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits
func Run(store *task.Store, opts Options) error {
	p := tea.NewProgram(New(store, opts))

	// enable full terminal mode
	p.EnterAltScreen()
	defer p.ExitAltScreen()

	return p.Start()
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.tabs.Width = msg.Width
		m.setCursor(m.cursor) // make sure cursor is visible
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case msg.Type == tea.KeyEsc:
			m.cancel()
		case m.shortcut(msg):
		default:
			var quit bool
			cmd, quit = m.keyUpdate(msg)
			if quit {
				return m, tea.Quit
			}
		}
	}
	m.render()
	return m, cmd
}

// shortcut handles the keys that work in every mode
func (m *App) shortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+n":
		m.startInput(modeNew, "")
	case "ctrl+f":
		m.startInput(modeSearch, m.filter.Search)
	case "alt+C":
		m.clearCompleted()
	default:
		return false
	}
	return true
}

// handle keys differently based on the current mode
func (m *App) keyUpdate(msg tea.KeyMsg) (tea.Cmd, bool) {
	var cmd tea.Cmd
	switch m.mode {
	case modeNew, modeRename, modeDescription, modeImport:
		if msg.Type == tea.KeyEnter {
			m.submit()
			return nil, false
		}
		m.input, cmd = m.input.Update(msg)
	case modeSearch:
		if msg.Type == tea.KeyEnter {
			m.mode = modeNormal
			m.input.Blur()
			return nil, false
		}
		m.input, cmd = m.input.Update(msg)
		m.filter.Search = m.input.Value()
		m.refresh()
	case modeDue:
		if msg.Type == tea.KeyEnter {
			m.submit()
			return nil, false
		}
		m.due, cmd = m.due.Update(msg)
	case modeNormal:
		return nil, m.normalKey(msg)
	}
	return cmd, false
}

func (m *App) normalKey(msg tea.KeyMsg) bool {
	k := msg.String()
	// KeyDelete has no name of its own
	if msg.Type == tea.KeyDelete {
		k = "delete"
	}
	switch k {
	case "q":
		return true
	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "g":
		m.setCursor(0)
	case "G":
		m.setCursor(len(m.visible))
	case "ctrl+d":
		m.setCursor(m.cursor + 10)
	case "ctrl+u":
		m.setCursor(m.cursor - 10)
	case "n", "o":
		m.startInput(modeNew, "")
	case "/":
		m.startInput(modeSearch, m.filter.Search)
	case "tab", "shift+tab":
		m.tabs, _ = m.tabs.Update(msg)
		m.filter.Status = task.Statuses[m.tabs.Value()]
		m.refresh()
		m.setCursor(0)
	case "P":
		m.filter.Priority = nextPriorityFilter(m.filter.Priority)
		m.refresh()
	case "C":
		m.filter.Category = next(m.categoryChoices(), m.filter.Category, true)
		m.refresh()
	case "E":
		m.export()
	case "I":
		m.startInput(modeImport, "")
	}

	t, ok := m.atCursor()
	if !ok {
		return false
	}
	switch k {
	case " ":
		m.store.Toggle(t.ID)
		m.saved()
	case "e", "i":
		m.startInput(modeRename, t.Title)
	case "m":
		m.startInput(modeDescription, t.Description)
	case "d":
		m.mode = modeDue
		m.message = ""
		m.due = dateinput.NewModel(m.now)
		m.due.SetValue(t.DueDate)
	case "p":
		p := t.Priority.Next()
		m.store.Update(t.ID, task.Changes{Priority: &p})
		m.saved()
	case "c":
		c := next(m.categories, t.Category, false)
		m.store.Update(t.ID, task.Changes{Category: &c})
		m.saved()
	case "x", "delete":
		m.store.Delete(t.ID)
		m.saved()
	}
	return false
}

func (m *App) startInput(md mode, value string) {
	m.mode = md
	m.message = ""
	m.input.SetValue(value)
	m.input.SetCursor(len(value))
	m.input.Focus()
}

// cancel leaves the current mode; in normal mode it drops the filters
func (m *App) cancel() {
	switch m.mode {
	case modeNormal:
		m.filter = task.Filter{Status: m.filter.Status}
		m.message = ""
	case modeSearch:
		m.filter.Search = ""
	}
	m.mode = modeNormal
	m.input.Blur()
	m.refresh()
}

// submit finishes the input of the current mode
func (m *App) submit() {
	value := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeNew:
		d := task.Draft{Title: value, Priority: task.Medium, Category: m.categories[0]}
		if err := d.Validate(); err != nil {
			m.setError(err.Error())
			return
		}
		m.store.Add(d)
		m.saved()
		m.setCursor(0)
	case modeRename:
		t, ok := m.atCursor()
		if !ok {
			break
		}
		if value == "" {
			m.setError(task.ErrEmptyTitle.Error())
			return
		}
		m.store.Update(t.ID, task.Changes{Title: &value})
		m.saved()
	case modeDescription:
		t, ok := m.atCursor()
		if !ok {
			break
		}
		// empty clears it
		m.store.Update(t.ID, task.Changes{Description: &value})
		m.saved()
	case modeDue:
		t, ok := m.atCursor()
		if !ok {
			break
		}
		if !m.due.Valid() {
			m.setError("invalid date")
			return
		}
		due := m.due.Value()
		m.store.Update(t.ID, task.Changes{DueDate: &due})
		m.saved()
	case modeImport:
		n, err := transfer.InspectFile(value)
		if err != nil {
			m.log.Warn().Err(err).Str("path", value).Msg("failed to import tasks")
		}
		m.message = transfer.ImportMessage(n, err)
		m.messageErr = err != nil
	}
	m.mode = modeNormal
	m.input.Blur()
}

func (m *App) clearCompleted() {
	n := m.store.ClearCompleted()
	m.saved()
	if m.store.Err() == nil {
		m.message = fmt.Sprintf("cleared %d completed tasks", n)
		m.messageErr = false
	}
}

func (m *App) export() {
	all := m.store.All()
	path, err := transfer.ExportFile(m.exportDir, all, m.now())
	if err != nil {
		m.log.Error().Err(err).Msg("failed to export tasks")
		m.setError("export failed: " + err.Error())
		return
	}
	m.log.Info().Str("path", path).Int("count", len(all)).Msg("exported tasks")
	m.message = fmt.Sprintf("exported %d tasks to %s", len(all), path)
	m.messageErr = false
}

// saved refreshes the view after a mutation and surfaces write failures
func (m *App) saved() {
	m.refresh()
	if err := m.store.Err(); err != nil {
		m.setError("changes are not being saved: " + err.Error())
	}
}

func (m *App) setError(msg string) {
	m.message = msg
	m.messageErr = true
}

// refresh recomputes the visible tasks and the stats
func (m *App) refresh() {
	all := m.store.All()
	m.visible = task.Filtered(all, m.filter)
	m.tabs.Info = ui.RenderStats(task.ComputeStats(all))
	m.setCursor(m.cursor)
}

func (m *App) categoryChoices() []string {
	return task.Categories(m.categories, m.store.All())
}

// next returns the value following current in values, wrapping around.
// With blank it also cycles through "" after the last value.
func next(values []string, current string, blank bool) string {
	if len(values) == 0 {
		return current
	}
	for i, v := range values {
		if v != current {
			continue
		}
		if i+1 < len(values) {
			return values[i+1]
		}
		if blank {
			return ""
		}
		return values[0]
	}
	return values[0]
}

func nextPriorityFilter(p task.Priority) task.Priority {
	switch p {
	case "":
		return task.Priorities[0]
	case task.Priorities[len(task.Priorities)-1]:
		return ""
	}
	return p.Next()
}

func (m *App) render() {
	m.viewport.SetContent(m.viewTasks())
}

func (m *App) setCursor(value int) {
	size := len(m.visible)
	m.cursor = clamp(value, 0, max(size-1, 0))

	// for when no tasks
	if size == 0 || m.viewport.Height <= 0 {
		return
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
}

func (m *App) atCursor() (task.Task, bool) {
	// if no items visible
	if m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m *App) viewTasks() string {
	if len(m.visible) == 0 {
		if m.filter.Active() {
			return ui.Muted.Render("No tasks match your filters") + "\n" +
				ui.Muted.Render("Try adjusting your filters or create a new task")
		}
		return ui.Muted.Render("No tasks yet") + "\n" +
			ui.Muted.Render("Create your first task to get started! (ctrl+n)")
	}
	now := m.now()
	var s strings.Builder
	for i, t := range m.visible {
		title := ""
		if m.mode == modeRename && i == m.cursor {
			title = m.input.View()
		}
		s.WriteString(ui.RenderTask(t, now, i == m.cursor, title))
		s.WriteString("\n")
	}
	return s.String()
}

func (m *App) viewFilter() string {
	if m.mode == modeSearch {
		return "search: " + m.input.View()
	}
	var parts []string
	if m.filter.Search != "" {
		parts = append(parts, "search: "+m.filter.Search)
	}
	if m.filter.Category != "" {
		parts = append(parts, "category: "+m.filter.Category)
	}
	if m.filter.Priority != "" {
		parts = append(parts, "priority: "+string(m.filter.Priority))
	}
	if len(parts) == 0 {
		return ui.Muted.Render("no filters (P priority, C category, / search)")
	}
	return ui.Muted.Render(strings.Join(parts, " ∙ ") + "  (esc to clear)")
}

func (m *App) viewFooter() string {
	status := ui.Muted.Render(help)
	if m.message != "" {
		status = m.message
		if m.messageErr {
			status = ui.Error.Render(m.message)
		}
	}
	switch m.mode {
	case modeNew:
		return "new task: " + m.input.View() + "\n" + status
	case modeDue:
		return m.due.View() + "\n" + status
	case modeDescription:
		return "description: " + m.input.View() + "\n" + status
	case modeImport:
		return "import file: " + m.input.View() + "\n" + status
	}
	return status
}

const help = "ctrl+n new ∙ ctrl+f search ∙ alt+C clear completed ∙ space toggle ∙ e edit ∙ m description ∙ d due ∙ p priority ∙ c category ∙ x/del delete ∙ E export ∙ q quit"

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m *App) View() string {
	return m.tabs.View() + m.viewFilter() + "\n" + m.viewport.View() + "\n" + m.viewFooter()
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
