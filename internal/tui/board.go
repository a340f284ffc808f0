// Package tui renders the interactive todo board. It is a thin
// presentation layer: every mutation goes through the list controller,
// and the board redraws from controller state when its subscription
// fires.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoctl/internal/service"
	"todoctl/internal/session"
	"todoctl/internal/todolist"
)

// boardItem adapts a service.Todo to bubbles/list.Item.
type boardItem struct {
	todo service.Todo
}

func (i boardItem) Title() string {
	box := boxUnchecked
	if i.todo.Completed {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.todo.Title)
}

func (i boardItem) Description() string { return i.todo.Description }
func (i boardItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders each todo on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(boardItem)

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	line := fmt.Sprintf("%s %s", box, text)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// refreshMsg is sent by the controller subscription whenever the
// collection changes.
type refreshMsg struct{}

// opDoneMsg carries the outcome of a controller mutation.
type opDoneMsg struct {
	err error
}

type model struct {
	ctx  context.Context
	sess *session.Store
	ctl  *todolist.Controller

	list   list.Model
	ti     textinput.Model
	adding bool
	addErr string
	lastOp string // last failed operation message, shown in the footer

	width  int
	height int
}

func newModel(ctx context.Context, sess *session.Store, ctl *todolist.Controller) model {
	l := list.New(itemsFrom(ctl.Todos()), itemDelegate{}, 0, 0)
	l.Title = headerTitle(sess, ctl.Todos())
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	// Extend help with the board's own bindings
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	reloadBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	extra := func() []key.Binding { return []key.Binding{toggleBind, addBind, delBind, reloadBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	return model{
		ctx:    ctx,
		sess:   sess,
		ctl:    ctl,
		list:   l,
		ti:     ti,
		width:  80,
		height: 24,
	}
}

func itemsFrom(todos []service.Todo) []list.Item {
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, boardItem{todo: t})
	}
	return items
}

func headerTitle(sess *session.Store, todos []service.Todo) string {
	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}
	name := ""
	if u := sess.CurrentUser(); u != nil {
		name = u.Username
	}
	return fmt.Sprintf("%s %s  %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		mutedStyle.Render(name),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) refresh() model {
	todos := m.ctl.Todos()
	m.list.SetItems(itemsFrom(todos))
	m.list.Title = headerTitle(m.sess, todos)
	return m
}

// selected returns the todo under the cursor.
func (m model) selected() (service.Todo, bool) {
	i := m.list.Index()
	items := m.list.Items()
	if i < 0 || i >= len(items) {
		return service.Todo{}, false
	}
	it, ok := items[i].(boardItem)
	if !ok {
		return service.Todo{}, false
	}
	return it.todo, true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case refreshMsg:
		return m.refresh(), nil
	case opDoneMsg:
		if msg.err != nil {
			m.lastOp = msg.err.Error()
		} else {
			m.lastOp = ""
		}
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			todo, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				_, err := m.ctl.Toggle(m.ctx, todo.ID)
				return opDoneMsg{err: err}
			}
		case "d":
			todo, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return opDoneMsg{err: m.ctl.Remove(m.ctx, todo.ID)}
			}
		case "a":
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.ti.Focus()
			return m, nil
		case "r":
			return m, func() tea.Msg {
				return opDoneMsg{err: m.ctl.Load(m.ctx)}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.KeyMsg:
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			m.adding = false
			m.ti.Blur()
			return m, func() tea.Msg {
				_, err := m.ctl.Create(m.ctx, title, "")
				return opDoneMsg{err: err}
			}
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m model) View() string {
	listHeight := m.height - 4
	if m.adding {
		listHeight = m.height - 6
	}
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width-4, listHeight)

	content := m.list.View()
	if m.adding {
		title := "Add new todo"
		if m.addErr != "" {
			title += ": " + errorStyle.Render(m.addErr)
		}
		content += "\n" + panelStyle.Render(title+"\n"+m.ti.View())
	}
	if m.lastOp != "" {
		content += "\n" + errorStyle.Render("✖ "+m.lastOp)
	}
	return panelStyle.Render(content)
}

// Run starts the board and blocks until the user quits. Collection
// changes arrive through the controller subscription, so anything that
// mutates the list repaints the board.
func Run(ctx context.Context, sess *session.Store, ctl *todolist.Controller) error {
	m := newModel(ctx, sess, ctl)
	p := tea.NewProgram(m, tea.WithAltScreen())

	unsubscribe := ctl.Subscribe(func() {
		p.Send(refreshMsg{})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
