package tui

import (
	"context"
	"fmt"
	"strings"

	"callstrip/internal/calllog"
	"callstrip/internal/strip"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type rowsLoadedMsg struct {
	rows []calllog.Row
	err  error
}

type keyMap struct {
	Reload     key.Binding
	Accounting key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Accounting: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle accounting")),
	}
}

type appModel struct {
	opts     Options
	keys     keyMap
	list     list.Model
	delegate *callRowDelegate

	width  int
	height int
	err    error
}

func newAppModel(opts Options) appModel {
	d := newCallRowDelegate(opts.Bundle, opts.Accounting)
	l := list.New([]list.Item{}, d, 0, 0)
	l.Title = "Call log"
	l.Styles.Title = styleTitle()
	l.SetStatusBarItemName("row", "rows")
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; keep ESC for clearing filters.
	l.KeyMap.Quit.SetKeys("q")

	m := appModel{opts: opts, keys: newKeyMap(), list: l, delegate: d}
	m.list.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.Reload, m.keys.Accounting}
	}
	return m
}

func (m appModel) loadRows() tea.Cmd {
	st, limit := m.opts.Store, m.opts.Limit
	return func() tea.Msg {
		rows, err := st.Rows(context.Background(), limit)
		return rowsLoadedMsg{rows: rows, err: err}
	}
}

func (m appModel) Init() tea.Cmd { return m.loadRows() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(max(msg.Width, 20), max(msg.Height-2, 4))
		return m, nil

	case rowsLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.rows))
		for _, it := range rowItems(msg.rows) {
			items = append(items, it)
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		// Let the filter input own every key while typing.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m, m.loadRows()
		case key.Matches(msg, m.keys.Accounting):
			next := strip.Exact
			if m.opts.Accounting == strip.Exact {
				next = strip.Compat
			}
			m.opts.Accounting = next
			m.delegate.setAccounting(next)
			return m, m.list.NewStatusMessage("accounting: " + next.String())
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	var footer string
	if m.err != nil {
		footer = lipgloss.NewStyle().Foreground(colorMissedName).Render("error: " + m.err.Error())
	} else {
		footer = styleMuted().Render(fmt.Sprintf("db=%s  accounting=%s", m.opts.Store.Path, m.opts.Accounting))
	}
	return strings.Join([]string{m.list.View(), footer}, "\n")
}
