package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotq/internal/formatter"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	InputView ViewState = iota
	HistoryView
	ResultView
)

// Querier runs a GET against the API. [spotify.Client] satisfies it.
type Querier interface {
	Query(ctx context.Context, query string) (string, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	client  Querier
	width   int
	height  int
	input   textinput.Model
	history list.Model
	result  viewport.Model
	current string
	loading bool
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model. initial, when set, is run on start.
func NewModel(ctx context.Context, client Querier, initial string) *Model {
	input := textinput.New()
	input.Placeholder = "tracks/4uLU6hMCjMI75M1A2tKUQC or https://api.spotify.com/v1/..."
	input.Prompt = "GET "
	input.SetValue(initial)
	input.Focus()

	history := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	history.Title = "History"
	history.SetShowHelp(false)

	return &Model{
		ctx:     ctx,
		view:    InputView,
		client:  client,
		input:   input,
		history: history,
		result:  viewport.New(0, 0),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init runs the initial query when one was given.
func (m *Model) Init() tea.Cmd {
	if q := strings.TrimSpace(m.input.Value()); q != "" {
		m.loading = true
		return m.runQuery(q)
	}
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.history.SetSize(max(msg.Width-4, 10), max(msg.Height-6, 5))
		m.result.Width = max(msg.Width-4, 10)
		m.result.Height = max(msg.Height-8, 5)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case InputView:
			return m.handleInputKeys(msg)
		case HistoryView:
			return m.handleHistoryKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		if msg.kind == MsgQueryDone {
			return m.handleQueryDone(msg.data.(queryResult))
		}
	}

	return m.updateComponents(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case HistoryView:
		return m.renderHistory()
	case ResultView:
		return m.renderResult()
	default:
		return m.renderInput()
	}
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		q := strings.TrimSpace(m.input.Value())
		if q == "" || m.loading {
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, m.runQuery(q)
	case key.Matches(msg, m.keys.history):
		if len(m.history.Items()) > 0 {
			m.input.Blur()
			m.view = HistoryView
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		if m.current != "" {
			m.input.Blur()
			m.view = ResultView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.history.SelectedItem().(historyItem); ok {
			m.input.SetValue(item.query)
			m.loading = true
			m.err = nil
			return m, m.runQuery(item.query)
		}
		return m, nil
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.history):
		m.view = InputView
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back), msg.String() == "/":
		m.view = InputView
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.history):
		m.view = HistoryView
		return m, nil
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

func (m *Model) handleQueryDone(r queryResult) (tea.Model, tea.Cmd) {
	m.loading = false
	m.err = r.err

	cmd := m.history.InsertItem(0, historyItem{query: r.query, ok: r.err == nil, size: len(r.body)})
	if r.err != nil {
		m.view = InputView
		return m, tea.Batch(cmd, m.input.Focus())
	}

	content := r.body
	if pretty, err := formatter.PrettyJSON(r.body); err == nil {
		content = pretty
	}
	m.current = r.query
	m.result.SetContent(content)
	m.result.GotoTop()
	m.input.Blur()
	m.view = ResultView
	return m, cmd
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case InputView:
		m.input, cmd = m.input.Update(msg)
	case HistoryView:
		m.history, cmd = m.history.Update(msg)
	case ResultView:
		m.result, cmd = m.result.Update(msg)
	}
	return m, cmd
}

func (m *Model) runQuery(q string) tea.Cmd {
	return func() tea.Msg {
		body, err := m.client.Query(m.ctx, q)
		return queryDoneMsg(q, body, err)
	}
}

func (m *Model) renderInput() string {
	title := styles.title.Render("Spotify Web API")

	var status string
	switch {
	case m.loading:
		status = styles.warn.Render("Loading...")
	case m.err != nil:
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.history, m.keys.quit}
	if m.current != "" {
		helpKeys = append(helpKeys, m.keys.back)
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.input.View(), status, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderHistory() string {
	runKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run again"))
	helpKeys := []key.Binding{runKey, m.keys.up, m.keys.down, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.history.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderResult() string {
	title := styles.ok.Render("GET " + m.current)
	scroll := styles.help.Render(fmt.Sprintf("%3.f%%", m.result.ScrollPercent()*100))

	newKey := key.NewBinding(key.WithKeys("esc", "/"), key.WithHelp("esc", "new query"))
	helpKeys := []key.Binding{m.keys.up, m.keys.down, newKey, m.keys.history, m.keys.quit}
	return fmt.Sprintf("%s %s\n%s\n%s", title, scroll, styles.frame.Render(m.result.View()), m.help.ShortHelpView(helpKeys))
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
