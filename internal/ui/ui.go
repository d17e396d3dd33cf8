package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/dance-party/internal/models"
	"github.com/desertthunder/dance-party/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResultsView ViewState = iota
	ConfirmView
	DoneView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	client   services.Client
	query    string
	width    int
	height   int
	results  list.Model
	loading  bool
	selected *models.SearchRow
	queued   []string
	warning  string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model that searches client for query.
func NewModel(ctx context.Context, client services.Client, query string) *Model {
	results := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	results.Title = fmt.Sprintf("Results for %q", query)

	return &Model{
		ctx:     ctx,
		view:    ResultsView,
		client:  client,
		query:   query,
		width:   80,
		height:  24,
		results: results,
		loading: true,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Queued returns the URIs queued during the session, in order.
func (m *Model) Queued() []string {
	return m.queued
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Init initializes the TUI by running the search.
func (m *Model) Init() tea.Cmd {
	return m.search()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ResultsView:
			return m.handleResultsKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case DoneView:
			return m.handleDoneKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgResultsFetched:
		data := msg.data.(resultsFetched)
		m.loading = false
		if data.err != nil {
			m.err = data.err
			return m, tea.Quit
		}
		cmd := m.results.SetItems(rowItems(data.rows))
		return m, cmd

	case MsgTrackQueued:
		data := msg.data.(trackQueued)
		m.view = DoneView
		m.err = data.err
		if data.err == nil {
			m.queued = append(m.queued, data.row.URI)
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != DoneView {
		return styles.failure.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}
	if m.loading {
		return styles.heading.Render(fmt.Sprintf("Searching for %q...", m.query))
	}

	switch m.view {
	case ResultsView:
		return m.renderResults()
	case ConfirmView:
		return m.renderConfirm()
	case DoneView:
		return m.renderDone()
	default:
		return ""
	}
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.results.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		item, ok := m.results.SelectedItem().(rowItem)
		if !ok {
			return m, nil
		}
		if !item.row.Queueable() {
			m.warning = fmt.Sprintf("%s is an %s, only tracks can be queued", item.row.Name, item.row.Kind)
			return m, nil
		}
		m.warning = ""
		m.selected = &item.row
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.enqueue(*m.selected)
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.selected = nil
		m.view = ResultsView
	}
	return m, nil
}

func (m *Model) handleDoneKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.selected = nil
		m.err = nil
		m.view = ResultsView
	}
	return m, nil
}

func (m *Model) search() tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.Search(m.ctx, m.query)
		return resultsFetchedMsg(models.FlattenSearch(result), err)
	}
}

func (m *Model) enqueue(row models.SearchRow) tea.Cmd {
	return func() tea.Msg {
		return trackQueuedMsg(row, m.client.EnqueueTrack(m.ctx, row.URI))
	}
}

func (m *Model) renderResults() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})

	out := m.results.View()
	if m.warning != "" {
		out = fmt.Sprintf("%s\n%s", out, styles.warning.Render(m.warning))
	}
	return fmt.Sprintf("%s\n\n%s", out, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.heading.Render(fmt.Sprintf("Queue '%s'? %s", m.selected.Name, styles.badge(m.selected.Kind)))
	info := fmt.Sprintf("\nArtist: %s\nAlbum: %s\nURI: %s\n", m.selected.Artist, m.selected.Album, m.selected.URI)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderDone() string {
	back := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to results"))
	helpView := m.help.ShortHelpView([]key.Binding{back, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.failure.Render(fmt.Sprintf("Could not queue track: %v", m.err)), helpView)
	}
	return fmt.Sprintf("%s\n%s\n\n%s",
		styles.success.Render(fmt.Sprintf("✓ Queued %s", m.selected.Name)),
		styles.muted.Render(m.selected.URI),
		helpView,
	)
}
