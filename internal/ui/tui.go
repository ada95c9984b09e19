package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wiqnnc/wiki/internal/client"
)

// QuerySession is the part of client.Session the TUI drives.
type QuerySession interface {
	SetQuery(text string)
	Submit() (route string, ok bool)
	State() client.State
	Updates() <-chan client.State
}

// RunSearch runs the interactive search host until the user navigates or
// quits. route is empty when the user quit without choosing a result.
func RunSearch(ctx context.Context, session QuerySession, host client.HostConfig, cfg Config) (string, error) {
	m := NewSearchModel(session, host, GetStyles(cfg.NoColor))

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return "", err
	}
	if fm, ok := final.(*SearchModel); ok {
		return fm.Route(), nil
	}
	return "", nil
}

type stateMsg client.State
type sessionClosedMsg struct{}

func waitForState(updates <-chan client.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return sessionClosedMsg{}
		}
		return stateMsg(st)
	}
}

// SearchModel is the bubbletea model of the search host.
type SearchModel struct {
	session  QuerySession
	host     client.HostConfig
	input    textinput.Model
	spinner  spinner.Model
	styles   Styles
	state    client.State
	selected int
	route    string
	width    int
	quitting bool
}

// NewSearchModel creates the model with the input seeded from the session's
// current query.
func NewSearchModel(session QuerySession, host client.HostConfig, styles Styles) *SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search the wiki"
	ti.Prompt = "/ "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 200
	ti.Focus()

	state := session.State()
	ti.SetValue(state.Query)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Prompt

	return &SearchModel{
		session: session,
		host:    host,
		input:   ti,
		spinner: s,
		styles:  styles,
		state:   state,
		width:   80,
	}
}

// Route is the route chosen with Enter, or "".
func (m *SearchModel) Route() string {
	return m.route
}

// Init implements tea.Model.
func (m *SearchModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForState(m.session.Updates()),
	)
}

// Update implements tea.Model.
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if route, ok := m.chosenRoute(); ok {
				m.route = route
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case tea.KeyDown:
			if m.selected < len(m.state.Results)-1 {
				m.selected++
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.selected = 0
			m.session.SetQuery(v)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateMsg:
		m.state = client.State(msg)
		if m.selected >= len(m.state.Results) {
			m.selected = 0
		}
		return m, waitForState(m.session.Updates())

	case sessionClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SearchModel) chosenRoute() (string, bool) {
	if m.selected > 0 && m.selected < len(m.state.Results) {
		return m.state.Results[m.selected].Route, true
	}
	return m.session.Submit()
}

// View implements tea.Model.
func (m *SearchModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width - 4
	if width < 40 {
		width = 40
	}

	sections := []string{m.input.View(), ""}
	if m.state.HasQuery() {
		sections = append(sections, renderResults(m.styles, m.state, m.selected)...)
		if sug := renderSuggestions(m.styles, m.state.Query, m.host); len(sug) > 0 && len(m.state.Results) == 0 {
			sections = append(sections, "")
			sections = append(sections, sug...)
		}
	} else {
		sections = append(sections, renderSuggestions(m.styles, "", m.host)...)
		if links := renderQuickLinks(m.styles, m.host); len(links) > 0 {
			sections = append(sections, "")
			sections = append(sections, links...)
		}
	}

	panel := m.styles.Panel.Width(width).Render(strings.Join(sections, "\n"))
	header := m.styles.Header.Render("Wiki search")
	return lipgloss.JoinVertical(lipgloss.Left, header, panel, m.renderStatusBar())
}

func (m *SearchModel) renderStatusBar() string {
	var parts []string
	switch {
	case m.state.Status == client.StatusLoading || m.state.IsSearching:
		parts = append(parts, m.spinner.View()+" "+StatusLine(m.state))
	case m.state.Status == client.StatusError:
		parts = append(parts, m.styles.Error.Render(StatusLine(m.state)))
	default:
		if info := StatusLine(m.state); info != "" {
			parts = append(parts, m.styles.Label.Render(info))
		}
	}
	parts = append(parts, m.styles.Dim.Render("enter open · ↑/↓ select · esc quit"))
	return strings.Join(parts, m.styles.Dim.Render("  │  "))
}
