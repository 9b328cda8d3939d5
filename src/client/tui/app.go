// Package tui implements the interactive model browser
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentcomparer/comparer-cli/src/client/api"
)

// Dracula palette
var (
	foreground = lipgloss.Color("#f8f8f2")
	comment    = lipgloss.Color("#6272a4")
	cyan       = lipgloss.Color("#8be9fd")
	purple     = lipgloss.Color("#bd93f9")
	red        = lipgloss.Color("#ff5555")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(comment).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(foreground)

	providerStyle = lipgloss.NewStyle().
			Foreground(cyan)

	helpStyle = lipgloss.NewStyle().
			Foreground(comment)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)
)

type model struct {
	client   *api.Client
	input    textinput.Model
	viewport viewport.Model
	models   []api.Model
	err      error
	loading  bool
	width    int
	height   int
}

type modelsLoadedMsg struct {
	models []api.Model
	err    error
}

func initialModel(client *api.Client) model {
	ti := textinput.New()
	ti.Placeholder = "Filter models..."
	ti.Focus()
	ti.Width = 50

	return model{
		client:  client,
		input:   ti,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadModels)
}

func (m model) loadModels() tea.Msg {
	models, err := m.client.ListModels()
	return modelsLoadedMsg{models: models, err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, msg.Height-6)
		m.viewport.SetContent(m.renderModels())

	case modelsLoadedMsg:
		m.loading = false
		m.models = msg.models
		m.err = msg.err
		m.viewport.SetContent(m.renderModels())
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.input.Value() != before {
		m.viewport.SetContent(m.renderModels())
		m.viewport.GotoTop()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// filtered applies the current input as a case-insensitive substring
// filter over provider, family and name. Same matching as list-models
// --search, so the two surfaces agree on what a term finds.
func (m model) filtered() []api.Model {
	term := m.input.Value()
	if term == "" {
		return m.models
	}

	var out []api.Model
	for _, rec := range m.models {
		if rec.MatchesFilter(term) {
			out = append(out, rec)
		}
	}
	return out
}

func (m model) renderModels() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	models := m.filtered()
	if len(models) == 0 {
		return helpStyle.Render("No models found")
	}

	var sb strings.Builder
	for i, rec := range models {
		sb.WriteString(providerStyle.Render(fmt.Sprintf("%d. %s", i+1, rec.Provider())))
		sb.WriteString("\n")
		sb.WriteString(rowStyle.Render("   " + rec.ModelFamily() + " / " + rec.ModelName()))
		sb.WriteString("\n\n")
	}
	sb.WriteString(helpStyle.Render(fmt.Sprintf("Total models: %d", len(models))))
	return sb.String()
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Agent Comparer"))
	sb.WriteString("\n\n")

	sb.WriteString(inputStyle.Render(m.input.View()))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(helpStyle.Render("Loading models..."))
	} else {
		sb.WriteString(m.viewport.View())
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Type: filter • Esc: quit"))

	return sb.String()
}

// Run starts the TUI application
func Run(client *api.Client) error {
	p := tea.NewProgram(initialModel(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
