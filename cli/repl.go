package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/cling/grammar"
	"github.com/ardnew/cling/log"
	"github.com/ardnew/cling/render"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
)

// runREPL starts the interactive completion explorer against the
// grammar document named on the command line.
func runREPL(
	ctx context.Context,
	result *grammar.ParseResult,
	logger log.Logger,
) error {
	target, err := loadTarget(result)
	if err != nil {
		return err
	}

	input := textinput.New()
	input.Prompt = promptStyle.Render("> ")
	input.Placeholder = "type a command line; tab completes; enter parses"
	input.Focus()

	m := replModel{
		target: target.WithLogger(logger),
		input:  input,
	}

	program := tea.NewProgram(m, tea.WithContext(ctx))

	_, err = program.Run()

	return err
}

// replModel is the bubbletea model for the completion explorer.
type replModel struct {
	target   *grammar.Grammar
	input    textinput.Model
	matches  []string
	selected int
	output   string
	width    int
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyTab:
			m.applySelected()

			return m, nil

		case tea.KeyDown:
			if len(m.matches) > 0 {
				m.selected = (m.selected + 1) % len(m.matches)
			}

			return m, nil

		case tea.KeyUp:
			if len(m.matches) > 0 {
				m.selected = (m.selected + len(m.matches) - 1) % len(m.matches)
			}

			return m, nil

		case tea.KeyEnter:
			parsed := m.target.ParseString(m.input.Value())
			m.output = render.Result(parsed)

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// refresh recomputes the fuzzy-ranked suggestions for the current
// input.
func (m *replModel) refresh() {
	m.matches = m.target.SuggestFuzzy(m.input.Value())
	m.selected = 0
}

// applySelected replaces the trailing partial word with the selected
// suggestion.
func (m *replModel) applySelected() {
	if m.selected >= len(m.matches) {
		return
	}

	value := m.input.Value()

	cut := len(value)
	for cut > 0 && value[cut-1] != ' ' && value[cut-1] != '\t' {
		cut--
	}

	m.input.SetValue(value[:cut] + m.matches[m.selected])
	m.input.CursorEnd()
	m.refresh()
}

func (m replModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderMatches())
	sb.WriteString("\n")

	if m.output != "" {
		sb.WriteString("\n")
		sb.WriteString(m.output)
	}

	sb.WriteString(hintStyle.Render("esc quits"))
	sb.WriteString("\n")

	return sb.String()
}

// renderMatches builds the single-line suggestion bar, ellipsized to
// fit the terminal width.
func (m replModel) renderMatches() string {
	if len(m.matches) == 0 {
		return hintStyle.Render("(no completions)")
	}

	const sep = "  "

	var (
		sb   strings.Builder
		used int
	)

	for i, match := range m.matches {
		style := suggestionStyle
		if i == m.selected {
			style = selectedStyle
		}

		rendered := style.Render(match)

		entry := lipgloss.Width(rendered)
		if i > 0 {
			entry += lipgloss.Width(sep)
		}

		if m.width > 0 && used+entry > m.width {
			sb.WriteString(sep)
			sb.WriteString(hintStyle.Render("..."))

			break
		}

		if i > 0 {
			sb.WriteString(sep)
		}

		sb.WriteString(rendered)

		used += entry
	}

	return sb.String()
}
