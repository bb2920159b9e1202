package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adder/internal/diag"
	"adder/internal/diagfmt"
	"adder/internal/driver"
)

const (
	primaryPrompt      = ">>> "
	continuationPrompt = "... "
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type replModel struct {
	input    textinput.Model
	history  []string
	buffer   []string
	flags    driver.Flags
	optimize int
}

// NewRepl returns a Bubble Tea model implementing the interactive
// single-statement loop: lines accumulate until they compile on their own,
// then the compiled unit is disassembled into the transcript.
func NewRepl(flags driver.Flags, optimize int) tea.Model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(primaryPrompt)
	ti.Focus()
	return &replModel{input: ti, flags: flags, optimize: optimize}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlD, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submitLine(m.input.Value())
			m.input.SetValue("")
			m.input.Prompt = promptStyle.Render(m.prompt())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	var b strings.Builder
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m *replModel) prompt() string {
	if len(m.buffer) > 0 {
		return continuationPrompt
	}
	return primaryPrompt
}

// submitLine adds one input line to the pending group and compiles it when
// the group forms a complete statement. An "unexpected EOF" diagnostic
// means more input is needed, matching the interpreter's continuation rule.
func (m *replModel) submitLine(line string) {
	m.history = append(m.history, m.prompt()+line)
	m.buffer = append(m.buffer, line)

	src := strings.Join(m.buffer, "\n") + "\n"
	res, err := driver.Compile(
		driver.TextInput(src), "<stdin>", driver.ModeSingle,
		m.flags|driver.FlagDontImplyDedent, nil, m.optimize)
	if err != nil {
		d, ok := err.(*diag.Diagnostic)
		if !ok {
			m.buffer = nil
			m.history = append(m.history, errorStyle.Render(err.Error()))
			return
		}
		if d.Msg == "unexpected EOF while parsing" {
			return // open block or bracket, keep reading
		}
		m.buffer = nil
		var sb strings.Builder
		diagfmt.Pretty(&sb, d, diagfmt.PrettyOpts{ShowCaret: true})
		for _, l := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
			m.history = append(m.history, errorStyle.Render(l))
		}
		return
	}

	m.buffer = nil
	var sb strings.Builder
	diagfmt.Disassemble(&sb, res.Code)
	for _, l := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		m.history = append(m.history, okStyle.Render(l))
	}
}

// Banner is the greeting printed when the REPL starts.
func Banner(version string) string {
	return fmt.Sprintf("adder %s (single mode; ctrl-d to exit)", version)
}
