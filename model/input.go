package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geminiflow/moa-tui/style"
)

// InputModel is the text-input bar with history navigation and slash
// command autocomplete.
//
//   - Up/Down walk through previously submitted inputs
//   - Tab cycles matching slash commands when the buffer starts with "/"
type InputModel struct {
	ti         textinput.Model
	history    []string
	historyIdx int // one past the last entry when not navigating

	commands   []string
	tabIdx     int // -1 = no completion in progress
	tabMatches []string
}

// NewInput returns a ready-to-use InputModel.
func NewInput() InputModel {
	ti := textinput.New()
	ti.Placeholder = "Deploy, diagnose, or ask about costs (/ for commands)"
	ti.CharLimit = 4096
	return InputModel{
		ti:     ti,
		tabIdx: -1,
	}
}

// SetCommands replaces the command list used for Tab autocomplete.
func (m *InputModel) SetCommands(cmds []string) {
	m.commands = cmds
}

// Focus gives keyboard focus to the input.
func (m *InputModel) Focus() tea.Cmd {
	return m.ti.Focus()
}

// Blur removes keyboard focus from the input. Called at the start of a
// turn so a second submission cannot race the one in flight.
func (m *InputModel) Blur() {
	m.ti.Blur()
}

// Value returns the current raw text in the input field.
func (m InputModel) Value() string {
	return m.ti.Value()
}

// SetWidth resizes the input field.
func (m *InputModel) SetWidth(w int) {
	m.ti.Width = w - 4
}

// Reset clears the field and any completion state.
func (m *InputModel) Reset() {
	m.historyIdx = len(m.history)
	m.ti.SetValue("")
	m.resetTab()
}

// Submit records text in history and clears the field.
func (m *InputModel) Submit(text string) {
	if text != "" {
		m.history = append(m.history, text)
	}
	m.Reset()
}

func (m *InputModel) resetTab() {
	m.tabIdx = -1
	m.tabMatches = nil
}

// Init satisfies tea.Model.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update intercepts Up/Down for history and Tab for autocomplete before
// delegating to the underlying textinput.
func (m InputModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch message.Type {
		case tea.KeyUp:
			return m.navigateHistory(-1), nil
		case tea.KeyDown:
			return m.navigateHistory(+1), nil
		case tea.KeyTab:
			return m.cycleComplete(), nil
		default:
			m.resetTab()
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(message)
	return m, cmd
}

// View renders the prompt character and the text field.
func (m InputModel) View() string {
	return style.PromptChar.Render("❯ ") + m.ti.View()
}

func (m InputModel) navigateHistory(delta int) InputModel {
	if len(m.history) == 0 {
		return m
	}
	next := m.historyIdx + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.history) {
		next = len(m.history)
	}
	m.historyIdx = next
	if next == len(m.history) {
		m.ti.SetValue("")
	} else {
		m.ti.SetValue(m.history[next])
		m.ti.CursorEnd()
	}
	return m
}

func (m InputModel) cycleComplete() InputModel {
	current := m.ti.Value()
	if !strings.HasPrefix(current, "/") {
		return m
	}
	if m.tabIdx == -1 || m.tabMatches == nil {
		m.tabMatches = matchCommands(m.commands, current)
		if len(m.tabMatches) == 0 {
			return m
		}
		m.tabIdx = 0
	} else {
		m.tabIdx = (m.tabIdx + 1) % len(m.tabMatches)
	}
	m.ti.SetValue(m.tabMatches[m.tabIdx])
	m.ti.CursorEnd()
	return m
}

func matchCommands(commands []string, prefix string) []string {
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
