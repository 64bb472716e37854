package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geminiflow/moa-tui/config"
	"github.com/geminiflow/moa-tui/markdown"
	"github.com/geminiflow/moa-tui/model"
	"github.com/geminiflow/moa-tui/msg"
	"github.com/geminiflow/moa-tui/style"
)

func commandNames() []string {
	return []string{"/help", "/clear", "/stream", "/history", "/theme", "/exit"}
}

// runCommand executes a local slash command. Commands never touch the
// backend.
func (m Model) runCommand(text string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/help":
		m.chat.AddNotice(markdown.Render(helpText))
		return m, nil
	case "/clear":
		// Snapshot before clearing so the saved conversation is complete.
		cmd := m.saveCmd()
		m.ts.Clear()
		m.chat.ClearNotices()
		m.chat.Refresh()
		return m, cmd
	case "/stream":
		return m.setStreaming(arg)
	case "/history":
		return m, m.listHistory()
	case "/theme":
		return m.setTheme(arg)
	case "/exit", "/quit":
		return m, m.quit()
	default:
		m.toasts.Add("Unknown command: "+name, model.ToastWarning)
		return m, nil
	}
}

// setStreaming toggles or sets the transport for subsequent turns and
// persists the choice.
func (m Model) setStreaming(arg string) (tea.Model, tea.Cmd) {
	switch arg {
	case "on":
		m.client.Streaming = true
	case "off":
		m.client.Streaming = false
	case "":
		m.client.Streaming = !m.client.Streaming
	default:
		m.toasts.Add("Usage: /stream [on|off]", model.ToastWarning)
		return m, nil
	}
	m.status.SetStreaming(m.client.Streaming)
	mode := "blocking"
	if m.client.Streaming {
		mode = "streaming"
	}
	m.chat.AddNotice("Transport: " + mode)

	m.cfg.Streaming = m.client.Streaming
	if ProfileDir != "" {
		if err := config.Save(ProfileDir, m.cfg); err != nil {
			m.toasts.Add("Config save failed: "+err.Error(), model.ToastError)
		}
	}
	return m, nil
}

func (m Model) setTheme(arg string) (tea.Model, tea.Cmd) {
	if arg == "" {
		m.chat.AddNotice("Themes: " + strings.Join(style.ThemeNames, ", "))
		return m, nil
	}
	if _, ok := style.Themes[arg]; !ok {
		m.toasts.Add("Unknown theme: "+arg, model.ToastWarning)
		return m, nil
	}
	style.SetTheme(arg)
	m.cfg.Theme = arg
	if ProfileDir != "" {
		if err := config.Save(ProfileDir, m.cfg); err != nil {
			m.toasts.Add("Config save failed: "+err.Error(), model.ToastError)
		}
	}
	m.chat.Refresh()
	m.chat.AddNotice("Theme: " + arg)
	return m, nil
}

// listHistory loads stored conversation summaries off the UI goroutine.
func (m Model) listHistory() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil || !store.Enabled() {
			return msg.HistoryList{Lines: []string{"History is disabled (max_history = 0)."}}
		}
		summaries, err := store.List()
		if err != nil {
			return msg.HistoryList{Err: err}
		}
		if len(summaries) == 0 {
			return msg.HistoryList{Lines: []string{"No saved conversations."}}
		}
		lines := make([]string, 0, len(summaries)+1)
		lines = append(lines, "Saved conversations:")
		for i, s := range summaries {
			lines = append(lines, fmt.Sprintf("  %d. %s — %s (%d turns)",
				i+1, s.UpdatedAt.Format("2006-01-02 15:04"), s.Title, s.Turns))
		}
		return msg.HistoryList{Lines: lines}
	}
}

func (m Model) handleHistoryList(v msg.HistoryList) (tea.Model, tea.Cmd) {
	if v.Err != nil {
		m.toasts.Add("History list failed: "+v.Err.Error(), model.ToastError)
		return m, nil
	}
	m.chat.AddNotice(strings.Join(v.Lines, "\n  "))
	return m, nil
}

const helpText = `## Commands

| Command | Effect |
|---|---|
| /help | Show this help |
| /clear | Save and clear the transcript |
| /stream [on\|off] | Toggle streaming transport |
| /history | List saved conversations |
| /theme [name] | Switch color theme |
| /exit | Quit |

## Keys

- Enter submits, Esc clears the input
- Esc or Ctrl+C cancels a running request
- Up/Down walk input history, Tab completes commands
- PgUp/PgDn, Home/End scroll the transcript`
