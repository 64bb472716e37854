package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/geminiflow/moa-tui/style"
	"github.com/geminiflow/moa-tui/transcript"
)

// ChatModel is a scrollable viewport over the transcript. It renders the
// finalized messages, the single in-progress status placeholder (with a
// spinner), and any transient notices below them.
type ChatModel struct {
	vp      viewport.Model
	ts      *transcript.Transcript
	spin    spinner.Model
	notices []string
	width   int
	height  int
}

// NewChat constructs a ChatModel over the given transcript.
func NewChat(ts *transcript.Transcript, width, height int) ChatModel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.SpinnerStyle
	return ChatModel{
		vp:     vp,
		ts:     ts,
		spin:   sp,
		width:  width,
		height: height,
	}
}

// SpinCmd returns the command that drives the status spinner.
func (m ChatModel) SpinCmd() tea.Cmd {
	return m.spin.Tick
}

// AddNotice appends a dimmed transient line below the transcript (decoder
// warnings, cancellations). Notices are not transcript entries.
func (m *ChatModel) AddNotice(text string) {
	m.notices = append(m.notices, text)
	m.Refresh()
}

// ClearNotices drops all transient lines.
func (m *ChatModel) ClearNotices() {
	m.notices = nil
	m.Refresh()
}

// SetSize resizes the underlying viewport.
func (m *ChatModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width
	m.vp.Height = height
	m.Refresh()
}

// ScrollToTop jumps to the first message.
func (m *ChatModel) ScrollToTop() {
	m.vp.GotoTop()
}

// ScrollToBottom jumps to the latest message.
func (m *ChatModel) ScrollToBottom() {
	m.vp.GotoBottom()
}

// Init satisfies tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return nil
}

// Update forwards scroll keys and spinner ticks.
func (m ChatModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(message)
		if _, live := m.ts.Status(); live {
			m.Refresh()
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(message)
	return m, cmd
}

// View returns the rendered viewport content.
func (m ChatModel) View() string {
	return m.vp.View()
}

// Refresh re-renders the transcript into the viewport and scrolls to the
// latest entry. Call after every transcript mutation.
func (m *ChatModel) Refresh() {
	m.vp.SetContent(m.renderAll())
	m.vp.GotoBottom()
}

func (m *ChatModel) renderAll() string {
	msgs := m.ts.Messages()
	statusText, live := m.ts.Status()

	if len(msgs) == 0 && !live && len(m.notices) == 0 {
		return style.Faint.Render("  No messages yet. Ask the agent to deploy, check health, or query costs.")
	}

	var sb strings.Builder
	for i, message := range msgs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderMessage(message))
	}
	if live {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.renderStatus(statusText))
	}
	for _, n := range m.notices {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(style.Hint.Render("  " + n))
	}
	return sb.String()
}

// renderStatus draws the single mutable placeholder line. The text is
// truncated to the viewport width so a long status never wraps into a
// second line that could read as a separate entry.
func (m *ChatModel) renderStatus(text string) string {
	avail := m.width - 4
	if avail < 8 {
		avail = 8
	}
	return m.spin.View() + " " + style.StatusText.Render(runewidth.Truncate(text, avail, "…"))
}

func renderMessage(message transcript.Message) string {
	switch message.Sender {
	case transcript.SenderUser:
		return style.UserLabel.Render("❯ You") + "\n" + message.Rendered
	case transcript.SenderAgent:
		return style.AgentLabel.Render("◈ MOA") + "\n" + message.Rendered
	case transcript.SenderError:
		return style.ErrorLabel.Render("✘ Error") + "\n" + message.Rendered
	default:
		return message.Rendered
	}
}
