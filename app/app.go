// Package app wires the component models, the backend client, and the
// transcript into the root bubbletea program.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geminiflow/moa-tui/client"
	"github.com/geminiflow/moa-tui/config"
	"github.com/geminiflow/moa-tui/history"
	"github.com/geminiflow/moa-tui/model"
	"github.com/geminiflow/moa-tui/msg"
	"github.com/geminiflow/moa-tui/style"
	"github.com/geminiflow/moa-tui/transcript"
)

// ProfileDir is where config and history live; set by main before the
// program starts.
var ProfileDir string

// turnEvent carries one normalized event from the turn in flight. seq
// ties it to the turn that produced it so events from a cancelled turn
// cannot touch the transcript of a later one.
type turnEvent struct {
	seq int
	ev  client.Event
}

// turnClosed signals that the event channel for the given turn closed.
type turnClosed struct {
	seq int
}

// Model is the root application model.
type Model struct {
	banner model.BannerModel
	chat   model.ChatModel
	input  model.InputModel
	status model.StatusModel
	toasts model.ToastsModel

	state  State
	client *client.Client
	ts     *transcript.Transcript
	cfg    config.Config
	store  *history.Store
	keys   KeyMap

	turnSeq    int
	cancelTurn context.CancelFunc
	events     <-chan client.Event

	width       int
	height      int
	confirmQuit bool
}

// New constructs the root model.
func New(c *client.Client, cfg config.Config, store *history.Store, version string) Model {
	ts := transcript.New()
	status := model.NewStatus()
	status.SetStreaming(c.Streaming)
	input := model.NewInput()
	input.SetCommands(commandNames())
	input.Focus()
	return Model{
		banner: model.NewBanner(version, c.BaseURL),
		chat:   model.NewChat(ts, 80, 20),
		input:  input,
		status: status,
		toasts: model.NewToasts(),
		state:  StateIdle,
		client: c,
		ts:     ts,
		cfg:    cfg,
		store:  store,
		keys:   DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.chat.SpinCmd(), m.tickCmd(), tea.WindowSize())
}

// Update satisfies tea.Model.
func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.chat.SetSize(v.Width, m.chatHeight())
		m.input.SetWidth(v.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case spinner.TickMsg:
		updated, cmd := m.chat.Update(v)
		if c, ok := updated.(model.ChatModel); ok {
			m.chat = c
		}
		return m, cmd

	case msg.TickMsg:
		m.status.Tick()
		m.toasts.Tick()
		return m, m.tickCmd()

	case turnEvent:
		return m.handleTurnEvent(v)

	case turnClosed:
		return m.handleTurnClosed(v)

	case msg.HistorySaved:
		if v.Err != nil {
			m.toasts.Add("History save failed: "+v.Err.Error(), model.ToastError)
		}
		return m, nil

	case msg.HistoryList:
		return m.handleHistoryList(v)
	}
	return m, nil
}

// View satisfies tea.Model.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.banner.View())
	sections = append(sections, m.chat.View())
	if m.toasts.HasToasts() {
		sections = append(sections, m.toasts.View(m.width))
	}
	sections = append(sections, m.status.View())
	sections = append(sections, m.input.View())
	if m.confirmQuit {
		sections = append(sections, style.Hint.Render("  Press Ctrl+C again to quit, or any key to cancel."))
	}
	return strings.Join(sections, "\n")
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		if key.Matches(k, m.keys.Cancel) {
			return m, m.quit()
		}
		m.confirmQuit = false
		return m, nil
	}
	switch m.state {
	case StateProcessing:
		return m.handleProcessingKey(k)
	default:
		return m.handleIdleKey(k)
	}
}

func (m Model) handleIdleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Escape):
		m.input.Reset()
		return m, nil
	case key.Matches(k, m.keys.Cancel):
		if m.input.Value() == "" {
			m.confirmQuit = true
			return m, nil
		}
		m.input.Reset()
		return m, nil
	case key.Matches(k, m.keys.QuitEOF):
		if m.input.Value() == "" {
			return m, m.quit()
		}
	case key.Matches(k, m.keys.Submit):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			// Nothing leaves the client on an empty submit.
			return m, nil
		}
		m.input.Submit(text)
		return m.submitInput(text)
	case key.Matches(k, m.keys.ScrollTop):
		m.chat.ScrollToTop()
		return m, nil
	case key.Matches(k, m.keys.ScrollBottom):
		m.chat.ScrollToBottom()
		return m, nil
	case key.Matches(k, m.keys.PageUp), key.Matches(k, m.keys.PageDown):
		return m.scrollChat(k)
	}
	updated, cmd := m.input.Update(k)
	if inp, ok := updated.(model.InputModel); ok {
		m.input = inp
	}
	return m, cmd
}

func (m Model) handleProcessingKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Cancel), key.Matches(k, m.keys.Escape):
		return m.cancelActiveTurn()
	case key.Matches(k, m.keys.ScrollTop):
		m.chat.ScrollToTop()
		return m, nil
	case key.Matches(k, m.keys.ScrollBottom):
		m.chat.ScrollToBottom()
		return m, nil
	case key.Matches(k, m.keys.PageUp), key.Matches(k, m.keys.PageDown):
		return m.scrollChat(k)
	}
	return m, nil
}

func (m Model) scrollChat(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.chat.Update(k)
	if c, ok := updated.(model.ChatModel); ok {
		m.chat = c
	}
	return m, cmd
}

// submitInput routes a non-empty line: slash commands run locally,
// everything else starts a turn against the backend.
func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	if strings.HasPrefix(text, "/") {
		return m.runCommand(text)
	}
	return m.startTurn(text)
}

// startTurn opens the transcript turn and the transport, then pumps
// events back into Update one at a time.
func (m Model) startTurn(query string) (tea.Model, tea.Cmd) {
	m.ts.Begin(query)
	m.chat.ClearNotices()
	m.chat.Refresh()

	m.state = StateProcessing
	m.status.Begin()
	m.input.Blur()

	m.turnSeq++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTurn = cancel
	m.events = m.client.Run(ctx, query)

	return m, tea.Batch(m.waitEvent(m.turnSeq, m.events), m.chat.SpinCmd())
}

// waitEvent blocks on the turn's channel and delivers the next event as
// a message. It reschedules itself from handleTurnEvent until the
// channel closes.
func (m Model) waitEvent(seq int, ch <-chan client.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return turnClosed{seq: seq}
		}
		return turnEvent{seq: seq, ev: ev}
	}
}

func (m Model) handleTurnEvent(v turnEvent) (tea.Model, tea.Cmd) {
	if v.seq != m.turnSeq {
		// Stale event from a cancelled turn; drop it.
		return m, nil
	}
	if v.ev.Kind == client.EventWarning {
		m.toasts.Add(v.ev.Text, model.LevelForEvent(v.ev.Kind))
		return m, m.waitEvent(v.seq, m.events)
	}
	m.ts.Apply(v.ev)
	m.chat.Refresh()
	return m, m.waitEvent(v.seq, m.events)
}

func (m Model) handleTurnClosed(v turnClosed) (tea.Model, tea.Cmd) {
	if v.seq != m.turnSeq {
		return m, nil
	}
	m.ts.End()
	m.chat.Refresh()
	return m.finishTurn()
}

// finishTurn returns the UI to idle after the turn resolved.
func (m Model) finishTurn() (tea.Model, tea.Cmd) {
	m.cancelTurn = nil
	m.events = nil
	m.state = StateIdle
	m.status.Finish()
	return m, m.input.Focus()
}

// cancelActiveTurn abandons the turn in flight. The bumped sequence
// number makes any events still in the pipe stale.
func (m Model) cancelActiveTurn() (tea.Model, tea.Cmd) {
	if m.cancelTurn != nil {
		m.cancelTurn()
	}
	m.turnSeq++
	m.ts.Abort()
	m.chat.AddNotice("Request cancelled.")
	m.chat.Refresh()
	return m.finishTurn()
}

// quit persists the session and exits.
func (m Model) quit() tea.Cmd {
	if cmd := m.saveCmd(); cmd != nil {
		return tea.Sequence(cmd, tea.Quit)
	}
	return tea.Quit
}

// saveCmd snapshots the transcript now and writes it off the UI
// goroutine. Returns nil when there is nothing to save.
func (m Model) saveCmd() tea.Cmd {
	if m.store == nil || !m.store.Enabled() || len(m.ts.Messages()) == 0 {
		return nil
	}
	conv := history.FromTranscript(m.ts)
	store := m.store
	return func() tea.Msg {
		return msg.HistorySaved{Err: store.Save(conv)}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return msg.TickMsg(t) })
}

// chatHeight is the viewport height left after the fixed chrome lines.
func (m Model) chatHeight() int {
	reserved := 3 // banner + status + input
	if m.toasts.HasToasts() {
		reserved++
	}
	h := m.height - reserved
	if h < 5 {
		h = 5
	}
	return h
}
