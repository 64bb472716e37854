package model

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geminiflow/moa-tui/style"
)

// StatusModel renders the bottom status line:
//
//   - processing: transport mode + elapsed time for the running turn
//   - idle: transport mode + turn count
type StatusModel struct {
	streaming bool
	active    bool
	started   time.Time
	elapsed   time.Duration
	turns     int
}

// NewStatus returns a zero-value StatusModel.
func NewStatus() StatusModel {
	return StatusModel{}
}

// SetStreaming records which transport the next turn will use.
func (m *StatusModel) SetStreaming(on bool) {
	m.streaming = on
}

// Begin marks a turn as running.
func (m *StatusModel) Begin() {
	m.active = true
	m.started = time.Now()
	m.elapsed = 0
}

// Tick refreshes the elapsed display; call once per timer tick.
func (m *StatusModel) Tick() {
	if m.active {
		m.elapsed = time.Since(m.started)
	}
}

// Finish marks the running turn as resolved.
func (m *StatusModel) Finish() {
	if m.active {
		m.elapsed = time.Since(m.started)
	}
	m.active = false
	m.turns++
}

// Init satisfies tea.Model.
func (m StatusModel) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model; the status line is driven by setters.
func (m StatusModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the status line.
func (m StatusModel) View() string {
	mode := "http"
	if m.streaming {
		mode = "stream"
	}
	parts := []string{mode}
	if m.active {
		parts = append(parts, fmt.Sprintf("%.0fs", m.elapsed.Seconds()))
		parts = append(parts, style.Hint.Render("esc to cancel"))
	} else if m.turns > 0 {
		parts = append(parts, fmt.Sprintf("%d turns", m.turns))
	}
	return style.StatusBar.Render(strings.Join(parts, " · "))
}
