// Package msg defines tea.Msg types dispatched within the MOA console.
// It has no upstream imports (client, model) to avoid import cycles.
package msg

import "time"

// TickMsg for periodic timer updates while a turn is processing.
type TickMsg time.Time

// HistorySaved after a finished turn was persisted.
type HistorySaved struct {
	Err error
}

// HistoryList from the /history command.
type HistoryList struct {
	Lines []string
	Err   error
}
