// Package transcript owns the ordered list of chat messages and the single
// in-progress status placeholder. It is a synchronous reducer over the
// normalized event sequence produced by the client package: events are
// applied in arrival order and every turn resolves to exactly one
// finalized entry, success or failure.
package transcript

import (
	"time"

	"github.com/geminiflow/moa-tui/client"
)

// NoResultText is the message synthesized when a turn's stream ends
// without any response or error event.
const NoResultText = "The agent closed the stream without producing a result."

// Transcript is the transcript state machine. It is not safe for
// concurrent use; the app's single-turn discipline means it never needs to
// be.
type Transcript struct {
	messages []Message

	// Status placeholder: at most one live per turn, replaced in place on
	// every status event and destroyed the instant a terminal arrives.
	statusText string
	statusLive bool

	// terminal records whether the current turn has resolved.
	terminal bool
	active   bool
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Begin opens a turn for the given user input, appending the user's
// finalized message. Any stale placeholder from an aborted turn is
// destroyed first so the at-most-one invariant holds by construction.
func (t *Transcript) Begin(userText string) {
	t.statusLive = false
	t.statusText = ""
	t.terminal = false
	t.active = true
	t.messages = append(t.messages, Message{
		Sender:   SenderUser,
		Content:  userText,
		Rendered: RenderUser(userText),
		Time:     time.Now(),
	})
}

// Apply folds one stream event into the transcript. Warning events carry
// no transcript effect and are routed to the UI elsewhere.
func (t *Transcript) Apply(ev client.Event) {
	if !t.active {
		return
	}
	// Once the turn has resolved, only done may still have an effect.
	if t.terminal && ev.Kind != client.EventDone {
		return
	}
	switch ev.Kind {
	case client.EventStatus:
		// Replace, never append: the placeholder is a single mutable slot.
		t.statusText = ev.Text
		t.statusLive = true
	case client.EventResponse:
		t.finalize(SenderAgent, ev.Text)
	case client.EventError:
		t.finalize(SenderError, ev.Text)
	case client.EventDone:
		// No transcript effect. A done with no prior terminal is a
		// protocol violation resolved by End.
		t.active = false
	}
}

// End closes the turn when the event stream is exhausted. A turn that
// never saw a terminal event is a protocol violation and resolves to a
// generic error so no dangling placeholder survives.
func (t *Transcript) End() {
	if !t.active && t.terminal {
		return
	}
	if !t.terminal {
		t.finalize(SenderError, NoResultText)
	}
	t.active = false
}

// Abort discards the turn on operator cancellation: the placeholder is
// removed and no finalized entry is produced.
func (t *Transcript) Abort() {
	t.statusLive = false
	t.statusText = ""
	t.active = false
	t.terminal = true
}

func (t *Transcript) finalize(sender Sender, content string) {
	t.statusLive = false
	t.statusText = ""
	t.terminal = true
	t.messages = append(t.messages, Message{
		Sender:   sender,
		Content:  content,
		Rendered: RenderAgent(content),
		Time:     time.Now(),
	})
}

// Messages returns the finalized entries in order.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Last returns the most recent finalized entry, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Status returns the live placeholder text, if one exists.
func (t *Transcript) Status() (string, bool) {
	return t.statusText, t.statusLive
}

// Active reports whether a turn is currently unresolved.
func (t *Transcript) Active() bool {
	return t.active
}

// Clear resets the transcript, dropping all entries and any placeholder.
func (t *Transcript) Clear() {
	t.messages = nil
	t.statusLive = false
	t.statusText = ""
	t.terminal = false
	t.active = false
}
