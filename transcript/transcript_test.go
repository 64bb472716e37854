package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geminiflow/moa-tui/client"
)

func TestBeginAppendsUserMessage(t *testing.T) {
	ts := New()
	ts.Begin("deploy service-a")

	msgs := ts.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderUser, msgs[0].Sender)
	assert.Equal(t, "deploy service-a", msgs[0].Content)
	assert.True(t, ts.Active())
}

func TestStatusReplacesInPlace(t *testing.T) {
	ts := New()
	ts.Begin("q")

	ts.Apply(client.Event{Kind: client.EventStatus, Text: "first"})
	text, live := ts.Status()
	assert.True(t, live)
	assert.Equal(t, "first", text)

	ts.Apply(client.Event{Kind: client.EventStatus, Text: "second"})
	text, live = ts.Status()
	assert.True(t, live)
	assert.Equal(t, "second", text)

	// Status never becomes a finalized entry.
	assert.Len(t, ts.Messages(), 1)
}

func TestResponseDestroysPlaceholder(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventStatus, Text: "working"})
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "done it"})

	_, live := ts.Status()
	assert.False(t, live)

	last, ok := ts.Last()
	require.True(t, ok)
	assert.Equal(t, SenderAgent, last.Sender)
	assert.Equal(t, "done it", last.Content)
}

func TestErrorFinalizesTurn(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventError, Text: "agent timed out"})

	last, ok := ts.Last()
	require.True(t, ok)
	assert.Equal(t, SenderError, last.Sender)
	assert.Equal(t, "agent timed out", last.Content)
}

func TestExactlyOneTerminalEntry(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "first wins"})
	ts.Apply(client.Event{Kind: client.EventDone})
	ts.End()

	// user + one agent entry, nothing synthesized on top.
	msgs := ts.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, SenderAgent, msgs[1].Sender)
	assert.Equal(t, "first wins", msgs[1].Content)
}

func TestSecondTerminalBeforeDoneIsIgnored(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "first wins"})
	ts.Apply(client.Event{Kind: client.EventError, Text: "too late"})
	ts.Apply(client.Event{Kind: client.EventStatus, Text: "too late"})
	ts.Apply(client.Event{Kind: client.EventDone})
	ts.End()

	msgs := ts.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, SenderAgent, msgs[1].Sender)

	_, live := ts.Status()
	assert.False(t, live)
}

func TestEventsAfterDoneAreIgnored(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "ok"})
	ts.Apply(client.Event{Kind: client.EventDone})
	ts.Apply(client.Event{Kind: client.EventStatus, Text: "late"})
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "late"})

	_, live := ts.Status()
	assert.False(t, live)
	assert.Len(t, ts.Messages(), 2)
}

func TestEndWithoutTerminalSynthesizesError(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventStatus, Text: "working"})
	ts.End()

	_, live := ts.Status()
	assert.False(t, live, "no placeholder survives the turn")

	last, ok := ts.Last()
	require.True(t, ok)
	assert.Equal(t, SenderError, last.Sender)
	assert.Equal(t, NoResultText, last.Content)
	assert.False(t, ts.Active())
}

func TestDoneWithoutTerminalIsProtocolViolation(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventStatus, Text: "working"})
	ts.Apply(client.Event{Kind: client.EventDone})
	ts.End()

	last, ok := ts.Last()
	require.True(t, ok)
	assert.Equal(t, SenderError, last.Sender)
	assert.Equal(t, NoResultText, last.Content)
}

func TestEndAfterNormalTurnIsNoOp(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "ok"})
	ts.End()
	ts.End()

	assert.Len(t, ts.Messages(), 2)
}

func TestAbortDropsPlaceholderWithoutEntry(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventStatus, Text: "working"})
	ts.Abort()

	_, live := ts.Status()
	assert.False(t, live)
	assert.Len(t, ts.Messages(), 1)
	assert.False(t, ts.Active())

	// End after an abort must not synthesize anything.
	ts.End()
	assert.Len(t, ts.Messages(), 1)
}

func TestNewTurnAfterFailure(t *testing.T) {
	ts := New()
	ts.Begin("first")
	ts.End() // no terminal: synthesized error

	ts.Begin("second")
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "ok"})
	ts.End()

	msgs := ts.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, SenderError, msgs[1].Sender)
	assert.Equal(t, SenderUser, msgs[2].Sender)
	assert.Equal(t, SenderAgent, msgs[3].Sender)
}

func TestClear(t *testing.T) {
	ts := New()
	ts.Begin("q")
	ts.Apply(client.Event{Kind: client.EventStatus, Text: "working"})
	ts.Clear()

	assert.Empty(t, ts.Messages())
	_, live := ts.Status()
	assert.False(t, live)
	assert.False(t, ts.Active())
}
