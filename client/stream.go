package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// streamFrame is the wire shape of one data: line on /invoke-stream.
type streamFrame struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// runStream issues the streaming endpoint and decodes its body
// incrementally. Every failure mode still produces at least one event:
// connection errors and non-2xx statuses become a single EventError.
func (c *Client) runStream(ctx context.Context, query string, ch chan<- Event) {
	defer close(ch)

	resp, err := c.postJSON(ctx, c.StreamClient, "/invoke-stream", InvokeRequest{Query: query})
	if err != nil {
		ch <- Event{Kind: EventError, Text: err.Error()}
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ch <- Event{Kind: EventError, Text: c.parseError(resp).Error()}
		return
	}

	dec := newFrameDecoder(resp.Body)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev, ok, err := dec.next()
		if err != nil {
			// End of body. The done frame is advisory; a close after a
			// terminal event is a normal end of turn. A close without one
			// is resolved by the consumer.
			return
		}
		if !ok {
			continue
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
		if ev.Kind == EventDone {
			// The done frame is the authoritative end marker: stop
			// reading even if the server keeps the connection open.
			return
		}
	}
}

// frameDecoder turns a chunked body into events one full line at a time.
// bufio.Reader buffers partial lines across chunk boundaries; a final
// unterminated line is flushed when the body ends.
type frameDecoder struct {
	r *bufio.Reader
}

func newFrameDecoder(r io.Reader) *frameDecoder {
	return &frameDecoder{r: bufio.NewReader(r)}
}

// next returns the next decoded event. ok is false for lines that carry no
// event (blank lines, ignored frame types). A non-nil error means the body
// is exhausted.
func (d *frameDecoder) next() (Event, bool, error) {
	line, err := d.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// Final flush: interpret the trailing partial line.
			ev, ok := parseFrame(line)
			return ev, ok, nil
		}
		return Event{}, false, err
	}
	ev, ok := parseFrame(line)
	return ev, ok, nil
}

// parseFrame interprets one line of the stream body. Each frame is parsed
// independently; a frame that does not decode as expected yields an
// EventWarning and is otherwise skipped, never failing the turn.
func parseFrame(line string) (Event, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Event{}, false
	}
	payload, found := strings.CutPrefix(line, "data: ")
	if !found {
		return Event{Kind: EventWarning, Text: fmt.Sprintf("stream: unframed line %q", truncateLine(line))}, true
	}

	var frame streamFrame
	if err := json.Unmarshal([]byte(payload), &frame); err != nil {
		return Event{Kind: EventWarning, Text: fmt.Sprintf("stream: bad frame: %v", err)}, true
	}

	switch frame.Type {
	case "status":
		return Event{Kind: EventStatus, Text: frame.Data}, true
	case "response":
		return Event{Kind: EventResponse, Text: frame.Data}, true
	case "error":
		return Event{Kind: EventError, Text: frame.Data}, true
	case "done":
		return Event{Kind: EventDone}, true
	default:
		// Unrecognized frame types are ignored per the protocol.
		return Event{}, false
	}
}

// truncateLine bounds the text quoted in a warning. Truncation is by
// rune so a multi-byte character is never split into invalid UTF-8.
func truncateLine(s string) string {
	const max = 64
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + "…"
	}
	return s
}
