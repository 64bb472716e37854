package client

// EventKind discriminates the normalized stream event union. Both
// transports (blocking and streaming) are reduced to this one shape so the
// transcript layer never needs to know which endpoint served a turn.
type EventKind int

const (
	// EventStatus carries in-progress text; it replaces any earlier
	// status for the same turn rather than accumulating.
	EventStatus EventKind = iota
	// EventResponse is the successful terminal event of a turn.
	EventResponse
	// EventError is the failed terminal event of a turn.
	EventError
	// EventDone marks the authoritative end of a streamed turn. The
	// blocking transport never emits it.
	EventDone
	// EventWarning reports a frame the decoder could not interpret. It is
	// diagnostic only and never becomes a transcript entry.
	EventWarning
)

func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventResponse:
		return "response"
	case EventError:
		return "error"
	case EventDone:
		return "done"
	case EventWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Event is one normalized unit of progress or result information for a
// turn. Text is empty for EventDone.
type Event struct {
	Kind EventKind
	Text string
}

// Terminal reports whether the event resolves the turn.
func (e Event) Terminal() bool {
	return e.Kind == EventResponse || e.Kind == EventError
}
