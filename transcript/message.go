package transcript

import "time"

// Sender identifies who authored a finalized transcript entry. Status
// placeholders are not messages and have no sender; see Transcript.
type Sender int

const (
	SenderUser Sender = iota
	SenderAgent
	SenderError
)

func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderAgent:
		return "agent"
	case SenderError:
		return "error"
	default:
		return "unknown"
	}
}

// Message is one immutable, finalized transcript entry. Content is the
// text exactly as received; Rendered is the display form. User content is
// never interpreted as markup (it is neutralized verbatim) while agent
// and error content goes through the link/emphasis passes.
type Message struct {
	Sender   Sender
	Content  string
	Rendered string
	Time     time.Time
}
