package tui

import "time"

// statusKind selects the color of the status line.
type statusKind uint8

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
)

// statusMessage is a transient message shown in the footer until its TTL
// elapses.
type statusMessage struct {
	text  string
	kind  statusKind
	setAt time.Time
}

func newStatus(kind statusKind, text string) *statusMessage {
	return &statusMessage{text: text, kind: kind, setAt: time.Now()}
}

// active reports whether the message should still be displayed.
func (s *statusMessage) active(ttl time.Duration) bool {
	return s != nil && time.Since(s.setAt) < ttl
}
