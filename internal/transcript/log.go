package transcript

import (
	"sync"
)

// Origin identifies who authored a turn.
type Origin int

const (
	OriginUser Origin = iota
	OriginBot
	OriginSystem
)

// Turn is a single transcript entry. Bot and system content is markdown;
// user content is kept verbatim.
type Turn struct {
	Origin  Origin
	Content string
}

// VoiceMarker is the placeholder rendered for a sent voice message.
const VoiceMarker = "_Mensagem de voz enviada..._"

// Log is the append-only turn sequence shown in the chat area. Turns are
// never mutated or removed; a session restart discards the whole Log.
type Log struct {
	mu       sync.Mutex
	turns    []Turn
	pending  bool
	onChange func()
}

// NewLog creates an empty transcript log.
func NewLog() *Log {
	return &Log{}
}

// SetOnChange registers a hook invoked after every content change. The UI
// uses it to scroll to the newest turn.
func (l *Log) SetOnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

func (l *Log) append(t Turn) {
	l.mu.Lock()
	l.turns = append(l.turns, t)
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// AppendUser appends a user turn with verbatim content.
func (l *Log) AppendUser(content string) {
	l.append(Turn{Origin: OriginUser, Content: content})
}

// AppendBot appends a bot turn with markdown content.
func (l *Log) AppendBot(content string) {
	l.append(Turn{Origin: OriginBot, Content: content})
}

// AppendSystem appends a system turn with markdown content.
func (l *Log) AppendSystem(content string) {
	l.append(Turn{Origin: OriginSystem, Content: content})
}

// ShowPending displays the typing indicator. Idempotent.
func (l *Log) ShowPending() {
	l.mu.Lock()
	changed := !l.pending
	l.pending = true
	fn := l.onChange
	l.mu.Unlock()
	if changed && fn != nil {
		fn()
	}
}

// RemovePending hides the typing indicator. Removing an absent indicator is
// a no-op.
func (l *Log) RemovePending() {
	l.mu.Lock()
	changed := l.pending
	l.pending = false
	fn := l.onChange
	l.mu.Unlock()
	if changed && fn != nil {
		fn()
	}
}

// Pending reports whether the typing indicator is visible.
func (l *Log) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Turns returns a copy of the turn sequence in display order.
func (l *Log) Turns() []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}
