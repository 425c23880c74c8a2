package ui

import tea "github.com/charmbracelet/bubbletea"

// sessionEvent is anything pushed onto the event channel by orchestration
// hooks, the recorder or the playback animator. Update drains one event per
// eventMsg and re-arms the wait command.
type sessionEvent interface{}

// eventMsg wraps one drained session event.
type eventMsg struct {
	ev sessionEvent
}

// busyEvent flips the request-in-flight gate.
type busyEvent struct {
	busy bool
}

// presetsEvent shows or hides the preset question bar.
type presetsEvent struct {
	visible   bool
	questions []string
}

// suggestionEvent populates the input field with a suggested topic.
type suggestionEvent struct {
	topic string
}

// noticeEvent replaces the input placeholder text.
type noticeEvent struct {
	text      string
	transient bool
}

// resetEvent returns the kiosk to the splash screen.
type resetEvent struct{}

// transcriptEvent signals new transcript content; the chat view scrolls to
// the newest turn.
type transcriptEvent struct{}

// talkingEvent mirrors the avatar mouth animation state.
type talkingEvent struct {
	talking bool
}

// voiceEvent carries a finalized microphone recording as raw PCM.
type voiceEvent struct {
	payload []byte
}

// submitDoneMsg reports a settled orchestrator submission.
type submitDoneMsg struct {
	err error
}

// welcomeDoneMsg reports the welcome turn has been produced.
type welcomeDoneMsg struct{}

// clearNoticeMsg reverts a transient input notice.
type clearNoticeMsg struct {
	seq int
}

// inactivityTickMsg drives the idle-reset countdown.
type inactivityTickMsg struct{}

// avatarTickMsg advances the mouth animation frame.
type avatarTickMsg struct{}

var _ tea.Msg = eventMsg{}
