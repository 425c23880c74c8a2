package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felipeftav/chatbot-LLM-toten/internal/backend"
	"github.com/felipeftav/chatbot-LLM-toten/internal/config"
	"github.com/felipeftav/chatbot-LLM-toten/internal/playback"
	"github.com/felipeftav/chatbot-LLM-toten/internal/profile"
)

type stubBackend struct{}

func (stubBackend) Chat(ctx context.Context, message string, preset bool, ttsEnabled bool, p profile.Profile) (*backend.ChatResponse, error) {
	return &backend.ChatResponse{Reply: "ok"}, nil
}

func (stubBackend) ChatVoice(ctx context.Context, audio []byte, p profile.Profile) (*backend.ChatResponse, error) {
	return &backend.ChatResponse{Reply: "ok"}, nil
}

func (stubBackend) WelcomeAudio(ctx context.Context, text string) (string, error) { return "", nil }
func (stubBackend) Summarize(ctx context.Context, p profile.Profile) (string, error) {
	return "resumo", nil
}
func (stubBackend) SuggestTopic(ctx context.Context) (string, error)  { return "", nil }
func (stubBackend) Restart(ctx context.Context, p profile.Profile) error { return nil }

type stubHandle struct {
	done chan struct{}
}

func (h *stubHandle) Stop() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

func (h *stubHandle) Done() <-chan struct{} { return h.done }

type stubDevice struct{}

func (stubDevice) Start(wav []byte) (playback.Handle, error) {
	return &stubHandle{done: make(chan struct{})}, nil
}

type stubMic struct{}

func (stubMic) Start(onChunk func([]byte)) (func(), error) {
	return func() {}, nil
}

func newTestModel() Model {
	cfg := config.Config{InactivityTimeout: 90 * time.Second, TTSEnabled: true}
	return New(cfg, stubBackend{}, stubDevice{}, stubMic{})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := newTestModel()
	if m.scr != screenSplash {
		t.Error("new model should start on the splash screen")
	}
	if !m.live {
		t.Error("new model should follow the newest turn")
	}
	if m.session != nil {
		t.Error("new model should not have a session")
	}
}

func TestFormSubmitStartsSession(t *testing.T) {
	m := newTestModel()
	m.width = 80
	m.height = 24

	updated, _ := m.Update(keyRunes("Ana"))
	model := updated.(Model)

	var cmd tea.Cmd
	for i := 0; i < 4; i++ {
		updated, cmd = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model = updated.(Model)
	}

	if model.scr != screenChat {
		t.Fatal("form submit should switch to the chat screen")
	}
	if model.session == nil {
		t.Fatal("form submit should create a session")
	}
	if cmd == nil {
		t.Error("form submit should return the welcome command")
	}
	if model.session.Profile().Name != "Ana" {
		t.Errorf("profile name = %q", model.session.Profile().Name)
	}
}

func TestFormSubmitRequiresName(t *testing.T) {
	m := newTestModel()
	m.width = 80
	m.height = 24

	model := m
	var updated tea.Model
	for i := 0; i < 4; i++ {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model = updated.(Model)
	}
	if model.scr != screenSplash {
		t.Error("empty name should not start a session")
	}
}

func TestBusyEvent(t *testing.T) {
	m := newTestModel()
	m.handleEvent(busyEvent{busy: true})
	if !m.busy {
		t.Error("busy event should engage the gate")
	}
	m.handleEvent(busyEvent{busy: false})
	if m.busy {
		t.Error("busy event should release the gate")
	}
}

func TestSuggestionPopulatesInput(t *testing.T) {
	m := newTestModel()
	m.handleEvent(suggestionEvent{topic: "Quais palestras acontecem hoje?"})
	if m.input != "Quais palestras acontecem hoje?" {
		t.Errorf("input = %q", m.input)
	}
}

func TestTransientNoticeClears(t *testing.T) {
	m := newTestModel()
	cmd := m.handleEvent(noticeEvent{text: "Erro de conexão.", transient: true})
	if m.notice != "Erro de conexão." {
		t.Errorf("notice = %q", m.notice)
	}
	if cmd == nil {
		t.Fatal("transient notice should schedule a clear command")
	}

	updated, _ := m.Update(clearNoticeMsg{seq: m.noticeSeq})
	model := updated.(Model)
	if model.notice != "" {
		t.Error("notice should clear when its sequence matches")
	}
}

func TestStaleNoticeClearIgnored(t *testing.T) {
	m := newTestModel()
	m.handleEvent(noticeEvent{text: "primeiro", transient: true})
	m.handleEvent(noticeEvent{text: "segundo", transient: true})

	updated, _ := m.Update(clearNoticeMsg{seq: m.noticeSeq - 1})
	model := updated.(Model)
	if model.notice != "segundo" {
		t.Errorf("stale clear removed a fresh notice: %q", model.notice)
	}
}

func TestResetEventReturnsToSplash(t *testing.T) {
	m := newTestModel()
	m.width = 80
	m.height = 24
	m.form.name = "Ana"
	m.startSession()
	m.input = "meio digitado"
	m.busy = true

	m.handleEvent(resetEvent{})

	if m.scr != screenSplash {
		t.Error("reset should return to the splash screen")
	}
	if m.session != nil || m.tlog != nil {
		t.Error("reset should discard the session")
	}
	if m.input != "" || m.busy {
		t.Error("reset should clear input state")
	}
	if m.form.name != "" {
		t.Error("reset should clear the form")
	}
}

func TestVoiceEventSubmitsRecording(t *testing.T) {
	m := newTestModel()
	m.form.name = "Ana"
	m.startSession()

	cmd := m.handleEvent(voiceEvent{payload: []byte{1, 2, 3, 4}})
	if cmd == nil {
		t.Error("voice payload should produce a submit command")
	}
}

func TestEmptyVoicePayloadShowsNotice(t *testing.T) {
	m := newTestModel()
	m.form.name = "Ana"
	m.startSession()

	cmd := m.handleEvent(voiceEvent{payload: nil})
	if m.notice == "" {
		t.Error("empty recording should surface a notice")
	}
	if cmd == nil {
		t.Error("notice should schedule its clear command")
	}
}

func TestPresetDigitSelection(t *testing.T) {
	m := newTestModel()
	m.width = 80
	m.height = 24
	m.form.name = "Ana"
	m.startSession()

	updated, cmd := m.handleChatKey(keyRunes("1"))
	model := updated.(Model)
	if cmd == nil {
		t.Error("digit with empty input should submit a preset question")
	}
	if model.input != "" {
		t.Errorf("preset selection should not type into the input, got %q", model.input)
	}
}

func TestDigitTypesWhenInputNotEmpty(t *testing.T) {
	m := newTestModel()
	m.form.name = "Ana"
	m.startSession()
	m.input = "tenho "

	updated, cmd := m.handleChatKey(keyRunes("3"))
	model := updated.(Model)
	if cmd != nil {
		t.Error("digit mid-sentence should not submit a preset")
	}
	if model.input != "tenho 3" {
		t.Errorf("input = %q", model.input)
	}
}

func TestTypingAndBackspace(t *testing.T) {
	m := newTestModel()
	m.form.name = "Ana"
	m.startSession()

	updated, _ := m.handleChatKey(keyRunes("oi"))
	model := updated.(Model)
	updated, _ = model.handleChatKey(tea.KeyMsg{Type: tea.KeyBackspace})
	model = updated.(Model)
	if model.input != "o" {
		t.Errorf("input = %q", model.input)
	}
}

func TestEnterWhileBusyIgnored(t *testing.T) {
	m := newTestModel()
	m.form.name = "Ana"
	m.startSession()
	m.busy = true
	m.input = "mensagem"

	updated, cmd := m.handleChatKey(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	if cmd != nil {
		t.Error("enter while busy should not submit")
	}
	if model.input != "mensagem" {
		t.Error("enter while busy should keep the typed text")
	}
}

func TestInactivityTriggersRestart(t *testing.T) {
	m := newTestModel()
	m.width = 80
	m.height = 24
	m.form.name = "Ana"
	m.startSession()
	m.lastActivity = time.Now().Add(-2 * m.cfg.InactivityTimeout)

	_, cmd := m.Update(inactivityTickMsg{})
	if cmd == nil {
		t.Error("idle timeout should produce a restart command")
	}
}

func TestInactivityIgnoredWhileBusy(t *testing.T) {
	m := newTestModel()
	m.form.name = "Ana"
	m.startSession()
	m.busy = true
	m.lastActivity = time.Now().Add(-2 * m.cfg.InactivityTimeout)

	updated, _ := m.Update(inactivityTickMsg{})
	model := updated.(Model)
	if model.scr != screenChat {
		t.Error("idle timeout must not fire during a request")
	}
}

func TestAvatarTickTogglesMouth(t *testing.T) {
	m := newTestModel()
	m.talking = true
	m.mouthOpen = true

	updated, cmd := m.Update(avatarTickMsg{})
	model := updated.(Model)
	if model.mouthOpen {
		t.Error("tick should toggle the mouth frame")
	}
	if cmd == nil {
		t.Error("tick should re-arm while talking")
	}

	model.talking = false
	_, cmd = model.Update(avatarTickMsg{})
	if cmd != nil {
		t.Error("tick should stop once playback ends")
	}
}

func TestViewWithoutSize(t *testing.T) {
	m := newTestModel()
	if view := m.View(); view != "Carregando..." {
		t.Errorf("view without size = %q", view)
	}
}

func TestViewRendersSplashWithSize(t *testing.T) {
	m := newTestModel()
	m.width = 80
	m.height = 24
	if view := m.View(); view == "" || view == "Carregando..." {
		t.Error("splash view should render with a size set")
	}
}
