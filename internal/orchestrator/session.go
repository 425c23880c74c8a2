package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/felipeftav/chatbot-LLM-toten/internal/backend"
	"github.com/felipeftav/chatbot-LLM-toten/internal/profile"
	"github.com/felipeftav/chatbot-LLM-toten/internal/transcript"
)

// ErrBusy is returned when a chat-affecting request is already in flight.
// The UI disables the triggering controls while busy, so through the normal
// path this never surfaces; programmatic callers must respect it.
var ErrBusy = errors.New("a request is already in flight")

const (
	connectionErrorReply = "Desculpe, ocorreu um erro de conexão."
	summarizeErrorText   = "**Erro:** Não foi possível conectar ao servidor para resumir."
	restartErrorText     = "**Erro:** Não foi possível conectar ao servidor para reiniciar a conversa."
	suggestSearchNotice  = "Buscando uma ideia..."
	suggestEmptyNotice   = "Erro ao sugerir. Tente novamente."
	suggestErrorNotice   = "Erro de conexão."
)

// defaultPresets is the built-in preset affordance, refreshed from the chat
// response when the backend provides its own list.
var defaultPresets = []string{
	"Quais os projetos de GNI?",
	"Onde encontro os projetos de Marketing?",
	"O que é o projeto da LIA?",
	"Onde será a apresentação de Pitch e Impressora 3D?",
	"Tem algum projeto de consultoria?",
	"Onde vai ser o podcast?",
}

// Player is the playback surface the orchestrator drives.
type Player interface {
	Play(pcmBase64 string)
	TTSEnabled() bool
}

// Hooks notify the UI of orchestration state changes. All fields are
// optional. Hooks are invoked outside the session lock but must not call
// back into Submit synchronously.
type Hooks struct {
	// OnBusy flips the busy gate: true disables message input, send,
	// suggest and summarize controls; false re-enables them and returns
	// focus to the input.
	OnBusy func(busy bool)
	// OnPresets shows or hides the preset-question affordance.
	OnPresets func(visible bool, questions []string)
	// OnSuggestion populates the input field with a suggested topic.
	OnSuggestion func(topic string)
	// OnInputNotice replaces the input placeholder. Empty text restores the
	// prior placeholder; transient notices auto-revert after ~2 seconds.
	OnInputNotice func(text string, transient bool)
	// OnReset performs the full session reset (the page-reload equivalent).
	OnReset func()
}

// Session coordinates user intents into backend requests, transcript turns
// and audio playback. The busy gate is a single slot: at most one
// chat-affecting request is outstanding at a time.
type Session struct {
	client backend.API
	prof   profile.Profile
	log    *transcript.Log
	player Player
	hooks  Hooks

	mu      sync.Mutex
	busy    bool
	presets []string
}

// NewSession builds a Session for one visitor.
func NewSession(client backend.API, p profile.Profile, tlog *transcript.Log, player Player, hooks Hooks) *Session {
	return &Session{
		client:  client,
		prof:    p,
		log:     tlog,
		player:  player,
		hooks:   hooks,
		presets: defaultPresets,
	}
}

// Profile returns the immutable session profile.
func (s *Session) Profile() profile.Profile { return s.prof }

// Presets returns the current preset questions.
func (s *Session) Presets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.presets))
	copy(out, s.presets)
	return out
}

// Begin plays the welcome turn: pending indicator while the welcome speech
// is synthesized, then the welcome message and its audio. Audio failures are
// logged and the welcome renders without speech.
func (s *Session) Begin(ctx context.Context) {
	md, plain := profile.WelcomeMessage(s.prof)
	s.log.ShowPending()
	var audioData string
	if s.player.TTSEnabled() {
		data, err := s.client.WelcomeAudio(ctx, plain)
		if err != nil {
			log.Printf("welcome audio failed: %v", err)
		} else {
			audioData = data
		}
	}
	s.log.RemovePending()
	s.log.AppendBot(md)
	s.player.Play(audioData)
}

// Submit routes one intent to its backend endpoint, performing the fixed
// step order: optimistic render, busy gate, pending indicator, exactly one
// request, result or error render, cleanup. Returns ErrBusy when a
// chat-affecting request is already outstanding.
func (s *Session) Submit(ctx context.Context, intent Intent) error {
	switch intent.Kind {
	case IntentTyped:
		text := strings.TrimSpace(intent.Text)
		if text == "" {
			return nil
		}
		return s.sendChat(ctx, text, false)
	case IntentPreset:
		return s.sendChat(ctx, intent.Text, true)
	case IntentVoice:
		return s.sendVoice(ctx, intent.Audio)
	case IntentSummarize:
		return s.summarize(ctx)
	case IntentSuggest:
		return s.suggestTopic(ctx)
	case IntentRestart:
		return s.restart(ctx)
	default:
		return fmt.Errorf("unknown intent kind %d", intent.Kind)
	}
}

// tryAcquire takes the busy slot without notifying the UI yet.
func (s *Session) tryAcquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	if s.hooks.OnBusy != nil {
		s.hooks.OnBusy(false)
	}
}

// Busy reports whether a request is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) setPresetsVisible(visible bool) {
	if s.hooks.OnPresets != nil {
		s.hooks.OnPresets(visible, s.Presets())
	}
}

func (s *Session) sendChat(ctx context.Context, text string, preset bool) error {
	if err := s.tryAcquire(); err != nil {
		return err
	}
	s.log.AppendUser(text)
	s.setPresetsVisible(false)
	if s.hooks.OnBusy != nil {
		s.hooks.OnBusy(true)
	}
	s.log.ShowPending()

	resp, err := s.client.Chat(ctx, text, preset, s.player.TTSEnabled(), s.prof)
	s.finishChat(resp, err)
	return nil
}

func (s *Session) sendVoice(ctx context.Context, payload []byte) error {
	if err := s.tryAcquire(); err != nil {
		return err
	}
	s.log.AppendUser(transcript.VoiceMarker)
	s.setPresetsVisible(false)
	if s.hooks.OnBusy != nil {
		s.hooks.OnBusy(true)
	}
	s.log.ShowPending()

	resp, err := s.client.ChatVoice(ctx, payload, s.prof)
	s.finishChat(resp, err)
	return nil
}

// finishChat renders the outcome of a chat request and always releases the
// busy gate and restores the preset affordance.
func (s *Session) finishChat(resp *backend.ChatResponse, err error) {
	s.log.RemovePending()
	if err != nil {
		log.Printf("chat request failed: %v", err)
		s.log.AppendBot(connectionErrorReply)
	} else {
		s.log.AppendBot(resp.Reply)
		if len(resp.PresetQuestions) > 0 {
			s.mu.Lock()
			s.presets = resp.PresetQuestions
			s.mu.Unlock()
		}
		s.player.Play(resp.AudioData)
	}
	s.release()
	s.setPresetsVisible(true)
}

func (s *Session) summarize(ctx context.Context) error {
	if err := s.tryAcquire(); err != nil {
		return err
	}
	if s.hooks.OnBusy != nil {
		s.hooks.OnBusy(true)
	}
	s.log.ShowPending()

	summary, err := s.client.Summarize(ctx, s.prof)
	s.log.RemovePending()
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			s.log.AppendSystem("**Erro:** " + apiErr.Message)
		} else {
			log.Printf("summarize failed: %v", err)
			s.log.AppendSystem(summarizeErrorText)
		}
	} else {
		s.log.AppendSystem("✨ **Resumo da Conversa:**\n\n" + summary)
	}
	s.release()
	return nil
}

// suggestTopic populates the input field instead of appending a turn.
// Failures surface as transient input placeholders, never in the transcript.
func (s *Session) suggestTopic(ctx context.Context) error {
	if err := s.tryAcquire(); err != nil {
		return err
	}
	if s.hooks.OnBusy != nil {
		s.hooks.OnBusy(true)
	}
	s.notice(suggestSearchNotice, false)

	topic, err := s.client.SuggestTopic(ctx)
	switch {
	case err != nil:
		log.Printf("suggest topic failed: %v", err)
		s.notice(suggestErrorNotice, true)
	case topic == "":
		s.notice(suggestEmptyNotice, true)
	default:
		if s.hooks.OnSuggestion != nil {
			s.hooks.OnSuggestion(topic)
		}
		s.notice("", false)
	}
	s.release()
	return nil
}

func (s *Session) notice(text string, transient bool) {
	if s.hooks.OnInputNotice != nil {
		s.hooks.OnInputNotice(text, transient)
	}
}

// restart issues the restart request and always triggers the session reset
// after it settles. A failed restart additionally appends one system error
// turn before the reset.
func (s *Session) restart(ctx context.Context) error {
	if err := s.client.Restart(ctx, s.prof); err != nil {
		log.Printf("restart failed: %v", err)
		s.log.AppendSystem(restartErrorText)
	}
	if s.hooks.OnReset != nil {
		s.hooks.OnReset()
	}
	return nil
}
