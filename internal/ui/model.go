// Package ui is the bubbletea front end of the kiosk: a splash form that
// collects the visitor profile, then the chat screen with the animated LIA
// avatar, the rendered transcript and the voice, preset and summary controls.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felipeftav/chatbot-LLM-toten/internal/audio"
	"github.com/felipeftav/chatbot-LLM-toten/internal/backend"
	"github.com/felipeftav/chatbot-LLM-toten/internal/capture"
	"github.com/felipeftav/chatbot-LLM-toten/internal/config"
	"github.com/felipeftav/chatbot-LLM-toten/internal/orchestrator"
	"github.com/felipeftav/chatbot-LLM-toten/internal/playback"
	"github.com/felipeftav/chatbot-LLM-toten/internal/profile"
	"github.com/felipeftav/chatbot-LLM-toten/internal/transcript"
)

// screen tracks which of the two kiosk screens is active.
type screen int

const (
	screenSplash screen = iota
	screenChat
)

// Model is the root bubbletea model for the kiosk.
type Model struct {
	cfg      config.Config
	client   backend.API
	play     *playback.Controller
	recorder *capture.Recorder
	events   chan sessionEvent

	scr  screen
	form splashForm

	// Chat session state, nil until the form is submitted.
	session  *orchestrator.Session
	tlog     *transcript.Log
	renderer *transcript.Renderer

	// Chat UI state
	input          string
	notice         string
	noticeSeq      int
	busy           bool
	presetsVisible bool
	presets        []string
	talking        bool
	mouthOpen      bool
	scroll         int
	live           bool
	lastActivity   time.Time

	width  int
	height int
}

// chanAnimator forwards playback animation transitions onto the event channel
// so the avatar mouth follows audio from the Update loop.
type chanAnimator struct {
	events chan<- sessionEvent
}

func (a chanAnimator) StartTalking() { a.events <- talkingEvent{talking: true} }
func (a chanAnimator) StopTalking() { a.events <- talkingEvent{talking: false} }

// New builds the kiosk model. The playback device and microphone source are
// injected so tests can run without real audio hardware.
func New(cfg config.Config, client backend.API, device playback.Device, mic capture.Source) Model {
	events := make(chan sessionEvent, 64)
	play := playback.NewController(device, chanAnimator{events: events}, cfg.TTSEnabled)
	recorder := capture.NewRecorder(mic, func(payload []byte) {
		events <- voiceEvent{payload: payload}
	})
	return Model{
		cfg:          cfg,
		client:       client,
		play:         play,
		recorder:     recorder,
		events:       events,
		form:         newSplashForm(),
		live:         true,
		lastActivity: time.Now(),
	}
}

// Init arms the event drain and the inactivity countdown.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitEventCmd(m.events), inactivityTickCmd())
}

func waitEventCmd(events <-chan sessionEvent) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{ev: <-events}
	}
}

func inactivityTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return inactivityTickMsg{}
	})
}

func avatarTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return avatarTickMsg{}
	})
}

func clearNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func submitCmd(s *orchestrator.Session, intent orchestrator.Intent) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: s.Submit(context.Background(), intent)}
	}
}

func beginCmd(s *orchestrator.Session) tea.Cmd {
	return func() tea.Msg {
		s.Begin(context.Background())
		return welcomeDoneMsg{}
	}
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		m.lastActivity = time.Now()
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.renderer != nil {
			m.renderer.SetWidth(m.transcriptWidth())
		}
		return m, nil

	case eventMsg:
		cmd := m.handleEvent(msg.ev)
		return m, tea.Batch(cmd, waitEventCmd(m.events))

	case submitDoneMsg:
		if errors.Is(msg.err, orchestrator.ErrBusy) {
			return m, m.transientNotice("Aguarde a resposta anterior...")
		}
		return m, nil

	case welcomeDoneMsg:
		return m, nil

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case inactivityTickMsg:
		if m.scr == screenChat && m.session != nil && !m.busy &&
			time.Since(m.lastActivity) > m.cfg.InactivityTimeout {
			m.lastActivity = time.Now()
			return m, tea.Batch(submitCmd(m.session, orchestrator.Restart()), inactivityTickCmd())
		}
		return m, inactivityTickCmd()

	case avatarTickMsg:
		if m.talking {
			m.mouthOpen = !m.mouthOpen
			return m, avatarTickCmd()
		}
		return m, nil
	}

	return m, nil
}

// handleEvent processes one session event and returns any resulting command.
func (m *Model) handleEvent(ev sessionEvent) tea.Cmd {
	switch ev := ev.(type) {
	case busyEvent:
		m.busy = ev.busy

	case presetsEvent:
		m.presetsVisible = ev.visible
		m.presets = ev.questions

	case suggestionEvent:
		m.input = ev.topic

	case noticeEvent:
		m.notice = ev.text
		if ev.transient {
			m.noticeSeq++
			return clearNoticeCmd(m.noticeSeq)
		}

	case resetEvent:
		m.resetToSplash()

	case transcriptEvent:
		m.live = true

	case talkingEvent:
		m.talking = ev.talking
		m.mouthOpen = ev.talking
		if ev.talking {
			return avatarTickCmd()
		}

	case voiceEvent:
		if m.session == nil {
			return nil
		}
		if len(ev.payload) == 0 {
			return m.transientNotice("Nenhum áudio capturado.")
		}
		wav, err := audio.EncodeWAV(ev.payload, audio.SampleRate)
		if err != nil {
			return m.transientNotice("Erro ao preparar o áudio.")
		}
		return submitCmd(m.session, orchestrator.VoiceMessage(wav))
	}

	return nil
}

func (m *Model) transientNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	return clearNoticeCmd(m.noticeSeq)
}

// resetToSplash discards the whole session, mirroring a page reload.
func (m *Model) resetToSplash() {
	m.play.Stop()
	if m.recorder.State() == capture.Recording {
		m.recorder.Stop()
	}
	m.scr = screenSplash
	m.form = newSplashForm()
	m.session = nil
	m.tlog = nil
	m.renderer = nil
	m.input = ""
	m.notice = ""
	m.busy = false
	m.presetsVisible = false
	m.presets = nil
	m.talking = false
	m.scroll = 0
	m.live = true
}

// startSession builds the per-visitor session from the splash form and kicks
// off the welcome turn.
func (m *Model) startSession() tea.Cmd {
	prof := profile.New(m.form.name, m.form.role(), m.form.interestArea(), m.form.goal())

	tlog := transcript.NewLog()
	events := m.events
	tlog.SetOnChange(func() { events <- transcriptEvent{} })

	hooks := orchestrator.Hooks{
		OnBusy: func(busy bool) { events <- busyEvent{busy: busy} },
		OnPresets: func(visible bool, questions []string) {
			events <- presetsEvent{visible: visible, questions: questions}
		},
		OnSuggestion: func(topic string) { events <- suggestionEvent{topic: topic} },
		OnInputNotice: func(text string, transient bool) {
			events <- noticeEvent{text: text, transient: transient}
		},
		OnReset: func() { events <- resetEvent{} },
	}

	session := orchestrator.NewSession(m.client, prof, tlog, m.play, hooks)
	m.session = session
	m.tlog = tlog
	m.renderer = transcript.NewRenderer(m.transcriptWidth())
	m.scr = screenChat
	m.presetsVisible = true
	m.presets = session.Presets()
	return beginCmd(session)
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.play.Stop()
		if m.recorder.State() == capture.Recording {
			m.recorder.Stop()
		}
		return m, tea.Quit
	}

	if m.scr == screenSplash {
		if m.form.update(msg) {
			return m, m.startSession()
		}
		return m, nil
	}
	return m.handleChatKey(msg)
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.busy {
			return m, nil
		}
		text := m.input
		m.input = ""
		return m, submitCmd(m.session, orchestrator.TypedMessage(text))

	case "f2":
		if m.recorder.State() == capture.Recording {
			m.recorder.Stop()
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		if err := m.recorder.Start(); err != nil {
			return m, m.transientNotice("Microfone indisponível.")
		}
		return m, nil

	case "f3":
		if m.busy {
			return m, nil
		}
		return m, submitCmd(m.session, orchestrator.SuggestTopic())

	case "f4":
		if m.busy {
			return m, nil
		}
		return m, submitCmd(m.session, orchestrator.Summarize())

	case "f5":
		return m, submitCmd(m.session, orchestrator.Restart())

	case "f6":
		m.play.SetTTSEnabled(!m.play.TTSEnabled())
		return m, nil

	case "up":
		m.live = false
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case "down":
		m.scroll++
		max := m.maxScroll()
		if m.scroll >= max {
			m.scroll = max
			m.live = true
		}
		return m, nil

	case "backspace":
		if m.input != "" {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case "ctrl+u":
		m.input = ""
		return m, nil
	}

	// Bare digits pick a preset question when the input field is empty.
	if m.input == "" && m.presetsVisible && !m.busy && len(msg.Runes) == 1 {
		if d := msg.Runes[0]; d >= '1' && d <= '9' {
			idx := int(d - '1')
			if idx < len(m.presets) {
				return m, submitCmd(m.session, orchestrator.PresetMessage(m.presets[idx]))
			}
		}
	}

	if msg.Type == tea.KeyRunes {
		m.input += string(msg.Runes)
	}
	if msg.Type == tea.KeySpace {
		m.input += " "
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Carregando..."
	}
	if m.scr == screenSplash {
		return m.form.view()
	}
	return m.chatView()
}

func (m Model) transcriptWidth() int {
	if m.width == 0 {
		return 76
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) chatView() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderAvatar())
	sections = append(sections, dividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderTranscript())
	sections = append(sections, dividerStyle.Render(strings.Repeat("─", m.width)))
	if m.presetsVisible && !m.busy && len(m.presets) > 0 {
		sections = append(sections, m.renderPresets())
	}
	sections = append(sections, m.renderInput())
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("LIA") + subtitleStyle.Render("  Metaday Fatec Sebrae")

	var tts string
	if m.play.TTSEnabled() {
		tts = dimStyle.Render("  [voz ligada]")
	} else {
		tts = dimStyle.Render("  [voz desligada]")
	}

	var rec string
	if m.recorder.State() == capture.Recording {
		rec = recordingStyle.Render("  ● GRAVANDO")
	}
	return title + tts + rec
}

func (m Model) renderAvatar() string {
	mouth := "‿"
	if m.talking && m.mouthOpen {
		mouth = "○"
	}
	face := fmt.Sprintf("╭─────╮\n│ ◕ ◕ │\n│  %s  │\n╰─────╯", mouth)
	return avatarStyle.Render(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, face))
}

// transcriptLines flattens the turn log into styled display lines.
func (m Model) transcriptLines() []string {
	var lines []string
	for _, t := range m.tlog.Turns() {
		var label string
		switch t.Origin {
		case transcript.OriginUser:
			label = userTurnStyle.Render("Você:")
		case transcript.OriginBot:
			label = botTurnStyle.Render("LIA:")
		default:
			label = systemTurnStyle.Render("Aviso:")
		}
		lines = append(lines, label)
		for _, l := range strings.Split(m.renderer.Render(t), "\n") {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "")
	}
	if m.tlog.Pending() {
		lines = append(lines, pendingStyle.Render("LIA está digitando..."))
	}
	return lines
}

func (m Model) transcriptVisibleLines() int {
	if m.height == 0 {
		return 16
	}
	// Reserve: header(1) + avatar(4) + dividers(2) + presets(<=7) + input(1) + footer(1)
	reserved := 9
	if m.presetsVisible && !m.busy && len(m.presets) > 0 {
		reserved += len(m.presets) + 1
	}
	v := m.height - reserved
	if v < 5 {
		v = 5
	}
	return v
}

func (m Model) maxScroll() int {
	total := len(m.transcriptLines())
	visible := m.transcriptVisibleLines()
	if total <= visible {
		return 0
	}
	return total - visible
}

func (m Model) renderTranscript() string {
	lines := m.transcriptLines()
	visible := m.transcriptVisibleLines()

	start := m.scroll
	if m.live {
		start = m.maxScroll()
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	out := make([]string, 0, visible)
	for i := start; i < end; i++ {
		out = append(out, "  "+lines[i])
	}
	for len(out) < visible {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (m Model) renderPresets() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("  Perguntas rápidas:"))
	for i, q := range m.presets {
		b.WriteString("\n  " + presetKeyStyle.Render(fmt.Sprintf("%d", i+1)) + " " + presetStyle.Render(q))
	}
	return b.String()
}

func (m Model) renderInput() string {
	if m.recorder.State() == capture.Recording {
		return "  " + recordingStyle.Render("Gravando... pressione F2 para enviar")
	}
	if m.notice != "" {
		return "  " + noticeStyle.Render(m.notice)
	}
	if m.busy {
		return "  " + placeholderStyle.Render("aguardando resposta...")
	}
	if m.input == "" {
		return "  " + whiteStyle.Render("▌") + placeholderStyle.Render("digite sua mensagem...")
	}
	return "  " + whiteStyle.Render(m.input+"▌")
}

func (m Model) renderFooter() string {
	parts := []string{
		footerKeyStyle.Render("Enter") + footerDescStyle.Render(" enviar"),
		footerKeyStyle.Render("F2") + footerDescStyle.Render(" voz"),
		footerKeyStyle.Render("F3") + footerDescStyle.Render(" sugestão"),
		footerKeyStyle.Render("F4") + footerDescStyle.Render(" resumo"),
		footerKeyStyle.Render("F5") + footerDescStyle.Render(" reiniciar"),
		footerKeyStyle.Render("F6") + footerDescStyle.Render(" áudio"),
		footerKeyStyle.Render("↑↓") + footerDescStyle.Render(" rolar"),
		footerKeyStyle.Render("Ctrl+C") + footerDescStyle.Render(" sair"),
	}
	return "  " + strings.Join(parts, "  ")
}
