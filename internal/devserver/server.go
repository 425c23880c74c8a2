// Package devserver is a local stand-in for the LIA event backend. It speaks
// the same wire protocol as the production service but answers from a small
// canned knowledge base and synthesizes tones instead of real speech, so the
// kiosk client can be exercised offline.
package devserver

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/felipeftav/chatbot-LLM-toten/internal/audio"
	"github.com/felipeftav/chatbot-LLM-toten/internal/profile"
)

// eventInfo answers the preset questions about the Metaday event.
var eventInfo = map[string]string{
	"Quais os projetos de GNI?":                           "Os projetos de **Gestão de Negócios e Inovação** estão no corredor principal: planos de negócio, análises de mercado e propostas de inovação desenvolvidas pelos alunos.",
	"Onde encontro os projetos de Marketing?":             "Os projetos de **Marketing** ficam no salão à direita da entrada, com campanhas completas criadas pelas turmas.",
	"O que é o projeto da LIA?":                           "A **LIA** é a assistente virtual do evento, desenvolvida pelos alunos. Você está falando com ela agora! 😊",
	"Onde será a apresentação de Pitch e Impressora 3D?":  "As apresentações de **Pitch** e a demonstração da **Impressora 3D** acontecem no auditório, confira os horários no painel da entrada.",
	"Tem algum projeto de consultoria?":                   "Sim! As turmas de GNI montaram um espaço de **consultoria gratuita** para pequenos negócios, perto do estande do Sebrae.",
	"Onde vai ser o podcast?":                             "O **podcast** será gravado ao vivo no estúdio montado no fundo do salão principal. Chegue cedo para garantir lugar!",
}

var suggestedTopics = []string{
	"Quais palestras acontecem hoje?",
	"Como funciona o projeto da impressora 3D?",
	"O que o Sebrae está apresentando no evento?",
	"Quais projetos de tecnologia posso visitar?",
	"Como os alunos criaram a LIA?",
}

type turn struct {
	role    string
	content string
}

// Server holds per-session conversation state for the stub backend.
type Server struct {
	mu       sync.Mutex
	sessions map[string][]turn
	topicIdx int
}

// New creates an empty stub backend.
func New() *Server {
	return &Server{sessions: make(map[string][]turn)}
}

// Register mounts the backend routes on the echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.POST("/chat", s.chat)
	e.POST("/get-audio", s.getAudio)
	e.POST("/summarize", s.summarize)
	e.GET("/suggest-topic", s.suggestTopic)
	e.POST("/restart", s.restart)
}

type chatRequest struct {
	Message        string          `json:"message"`
	PresetQuestion string          `json:"preset_question"`
	TTSEnabled     bool            `json:"tts_enabled"`
	Profile        profile.Profile `json:"profile"`
}

type chatResponse struct {
	Reply           string   `json:"reply"`
	AudioData       string   `json:"audioData,omitempty"`
	PresetQuestions []string `json:"presetQuestions,omitempty"`
}

func (s *Server) chat(c echo.Context) error {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		return s.chatVoice(c)
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	var message string
	var reply string
	if req.PresetQuestion != "" {
		message = req.PresetQuestion
		if answer, ok := eventInfo[req.PresetQuestion]; ok {
			reply = answer
		} else {
			reply = "Hmm, essa eu não conheço. Pergunte no estande de informações na entrada!"
		}
	} else {
		message = strings.TrimSpace(req.Message)
		if message == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty message"})
		}
		reply = s.cannedReply(message, req.Profile)
	}

	s.appendTurns(req.Profile.SessionID, message, reply)

	resp := chatResponse{Reply: reply}
	if req.TTSEnabled {
		resp.AudioData = tonePayload(reply)
	}
	return c.JSON(http.StatusOK, resp)
}

// chatVoice handles the multipart variant: an uploaded WAV recording plus the
// serialized profile. There is no transcriber here, so the reply acknowledges
// the recording and reports its size.
func (s *Server) chatVoice(c echo.Context) error {
	file, err := c.FormFile("audio_file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing audio_file"})
	}

	var p profile.Profile
	if raw := c.FormValue("profile"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid profile"})
		}
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not read audio"})
	}
	defer src.Close()
	n, _ := io.Copy(io.Discard, src)

	reply := fmt.Sprintf("Recebi sua mensagem de voz (%d bytes)! No evento real eu transcreveria o áudio, mas aqui posso responder por texto. Como posso ajudar, **%s**?", n, p.Name)
	s.appendTurns(p.SessionID, "[mensagem de voz]", reply)

	return c.JSON(http.StatusOK, chatResponse{Reply: reply, AudioData: tonePayload(reply)})
}

func (s *Server) getAudio(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	return c.JSON(http.StatusOK, map[string]string{"audioData": tonePayload(req.Text)})
}

func (s *Server) summarize(c echo.Context) error {
	var req struct {
		Profile profile.Profile `json:"profile"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	s.mu.Lock()
	turns := s.sessions[req.Profile.SessionID]
	s.mu.Unlock()
	if len(turns) == 0 {
		return c.JSON(http.StatusOK, map[string]string{"error": "Ainda não conversamos o suficiente para um resumo."})
	}

	var topics []string
	for _, t := range turns {
		if t.role == "user" {
			topics = append(topics, fmt.Sprintf("- %s", t.content))
		}
	}
	summary := fmt.Sprintf("Conversamos sobre %d assunto(s):\n%s", len(topics), strings.Join(topics, "\n"))
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) suggestTopic(c echo.Context) error {
	s.mu.Lock()
	topic := suggestedTopics[s.topicIdx%len(suggestedTopics)]
	s.topicIdx++
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"topic": topic})
}

func (s *Server) restart(c echo.Context) error {
	var req struct {
		Profile profile.Profile `json:"profile"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	s.mu.Lock()
	delete(s.sessions, req.Profile.SessionID)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) appendTurns(sessionID, user, bot string) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	s.sessions[sessionID] = append(s.sessions[sessionID],
		turn{role: "user", content: user},
		turn{role: "bot", content: bot},
	)
	s.mu.Unlock()
}

func (s *Server) cannedReply(message string, p profile.Profile) string {
	lower := profile.Normalize(message)
	switch {
	case strings.Contains(lower, "ola") || strings.Contains(lower, "oi") || strings.Contains(lower, "bom dia"):
		return fmt.Sprintf("Olá, **%s**! Estou aqui para ajudar com qualquer dúvida sobre o Metaday. 😊", p.Name)
	case strings.Contains(lower, "sebrae"):
		return "O **Sebrae** é parceiro do evento e está com um estande de consultoria para quem quer empreender."
	case strings.Contains(lower, "horario") || strings.Contains(lower, "quando"):
		return "O evento vai das **9h às 17h**, com apresentações ao longo de todo o dia."
	default:
		return fmt.Sprintf("Boa pergunta! Como você se interessa por **%s**, recomendo visitar os estandes relacionados no salão principal. Posso ajudar com mais alguma coisa?", p.InterestArea)
	}
}

// tonePayload fakes speech synthesis: a short tone whose length scales with
// the text, base64-encoded the way the real synthesizer returns PCM.
func tonePayload(text string) string {
	d := time.Duration(len(text)) * 12 * time.Millisecond
	if d > 3*time.Second {
		d = 3 * time.Second
	}
	if d < 200*time.Millisecond {
		d = 200 * time.Millisecond
	}
	return base64.StdEncoding.EncodeToString(audio.Tone(440, d))
}
