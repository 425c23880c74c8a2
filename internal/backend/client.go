package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/felipeftav/chatbot-LLM-toten/internal/profile"
)

// API is the backend surface the orchestrator depends on.
type API interface {
	Chat(ctx context.Context, message string, preset bool, ttsEnabled bool, p profile.Profile) (*ChatResponse, error)
	ChatVoice(ctx context.Context, audio []byte, p profile.Profile) (*ChatResponse, error)
	WelcomeAudio(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, p profile.Profile) (string, error)
	SuggestTopic(ctx context.Context) (string, error)
	Restart(ctx context.Context, p profile.Profile) error
}

// Client talks to the LIA backend over HTTP.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ChatResponse is the reply envelope of POST /chat.
type ChatResponse struct {
	Reply           string   `json:"reply"`
	AudioData       string   `json:"audioData,omitempty"`
	PresetQuestions []string `json:"presetQuestions,omitempty"`
}

type chatRequest struct {
	Message        string          `json:"message,omitempty"`
	PresetQuestion string          `json:"preset_question,omitempty"`
	TTSEnabled     bool            `json:"tts_enabled"`
	Profile        profile.Profile `json:"profile"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error"`
}

type suggestTopicResponse struct {
	Topic string `json:"topic"`
}

type audioResponse struct {
	AudioData string `json:"audioData"`
}

// APIError carries the HTTP status and any server-provided error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error: status=%d message=%s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error: status=%d", e.Status)
}

// Chat sends a typed or preset message and returns the bot reply.
func (c *Client) Chat(ctx context.Context, message string, preset bool, ttsEnabled bool, p profile.Profile) (*ChatResponse, error) {
	body := chatRequest{TTSEnabled: ttsEnabled, Profile: p}
	if preset {
		body.PresetQuestion = message
	} else {
		body.Message = message
	}
	var out ChatResponse
	if err := c.postJSON(ctx, "/chat", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatVoice uploads a recorded audio payload as multipart form data together
// with the serialized profile.
func (c *Client) ChatVoice(ctx context.Context, audio []byte, p profile.Profile) (*ChatResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio_file", "user_audio.wav")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, err
	}
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	if err := w.WriteField("profile", string(profileJSON)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out ChatResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WelcomeAudio synthesizes speech for the welcome turn via POST /get-audio.
// Returns the base64 PCM payload, which may be empty.
func (c *Client) WelcomeAudio(ctx context.Context, text string) (string, error) {
	var out audioResponse
	if err := c.postJSON(ctx, "/get-audio", map[string]string{"text": text}, &out); err != nil {
		return "", err
	}
	return out.AudioData, nil
}

// Summarize asks the backend for a summary of the session's conversation.
func (c *Client) Summarize(ctx context.Context, p profile.Profile) (string, error) {
	var out summarizeResponse
	if err := c.postJSON(ctx, "/summarize", map[string]profile.Profile{"profile": p}, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", &APIError{Status: http.StatusOK, Message: out.Error}
	}
	return out.Summary, nil
}

// SuggestTopic fetches a conversation-starter suggestion. An empty topic with
// a nil error means the backend had nothing to suggest.
func (c *Client) SuggestTopic(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/suggest-topic", nil)
	if err != nil {
		return "", err
	}
	var out suggestTopicResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Topic), nil
}

// Restart asks the backend to drop the session's conversation state.
func (c *Client) Restart(ctx context.Context, p profile.Profile) error {
	return c.postJSON(ctx, "/restart", map[string]profile.Profile{"profile": p}, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
