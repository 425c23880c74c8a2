package playback

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	oto "github.com/ebitengine/oto/v3"

	"github.com/felipeftav/chatbot-LLM-toten/internal/audio"
)

// OtoDevice plays mono 16-bit PCM on the default speaker.
type OtoDevice struct {
	ctx *oto.Context
}

// NewOtoDevice initializes the audio context and waits for it to be ready.
func NewOtoDevice() (*OtoDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	<-ready
	return &OtoDevice{ctx: ctx}, nil
}

// Start begins playback of a WAV payload. The 44-byte container header is
// skipped; the context already knows the sample format.
func (d *OtoDevice) Start(wav []byte) (Handle, error) {
	if len(wav) <= 44 {
		return nil, fmt.Errorf("audio payload too short: %d bytes", len(wav))
	}
	p := d.ctx.NewPlayer(bytes.NewReader(wav[44:]))
	h := &otoHandle{player: p, done: make(chan struct{})}
	p.Play()
	go h.watch()
	return h, nil
}

type otoHandle struct {
	player *oto.Player
	once   sync.Once
	done   chan struct{}
}

func (h *otoHandle) watch() {
	for h.player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	h.release()
}

func (h *otoHandle) release() {
	h.once.Do(func() {
		_ = h.player.Close()
		close(h.done)
	})
}

func (h *otoHandle) Stop() { h.release() }

func (h *otoHandle) Done() <-chan struct{} { return h.done }
