package capture

import (
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/felipeftav/chatbot-LLM-toten/internal/audio"
)

// MicSource captures mono 16-bit PCM from the default microphone.
type MicSource struct{}

// Start opens the default capture device at the application sample rate.
func (MicSource) Start(onChunk func([]byte)) (func(), error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init capture context: %w", err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatS16
	cfg.Capture.Channels = 1
	cfg.SampleRate = audio.SampleRate
	cfg.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			chunk := make([]byte, len(input))
			copy(chunk, input)
			onChunk(chunk)
		},
	}

	dev, err := malgo.InitDevice(mctx.Context, cfg, callbacks)
	if err != nil {
		_ = mctx.Uninit()
		mctx.Free()
		return nil, fmt.Errorf("init capture device: %w", err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		_ = mctx.Uninit()
		mctx.Free()
		return nil, fmt.Errorf("start capture device: %w", err)
	}

	stop := func() {
		dev.Uninit()
		_ = mctx.Uninit()
		mctx.Free()
	}
	return stop, nil
}
