package playback

import (
	"log"
	"sync"

	"github.com/felipeftav/chatbot-LLM-toten/internal/audio"
)

// State of the playback controller.
type State int

const (
	Stopped State = iota
	Playing
)

// Device turns a WAV payload into live audio output.
type Device interface {
	Start(wav []byte) (Handle, error)
}

// Handle is one active audio resource. At most one exists at a time.
type Handle interface {
	// Stop releases the resource synchronously. Safe to call more than once.
	Stop()
	// Done is closed when playback ends, errors out or is stopped.
	Done() <-chan struct{}
}

// Animator mirrors the avatar mouth animation. Implementations must not call
// back into the Controller.
type Animator interface {
	StartTalking()
	StopTalking()
}

// Controller owns the single currently-speaking audio resource and keeps the
// avatar animation in lockstep with it. Animation start/stop follow state
// transitions only: Stopped->Playing starts it, Playing->Stopped stops it.
type Controller struct {
	device   Device
	animator Animator

	mu         sync.Mutex
	ttsEnabled bool
	state      State
	current    Handle
	gen        uint64
}

// NewController builds a Controller. ttsEnabled sets the initial toggle state.
func NewController(device Device, animator Animator, ttsEnabled bool) *Controller {
	return &Controller{device: device, animator: animator, ttsEnabled: ttsEnabled}
}

// stopLocked tears down the active handle and animation. Callers hold c.mu.
func (c *Controller) stopLocked() {
	c.gen++
	if c.current != nil {
		c.current.Stop()
		c.current = nil
	}
	if c.state == Playing {
		c.state = Stopped
		c.animator.StopTalking()
	}
}

// Play decodes a base64 PCM payload and plays it. Any previous playback is
// released first, so two handles never coexist. With TTS disabled or an
// absent payload only the release step runs. Decode and device failures are
// logged and leave the controller Stopped.
func (c *Controller) Play(pcmBase64 string) {
	c.mu.Lock()
	c.stopLocked()
	if !c.ttsEnabled || pcmBase64 == "" {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	wav, err := audio.FromPCM(pcmBase64)
	if err != nil {
		log.Printf("playback: decode failed: %v", err)
		return
	}
	h, err := c.device.Start(wav)
	if err != nil {
		log.Printf("playback: device start failed: %v", err)
		return
	}

	c.mu.Lock()
	c.stopLocked()
	c.current = h
	c.state = Playing
	c.animator.StartTalking()
	gen := c.gen
	c.mu.Unlock()

	go func() {
		<-h.Done()
		c.mu.Lock()
		if c.gen != gen {
			// a newer playback or stop already took over
			c.mu.Unlock()
			return
		}
		c.current = nil
		if c.state == Playing {
			c.state = Stopped
			c.animator.StopTalking()
		}
		c.mu.Unlock()
	}()
}

// Stop releases any active playback and its animation.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

// SetTTSEnabled flips the text-to-speech toggle. Disabling while audio is
// active pauses and releases it immediately.
func (c *Controller) SetTTSEnabled(enabled bool) {
	c.mu.Lock()
	c.ttsEnabled = enabled
	if !enabled {
		c.stopLocked()
	}
	c.mu.Unlock()
}

// TTSEnabled reports the toggle state.
func (c *Controller) TTSEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttsEnabled
}

// State reports whether audio is currently playing.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
