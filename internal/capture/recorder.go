package capture

import (
	"errors"
	"fmt"
	"sync"
)

// State of the recorder.
type State int

const (
	Idle State = iota
	Recording
)

// ErrAlreadyRecording is returned when Start is called while a recording
// session is active. The UI prevents this by toggling one control between
// start and stop.
var ErrAlreadyRecording = errors.New("recording already in progress")

// Source provides microphone audio. Start begins delivering PCM chunks to
// onChunk in arrival order; the returned function releases the device.
type Source interface {
	Start(onChunk func([]byte)) (stop func(), err error)
}

// Recorder is the Idle -> Recording -> Idle capture state machine. Captured
// fragments accumulate until Stop finalizes them into one payload handed to
// onPayload (the orchestrator's voice intent path).
type Recorder struct {
	source    Source
	onPayload func([]byte)

	mu     sync.Mutex
	state  State
	chunks [][]byte
	stop   func()
}

// NewRecorder builds a Recorder delivering finalized payloads to onPayload.
func NewRecorder(source Source, onPayload func([]byte)) *Recorder {
	return &Recorder{source: source, onPayload: onPayload}
}

// Start requests microphone access and begins accumulating audio. On device
// or permission failure the error is returned and the recorder stays Idle.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.state == Recording {
		r.mu.Unlock()
		return ErrAlreadyRecording
	}
	r.chunks = nil
	r.mu.Unlock()

	stop, err := r.source.Start(r.appendChunk)
	if err != nil {
		return fmt.Errorf("microphone unavailable: %w", err)
	}

	r.mu.Lock()
	r.state = Recording
	r.stop = stop
	r.mu.Unlock()
	return nil
}

func (r *Recorder) appendChunk(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	r.mu.Lock()
	if r.state == Recording {
		r.chunks = append(r.chunks, chunk)
	}
	r.mu.Unlock()
}

// Stop finalizes the accumulated fragments into a single payload, releases
// the microphone and hands the payload off. A Stop while Idle is a no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if r.state != Recording {
		r.mu.Unlock()
		return
	}
	r.state = Idle
	stop := r.stop
	r.stop = nil
	chunks := r.chunks
	r.chunks = nil
	r.mu.Unlock()

	if stop != nil {
		stop()
	}

	var total int
	for _, c := range chunks {
		total += len(c)
	}
	payload := make([]byte, 0, total)
	for _, c := range chunks {
		payload = append(payload, c...)
	}
	if r.onPayload != nil {
		r.onPayload(payload)
	}
}

// State reports whether a recording session is active.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}
