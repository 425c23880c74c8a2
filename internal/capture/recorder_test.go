package capture

import (
	"bytes"
	"errors"
	"testing"
)

type fakeSource struct {
	onChunk  func([]byte)
	startErr error
	stops    int
}

func (s *fakeSource) Start(onChunk func([]byte)) (func(), error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	s.onChunk = onChunk
	return func() { s.stops++ }, nil
}

func TestRecorder_ChunksConcatenatedInOrder(t *testing.T) {
	src := &fakeSource{}
	var payloads [][]byte
	r := NewRecorder(src, func(p []byte) { payloads = append(payloads, p) })

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if r.State() != Recording {
		t.Fatalf("state = %v, want Recording", r.State())
	}
	src.onChunk([]byte{1, 2})
	src.onChunk([]byte{3, 4, 5})
	r.Stop()

	if len(payloads) != 1 {
		t.Fatalf("expected one voice payload, got %d", len(payloads))
	}
	if !bytes.Equal(payloads[0], []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("payload = %v", payloads[0])
	}
	if r.State() != Idle {
		t.Fatalf("state = %v, want Idle", r.State())
	}
	if src.stops != 1 {
		t.Fatalf("device released %d times, want 1", src.stops)
	}
}

func TestRecorder_StartFailureStaysIdle(t *testing.T) {
	src := &fakeSource{startErr: errors.New("permission denied")}
	delivered := 0
	r := NewRecorder(src, func([]byte) { delivered++ })

	if err := r.Start(); err == nil {
		t.Fatalf("expected error from Start")
	}
	if r.State() != Idle {
		t.Fatalf("state = %v, want Idle after failed start", r.State())
	}
	r.Stop() // no-op
	if delivered != 0 {
		t.Fatalf("payload delivered after failed start")
	}
}

func TestRecorder_StartWhileRecording(t *testing.T) {
	src := &fakeSource{}
	r := NewRecorder(src, nil)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Start(); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("expected ErrAlreadyRecording, got %v", err)
	}
}

func TestRecorder_StopWithoutChunksDeliversEmptyPayload(t *testing.T) {
	src := &fakeSource{}
	var payloads [][]byte
	r := NewRecorder(src, func(p []byte) { payloads = append(payloads, p) })
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.Stop()
	if len(payloads) != 1 || len(payloads[0]) != 0 {
		t.Fatalf("expected one empty payload, got %v", payloads)
	}
}

func TestRecorder_SecondSessionDropsOldChunks(t *testing.T) {
	src := &fakeSource{}
	var payloads [][]byte
	r := NewRecorder(src, func(p []byte) { payloads = append(payloads, p) })

	_ = r.Start()
	src.onChunk([]byte{9})
	r.Stop()

	_ = r.Start()
	src.onChunk([]byte{7, 8})
	r.Stop()

	if len(payloads) != 2 {
		t.Fatalf("expected two payloads, got %d", len(payloads))
	}
	if !bytes.Equal(payloads[1], []byte{7, 8}) {
		t.Fatalf("second payload = %v", payloads[1])
	}
}
