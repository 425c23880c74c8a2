package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"
	"time"
)

func TestFromPCM_HeaderLayout(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0, 5, 0}
	wav, err := FromPCM(base64.StdEncoding.EncodeToString(pcm))
	if err != nil {
		t.Fatalf("FromPCM: %v", err)
	}
	if len(wav) != 44+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", 44+len(pcm), len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("bad magic: %q %q", wav[0:4], wav[8:12])
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		t.Fatalf("bad subchunk ids: %q %q", wav[12:16], wav[36:40])
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Fatalf("chunk size = %d, want %d", got, 36+len(pcm))
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Fatalf("audio format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Fatalf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 24000 {
		t.Fatalf("sample rate = %d, want 24000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 48000 {
		t.Fatalf("byte rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[32:34]); got != 2 {
		t.Fatalf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Fatalf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Fatalf("data size = %d, want %d", got, len(pcm))
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Fatalf("payload mismatch")
	}
}

func TestFromPCM_Deterministic(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString(Tone(440, 50*time.Millisecond))
	a, err := FromPCM(b64)
	if err != nil {
		t.Fatalf("FromPCM: %v", err)
	}
	b, err := FromPCM(b64)
	if err != nil {
		t.Fatalf("FromPCM: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same input produced different output")
	}
}

func TestFromPCM_EmptyPayload(t *testing.T) {
	wav, err := FromPCM("")
	if err != nil {
		t.Fatalf("FromPCM: %v", err)
	}
	if len(wav) != 44 {
		t.Fatalf("expected bare header for empty payload, got %d bytes", len(wav))
	}
}

func TestFromPCM_InvalidBase64(t *testing.T) {
	if _, err := FromPCM("not base64!!"); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
}

func TestTone_LengthAndRange(t *testing.T) {
	pcm := Tone(440, 100*time.Millisecond)
	wantSamples := SampleRate / 10
	if len(pcm) != wantSamples*2 {
		t.Fatalf("tone length = %d bytes, want %d", len(pcm), wantSamples*2)
	}
	if Tone(440, 0) != nil {
		t.Fatalf("expected nil tone for zero duration")
	}
}
