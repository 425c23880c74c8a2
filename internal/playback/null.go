package playback

// NullDevice discards audio. It stands in for the speaker when no output
// device is available so the kiosk still runs, just silently.
type NullDevice struct{}

// Start returns an already-finished handle.
func (NullDevice) Start(wav []byte) (Handle, error) {
	done := make(chan struct{})
	close(done)
	return nullHandle{done: done}, nil
}

type nullHandle struct {
	done chan struct{}
}

func (nullHandle) Stop() {}

func (h nullHandle) Done() <-chan struct{} { return h.done }
