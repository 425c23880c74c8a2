package transcript

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderer formats turn content for the terminal. Bot and system turns come
// from the backend and are trusted markdown; user turns are plain text.
type Renderer struct {
	mu    sync.Mutex
	width int
	tr    *glamour.TermRenderer
}

// NewRenderer creates a Renderer wrapping at the given width.
func NewRenderer(width int) *Renderer {
	r := &Renderer{}
	r.SetWidth(width)
	return r
}

// SetWidth rebuilds the markdown renderer for a new wrap width.
func (r *Renderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	r.mu.Lock()
	r.width = width
	if err == nil {
		r.tr = tr
	}
	r.mu.Unlock()
}

// Render formats a turn for display. Markdown rendering failures fall back
// to the raw content so a malformed reply never hides a turn.
func (r *Renderer) Render(t Turn) string {
	if t.Origin == OriginUser {
		return t.Content
	}
	r.mu.Lock()
	tr := r.tr
	r.mu.Unlock()
	if tr == nil {
		return t.Content
	}
	out, err := tr.Render(t.Content)
	if err != nil {
		return t.Content
	}
	return strings.Trim(out, "\n")
}
