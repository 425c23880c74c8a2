package transcript

import "testing"

func TestLog_AppendPreservesOrder(t *testing.T) {
	l := NewLog()
	l.AppendUser("oi")
	l.AppendBot("olá!")
	l.AppendSystem("resumo")

	turns := l.Turns()
	if len(turns) != 3 {
		t.Fatalf("len = %d, want 3", len(turns))
	}
	if turns[0].Origin != OriginUser || turns[1].Origin != OriginBot || turns[2].Origin != OriginSystem {
		t.Fatalf("origin order wrong: %+v", turns)
	}
	if turns[0].Content != "oi" {
		t.Fatalf("user content = %q", turns[0].Content)
	}
}

func TestLog_PendingIdempotent(t *testing.T) {
	l := NewLog()
	changes := 0
	l.SetOnChange(func() { changes++ })

	l.RemovePending() // absent: no-op
	if changes != 0 {
		t.Fatalf("remove on absent indicator fired change hook")
	}
	l.ShowPending()
	l.ShowPending()
	if !l.Pending() {
		t.Fatalf("expected pending")
	}
	if changes != 1 {
		t.Fatalf("expected one change for repeated show, got %d", changes)
	}
	l.RemovePending()
	l.RemovePending()
	if l.Pending() {
		t.Fatalf("expected not pending")
	}
	if changes != 2 {
		t.Fatalf("expected two changes total, got %d", changes)
	}
}

func TestLog_OnChangeFiresOnAppend(t *testing.T) {
	l := NewLog()
	changes := 0
	l.SetOnChange(func() { changes++ })
	l.AppendUser("a")
	l.AppendBot("b")
	if changes != 2 {
		t.Fatalf("changes = %d, want 2", changes)
	}
}

func TestRenderer_UserContentVerbatim(t *testing.T) {
	r := NewRenderer(60)
	got := r.Render(Turn{Origin: OriginUser, Content: "**não renderize** <b>isto</b>"})
	if got != "**não renderize** <b>isto</b>" {
		t.Fatalf("user content was formatted: %q", got)
	}
}

func TestRenderer_BotContentFormatted(t *testing.T) {
	r := NewRenderer(60)
	got := r.Render(Turn{Origin: OriginBot, Content: "**negrito**"})
	if got == "" {
		t.Fatalf("expected rendered output")
	}
}
