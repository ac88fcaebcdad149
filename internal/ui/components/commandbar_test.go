package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(b CommandBar, s string) CommandBar {
	for _, r := range s {
		b, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return b
}

func submitted(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(CommandMsg)
	if !ok {
		t.Fatalf("expected CommandMsg, got %#v", msg)
	}
	return msg.Line
}

func TestCommandBarSubmitAndRecall(t *testing.T) {
	t.Parallel()
	b := NewCommandBar()
	b.Open()
	b = typeInto(b, "refresh")
	b, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if b.Visible() {
		t.Fatalf("bar should close on enter")
	}
	if got := submitted(t, cmd); got != "refresh" {
		t.Fatalf("line = %q", got)
	}

	b.Open()
	b = typeInto(b, "goal:add 1 2024-06-01 Read")
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyEnter})

	b.Open()
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyUp})
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyUp})
	b, cmd = b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := submitted(t, cmd); got != "refresh" {
		t.Fatalf("second recall = %q, want refresh", got)
	}
}

func TestCommandBarDownPastLatestClears(t *testing.T) {
	t.Parallel()
	b := NewCommandBar()
	b.Open()
	b = typeInto(b, "logout")
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyEnter})

	b.Open()
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyUp})
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyDown})
	b, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Fatalf("empty line should close without a command")
	}
}

func TestCommandBarCancel(t *testing.T) {
	t.Parallel()
	b := NewCommandBar()
	b.Open()
	b = typeInto(b, "ref")
	b, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if b.Visible() {
		t.Fatalf("bar should close on esc")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Fatalf("expected ClosedMsg")
	}
}

func TestCommandBarSuggestionsByCommandWord(t *testing.T) {
	t.Parallel()
	b := NewCommandBar()
	b.SetHints([]string{"goal:add <child> <date> <text>", "msg:send <text>", "monthly:generate <year> <month>", "monthly:share"})
	b.Open()
	b = typeInto(b, "mo")
	got := b.Suggestions()
	if len(got) != 2 || !strings.HasPrefix(got[0], "monthly:generate") {
		t.Fatalf("suggestions = %v", got)
	}
	view := b.View()
	if strings.Contains(view, "msg:send") || !strings.Contains(view, "monthly:share") {
		t.Fatalf("view not filtered: %s", view)
	}

	b = typeInto(b, "nthly:share now")
	if got := b.Suggestions(); len(got) != 1 || got[0] != "monthly:share" {
		t.Fatalf("suggestions after args = %v", got)
	}
}

func TestCommandBarTabCompletes(t *testing.T) {
	t.Parallel()
	b := NewCommandBar()
	b.SetHints([]string{"monthly:generate <year> <month>", "monthly:share", "msg:send <text>"})
	b.Open()
	b = typeInto(b, "mo")
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyTab})
	b, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := submitted(t, cmd); got != "monthly:" {
		t.Fatalf("shared prefix = %q", got)
	}

	b.Open()
	b = typeInto(b, "ms")
	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyTab})
	b = typeInto(b, "hi")
	b, cmd = b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := submitted(t, cmd); got != "msg:send hi" {
		t.Fatalf("completed line = %q", got)
	}
}
