package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnobs/internal/ui/theme"
)

// CommandMsg carries a confirmed command line.
type CommandMsg struct{ Line string }

// ClosedMsg is sent when the bar is dismissed without a command.
type ClosedMsg struct{}

// CommonHints are offered on every signed-in screen.
var CommonHints = []string{
	"tab <name>",
	"refresh",
	"logout",
}

const (
	maxSuggestions = 6
	historyLimit   = 50
)

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Peach).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// history is a bounded list of submitted lines with a recall cursor.
type history struct {
	lines []string
	pos   int
}

func (h *history) push(line string) {
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		h.pos = n
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > historyLimit {
		h.lines = h.lines[len(h.lines)-historyLimit:]
	}
	h.pos = len(h.lines)
}

func (h *history) older() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.lines[h.pos], true
}

// newer returns "" once the cursor moves past the latest entry.
func (h *history) newer() string {
	if h.pos >= len(h.lines)-1 {
		h.pos = len(h.lines)
		return ""
	}
	h.pos++
	return h.lines[h.pos]
}

// CommandBar is the ":" overlay through which every screen action is issued.
type CommandBar struct {
	input   textinput.Model
	open    bool
	width   int
	hints   []string
	history history
}

func NewCommandBar() CommandBar {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "command (tab completes, esc closes)"
	ti.CharLimit = 512
	return CommandBar{input: ti}
}

func (b CommandBar) Visible() bool { return b.open }

// Open clears the line and focuses the input.
func (b *CommandBar) Open() tea.Cmd {
	b.open = true
	b.history.pos = len(b.history.lines)
	b.input.SetValue("")
	return b.input.Focus()
}

// SetHints sets the suggestions for the current screen; CommonHints follow them.
func (b *CommandBar) SetHints(hints []string) {
	b.hints = append(append([]string(nil), hints...), CommonHints...)
}

func (b *CommandBar) SetWidth(w int) { b.width = w }

func (b *CommandBar) close() {
	b.open = false
	b.input.Blur()
}

// Suggestions returns the hints whose command word starts with the typed word.
func (b CommandBar) Suggestions() []string {
	typed := strings.ToLower(strings.TrimLeft(b.input.Value(), " "))
	if strings.Contains(typed, " ") {
		word := strings.Fields(typed)[0]
		var exact []string
		for _, h := range b.hints {
			if verb(h) == word {
				exact = append(exact, h)
			}
		}
		return exact
	}
	var out []string
	for _, h := range b.hints {
		if strings.HasPrefix(verb(h), typed) {
			out = append(out, h)
		}
	}
	return out
}

func verb(hint string) string {
	if i := strings.IndexByte(hint, ' '); i >= 0 {
		return hint[:i]
	}
	return hint
}

// complete fills in the command word shared by every suggestion.
func (b *CommandBar) complete() {
	matches := b.Suggestions()
	if len(matches) == 0 || strings.Contains(b.input.Value(), " ") {
		return
	}
	common := verb(matches[0])
	for _, m := range matches[1:] {
		v := verb(m)
		for !strings.HasPrefix(v, common) {
			common = common[:len(common)-1]
		}
	}
	if len(matches) == 1 || common == verb(matches[0]) {
		common += " "
	}
	if len(common) > len(b.input.Value()) {
		b.input.SetValue(common)
		b.input.CursorEnd()
	}
}

func (b CommandBar) Update(msg tea.Msg) (CommandBar, tea.Cmd) {
	if !b.open {
		return b, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return b, cmd
	}
	switch key.Type {
	case tea.KeyEsc:
		b.close()
		return b, func() tea.Msg { return ClosedMsg{} }
	case tea.KeyEnter:
		line := strings.TrimSpace(b.input.Value())
		b.close()
		if line == "" {
			return b, func() tea.Msg { return ClosedMsg{} }
		}
		b.history.push(line)
		return b, func() tea.Msg { return CommandMsg{Line: line} }
	case tea.KeyTab:
		b.complete()
		return b, nil
	case tea.KeyUp:
		if line, ok := b.history.older(); ok {
			b.input.SetValue(line)
			b.input.CursorEnd()
		}
		return b, nil
	case tea.KeyDown:
		b.input.SetValue(b.history.newer())
		b.input.CursorEnd()
		return b, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b CommandBar) View() string {
	if !b.open {
		return ""
	}
	rows := []string{b.input.View()}
	matches := b.Suggestions()
	for i, h := range matches {
		if i == maxSuggestions {
			rows = append(rows, theme.Muted.Render(fmt.Sprintf("  +%d more", len(matches)-maxSuggestions)))
			break
		}
		rows = append(rows, theme.Hot.Render("  "+verb(h))+theme.Muted.Render(strings.TrimPrefix(h, verb(h))))
	}
	w := b.width
	if w < 20 {
		w = 64
	}
	return barStyle.Width(w - 2).Render(strings.Join(rows, "\n"))
}
