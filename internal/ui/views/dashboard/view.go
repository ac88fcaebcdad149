// Package dashboard draws the role home screens: a selectable list on the
// left and a scrolling detail pane on the right.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnobs/internal/ui/render"
	"learnobs/internal/ui/theme"
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	title   string
	header  string
	list    render.List
	cursor  int
	detail  viewport.Model
	focused bool
	width   int
	height  int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text)
	return Model{detail: vp}
}

func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	_, detailW := m.split()
	m.detail.Width = detailW - 4
	m.detail.Height = h - 2
	if m.detail.Height < 1 {
		m.detail.Height = 1
	}
}

func (m *Model) SetTitle(title string) { m.title = title }

// SetHeader places a line above the panes, such as the child being viewed.
func (m *Model) SetHeader(header string) { m.header = header }

// SetList replaces the rows and keeps the cursor in range.
func (m *Model) SetList(l render.List) {
	m.list = l
	if m.cursor >= len(l.Items) {
		m.cursor = len(l.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetDetail replaces the right pane. bottom scrolls to the last line.
func (m *Model) SetDetail(content string, bottom bool) {
	m.detail.SetContent(content)
	if bottom {
		m.detail.GotoBottom()
	} else {
		m.detail.GotoTop()
	}
}

// Clear drops rows and detail after a tab switch.
func (m *Model) Clear() {
	m.list = render.List{}
	m.cursor = 0
	m.header = ""
	m.detail.SetContent("")
}

func (m Model) Selected() (render.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list.Items) {
		return render.Item{}, false
	}
	return m.list.Items[m.cursor], true
}

func (m Model) Cursor() int { return m.cursor }

func (m *Model) Move(delta int) {
	n := len(m.list.Items)
	if n == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

// Update scrolls the detail pane; row movement goes through Move.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) split() (int, int) {
	if len(m.list.Items) == 0 && m.list.Placeholder == "" {
		return 0, m.width
	}
	listW := m.width * 4 / 10
	return listW, m.width - listW
}

func (m Model) View() string {
	listW, detailW := m.split()
	var top string
	if m.title != "" {
		top = theme.Title.Render(m.title)
	}
	if m.header != "" {
		top = lipgloss.JoinVertical(lipgloss.Left, top, theme.Muted.Render(m.header))
	}

	detail := theme.Pane.Width(max(detailW-2, 10)).Height(max(m.height-2, 1)).Render(m.detail.View())
	body := detail
	if listW > 0 {
		rows := lipgloss.NewStyle().Width(listW).Height(m.height).Render(Items(m.list, m.cursor, listW-2))
		body = lipgloss.JoinHorizontal(lipgloss.Top, rows, detail)
	}
	if top == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

// ─── drawing helpers ─────────────────────────────────────────────────────────

// Items draws a list with the cursor row highlighted; cursor < 0 means no
// selection.
func Items(l render.List, cursor, width int) string {
	if l.Empty() {
		return theme.Muted.Render(l.Placeholder)
	}
	var sb strings.Builder
	for i, item := range l.Items {
		title := fmt.Sprintf("%d. %s", i+1, item.Title)
		if i == cursor {
			sb.WriteString(theme.Cursor.Render("› "+title) + "\n")
		} else {
			sb.WriteString("  " + title + "\n")
		}
		if item.Meta != "" {
			sb.WriteString("   " + theme.Muted.Render(item.Meta) + "\n")
		}
		if item.Body != "" {
			sb.WriteString("   " + lipgloss.NewStyle().Width(max(width-3, 10)).Render(item.Body) + "\n")
		}
		if item.Progress != nil {
			sb.WriteString("   " + theme.Bar(item.Progress.Percent, 20) + " " + item.Progress.Label + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Thread draws a conversation with outgoing messages on the right.
func Thread(v render.ThreadView, width int) string {
	var sb strings.Builder
	if v.Header != "" {
		sb.WriteString(theme.Title.Render(v.Header) + "\n\n")
	}
	if len(v.Bubbles) == 0 {
		sb.WriteString(theme.Muted.Render(v.Placeholder))
		return sb.String()
	}
	bubbleW := max(width*2/3, 20)
	for _, b := range v.Bubbles {
		text := theme.Hot.Render(b.Sender) + "  " + theme.Muted.Render(b.Time) + "\n" + b.Content
		if b.Outgoing {
			bubble := theme.Outgoing.Width(bubbleW).Render(text)
			sb.WriteString(lipgloss.PlaceHorizontal(max(width, bubbleW+2), lipgloss.Right, bubble) + "\n")
		} else {
			sb.WriteString(theme.Incoming.Width(bubbleW).Render(text) + "\n")
		}
	}
	return sb.String()
}

// Stats draws labelled figures in one row.
func Stats(stats []render.Stat) string {
	cells := make([]string, 0, len(stats))
	for _, s := range stats {
		cells = append(cells, theme.Pane.Render(theme.Title.Render(s.Value)+"\n"+theme.Muted.Render(s.Label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Summary draws a monthly summary with its charts.
func Summary(s render.Summary) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Heading) + "\n\n")
	for _, st := range s.Stats {
		sb.WriteString(theme.Muted.Render(st.Label+": ") + st.Value + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render(s.NarrativeTitle) + "\n" + s.Narrative + "\n")
	for _, c := range s.Charts {
		sb.WriteString("\n" + theme.Title.Render(c.Title) + "\n")
		if c.Insufficient {
			sb.WriteString(theme.Muted.Render("Not enough data to chart.") + "\n")
			continue
		}
		sb.WriteString(Chart(c))
	}
	return sb.String()
}

// Chart draws a line series as a sparkline plus per-label scores, and a
// radar series as per-label scores.
func Chart(c render.ChartSeries) string {
	var sb strings.Builder
	if c.Kind == render.ChartLine {
		sb.WriteString(theme.Spark(c.Values, c.Max) + "\n")
	}
	labelW := 0
	for _, l := range c.Labels {
		labelW = max(labelW, lipgloss.Width(l))
	}
	for i, l := range c.Labels {
		sb.WriteString(theme.Score(l, c.Values[i], c.Max, labelW) + "\n")
	}
	return sb.String()
}

// Child draws the parent dashboard header.
func Child(h render.ChildHeader) string {
	return theme.Title.Render(h.Title) + "\n" +
		theme.Muted.Render(fmt.Sprintf("Age: %s | Grade: %s | Observer: %s", h.Age, h.Grade, h.Observer))
}
