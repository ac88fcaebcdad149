package report

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	reportsdto "learnobs/internal/modules/reports/dto"
	"learnobs/internal/ui/theme"
)

// markdownStyle is a glamour standard style name.
var markdownStyle = "dark"

// Model shows one observation report. When the report is editable the
// transcript can be changed and sent back for regeneration.
type Model struct {
	doc      reportsdto.Document
	editable bool
	editing  bool

	body       viewport.Model
	transcript textarea.Model
	width      int
	height     int
}

func New() Model {
	ta := textarea.New()
	ta.Placeholder = "transcript"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	return Model{body: viewport.New(0, 0), transcript: ta}
}

// SetDocument replaces the shown report and resets the transcript editor.
func (m *Model) SetDocument(doc reportsdto.Document, editable bool) {
	m.doc = doc
	m.editable = editable
	m.editing = false
	m.transcript.Blur()
	m.transcript.SetValue(doc.Transcript)
	m.refresh()
	m.body.GotoTop()
}

func (m Model) Document() reportsdto.Document { return m.doc }

func (m Model) Editable() bool { return m.editable }

// Editing reports whether keys go to the transcript editor.
func (m Model) Editing() bool { return m.editing }

// Transcript is the current, possibly edited, transcript.
func (m Model) Transcript() string { return m.transcript.Value() }

// Edit focuses the transcript editor; ignored for read-only reports.
func (m *Model) Edit() tea.Cmd {
	if !m.editable {
		return nil
	}
	m.editing = true
	return m.transcript.Focus()
}

func (m *Model) StopEditing() {
	m.editing = false
	m.transcript.Blur()
}

func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	bodyH := h
	if m.editable {
		bodyH = h * 2 / 3
		m.transcript.SetWidth(max(w-4, 10))
		m.transcript.SetHeight(max(h-bodyH-3, 3))
	}
	m.body.Width = max(w-2, 10)
	m.body.Height = max(bodyH-2, 1)
	m.refresh()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.editing {
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	body := theme.Pane.Width(max(m.width-2, 10)).Render(m.body.View())
	if !m.editable {
		return body
	}
	style := theme.Pane
	if m.editing {
		style = theme.PaneActive
	}
	editor := style.Width(max(m.width-2, 10)).Render(
		theme.Title.Render("Transcript") + "\n" + m.transcript.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, editor)
}

func (m *Model) refresh() {
	m.body.SetContent(Markdown(m.doc, m.body.Width))
}

// Markdown renders the report heading and text for the terminal. The
// text is shown raw when glamour cannot render it.
func Markdown(doc reportsdto.Document, width int) string {
	var sb strings.Builder
	sb.WriteString("# Observation Report\n\n")
	meta := []string{}
	if doc.StudentName != "" {
		meta = append(meta, "**Student:** "+doc.StudentName)
	}
	if doc.ObserverName != "" {
		meta = append(meta, "**Observer:** "+doc.ObserverName)
	}
	if doc.Date != "" {
		meta = append(meta, "**Date:** "+doc.Date)
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, "  \n") + "\n\n")
	}
	sb.WriteString(doc.Text)
	source := sb.String()

	if width < 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(markdownStyle), glamour.WithWordWrap(width-2))
	if err != nil {
		return source
	}
	out, err := r.Render(source)
	if err != nil {
		return source
	}
	return out
}
