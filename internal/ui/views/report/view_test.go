package report

import (
	"strings"
	"testing"

	reportsdto "learnobs/internal/modules/reports/dto"
)

func TestReadOnlyReportIgnoresEdit(t *testing.T) {
	m := New()
	m.SetSize(80, 30)
	m.SetDocument(reportsdto.Document{Text: "Ava counted to 20.", Transcript: "original"}, false)
	if cmd := m.Edit(); cmd != nil || m.Editing() {
		t.Fatalf("read-only report must not enter editing")
	}
	if m.Transcript() != "original" {
		t.Fatalf("transcript = %q", m.Transcript())
	}
}

func TestEditableReportKeepsTranscript(t *testing.T) {
	m := New()
	m.SetSize(80, 30)
	m.SetDocument(reportsdto.Document{Text: "text", Transcript: "heard words"}, true)
	m.Edit()
	if !m.Editing() {
		t.Fatalf("editable report should enter editing")
	}
	m.StopEditing()
	if m.Editing() {
		t.Fatalf("StopEditing left editor focused")
	}
	if !strings.Contains(m.View(), "Transcript") {
		t.Fatalf("editor pane missing from view")
	}
}

func TestMarkdownIncludesMeta(t *testing.T) {
	prev := markdownStyle
	markdownStyle = "ascii"
	t.Cleanup(func() { markdownStyle = prev })

	out := Markdown(reportsdto.Document{StudentName: "Ava", Text: "Great focus today."}, 80)
	if !strings.Contains(out, "Ava") || !strings.Contains(out, "Great focus today.") {
		t.Fatalf("rendered markdown missing content: %q", out)
	}
}
