package dashboard

import (
	"strings"
	"testing"

	"learnobs/internal/ui/render"
)

func TestCursorStaysInRange(t *testing.T) {
	m := New()
	m.SetSize(100, 30)
	m.SetList(render.List{Items: []render.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}})
	m.Move(5)
	if item, _ := m.Selected(); item.ID != "b" {
		t.Fatalf("selected = %q, want b", item.ID)
	}
	m.SetList(render.List{Items: []render.Item{{ID: "c", Title: "C"}}})
	if item, ok := m.Selected(); !ok || item.ID != "c" {
		t.Fatalf("cursor not clamped after shrink")
	}
	m.SetList(render.List{Placeholder: render.NoGoals})
	if _, ok := m.Selected(); ok {
		t.Fatalf("empty list must have no selection")
	}
}

func TestItemsShowsPlaceholder(t *testing.T) {
	got := Items(render.List{Placeholder: render.NoUsers}, 0, 40)
	if !strings.Contains(got, render.NoUsers) {
		t.Fatalf("placeholder missing: %q", got)
	}
}

func TestSummaryMarksInsufficientCharts(t *testing.T) {
	s := render.Summary{
		Heading: "Monthly Summary - March 2024",
		Charts: []render.ChartSeries{
			{Title: "Progress Over Time", Kind: render.ChartLine, Labels: []string{"W1"}, Values: []float64{4}, Max: 5},
			{Title: "Skills Assessment", Kind: render.ChartRadar, Insufficient: true},
		},
	}
	got := Summary(s)
	if !strings.Contains(got, "W1") {
		t.Fatalf("line chart labels missing: %q", got)
	}
	if !strings.Contains(got, "Not enough data to chart.") {
		t.Fatalf("insufficient marker missing: %q", got)
	}
}
