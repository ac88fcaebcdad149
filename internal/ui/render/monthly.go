package render

import (
	"fmt"
	"strings"
	"time"

	monthlydto "learnobs/internal/modules/monthly/dto"
)

type ChartKind string

const (
	ChartLine  ChartKind = "line"
	ChartRadar ChartKind = "radar"
)

// ChartSeries is the input a chart needs. Insufficient is set when the
// service did not send a usable series; values are never invented.
type ChartSeries struct {
	Title        string
	Kind         ChartKind
	Labels       []string
	Values       []float64
	Max          float64
	Insufficient bool
}

type Summary struct {
	Heading        string
	Stats          []Stat
	NarrativeTitle string
	Narrative      string
	Charts         []ChartSeries
}

// Monthly builds the monthly summary and its two charts.
func Monthly(r monthlydto.Report) Summary {
	return Summary{
		Heading: fmt.Sprintf("Monthly Summary - %s %d", r.MonthName, r.Year),
		Stats: []Stat{
			{Label: "Total Observations", Value: orNA(r.TotalObservations)},
			{Label: "Average Rating", Value: orNA(r.AverageRating) + "/5"},
			{Label: "Key Strengths", Value: strings.Join(r.KeyStrengths, ", ")},
			{Label: "Areas for Development", Value: strings.Join(r.AreasForDevelopment, ", ")},
		},
		NarrativeTitle: "Monthly Progress Narrative",
		Narrative:      r.Narrative,
		Charts: []ChartSeries{
			chart("Progress Over Time", ChartLine, r.Progress),
			chart("Skills Assessment", ChartRadar, r.Skills),
		},
	}
}

func chart(title string, kind ChartKind, s monthlydto.Series) ChartSeries {
	c := ChartSeries{Title: title, Kind: kind, Max: 5}
	if !s.Usable() {
		c.Insufficient = true
		return c
	}
	c.Labels = append([]string(nil), s.Labels...)
	c.Values = append([]float64(nil), s.Values...)
	return c
}

// MonthlyText is the plain-text download of a monthly report.
func MonthlyText(r monthlydto.Report, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monthly Progress Report\n%s %d\n\n", r.MonthName, r.Year)
	fmt.Fprintf(&b, "Student: %s\nObserver: %s\n\n", r.StudentName, r.ObserverName)
	fmt.Fprintf(&b, "SUMMARY\nTotal Observations: %s\nAverage Rating: %s/5\n\n", r.TotalObservations, r.AverageRating)
	b.WriteString("KEY STRENGTHS\n")
	writeBullets(&b, r.KeyStrengths)
	b.WriteString("\nAREAS FOR DEVELOPMENT\n")
	writeBullets(&b, r.AreasForDevelopment)
	fmt.Fprintf(&b, "\nPROGRESS NARRATIVE\n%s\n\n", r.Narrative)
	fmt.Fprintf(&b, "Generated on: %s", now.Format("1/2/2006"))
	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("• " + item + "\n")
	}
}
