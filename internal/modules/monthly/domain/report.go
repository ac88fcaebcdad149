package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "learnobs/internal/platform/errors"
)

// Series is a labelled chart input. Values is nil when the service sent
// anything that is not a number.
type Series struct {
	Labels []string
	Values []float64
}

// Usable reports whether the series can be charted as sent.
func (s Series) Usable() bool {
	return len(s.Labels) > 0 && len(s.Labels) == len(s.Values)
}

type Report struct {
	ID                  string
	Year                int
	Month               int
	MonthName           string
	StudentName         string
	ObserverName        string
	TotalObservations   string
	AverageRating       string
	KeyStrengths        []string
	AreasForDevelopment []string
	Narrative           string
	Progress            Series
	Skills              Series
	// Raw is the report object exactly as received; sharing sends it back.
	Raw string
}

// Period is a year/month selection.
type Period struct {
	Year  int
	Month int
}

func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// DefaultPeriod is the current month.
func DefaultPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month())}
}

// YearOptions lists the selectable years, two back and one ahead.
func YearOptions(now time.Time) []int {
	years := make([]int, 0, 4)
	for y := now.Year() - 2; y <= now.Year()+1; y++ {
		years = append(years, y)
	}
	return years
}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

type Generate struct {
	ChildID    string
	ObserverID string
	Period     Period
}

func (g Generate) Validate() error {
	if strings.TrimSpace(g.ChildID) == "" || !g.Period.Valid() {
		return apperrors.Validation("Please select child, year, and month")
	}
	if g.ObserverID == "" {
		return apperrors.ErrNoSession
	}
	return nil
}

type Fetch struct {
	ChildID string
	Period  Period
}

func (f Fetch) Validate() error {
	if strings.TrimSpace(f.ChildID) == "" {
		return apperrors.Validation("No child assigned to your account")
	}
	if !f.Period.Valid() {
		return apperrors.Validation("Please select year and month")
	}
	return nil
}

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ReportID string
	ParentID string
	Text     string
	Rating   int
}

func (f Feedback) Validate() error {
	if strings.TrimSpace(f.Text) == "" {
		return apperrors.Validation("Please enter your feedback")
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		return apperrors.Validation(fmt.Sprintf("Please choose a rating from %d to %d", MinRating, MaxRating))
	}
	if f.ReportID == "" {
		return apperrors.Validation("Please select year and month")
	}
	if f.ParentID == "" {
		return apperrors.ErrNoSession
	}
	return nil
}

// FileName is the download name of a monthly report.
func FileName(r Report) string {
	return fmt.Sprintf("monthly_report_%d_%d.txt", r.Year, r.Month)
}
