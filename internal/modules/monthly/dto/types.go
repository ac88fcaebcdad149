package dto

import "learnobs/internal/modules/monthly/domain"

type (
	Report = domain.Report
	Series = domain.Series
	Period = domain.Period
)

type GenerateInput struct {
	ChildID    string
	ObserverID string
	Period     Period
}

type FetchInput struct {
	ChildID string
	Period  Period
}

type FeedbackInput struct {
	Report   *Report
	ParentID string
	Text     string
	Rating   int
}

// ExportInput carries the already rendered text of Report.
type ExportInput struct {
	Report  *Report
	Content string
	Dir     string
}
