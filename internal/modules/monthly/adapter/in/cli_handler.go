package in

import (
	"context"

	monthlydto "learnobs/internal/modules/monthly/dto"
	monthlyin "learnobs/internal/modules/monthly/port/in"
)

type CLIHandler struct {
	usecase monthlyin.Usecase
}

func NewCLIHandler(usecase monthlyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Fetch loads a stored monthly report. A zero year or month falls back to
// the current period.
func (h CLIHandler) Fetch(ctx context.Context, childID string, year, month int) (monthlydto.Report, error) {
	p := h.usecase.DefaultPeriod()
	if year != 0 {
		p.Year = year
	}
	if month != 0 {
		p.Month = month
	}
	return h.usecase.Fetch(ctx, monthlydto.FetchInput{ChildID: childID, Period: p})
}

func (h CLIHandler) Export(ctx context.Context, report monthlydto.Report, content, dir string) (string, error) {
	return h.usecase.Export(ctx, monthlydto.ExportInput{Report: &report, Content: content, Dir: dir})
}
