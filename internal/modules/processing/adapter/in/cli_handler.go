package in

import (
	"context"

	processingdto "learnobs/internal/modules/processing/dto"
	processingin "learnobs/internal/modules/processing/port/in"
)

type CLIHandler struct {
	usecase processingin.Usecase
}

func NewCLIHandler(usecase processingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// ProcessFile runs one submission from a local file to a report.
func (h CLIHandler) ProcessFile(ctx context.Context, path string, kind processingdto.Kind, info processingdto.SessionInfo, target processingdto.Target) (processingdto.Report, error) {
	h.usecase.SetTarget(target)
	h.usecase.SetSessionInfo(info)
	if _, err := h.usecase.StageFile(path, kind); err != nil {
		return processingdto.Report{}, err
	}
	return h.usecase.Submit(ctx, kind)
}
