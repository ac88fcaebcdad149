package in

import (
	"context"

	reportsdto "learnobs/internal/modules/reports/dto"
	reportsin "learnobs/internal/modules/reports/port/in"
)

type CLIHandler struct {
	usecase reportsin.Usecase
}

func NewCLIHandler(usecase reportsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, doc reportsdto.Document, dir string) (string, error) {
	return h.usecase.Export(ctx, reportsdto.ExportInput{Document: doc, Dir: dir})
}

func (h CLIHandler) Open(ctx context.Context, path string) (reportsdto.Document, error) {
	return h.usecase.Open(ctx, path)
}

func (h CLIHandler) Email(ctx context.Context, to, subject, content string) error {
	if subject == "" {
		subject = h.usecase.DefaultSubject()
	}
	return h.usecase.Email(ctx, reportsdto.EmailInput{To: to, Subject: subject, Content: content})
}
