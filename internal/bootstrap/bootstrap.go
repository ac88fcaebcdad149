package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	adminoutadapter "learnobs/internal/modules/admin/adapter/out"
	adminusecase "learnobs/internal/modules/admin/usecase"
	authinadapter "learnobs/internal/modules/auth/adapter/in"
	authoutadapter "learnobs/internal/modules/auth/adapter/out"
	authusecase "learnobs/internal/modules/auth/usecase"
	directoryoutadapter "learnobs/internal/modules/directory/adapter/out"
	directoryusecase "learnobs/internal/modules/directory/usecase"
	goalsinadapter "learnobs/internal/modules/goals/adapter/in"
	goalsoutadapter "learnobs/internal/modules/goals/adapter/out"
	goalsusecase "learnobs/internal/modules/goals/usecase"
	messagesoutadapter "learnobs/internal/modules/messages/adapter/out"
	messagesusecase "learnobs/internal/modules/messages/usecase"
	monthlyinadapter "learnobs/internal/modules/monthly/adapter/in"
	monthlyoutadapter "learnobs/internal/modules/monthly/adapter/out"
	monthlyusecase "learnobs/internal/modules/monthly/usecase"
	processinginadapter "learnobs/internal/modules/processing/adapter/in"
	processingoutadapter "learnobs/internal/modules/processing/adapter/out"
	processingusecase "learnobs/internal/modules/processing/usecase"
	reportsinadapter "learnobs/internal/modules/reports/adapter/in"
	reportsoutadapter "learnobs/internal/modules/reports/adapter/out"
	reportsusecase "learnobs/internal/modules/reports/usecase"
	sessioninadapter "learnobs/internal/modules/session/adapter/in"
	sessionoutadapter "learnobs/internal/modules/session/adapter/out"
	sessionout "learnobs/internal/modules/session/port/out"
	sessionusecase "learnobs/internal/modules/session/usecase"
	"learnobs/internal/platform/clock"
	"learnobs/internal/platform/config"
	"learnobs/internal/platform/gateway"
	"learnobs/internal/platform/id"
	"learnobs/internal/platform/logger"
	uiapp "learnobs/internal/ui/app"
)

type App struct {
	AuthCLI       authinadapter.CLIHandler
	SessionCLI    sessioninadapter.CLIHandler
	ProcessingCLI processinginadapter.CLIHandler
	ReportsCLI    reportsinadapter.CLIHandler
	GoalsCLI      goalsinadapter.CLIHandler
	MonthlyCLI    monthlyinadapter.CLIHandler

	Log *logrus.Logger

	services uiapp.Services
	sessions *sessionusecase.Store
	clk      clock.Clock
	closers  []io.Closer
}

func New(cfg config.Config) (*App, error) {
	log, logCloser, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	app := &App{Log: log, clk: clock.SystemClock{}, closers: []io.Closer{logCloser}}

	store, err := sessionStore(cfg, app)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.sessions = sessionusecase.NewStore(store, log)

	api := gateway.New(cfg.APIBase, http.DefaultClient, log)
	reports := reportsoutadapter.NewHTTPReports(api)

	app.services = uiapp.Services{
		Auth:       authusecase.NewInteractor(authoutadapter.NewHTTPAuthenticator(api), app.sessions),
		Directory:  directoryusecase.NewInteractor(directoryoutadapter.NewHTTPDirectory(api)),
		Processing: processingusecase.NewInteractor(processingoutadapter.NewHTTPProcessor(api), log),
		Reports:    reportsusecase.NewInteractor(reports, reports, app.clk, log),
		Goals:      goalsusecase.NewInteractor(goalsoutadapter.NewHTTPGoals(api), log),
		Messages:   messagesusecase.NewInteractor(messagesoutadapter.NewHTTPMessages(api)),
		Monthly:    monthlyusecase.NewInteractor(monthlyoutadapter.NewHTTPMonthly(api), app.clk, log),
		Admin:      adminusecase.NewInteractor(adminoutadapter.NewHTTPAdmin(api), log),
	}

	app.AuthCLI = authinadapter.NewCLIHandler(app.services.Auth)
	app.SessionCLI = sessioninadapter.NewCLIHandler(app.sessions)
	app.ProcessingCLI = processinginadapter.NewCLIHandler(app.services.Processing)
	app.ReportsCLI = reportsinadapter.NewCLIHandler(app.services.Reports)
	app.GoalsCLI = goalsinadapter.NewCLIHandler(app.services.Goals, app.sessions)
	app.MonthlyCLI = monthlyinadapter.NewCLIHandler(app.services.Monthly)

	log.WithFields(logrus.Fields{
		"component": "bootstrap",
		"api":       cfg.APIBase,
		"sessions":  cfg.SessionBackend,
	}).Debug("application wired")
	return app, nil
}

func sessionStore(cfg config.Config, app *App) (sessionout.SessionStore, error) {
	if cfg.SessionBackend != config.BackendSQLite {
		return sessionoutadapter.NewFileSessionStore(cfg.SessionPath()), nil
	}
	store, err := sessionoutadapter.NewSQLiteSessionStore(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("new sqlite session store: %w", err)
	}
	app.closers = append(app.closers, store)
	return store, nil
}

// Close writes the active session one last time, then releases the
// database and log file.
func (a *App) Close() error {
	if a.sessions != nil {
		a.sessions.Flush(context.Background())
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App, exportDir string) error {
	model := uiapp.New(app.services, uiapp.Options{
		Clock:     app.clk,
		IDs:       id.UUID{},
		Log:       app.Log,
		ExportDir: exportDir,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
