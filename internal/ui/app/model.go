// Package app is the root Bubble Tea model. It owns navigation and the
// notification channel, dispatches key presses and command-bar lines to the
// module usecases, and applies their results on the UI goroutine.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	admindto "learnobs/internal/modules/admin/dto"
	adminin "learnobs/internal/modules/admin/port/in"
	authin "learnobs/internal/modules/auth/port/in"
	directorydto "learnobs/internal/modules/directory/dto"
	directoryin "learnobs/internal/modules/directory/port/in"
	goalsdto "learnobs/internal/modules/goals/dto"
	goalsin "learnobs/internal/modules/goals/port/in"
	messagesdto "learnobs/internal/modules/messages/dto"
	messagesin "learnobs/internal/modules/messages/port/in"
	monthlydto "learnobs/internal/modules/monthly/dto"
	monthlyin "learnobs/internal/modules/monthly/port/in"
	processingdto "learnobs/internal/modules/processing/dto"
	processingin "learnobs/internal/modules/processing/port/in"
	reportsdto "learnobs/internal/modules/reports/dto"
	reportsin "learnobs/internal/modules/reports/port/in"
	sessiondto "learnobs/internal/modules/session/dto"
	"learnobs/internal/platform/clock"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/id"
	"learnobs/internal/ui/components"
	"learnobs/internal/ui/nav"
	"learnobs/internal/ui/notify"
	"learnobs/internal/ui/theme"
	dashboardview "learnobs/internal/ui/views/dashboard"
	loginview "learnobs/internal/ui/views/login"
	reportview "learnobs/internal/ui/views/report"
)

// Services are the usecases the client drives.
type Services struct {
	Auth       authin.Usecase
	Directory  directoryin.Usecase
	Processing processingin.Usecase
	Reports    reportsin.Usecase
	Goals      goalsin.Usecase
	Messages   messagesin.Usecase
	Monthly    monthlyin.Usecase
	Admin      adminin.Usecase
}

type Options struct {
	Clock clock.Clock
	IDs   id.Generator
	Log   logrus.FieldLogger
	// ExportDir is where downloads go when a command names no directory.
	ExportDir string
}

// data is everything fetched for the signed-in user. It is dropped on
// sign-out.
type data struct {
	children  []directorydto.Child
	parents   []directorydto.Parent
	observers []directorydto.Observer
	child     directorydto.Child
	goals     []goalsdto.Goal
	thread    messagesdto.Thread
	previews  []reportsdto.Preview
	monthly   *monthlydto.Report
	stats     admindto.StatsView
	users     []admindto.User
	mappings  []admindto.Mapping
	logs      []admindto.ActivityLog

	student  directorydto.Child
	parentID string
	observer directorydto.Observer
}

type Model struct {
	svc       Services
	clk       clock.Clock
	log       logrus.FieldLogger
	exportDir string

	nav   *nav.Controller
	notes *notify.Channel

	session sessiondto.Session
	data    data

	keys     keyMap
	help     help.Model
	showHelp bool
	cmdbar   components.CommandBar
	spinner  spinner.Model
	login    loginview.Model
	board    dashboardview.Model
	report   reportview.Model

	width  int
	height int
}

func New(svc Services, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = id.UUID{}
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Base)

	return Model{
		svc:       svc,
		clk:       opts.Clock,
		log:       opts.Log.WithField("component", "tui"),
		exportDir: opts.ExportDir,
		nav:       nav.New(opts.IDs),
		notes:     notify.New(opts.Clock),
		keys:      defaultKeys(),
		help:      help.New(),
		cmdbar:    components.NewCommandBar(),
		spinner:   sp,
		login:     loginview.New(),
		board:     dashboardview.New(),
		report:    reportview.New(),
	}
}

func (m Model) Init() tea.Cmd {
	auth := m.svc.Auth
	return func() tea.Msg {
		s, ok := auth.Restore(context.Background())
		return restoredMsg{session: s, ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case components.CommandMsg:
		return m, m.execute(msg.Line)

	case components.ClosedMsg:
		return m, nil

	case restoredMsg:
		if !msg.ok {
			return m, nil
		}
		return m, m.signIn(msg.session, "")

	case signedInMsg:
		m.notes.ClearBusy()
		if msg.err != nil {
			return m, m.fail(msg.err, "")
		}
		return m, m.signIn(msg.session, "Welcome back!")

	case registeredMsg:
		m.notes.ClearBusy()
		if msg.err != nil {
			return m, m.fail(msg.err, "")
		}
		m.login.Reset()
		m.login.PrefillEmail(msg.email)
		var cmds []tea.Cmd
		if _, err := m.nav.SelectTab(nav.TabLogin); err == nil {
			m.login.SetRegistering(false)
		}
		cmds = append(cmds, m.notify("Account created! Please sign in.", notify.KindSuccess))
		return m, tea.Batch(cmds...)

	case loginview.SubmitLoginMsg:
		return m, m.startLogin(msg)

	case loginview.SubmitRegisterMsg:
		return m, m.startRegister(msg)

	case loadedMsg:
		if !m.nav.Accept(msg.ticket) {
			return m, nil
		}
		if msg.err != nil {
			return m, m.fail(msg.err, msg.fallback)
		}
		cmd := msg.apply(&m)
		m.sync()
		return m, cmd

	case actionMsg:
		return m, m.finishAction(msg)

	case processedMsg:
		return m, m.finishProcessing(msg)

	case dismissMsg:
		m.notes.Dismiss(msg.id)
		return m, nil

	case spinner.TickMsg:
		if _, busy := m.notes.Busy(); !busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if _, busy := m.notes.Busy(); busy {
		return m, nil
	}
	if m.cmdbar.Visible() {
		var cmd tea.Cmd
		m.cmdbar, cmd = m.cmdbar.Update(msg)
		return m, cmd
	}

	switch m.nav.Screen() {
	case nav.ScreenLogin:
		return m.handleLoginKey(msg)
	case nav.ScreenReport:
		return m.handleReportKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Command):
		return m, m.openCommandBar()
	case key.Matches(msg, m.keys.Save):
		return m, m.notify(saveHint, notify.KindSuccess)
	case key.Matches(msg, m.keys.Tab):
		return m, m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.cycleTab(-1)
	case key.Matches(msg, m.keys.Up):
		m.board.Move(-1)
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.board.Move(1)
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		return m, m.selectRow()
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteRow()
	case key.Matches(msg, m.keys.Complete):
		return m, m.completeRow()
	}
	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		return m, m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.cycleTab(-1)
	case msg.String() == "esc":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.report.Editing() {
		if key.Matches(msg, m.keys.Back) {
			m.report.StopEditing()
			return m, nil
		}
		var cmd tea.Cmd
		m.report, cmd = m.report.Update(msg)
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.nav.GoBack()
		m.cmdbar.SetHints(hintsFor(m.nav.Screen(), m.nav.Tab()))
		return m, m.enterTab()
	case key.Matches(msg, m.keys.Edit):
		return m, m.report.Edit()
	case key.Matches(msg, m.keys.Command):
		return m, m.openCommandBar()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m, m.notify(saveHint, notify.KindSuccess)
	}
	var cmd tea.Cmd
	m.report, cmd = m.report.Update(msg)
	return m, cmd
}

const saveHint = "Use report:export or monthly:download to save your work"

// ─── feedback ────────────────────────────────────────────────────────────────

// notify shows a banner and schedules its dismissal. The timer carries the
// banner id so it cannot dismiss a newer banner.
func (m *Model) notify(text string, kind notify.Kind) tea.Cmd {
	id := m.notes.Notify(text, kind)
	return tea.Tick(notify.DismissAfter, func(time.Time) tea.Msg { return dismissMsg{id: id} })
}

// fail reports err. Connection failures use fallback when one is given.
func (m *Model) fail(err error, fallback string) tea.Cmd {
	m.log.WithError(err).WithFields(logrus.Fields{
		"screen": m.nav.Screen(),
		"tab":    m.nav.Tab(),
		"kind":   apperrors.KindOf(err).String(),
	}).Debug("operation failed")
	if fallback != "" && apperrors.KindOf(err) == apperrors.KindNetwork {
		return m.notify(fallback, notify.KindError)
	}
	return m.notify(apperrors.UserMessage(err), notify.KindError)
}

// busy marks the client busy and starts the spinner. It reports false when
// another operation is already running.
func (m *Model) busy(label string) (tea.Cmd, bool) {
	if err := m.notes.ShowBusy(label); err != nil {
		return nil, false
	}
	return m.spinner.Tick, true
}

// ─── session ─────────────────────────────────────────────────────────────────

func (m *Model) startLogin(msg loginview.SubmitLoginMsg) tea.Cmd {
	tick, ok := m.busy("Signing in...")
	if !ok {
		return nil
	}
	auth := m.svc.Auth
	return tea.Batch(tick, func() tea.Msg {
		s, err := auth.Login(context.Background(), msg.Input)
		return signedInMsg{session: s, err: err}
	})
}

func (m *Model) startRegister(msg loginview.SubmitRegisterMsg) tea.Cmd {
	tick, ok := m.busy("Creating account...")
	if !ok {
		return nil
	}
	auth := m.svc.Auth
	return tea.Batch(tick, func() tea.Msg {
		err := auth.Register(context.Background(), msg.Input)
		return registeredMsg{email: msg.Input.Email, err: err}
	})
}

func (m *Model) signIn(s sessiondto.Session, greeting string) tea.Cmd {
	if _, err := m.nav.SignIn(s.Role); err != nil {
		return m.fail(err, "")
	}
	m.session = s
	m.data = data{}
	m.svc.Processing.Reset()
	if s.Role == sessiondto.RoleAdmin {
		m.svc.Processing.SetTarget(processingdto.Target{Admin: true})
	} else {
		m.svc.Processing.SetTarget(processingdto.Target{ObserverID: s.UserID})
	}
	m.board.Clear()
	m.cmdbar.SetHints(hintsFor(m.nav.Screen(), m.nav.Tab()))
	cmds := []tea.Cmd{m.enterTab()}
	if greeting != "" {
		cmds = append(cmds, m.notify(greeting, notify.KindSuccess))
	}
	return tea.Batch(cmds...)
}

func (m *Model) signOut() tea.Cmd {
	m.svc.Auth.Logout(context.Background())
	m.svc.Processing.Reset()
	m.nav.SignOut()
	m.session = sessiondto.Session{}
	m.data = data{}
	m.board.Clear()
	m.login.Reset()
	m.login.SetRegistering(false)
	m.cmdbar.SetHints(nil)
	return m.notify("Signed out successfully", notify.KindSuccess)
}

// ─── navigation ──────────────────────────────────────────────────────────────

func (m *Model) cycleTab(delta int) tea.Cmd {
	if _, ok := m.nav.CycleTab(delta); !ok {
		return nil
	}
	return m.tabChanged()
}

func (m *Model) selectTab(t nav.Tab) tea.Cmd {
	if _, err := m.nav.SelectTab(t); err != nil {
		return m.fail(err, "")
	}
	return m.tabChanged()
}

func (m *Model) tabChanged() tea.Cmd {
	if m.nav.Screen() == nav.ScreenLogin {
		m.login.SetRegistering(m.nav.Tab() == nav.TabRegister)
	}
	m.board.Clear()
	m.cmdbar.SetHints(hintsFor(m.nav.Screen(), m.nav.Tab()))
	return m.enterTab()
}

func (m *Model) openCommandBar() tea.Cmd {
	m.cmdbar.SetWidth(m.width)
	return m.cmdbar.Open()
}

// showReport opens doc on the report screen. editable enables transcript
// regeneration.
func (m *Model) showReport(doc reportsdto.Document, editable bool) error {
	if m.nav.Screen() != nav.ScreenReport {
		if _, err := m.nav.Goto(nav.ScreenReport); err != nil {
			return err
		}
	}
	m.report.SetDocument(doc, editable)
	m.resize()
	m.cmdbar.SetHints(hintsFor(nav.ScreenReport, nav.TabNone))
	return nil
}

func (m *Model) resize() {
	bodyH := m.height - chromeHeight
	if bodyH < 3 {
		bodyH = 3
	}
	m.board.SetSize(m.width-2, bodyH)
	m.report.SetSize(m.width-2, bodyH)
	m.login.SetWidth(m.width)
	m.cmdbar.SetWidth(m.width)
	m.help.Width = m.width
}

func isStale(err error) bool { return errors.Is(err, apperrors.ErrStaleResult) }
