package app

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"

	admindto "learnobs/internal/modules/admin/dto"
	adminin "learnobs/internal/modules/admin/port/in"
	authdto "learnobs/internal/modules/auth/dto"
	authin "learnobs/internal/modules/auth/port/in"
	directorydto "learnobs/internal/modules/directory/dto"
	directoryin "learnobs/internal/modules/directory/port/in"
	goalsdto "learnobs/internal/modules/goals/dto"
	goalsin "learnobs/internal/modules/goals/port/in"
	processingdomain "learnobs/internal/modules/processing/domain"
	processingusecase "learnobs/internal/modules/processing/usecase"
	reportsdto "learnobs/internal/modules/reports/dto"
	reportsin "learnobs/internal/modules/reports/port/in"
	sessiondto "learnobs/internal/modules/session/dto"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/ui/components"
	"learnobs/internal/ui/nav"
	"learnobs/internal/ui/notify"
	loginview "learnobs/internal/ui/views/login"
)

// ─── fakes ───────────────────────────────────────────────────────────────────

type fakeAuth struct {
	authin.Usecase
	session  sessiondto.Session
	err      error
	logouts  int
	restored bool
}

func (f *fakeAuth) Login(context.Context, authdto.LoginInput) (sessiondto.Session, error) {
	return f.session, f.err
}

func (f *fakeAuth) Logout(context.Context) { f.logouts++ }

func (f *fakeAuth) Restore(context.Context) (sessiondto.Session, bool) {
	return f.session, f.restored
}

type fakeDirectory struct {
	directoryin.Usecase
	children   []directorydto.Child
	observers  []directorydto.Observer
	byObserver map[string][]directorydto.Child
}

func (f *fakeDirectory) ObserverChildren(_ context.Context, observerID string) ([]directorydto.Child, error) {
	if kids, ok := f.byObserver[observerID]; ok {
		return kids, nil
	}
	return f.children, nil
}

func (f *fakeDirectory) Observers(context.Context) ([]directorydto.Observer, error) {
	return f.observers, nil
}

func (f *fakeDirectory) Child(_ context.Context, id string) (directorydto.Child, error) {
	for _, c := range f.children {
		if c.ID == id {
			return c, nil
		}
	}
	return directorydto.Child{}, apperrors.ErrNotFound
}

func (f *fakeDirectory) Parents(context.Context) ([]directorydto.Parent, error) { return nil, nil }

type fakeGoals struct {
	goalsin.Usecase
	goals []goalsdto.Goal
}

func (f *fakeGoals) ListByObserver(context.Context, string) ([]goalsdto.Goal, error) {
	return f.goals, nil
}

func (f *fakeGoals) Create(_ context.Context, in goalsdto.CreateInput) error {
	f.goals = append(f.goals, goalsdto.Goal{ID: "g" + strconv.Itoa(len(f.goals)+1), ChildID: in.ChildID, Description: in.Description, TargetDate: in.TargetDate})
	return nil
}

type fakeAdmin struct{ adminin.Usecase }

func (fakeAdmin) Stats(context.Context) (admindto.StatsView, error) { return admindto.StatsView{}, nil }
func (fakeAdmin) Users(context.Context) ([]admindto.User, error) { return nil, nil }

type fakeReports struct {
	reportsin.Usecase
	previews []reportsdto.Preview
	files    map[string]reportsdto.Document
}

func (f *fakeReports) List(context.Context, string) ([]reportsdto.Preview, error) {
	return f.previews, nil
}

func (f *fakeReports) Open(_ context.Context, path string) (reportsdto.Document, error) {
	doc, ok := f.files[path]
	if !ok {
		return reportsdto.Document{}, apperrors.Validation("Report file not found: " + path)
	}
	return doc, nil
}

type fakeProcessor struct {
	res processingdomain.Result
	err error
}

func (f *fakeProcessor) Process(context.Context, processingdomain.Job) (processingdomain.Result, error) {
	return f.res, f.err
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

type counter struct{ n int }

func (c *counter) New() string { c.n++; return strconv.Itoa(c.n) }

// ─── harness ─────────────────────────────────────────────────────────────────

type harness struct {
	auth  *fakeAuth
	dir   *fakeDirectory
	goals *fakeGoals
	proc  *fakeProcessor
	clk   *stepClock
}

func newModel(t *testing.T) (Model, *harness) {
	t.Helper()
	log, _ := test.NewNullLogger()
	h := &harness{
		auth:  &fakeAuth{},
		dir:   &fakeDirectory{children: []directorydto.Child{{ID: "c1", Name: "Ava"}}},
		goals: &fakeGoals{},
		proc:  &fakeProcessor{},
		clk:   &stepClock{now: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)},
	}
	m := New(Services{
		Auth:       h.auth,
		Directory:  h.dir,
		Goals:      h.goals,
		Admin:      fakeAdmin{},
		Reports:    &fakeReports{},
		Processing: processingusecase.NewInteractor(h.proc, log),
	}, Options{Clock: h.clk, IDs: &counter{}, Log: log, ExportDir: t.TempDir()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), h
}

// collect runs cmd and any batched commands, skipping ones that block
// (timers).
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// settle feeds msg and everything it produces back into the model.
func settle(m Model, msg tea.Msg) Model {
	queue := []tea.Msg{msg}
	for i := 0; len(queue) > 0 && i < 50; i++ {
		next := queue[0]
		queue = queue[1:]
		if _, ok := next.(spinner.TickMsg); ok {
			continue
		}
		updated, cmd := m.Update(next)
		m = updated.(Model)
		queue = append(queue, collect(cmd)...)
	}
	return m
}

func signedIn(t *testing.T, role sessiondto.Role) (Model, *harness) {
	t.Helper()
	m, h := newModel(t)
	h.auth.session = sessiondto.Session{UserID: "o1", Name: "Olive", Role: role, ChildID: "c1"}
	m = settle(m, loginview.SubmitLoginMsg{Input: authdto.LoginInput{Email: "o@x.org", Password: "pw"}})
	return m, h
}

// ─── tests ───────────────────────────────────────────────────────────────────

func TestLoginFailureShowsServiceMessage(t *testing.T) {
	m, h := newModel(t)
	h.auth.err = apperrors.Application("Invalid credentials")

	m = settle(m, loginview.SubmitLoginMsg{Input: authdto.LoginInput{Email: "kim@x.org", Password: "wrong"}})

	b, ok := m.notes.Current()
	if !ok || b.Text != "Invalid credentials" || b.Kind != notify.KindError {
		t.Fatalf("banner = %#v, %v", b, ok)
	}
	if m.nav.Screen() != nav.ScreenLogin {
		t.Fatalf("screen = %s, want login", m.nav.Screen())
	}
	if m.session.UserID != "" {
		t.Fatalf("no session expected, got %#v", m.session)
	}
	if _, busy := m.notes.Busy(); busy {
		t.Fatalf("busy indicator left on")
	}
}

func TestLoginNetworkFailureShowsConnectionMessage(t *testing.T) {
	m, h := newModel(t)
	h.auth.err = apperrors.Network(os.ErrDeadlineExceeded)

	m = settle(m, loginview.SubmitLoginMsg{})

	if b, _ := m.notes.Current(); b.Text != apperrors.ConnectionMessage {
		t.Fatalf("banner = %q", b.Text)
	}
}

func TestLoginLandsOnRoleHome(t *testing.T) {
	m, _ := signedIn(t, sessiondto.RoleObserver)

	if m.nav.Screen() != nav.ScreenObserver || m.nav.Tab() != nav.TabSession {
		t.Fatalf("at %s/%s, want observer/session", m.nav.Screen(), m.nav.Tab())
	}
	if b, _ := m.notes.Current(); b.Text != "Welcome back!" {
		t.Fatalf("banner = %q", b.Text)
	}
	if len(m.data.children) != 1 {
		t.Fatalf("children not loaded: %#v", m.data.children)
	}
}

func TestRestoredSessionSkipsLogin(t *testing.T) {
	m, h := newModel(t)
	h.auth.session = sessiondto.Session{UserID: "p1", Name: "Sam", Role: sessiondto.RoleParent, ChildID: "c1"}
	h.auth.restored = true

	m = settle(m, m.Init()())
	if m.nav.Screen() != nav.ScreenParent {
		t.Fatalf("screen = %s, want parent", m.nav.Screen())
	}
	if m.data.child.Name != "Ava" {
		t.Fatalf("child header not loaded: %#v", m.data.child)
	}
}

func TestStaleTabLoadIsDiscarded(t *testing.T) {
	m, h := signedIn(t, sessiondto.RoleObserver)
	h.goals.goals = []goalsdto.Goal{{ID: "g1", Description: "Read daily"}}

	goalsLoad := m.selectTab(nav.TabGoals)
	if _, err := m.nav.SelectTab(nav.TabMessages); err != nil {
		t.Fatal(err)
	}
	for _, msg := range collect(goalsLoad) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if len(m.data.goals) != 0 {
		t.Fatalf("late goals response was applied: %#v", m.data.goals)
	}
}

func TestSubmitOpensReport(t *testing.T) {
	m, h := signedIn(t, sessiondto.RoleObserver)
	h.proc.res = processingdomain.Result{Report: "Ava sorted blocks by color."}

	path := filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m.selectRow()
	for _, cmd := range []string{`stage image "` + path + `"`, "session:info 2024-03-14 09:00 10:00", "submit image"} {
		m = settle(m, components.CommandMsg{Line: cmd})
	}

	if m.nav.Screen() != nav.ScreenReport {
		b, _ := m.notes.Current()
		t.Fatalf("screen = %s, banner %q", m.nav.Screen(), b.Text)
	}
	if got := m.report.Document().Text; got != "Ava sorted blocks by color." {
		t.Fatalf("report text = %q", got)
	}
	if m.report.Editable() {
		t.Fatalf("image reports must not be editable")
	}
	if b, _ := m.notes.Current(); b.Text != "Photo processed successfully!" {
		t.Fatalf("banner = %q", b.Text)
	}
}

func TestSubmitWithoutFileIsRejectedLocally(t *testing.T) {
	m, _ := signedIn(t, sessiondto.RoleObserver)
	m = settle(m, components.CommandMsg{Line: "submit audio"})
	if b, _ := m.notes.Current(); b.Kind != notify.KindError || b.Text != "Please select an audio file first" {
		t.Fatalf("banner = %#v", b)
	}
}

func TestBusyBlocksKeys(t *testing.T) {
	m, _ := signedIn(t, sessiondto.RoleObserver)
	if err := m.notes.ShowBusy("Processing..."); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if next.(Model).nav.Tab() != nav.TabSession {
		t.Fatalf("tab changed while busy")
	}
}

func TestBannerTimerOnlyDismissesItsBanner(t *testing.T) {
	m, _ := newModel(t)
	first := m.notes.Notify("first", notify.KindSuccess)
	m.notes.Notify("second", notify.KindSuccess)

	next, _ := m.Update(dismissMsg{id: first})
	m = next.(Model)
	if b, ok := m.notes.Current(); !ok || b.Text != "second" {
		t.Fatalf("newer banner dismissed by old timer")
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m, h := signedIn(t, sessiondto.RoleObserver)
	m = settle(m, components.CommandMsg{Line: "logout"})
	if m.nav.Screen() != nav.ScreenLogin || h.auth.logouts != 1 {
		t.Fatalf("screen = %s, logouts = %d", m.nav.Screen(), h.auth.logouts)
	}
	if len(m.data.children) != 0 {
		t.Fatalf("data kept after logout")
	}
}

func TestUnknownCommand(t *testing.T) {
	m, _ := signedIn(t, sessiondto.RoleObserver)
	m = settle(m, components.CommandMsg{Line: "fly away"})
	if b, _ := m.notes.Current(); b.Text != "Unknown command: fly" {
		t.Fatalf("banner = %q", b.Text)
	}
	m = settle(m, components.CommandMsg{Line: "report:export"})
	if b, _ := m.notes.Current(); b.Text != "Command not available here: report:export" {
		t.Fatalf("banner = %q", b.Text)
	}
}

func TestCommandWords(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "goal:add 1 2024-06-01 read daily", want: []string{"goal:add", "1", "2024-06-01", "read", "daily"}},
		{in: `stage image "/tmp/my photo.png"`, want: []string{"stage", "image", "/tmp/my photo.png"}},
		{in: `msg:send 'it''s'`, want: []string{"msg:send", "its"}},
		{in: `stage audio /tmp/my\ note.m4a`, want: []string{"stage", "audio", "/tmp/my note.m4a"}},
	}
	for _, tc := range cases {
		got, err := commandWords(tc.in)
		if err != nil {
			t.Fatalf("commandWords(%q): %v", tc.in, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("commandWords(%q) = %q, want %q", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("commandWords(%q) = %q, want %q", tc.in, got, tc.want)
			}
		}
	}
}

func TestUnbalancedQuoteIsReported(t *testing.T) {
	m, _ := signedIn(t, sessiondto.RoleObserver)
	m = settle(m, components.CommandMsg{Line: `msg:send "hello`})
	if b, _ := m.notes.Current(); b.Text != "Could not read command: check its quotes" {
		t.Fatalf("banner = %q", b.Text)
	}
}

func TestReloadAfterActionWinsOverSlowerEarlierLoad(t *testing.T) {
	m, h := signedIn(t, sessiondto.RoleObserver)
	h.goals.goals = []goalsdto.Goal{{ID: "g1", ChildID: "c1", Description: "Count to ten"}}

	next, cmd := m.Update(components.CommandMsg{Line: "tab goals"})
	m = next.(Model)
	late := collect(cmd)
	if len(late) == 0 {
		t.Fatalf("tab switch produced no load")
	}

	m = settle(m, components.CommandMsg{Line: "goal:add 1 2024-06-01 Read daily"})
	if len(m.data.goals) != 2 {
		t.Fatalf("goals after reload = %d, want 2", len(m.data.goals))
	}

	for _, msg := range late {
		m = settle(m, msg)
	}
	if len(m.data.goals) != 2 {
		t.Fatalf("earlier load replaced the reload: %d goals", len(m.data.goals))
	}
}

func TestRefreshDropsLoadsStartedBeforeIt(t *testing.T) {
	m, h := signedIn(t, sessiondto.RoleObserver)
	m = settle(m, components.CommandMsg{Line: "tab goals"})

	h.goals.goals = []goalsdto.Goal{{ID: "g1", ChildID: "c1"}}
	next, cmd := m.Update(components.CommandMsg{Line: "refresh"})
	m = next.(Model)
	late := collect(cmd)

	h.goals.goals = append(h.goals.goals, goalsdto.Goal{ID: "g2", ChildID: "c1"})
	m = settle(m, components.CommandMsg{Line: "refresh"})
	for _, msg := range late {
		m = settle(m, msg)
	}
	if len(m.data.goals) != 2 {
		t.Fatalf("goals = %d, want the latest refresh", len(m.data.goals))
	}
}

func TestAdminStudentsFollowSelectedObserver(t *testing.T) {
	m, h := newModel(t)
	h.dir.observers = []directorydto.Observer{{ID: "ob1", Name: "Olive"}, {ID: "ob2", Name: "Omar"}}
	h.dir.byObserver = map[string][]directorydto.Child{
		"ob1": {{ID: "c1", Name: "Ava"}},
		"ob2": {{ID: "c2", Name: "Ben"}, {ID: "c3", Name: "Cy"}},
	}
	h.auth.session = sessiondto.Session{UserID: "a1", Name: "Ada", Role: sessiondto.RoleAdmin}
	m = settle(m, loginview.SubmitLoginMsg{Input: authdto.LoginInput{Email: "a@x.org", Password: "pw"}})
	m = settle(m, components.CommandMsg{Line: "tab admin-processing"})

	if len(m.data.children) != 0 {
		t.Fatalf("students listed before an observer is chosen: %#v", m.data.children)
	}

	m = settle(m, components.CommandMsg{Line: "admin:observer 1"})
	m = settle(m, components.CommandMsg{Line: "student 1"})
	if m.data.student.ID != "c1" || m.svc.Processing.Snapshot().Info.StudentID != "c1" {
		t.Fatalf("student = %#v", m.data.student)
	}

	m = settle(m, components.CommandMsg{Line: "admin:observer ob2"})
	if m.data.student.ID != "" || m.svc.Processing.Snapshot().Info.StudentID != "" {
		t.Fatalf("student kept across observers: %#v", m.data.student)
	}
	if len(m.data.children) != 2 || m.data.children[0].ID != "c2" {
		t.Fatalf("children = %#v, want ob2's", m.data.children)
	}

	m = settle(m, components.CommandMsg{Line: "student c1"})
	if b, _ := m.notes.Current(); b.Text != "Unknown student: c1" {
		t.Fatalf("banner = %q", b.Text)
	}
}

func TestOpenExportedReportIsReadOnly(t *testing.T) {
	m, _ := signedIn(t, sessiondto.RoleObserver)
	m.svc.Reports = &fakeReports{files: map[string]reportsdto.Document{
		"/exports/ava.md": {StudentName: "Ava", Text: "# Report\n\nAva sorted blocks."},
	}}

	m = settle(m, components.CommandMsg{Line: "report:open /missing.md"})
	if b, _ := m.notes.Current(); b.Text != "Report file not found: /missing.md" || m.nav.Screen() != nav.ScreenObserver {
		t.Fatalf("banner = %q at %s", b.Text, m.nav.Screen())
	}

	m = settle(m, components.CommandMsg{Line: "report:open /exports/ava.md"})
	if m.nav.Screen() != nav.ScreenReport {
		t.Fatalf("screen = %s, want report", m.nav.Screen())
	}
	if m.report.Editable() || m.report.Document().StudentName != "Ava" {
		t.Fatalf("report = %+v editable=%v", m.report.Document(), m.report.Editable())
	}
}

func TestLoadResultCommandsReachTheRuntime(t *testing.T) {
	m, _ := signedIn(t, sessiondto.RoleObserver)

	next, cmd := m.Update(loadedMsg{ticket: m.nav.Ticket(), apply: func(*Model) tea.Cmd {
		return func() tea.Msg { return dismissMsg{id: 42} }
	}})
	msgs := collect(cmd)
	if len(msgs) != 1 || msgs[0] != (dismissMsg{id: 42}) {
		t.Fatalf("apply command lost: %#v", msgs)
	}

	m = next.(Model)
	_, cmd = m.Update(loadedMsg{ticket: m.nav.Ticket(), apply: func(m *Model) tea.Cmd {
		return m.fail(apperrors.Validation("Report text is missing"), "")
	}})
	if cmd == nil {
		t.Fatalf("failure banner has no dismiss timer")
	}
}
