package app

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-shellwords"

	admindto "learnobs/internal/modules/admin/dto"
	directorydto "learnobs/internal/modules/directory/dto"
	goalsdto "learnobs/internal/modules/goals/dto"
	monthlydto "learnobs/internal/modules/monthly/dto"
	processingdto "learnobs/internal/modules/processing/dto"
	reportsdto "learnobs/internal/modules/reports/dto"
	"learnobs/internal/ui/nav"
	"learnobs/internal/ui/notify"
	"learnobs/internal/ui/render"
)

// hints must stay in sync with the switch in execute.
var screenHints = map[nav.Tab][]string{
	nav.TabSession: {
		"student <n|id>",
		"stage image <path>",
		"stage audio <path>",
		"unstage <image|audio>",
		"session:info <date> <start> <end>",
		"submit <image|audio>",
		"report:open <path>",
	},
	nav.TabGoals:    {"goal:add <student n|id> <target date> <description>"},
	nav.TabMessages: {"msg:send <text>"},
	nav.TabMonthly:  {"student <n|id>", "monthly:generate <year> <month>", "monthly:share", "monthly:download [dir]"},

	nav.TabReports:        {"report:open <path>"},
	nav.TabParentMessages: {"msg:send <text>"},
	nav.TabParentMonthly:  {"monthly:view <year> <month>", "monthly:feedback <rating 1-5> <text>", "monthly:download [dir]"},

	nav.TabObserverMappings: {"mapping:add <observer n|id> <child n|id>"},

	nav.TabAdminProcessing: {
		"admin:observer <n|id>",
		"student <n|id>",
		"stage image <path>",
		"stage audio <path>",
		"unstage <image|audio>",
		"session:info <date> <start> <end>",
		"submit <image|audio>",
	},

	nav.TabBulk: {"bulk:upload <children|parents|relationships|observer-mappings> <path>"},
}

var reportHints = []string{
	"report:export [dir]",
	"report:email <to> [subject]",
	"report:regenerate",
}

func hintsFor(s nav.Screen, t nav.Tab) []string {
	if s == nav.ScreenLogin {
		return nil
	}
	if s == nav.ScreenReport {
		return reportHints
	}
	return screenHints[t]
}

// execute runs one command-bar line against the current screen and tab.
func (m *Model) execute(input string) tea.Cmd {
	args, err := commandWords(input)
	if err != nil {
		return m.notify("Could not read command: check its quotes", notify.KindError)
	}
	if len(args) == 0 {
		return nil
	}
	if m.nav.Screen() == nav.ScreenLogin {
		return m.notify("Please sign in first", notify.KindError)
	}
	name, args := strings.ToLower(args[0]), args[1:]
	tab := m.nav.Tab()
	onReport := m.nav.Screen() == nav.ScreenReport
	processingTab := tab == nav.TabSession || tab == nav.TabAdminProcessing

	switch {
	case name == "tab":
		return m.gotoTab(strings.Join(args, " "))
	case name == "refresh":
		return m.reload()
	case name == "logout":
		return m.signOut()

	case name == "student" && !onReport && (processingTab || tab == nav.TabMonthly):
		if len(args) != 1 {
			return m.usage("student <n|id>")
		}
		return m.chooseStudent(args[0])
	case name == "admin:observer" && !onReport && tab == nav.TabAdminProcessing:
		if len(args) != 1 {
			return m.usage("admin:observer <n|id>")
		}
		return m.chooseObserver(args[0])
	case name == "stage" && !onReport && processingTab:
		if len(args) < 2 {
			return m.usage("stage <image|audio> <path>")
		}
		kind, ok := parseKind(args[0])
		if !ok {
			return m.usage("stage <image|audio> <path>")
		}
		if _, err := m.svc.Processing.StageFile(strings.Join(args[1:], " "), kind); err != nil {
			return m.fail(err, "")
		}
		m.sync()
		return nil
	case name == "unstage" && !onReport && processingTab:
		kind, ok := parseKind(strings.Join(args, ""))
		if !ok {
			return m.usage("unstage <image|audio>")
		}
		m.svc.Processing.Unstage(kind)
		m.sync()
		return nil
	case name == "session:info" && !onReport && processingTab:
		if len(args) != 3 {
			return m.usage("session:info <date> <start> <end>")
		}
		info := m.svc.Processing.Snapshot().Info
		info.Date, info.Start, info.End = args[0], args[1], args[2]
		m.svc.Processing.SetSessionInfo(info)
		m.sync()
		return nil
	case name == "submit" && !onReport && processingTab:
		kind, ok := parseKind(strings.Join(args, ""))
		if !ok {
			return m.usage("submit <image|audio>")
		}
		return m.submit(kind)

	case name == "goal:add" && !onReport && tab == nav.TabGoals:
		return m.addGoal(args)
	case name == "msg:send" && !onReport && (tab == nav.TabMessages || tab == nav.TabParentMessages):
		return m.sendMessage(strings.Join(args, " "))

	case name == "monthly:generate" && !onReport && tab == nav.TabMonthly:
		return m.monthlyReport(args, true)
	case name == "monthly:view" && !onReport && tab == nav.TabParentMonthly:
		return m.monthlyReport(args, false)
	case name == "monthly:share" && !onReport && tab == nav.TabMonthly:
		return m.shareMonthly()
	case name == "monthly:download" && !onReport && (tab == nav.TabMonthly || tab == nav.TabParentMonthly):
		return m.downloadMonthly(strings.Join(args, " "))
	case name == "monthly:feedback" && !onReport && tab == nav.TabParentMonthly:
		return m.monthlyFeedback(args)

	case name == "mapping:add" && !onReport && tab == nav.TabObserverMappings:
		return m.addMapping(args)
	case name == "bulk:upload" && !onReport && tab == nav.TabBulk:
		return m.bulkUpload(args)

	case name == "report:open" && !onReport && (tab == nav.TabSession || tab == nav.TabReports):
		if len(args) != 1 {
			return m.usage("report:open <path>")
		}
		return m.openReport(args[0])
	case name == "report:export" && onReport:
		return m.exportReport(strings.Join(args, " "))
	case name == "report:email" && onReport:
		if len(args) == 0 {
			return m.usage("report:email <to> [subject]")
		}
		return m.emailReport(args[0], strings.Join(args[1:], " "))
	case name == "report:regenerate" && onReport:
		return m.regenerate()
	}

	if known(name) {
		return m.notify("Command not available here: "+name, notify.KindError)
	}
	return m.notify("Unknown command: "+name, notify.KindError)
}

func known(name string) bool {
	all := append([]string(nil), reportHints...)
	for _, hints := range screenHints {
		all = append(all, hints...)
	}
	for _, h := range all {
		if h == name || strings.HasPrefix(h, name+" ") {
			return true
		}
	}
	return false
}

func (m *Model) usage(u string) tea.Cmd {
	return m.notify("Usage: "+u, notify.KindError)
}

func (m *Model) gotoTab(name string) tea.Cmd {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, t := range nav.Tabs(m.nav.Screen()) {
		if string(t) == want || strings.ToLower(nav.Label(t)) == want {
			return m.selectTab(t)
		}
	}
	return m.notify("Unknown tab: "+name, notify.KindError)
}

func (m *Model) chooseObserver(ref string) tea.Cmd {
	i, ok := pick(ref, len(m.data.observers), func(i int) string { return m.data.observers[i].ID })
	if !ok {
		return m.notify("Unknown observer: "+ref, notify.KindError)
	}
	observer := m.data.observers[i]
	m.data.observer = observer
	m.data.student = directorydto.Child{}
	m.data.children = nil
	m.svc.Processing.SetTarget(processingdto.Target{ObserverID: observer.ID, Admin: true})
	info := m.svc.Processing.Snapshot().Info
	info.ObserverName = observer.Name
	info.StudentID, info.StudentName = "", ""
	m.svc.Processing.SetSessionInfo(info)
	m.sync()

	// Only the observer's own children may be reported on.
	svc := m.svc
	return m.load("", func(ctx context.Context) (func(*Model), error) {
		children, err := svc.Directory.ObserverChildren(ctx, observer.ID)
		if err != nil {
			return nil, err
		}
		return func(m *Model) {
			if m.data.observer.ID == observer.ID {
				m.data.children = children
			}
		}, nil
	})
}

func (m *Model) addGoal(args []string) tea.Cmd {
	if len(args) < 3 {
		return m.usage("goal:add <student n|id> <target date> <description>")
	}
	i, ok := pick(args[0], len(m.data.children), func(i int) string { return m.data.children[i].ID })
	if !ok {
		return m.notify("Unknown student: "+args[0], notify.KindError)
	}
	in := goalsdto.CreateInput{
		ChildID:     m.data.children[i].ID,
		ObserverID:  m.session.UserID,
		TargetDate:  args[1],
		Description: strings.Join(args[2:], " "),
	}
	svc := m.svc
	return m.act(action{
		busy: "Saving goal...", ok: "Goal saved successfully!", fallback: "Failed to save goal", reload: true,
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Goals.Create(ctx, in) },
	})
}

func (m *Model) sendMessage(text string) tea.Cmd {
	svc, s := m.svc, m.session
	var run func(ctx context.Context) (func(*Model) tea.Cmd, error)
	if m.nav.Tab() == nav.TabParentMessages {
		run = func(ctx context.Context) (func(*Model) tea.Cmd, error) {
			return nil, svc.Messages.SendToObserver(ctx, s.UserID, s.ChildID, text)
		}
	} else {
		parentID := m.data.parentID
		run = func(ctx context.Context) (func(*Model) tea.Cmd, error) {
			return nil, svc.Messages.SendToParent(ctx, s.UserID, parentID, text)
		}
	}
	return m.act(action{busy: "Sending...", ok: "Message sent!", fallback: "Failed to send message", reload: true, run: run})
}

func parsePeriod(args []string) (monthlydto.Period, bool) {
	if len(args) != 2 {
		return monthlydto.Period{}, false
	}
	y, errY := strconv.Atoi(args[0])
	mo, errM := strconv.Atoi(args[1])
	if errY != nil || errM != nil {
		return monthlydto.Period{}, false
	}
	return monthlydto.Period{Year: y, Month: mo}, true
}

func (m *Model) monthlyReport(args []string, generate bool) tea.Cmd {
	p := m.svc.Monthly.DefaultPeriod()
	if len(args) > 0 {
		var ok bool
		if p, ok = parsePeriod(args); !ok {
			return m.usage("<year> <month>")
		}
	}
	svc, s := m.svc, m.session
	if generate {
		in := monthlydto.GenerateInput{ChildID: m.data.student.ID, ObserverID: s.UserID, Period: p}
		return m.act(action{
			busy: "Generating monthly report...", ok: "Monthly report generated successfully!", fallback: monthlyFallback(true),
			run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) {
				r, err := svc.Monthly.Generate(ctx, in)
				if err != nil {
					return nil, err
				}
				return func(m *Model) tea.Cmd { m.setMonthly(r); return nil }, nil
			},
		})
	}
	in := monthlydto.FetchInput{ChildID: s.ChildID, Period: p}
	return m.act(action{
		busy: "Loading monthly report...", fallback: monthlyFallback(false),
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) {
			r, err := svc.Monthly.Fetch(ctx, in)
			if err != nil {
				return nil, err
			}
			return func(m *Model) tea.Cmd { m.setMonthly(r); return nil }, nil
		},
	})
}

func (m *Model) shareMonthly() tea.Cmd {
	svc, r, observerID := m.svc, m.data.monthly, m.session.UserID
	return m.act(action{
		busy: "Sharing report...", ok: "Report shared with parent successfully!", fallback: "Failed to share report",
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Monthly.Share(ctx, r, observerID) },
	})
}

func (m *Model) monthlyFeedback(args []string) tea.Cmd {
	if len(args) < 1 {
		return m.usage("monthly:feedback <rating 1-5> <text>")
	}
	rating, err := strconv.Atoi(args[0])
	if err != nil {
		return m.usage("monthly:feedback <rating 1-5> <text>")
	}
	in := monthlydto.FeedbackInput{
		Report:   m.data.monthly,
		ParentID: m.session.UserID,
		Text:     strings.Join(args[1:], " "),
		Rating:   rating,
	}
	svc := m.svc
	return m.act(action{
		busy: "Submitting feedback...", ok: "Feedback submitted successfully!", fallback: "Failed to submit feedback",
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Monthly.Feedback(ctx, in) },
	})
}

// downloadMonthly writes the report text locally; there is no busy state
// because nothing goes over the network.
func (m *Model) downloadMonthly(dir string) tea.Cmd {
	in := monthlydto.ExportInput{Report: m.data.monthly, Dir: m.dir(dir)}
	if m.data.monthly != nil {
		in.Content = render.MonthlyText(*m.data.monthly, m.clk.Now())
	}
	path, err := m.svc.Monthly.Export(context.Background(), in)
	if err != nil {
		return m.fail(err, "")
	}
	return m.notify("Saved "+path, notify.KindSuccess)
}

func (m *Model) addMapping(args []string) tea.Cmd {
	if len(args) != 2 {
		return m.usage("mapping:add <observer n|id> <child n|id>")
	}
	var observerID, childID string
	if i, ok := pick(args[0], len(m.data.observers), func(i int) string { return m.data.observers[i].ID }); ok {
		observerID = m.data.observers[i].ID
	}
	if i, ok := pick(args[1], len(m.data.children), func(i int) string { return m.data.children[i].ID }); ok {
		childID = m.data.children[i].ID
	}
	svc := m.svc
	return m.act(action{
		busy: "Creating mapping...", ok: "Mapping created successfully", fallback: "Failed to create mapping", reload: true,
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Admin.AddMapping(ctx, observerID, childID) },
	})
}

var bulkFallbacks = map[admindto.BulkKind]string{
	admindto.BulkChildren:         "Failed to upload children",
	admindto.BulkParents:          "Failed to upload parents",
	admindto.BulkRelationships:    "Failed to upload relationships",
	admindto.BulkObserverMappings: "Failed to upload mappings",
}

func (m *Model) bulkUpload(args []string) tea.Cmd {
	const u = "bulk:upload <children|parents|relationships|observer-mappings> <path>"
	if len(args) < 1 {
		return m.usage(u)
	}
	kind := admindto.BulkKind(strings.ToLower(args[0]))
	fallback, ok := bulkFallbacks[kind]
	if !ok {
		return m.usage(u)
	}
	path := strings.Join(args[1:], " ")
	svc := m.svc
	return m.act(action{
		busy: "Uploading...", fallback: fallback,
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) {
			res, err := svc.Admin.BulkUpload(ctx, kind, path)
			if err != nil {
				return nil, err
			}
			return func(m *Model) tea.Cmd { return m.notify(res.Message, notify.KindSuccess) }, nil
		},
	})
}

func (m *Model) exportReport(dir string) tea.Cmd {
	path, err := m.svc.Reports.Export(context.Background(), reportsdto.ExportInput{
		Document: m.report.Document(),
		Dir:      m.dir(dir),
	})
	if err != nil {
		return m.fail(err, "")
	}
	return m.notify("Saved "+path, notify.KindSuccess)
}

// openReport shows a previously exported report, read-only.
func (m *Model) openReport(path string) tea.Cmd {
	doc, err := m.svc.Reports.Open(context.Background(), path)
	if err != nil {
		return m.fail(err, "")
	}
	if err := m.showReport(doc, false); err != nil {
		return m.fail(err, "")
	}
	m.sync()
	return nil
}

func (m *Model) emailReport(to, subject string) tea.Cmd {
	if strings.TrimSpace(subject) == "" {
		subject = m.svc.Reports.DefaultSubject()
	}
	in := reportsdto.EmailInput{To: to, Subject: subject, Content: m.report.Document().Text}
	svc := m.svc
	return m.act(action{
		busy: "Sending email...", ok: "Email sent successfully!", fallback: "Failed to send email",
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Reports.Email(ctx, in) },
	})
}

func (m *Model) dir(arg string) string {
	if strings.TrimSpace(arg) == "" {
		return m.exportDir
	}
	return arg
}

// ─── argument helpers ────────────────────────────────────────────────────────

func parseKind(s string) (processingdto.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(processingdto.KindImage), "photo":
		return processingdto.KindImage, true
	case string(processingdto.KindAudio), "recording":
		return processingdto.KindAudio, true
	}
	return "", false
}

// pick resolves a 1-based row number or an id against n rows.
func pick(ref string, n int, idAt func(int) string) (int, bool) {
	if i, err := strconv.Atoi(ref); err == nil && i >= 1 && i <= n {
		return i - 1, true
	}
	for i := 0; i < n; i++ {
		if idAt(i) == ref {
			return i, true
		}
	}
	return 0, false
}

// commandWords splits a command line shell-style: quotes group words and
// backslashes escape. Environment and backtick expansion stay off.
func commandWords(line string) ([]string, error) {
	return shellwords.NewParser().Parse(line)
}
