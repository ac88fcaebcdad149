package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	directorydto "learnobs/internal/modules/directory/dto"
	goalsdto "learnobs/internal/modules/goals/dto"
	messagesdto "learnobs/internal/modules/messages/dto"
	monthlydto "learnobs/internal/modules/monthly/dto"
	processingdto "learnobs/internal/modules/processing/dto"
	reportsdto "learnobs/internal/modules/reports/dto"
	"learnobs/internal/ui/nav"
	"learnobs/internal/ui/notify"
)

// load fetches under the current ticket. A result that arrives after the
// user moved on is dropped.
func (m *Model) load(fallback string, fetch func(ctx context.Context) (func(*Model), error)) tea.Cmd {
	return m.loadThen(fallback, func(ctx context.Context) (func(*Model) tea.Cmd, error) {
		apply, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return func(m *Model) tea.Cmd { apply(m); return nil }, nil
	})
}

// loadThen is load for results whose application produces a command.
func (m *Model) loadThen(fallback string, fetch func(ctx context.Context) (func(*Model) tea.Cmd, error)) tea.Cmd {
	ticket := m.nav.Ticket()
	return func() tea.Msg {
		apply, err := fetch(context.Background())
		return loadedMsg{ticket: ticket, apply: apply, err: err, fallback: fallback}
	}
}

// reload refetches the current tab under a fresh ticket.
func (m *Model) reload() tea.Cmd {
	m.nav.Refresh()
	return m.enterTab()
}

// action runs a mutation with the busy indicator. reload refetches the
// current tab on success.
type action struct {
	busy     string
	ok       string
	fallback string
	reload   bool
	run      func(ctx context.Context) (func(*Model) tea.Cmd, error)
}

func (m *Model) act(a action) tea.Cmd {
	label := a.busy
	if label == "" {
		label = "Processing..."
	}
	tick, ok := m.busy(label)
	if !ok {
		return nil
	}
	ticket := m.nav.Ticket()
	return tea.Batch(tick, func() tea.Msg {
		after, err := a.run(context.Background())
		return actionMsg{ticket: ticket, ok: a.ok, err: err, fallback: a.fallback, reload: a.reload, after: after}
	})
}

func (m *Model) finishAction(msg actionMsg) tea.Cmd {
	m.notes.ClearBusy()
	if !m.nav.Current(msg.ticket) {
		return nil
	}
	if msg.err != nil {
		return m.fail(msg.err, msg.fallback)
	}
	var cmds []tea.Cmd
	if msg.after != nil && m.nav.Within(msg.ticket) {
		cmds = append(cmds, msg.after(m))
	}
	if msg.ok != "" {
		cmds = append(cmds, m.notify(msg.ok, notify.KindSuccess))
	}
	if msg.reload && m.nav.Within(msg.ticket) {
		cmds = append(cmds, m.reload())
	}
	m.sync()
	return tea.Batch(cmds...)
}

// enterTab fetches what the current tab shows.
func (m *Model) enterTab() tea.Cmd {
	svc := m.svc
	s := m.session
	defer m.sync()

	switch m.nav.Tab() {
	case nav.TabRegister:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			children, err := svc.Directory.Children(ctx)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.login.SetChildren(children) }, nil
		})

	case nav.TabSession, nav.TabMonthly:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			children, err := svc.Directory.ObserverChildren(ctx, s.UserID)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.data.children = children }, nil
		})

	case nav.TabGoals:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			children, err := svc.Directory.ObserverChildren(ctx, s.UserID)
			if err != nil {
				return nil, err
			}
			goals, err := svc.Goals.ListByObserver(ctx, s.UserID)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.data.children, m.data.goals = children, goals }, nil
		})

	case nav.TabMessages:
		parentID := m.data.parentID
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			parents, err := svc.Directory.Parents(ctx)
			if err != nil {
				return nil, err
			}
			apply := func(m *Model) { m.data.parents = parents }
			if parentID == "" {
				return apply, nil
			}
			thread, err := svc.Messages.ObserverThread(ctx, s.UserID, parentID)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { apply(m); m.data.thread = thread }, nil
		})

	case nav.TabReports:
		return m.load("Error loading parent data", func(ctx context.Context) (func(*Model), error) {
			child, err := svc.Directory.Child(ctx, s.ChildID)
			if err != nil {
				return nil, err
			}
			previews, err := svc.Reports.List(ctx, s.ChildID)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.data.child, m.data.previews = child, previews }, nil
		})

	case nav.TabParentMessages:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			thread, err := svc.Messages.ParentThread(ctx, s.UserID)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.data.thread = thread }, nil
		})

	case nav.TabParentGoals:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			goals, err := svc.Goals.ListByChild(ctx, s.ChildID)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.data.goals = goals }, nil
		})

	case nav.TabUsers:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			stats, err := svc.Admin.Stats(ctx)
			if err != nil {
				return nil, err
			}
			users, err := svc.Admin.Users(ctx)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.data.stats, m.data.users = stats, users }, nil
		})

	case nav.TabObserverMappings:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			mappings, err := svc.Admin.Mappings(ctx)
			if err != nil {
				return nil, err
			}
			observers, err := svc.Directory.Observers(ctx)
			if err != nil {
				return nil, err
			}
			children, err := svc.Directory.AllChildren(ctx)
			if err != nil {
				return nil, err
			}
			return func(m *Model) {
				m.data.mappings, m.data.observers, m.data.children = mappings, observers, children
			}, nil
		})

	case nav.TabActivity:
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			logs, err := svc.Admin.ActivityLogs(ctx)
			if err != nil {
				return nil, err
			}
			return func(m *Model) { m.data.logs = logs }, nil
		})

	case nav.TabAdminProcessing:
		observerID := m.data.observer.ID
		return m.load("", func(ctx context.Context) (func(*Model), error) {
			observers, err := svc.Directory.Observers(ctx)
			if err != nil {
				return nil, err
			}
			var children []directorydto.Child
			if observerID != "" {
				if children, err = svc.Directory.ObserverChildren(ctx, observerID); err != nil {
					return nil, err
				}
			}
			return func(m *Model) { m.data.observers, m.data.children = observers, children }, nil
		})
	}
	return nil
}

// ─── row actions ─────────────────────────────────────────────────────────────

func (m *Model) selectRow() tea.Cmd {
	item, ok := m.board.Selected()
	if !ok {
		return nil
	}
	switch m.nav.Tab() {
	case nav.TabSession, nav.TabMonthly, nav.TabAdminProcessing:
		return m.chooseStudent(item.ID)

	case nav.TabMessages:
		m.data.parentID = item.ID
		m.data.thread = messagesdto.Thread{}
		if _, err := m.nav.SelectTab(nav.TabMessages); err != nil {
			return m.fail(err, "")
		}
		return m.enterTab()

	case nav.TabReports:
		svc := m.svc
		return m.loadThen("Failed to load report", func(ctx context.Context) (func(*Model) tea.Cmd, error) {
			doc, err := svc.Reports.Get(ctx, item.ID)
			if err != nil {
				return nil, err
			}
			return func(m *Model) tea.Cmd {
				if err := m.showReport(doc, false); err != nil {
					return m.fail(err, "")
				}
				return nil
			}, nil
		})
	}
	return nil
}

func (m *Model) deleteRow() tea.Cmd {
	item, ok := m.board.Selected()
	if !ok || item.ID == "" {
		return nil
	}
	svc := m.svc
	switch m.nav.Tab() {
	case nav.TabGoals:
		return m.act(action{
			busy: "Deleting goal...", ok: "Goal deleted successfully", fallback: "Failed to delete goal", reload: true,
			run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Goals.Delete(ctx, item.ID) },
		})
	case nav.TabUsers:
		return m.act(action{
			busy: "Deleting user...", ok: "User deleted successfully", fallback: "Failed to delete user", reload: true,
			run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Admin.DeleteUser(ctx, item.ID) },
		})
	case nav.TabObserverMappings:
		return m.act(action{
			busy: "Removing mapping...", ok: "Mapping removed successfully", fallback: "Failed to remove mapping", reload: true,
			run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Admin.RemoveMapping(ctx, item.ID) },
		})
	}
	return nil
}

func (m *Model) completeRow() tea.Cmd {
	item, ok := m.board.Selected()
	if !ok || m.nav.Tab() != nav.TabGoals {
		return nil
	}
	for _, g := range m.data.goals {
		if g.ID == item.ID && g.Status == goalsdto.StatusCompleted {
			return nil
		}
	}
	svc := m.svc
	return m.act(action{
		busy: "Updating goal...", ok: "Goal marked as complete!", fallback: "Failed to mark goal as complete", reload: true,
		run:  func(ctx context.Context) (func(*Model) tea.Cmd, error) { return nil, svc.Goals.Complete(ctx, item.ID) },
	})
}

// chooseStudent selects the child a session or monthly report is about.
func (m *Model) chooseStudent(ref string) tea.Cmd {
	i, ok := pick(ref, len(m.data.children), func(i int) string { return m.data.children[i].ID })
	if !ok {
		return m.notify("Unknown student: "+ref, notify.KindError)
	}
	m.data.student = m.data.children[i]
	m.data.monthly = nil
	info := m.svc.Processing.Snapshot().Info
	info.StudentID = m.data.student.ID
	info.StudentName = m.data.student.Name
	info.ObserverName = m.session.Name
	if m.nav.Tab() == nav.TabAdminProcessing {
		info.ObserverName = m.data.observer.Name
	}
	m.svc.Processing.SetSessionInfo(info)
	m.sync()
	return nil
}

// ─── processing ──────────────────────────────────────────────────────────────

func processedText(kind processingdto.Kind) (ok, fallback string) {
	if kind == processingdto.KindAudio {
		return "Recording processed successfully!", "Processing failed. Please try again."
	}
	return "Photo processed successfully!", "Processing failed. Please try again."
}

func (m *Model) submit(kind processingdto.Kind) tea.Cmd {
	job, err := m.svc.Processing.BeginSubmit(kind)
	if err != nil {
		return m.fail(err, "")
	}
	return m.run(job, "Processing...")
}

func (m *Model) regenerate() tea.Cmd {
	job, err := m.svc.Processing.BeginRegenerate(m.report.Transcript())
	if err != nil {
		return m.fail(err, "")
	}
	m.report.StopEditing()
	return m.run(job, "Regenerating report...")
}

// run hands the network call to a command. BeginSubmit or BeginRegenerate
// has already marked the workflow in flight.
func (m *Model) run(job processingdto.Job, label string) tea.Cmd {
	tick, _ := m.busy(label)
	ticket := m.nav.Ticket()
	proc := m.svc.Processing
	return tea.Batch(tick, func() tea.Msg {
		res, err := proc.Run(context.Background(), job)
		return processedMsg{ticket: ticket, job: job, result: res, err: err}
	})
}

func (m *Model) finishProcessing(msg processedMsg) tea.Cmd {
	m.notes.ClearBusy()
	err := m.svc.Processing.Finish(msg.job, msg.result, msg.err)
	if isStale(err) {
		return nil
	}
	ok, fallback := processedText(msg.job.Kind)
	if msg.job.Op == processingdto.OpRegenerate {
		ok, fallback = "Report regenerated successfully!", "Failed to regenerate report"
	}
	if err != nil {
		m.sync()
		return m.fail(err, fallback)
	}
	snap := m.svc.Processing.Snapshot()
	if snap.Report != nil && m.nav.Current(msg.ticket) {
		doc := reportsdto.Document{
			Date:         snap.Report.Info.Date,
			StudentName:  snap.Report.Info.StudentName,
			ObserverName: snap.Report.Info.ObserverName,
			Text:         snap.Report.Text,
			Transcript:   snap.Report.Transcript,
		}
		onReport := m.nav.Screen() == nav.ScreenReport
		if onReport || m.nav.Within(msg.ticket) {
			if err := m.showReport(doc, snap.Report.Source == processingdto.KindAudio); err != nil {
				return m.fail(err, "")
			}
		}
	}
	m.sync()
	return m.notify(ok, notify.KindSuccess)
}

func monthlyFallback(generate bool) string {
	if generate {
		return "Failed to generate monthly report"
	}
	return "Failed to load monthly report"
}

func (m *Model) setMonthly(r monthlydto.Report) { m.data.monthly = &r }

func names(children []directorydto.Child) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.Name
	}
	return out
}
