package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	processingdto "learnobs/internal/modules/processing/dto"
	"learnobs/internal/ui/nav"
	"learnobs/internal/ui/notify"
	"learnobs/internal/ui/render"
	"learnobs/internal/ui/theme"
	dashboardview "learnobs/internal/ui/views/dashboard"
)

// chromeHeight is the rows taken by the title, tab bar, banner and status
// bar.
const chromeHeight = 7

func (m Model) View() string {
	var sections []string
	sections = append(sections, m.titleBar(), m.tabBar(), m.banner())

	switch m.nav.Screen() {
	case nav.ScreenLogin:
		sections = append(sections, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.login.View()))
	case nav.ScreenReport:
		sections = append(sections, m.report.View())
	default:
		sections = append(sections, m.board.View())
	}

	if m.cmdbar.Visible() {
		sections = append(sections, m.cmdbar.View())
	}
	sections = append(sections, m.statusBar())
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) titleBar() string {
	left := theme.Title.Render("Learning Observer")
	if m.session.UserID == "" {
		return left
	}
	right := theme.Muted.Render(fmt.Sprintf("%s (%s)", m.session.Name, m.session.Role))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) tabBar() string {
	screen := m.nav.Screen()
	if screen == nav.ScreenReport {
		return theme.Muted.Render("Report  esc: back  e: edit transcript  :report:export / report:email / report:regenerate")
	}
	tabs := nav.Tabs(screen)
	cells := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == m.nav.Tab() {
			cells = append(cells, theme.TabActive.Render(nav.Label(t)))
		} else {
			cells = append(cells, theme.Tab.Render(nav.Label(t)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) banner() string {
	if label, busy := m.notes.Busy(); busy {
		return theme.Busy.Render(m.spinner.View() + " " + label)
	}
	b, ok := m.notes.Current()
	if !ok {
		return ""
	}
	if b.Kind == notify.KindError {
		return theme.Failure.Render(b.Text)
	}
	return theme.Success.Render(b.Text)
}

func (m Model) statusBar() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	return theme.StatusBar.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// ─── board composition ───────────────────────────────────────────────────────

// sync rebuilds the dashboard from the current tab and data.
func (m *Model) sync() {
	screen, tab := m.nav.Screen(), m.nav.Tab()
	if screen == nav.ScreenLogin || screen == nav.ScreenReport {
		return
	}
	m.board.SetTitle(nav.Label(tab))
	m.board.SetHeader("")
	width := m.width * 6 / 10

	switch tab {
	case nav.TabSession:
		m.board.SetList(render.Children(m.data.children))
		m.board.SetDetail(m.sessionPanel(false), false)

	case nav.TabGoals:
		m.board.SetList(render.Goals(m.data.goals, render.AudienceObserver))
		m.board.SetDetail(numbered("Students", names(m.data.children))+"\n"+
			theme.Muted.Render("d: delete  c: complete  :goal:add <student> <date> <description>"), false)

	case nav.TabMessages:
		m.board.SetList(render.Parents(m.data.parents))
		if m.data.parentID == "" {
			m.board.SetDetail(theme.Muted.Render("Select a parent and press enter to open the conversation."), false)
			break
		}
		v := render.Thread(m.data.thread.Messages, m.session.UserID, m.data.thread.Counterpart)
		m.board.SetDetail(dashboardview.Thread(v, width), v.ScrollToLatest)

	case nav.TabMonthly:
		m.board.SetList(render.Children(m.data.children))
		m.board.SetDetail(m.monthlyPanel(), false)

	case nav.TabReports:
		if m.data.child.ID != "" {
			m.board.SetHeader(dashboardview.Child(render.Child(m.data.child)))
		}
		m.board.SetList(render.ReportPreviews(m.data.previews))
		m.board.SetDetail(theme.Muted.Render("Press enter to open the selected report."), false)

	case nav.TabParentMessages:
		m.board.SetList(render.List{})
		v := render.Thread(m.data.thread.Messages, m.session.UserID, m.data.thread.Counterpart)
		m.board.SetDetail(dashboardview.Thread(v, m.width), v.ScrollToLatest)

	case nav.TabParentGoals:
		m.board.SetList(render.Goals(m.data.goals, render.AudienceParent))
		m.board.SetDetail("", false)

	case nav.TabParentMonthly:
		m.board.SetList(render.List{})
		m.board.SetDetail(m.monthlyPanel(), false)

	case nav.TabUsers:
		m.board.SetHeader(dashboardview.Stats(render.Stats(m.data.stats)))
		m.board.SetList(render.Users(m.data.users))
		m.board.SetDetail(theme.Muted.Render("d: delete selected user"), false)

	case nav.TabObserverMappings:
		m.board.SetList(render.ObserverMappings(m.data.mappings))
		observers := make([]string, len(m.data.observers))
		for i, o := range m.data.observers {
			observers[i] = o.Name
		}
		m.board.SetDetail(numbered("Observers", observers)+"\n"+numbered("Children", names(m.data.children))+"\n"+
			theme.Muted.Render("d: remove  :mapping:add <observer> <child>"), false)

	case nav.TabActivity:
		m.board.SetList(render.ActivityLogs(m.data.logs))
		m.board.SetDetail("", false)

	case nav.TabAdminProcessing:
		m.board.SetList(render.Children(m.data.children))
		m.board.SetDetail(m.sessionPanel(true), false)

	case nav.TabBulk:
		m.board.SetList(render.List{})
		m.board.SetDetail(bulkPanel(), false)
	}
}

func (m Model) sessionPanel(admin bool) string {
	snap := m.svc.Processing.Snapshot()
	var sb strings.Builder
	if admin {
		observer := m.data.observer.Name
		if observer == "" {
			observer = "none selected"
		}
		observers := make([]string, len(m.data.observers))
		for i, o := range m.data.observers {
			observers[i] = o.Name
		}
		sb.WriteString(numbered("Observers", observers) + "\n")
		sb.WriteString(field("Processing for", observer) + "\n\n")
	}
	sb.WriteString(theme.Title.Render("Session Information") + "\n")
	sb.WriteString(field("Student", snap.Info.StudentName) + "\n")
	sb.WriteString(field("Observer", snap.Info.ObserverName) + "\n")
	sb.WriteString(field("Date", snap.Info.Date) + "\n")
	sb.WriteString(field("Start", snap.Info.Start) + "\n")
	sb.WriteString(field("End", snap.Info.End) + "\n\n")

	sb.WriteString(theme.Title.Render("Files") + "\n")
	sb.WriteString(field("Photo", artifact(snap.Image)) + "\n")
	sb.WriteString(field("Recording", artifact(snap.Audio)) + "\n\n")
	state := snap.State.String()
	if snap.InFlight {
		state += " (in flight)"
	}
	sb.WriteString(field("State", state) + "\n")
	sb.WriteString(theme.Muted.Render("enter: choose student  :stage  :session:info  :submit"))
	return sb.String()
}

func (m Model) monthlyPanel() string {
	if m.data.monthly == nil {
		p := m.svc.Monthly.DefaultPeriod()
		years := m.svc.Monthly.YearOptions()
		yearList := make([]string, len(years))
		for i, y := range years {
			yearList[i] = fmt.Sprint(y)
		}
		prompt := ":monthly:view <year> <month>"
		if m.nav.Tab() == nav.TabMonthly {
			prompt = "enter: choose student  :monthly:generate <year> <month>"
		}
		return theme.Muted.Render(fmt.Sprintf("No monthly report loaded. Default period %d/%d; years %s.\n%s",
			p.Month, p.Year, strings.Join(yearList, ", "), prompt))
	}
	return dashboardview.Summary(render.Monthly(*m.data.monthly))
}

func bulkPanel() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("CSV Bulk Upload") + "\n\n")
	for _, k := range []string{"children", "parents", "relationships", "observer-mappings"} {
		sb.WriteString("  :bulk:upload " + k + " <path.csv>\n")
	}
	return sb.String()
}

func field(label, value string) string {
	if value == "" {
		value = theme.Muted.Render("-")
	}
	return theme.Muted.Render(fmt.Sprintf("%-15s", label+":")) + value
}

func artifact(a *processingdto.Artifact) string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s, %d bytes)", a.Name, a.ContentType, a.Size)
}

func numbered(title string, items []string) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n")
	if len(items) == 0 {
		sb.WriteString(theme.Muted.Render("  none") + "\n")
	}
	for i, s := range items {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, s))
	}
	return sb.String()
}
