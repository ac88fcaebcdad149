package nav

import (
	"fmt"

	sessiondto "learnobs/internal/modules/session/dto"
	apperrors "learnobs/internal/platform/errors"
	"learnobs/internal/platform/id"
)

type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenObserver Screen = "observer"
	ScreenParent   Screen = "parent"
	ScreenAdmin    Screen = "admin"
	ScreenReport   Screen = "report"
	// ScreenLoading exists for completeness; busy state lives in notify.
	ScreenLoading Screen = "loading"
)

type Tab string

const (
	TabNone Tab = ""

	TabLogin    Tab = "login"
	TabRegister Tab = "register"

	TabSession  Tab = "session"
	TabGoals    Tab = "goals"
	TabMessages Tab = "messages"
	TabMonthly  Tab = "monthly"

	TabReports        Tab = "reports"
	TabParentMessages Tab = "parent-messages"
	TabParentGoals    Tab = "parent-goals"
	TabParentMonthly  Tab = "parent-monthly"

	TabUsers            Tab = "users"
	TabObserverMappings Tab = "observer-mappings"
	TabActivity         Tab = "activity"
	TabAdminProcessing  Tab = "admin-processing"
	TabBulk             Tab = "bulk"
)

var screenTabs = map[Screen][]Tab{
	ScreenLogin:    {TabLogin, TabRegister},
	ScreenObserver: {TabSession, TabGoals, TabMessages, TabMonthly},
	ScreenParent:   {TabReports, TabParentMessages, TabParentGoals, TabParentMonthly},
	ScreenAdmin:    {TabUsers, TabObserverMappings, TabActivity, TabAdminProcessing, TabBulk},
}

var tabLabels = map[Tab]string{
	TabLogin:            "Login",
	TabRegister:         "Register",
	TabSession:          "New Session",
	TabGoals:            "Goals",
	TabMessages:         "Messages",
	TabMonthly:          "Monthly Reports",
	TabReports:          "Reports",
	TabParentMessages:   "Messages",
	TabParentGoals:      "Goals",
	TabParentMonthly:    "Monthly Reports",
	TabUsers:            "Users",
	TabObserverMappings: "Observer Mappings",
	TabActivity:         "Activity Logs",
	TabAdminProcessing:  "Process Data",
	TabBulk:             "Bulk Upload",
}

// Label is the display name of a tab.
func Label(t Tab) string {
	if l, ok := tabLabels[t]; ok {
		return l
	}
	return string(t)
}

// Tabs lists the tabs of a screen in display order.
func Tabs(s Screen) []Tab {
	return append([]Tab(nil), screenTabs[s]...)
}

// Home is the landing screen of a role.
func Home(role sessiondto.Role) Screen {
	switch role {
	case sessiondto.RoleObserver:
		return ScreenObserver
	case sessiondto.RoleParent:
		return ScreenParent
	case sessiondto.RoleAdmin:
		return ScreenAdmin
	default:
		return ScreenLogin
	}
}

// Allowed reports the screens reachable for role; the empty role means
// unauthenticated.
func Allowed(role sessiondto.Role) []Screen {
	home := Home(role)
	if home == ScreenLogin {
		return []Screen{ScreenLogin}
	}
	return []Screen{home, ScreenReport}
}

func allowed(role sessiondto.Role, s Screen) bool {
	for _, a := range Allowed(role) {
		if a == s {
			return true
		}
	}
	return false
}

// Ticket tags a request with the context it was issued in. Responses whose
// ticket no longer matches are discarded.
type Ticket struct {
	Epoch  uint64
	Screen Screen
	Tab    Tab
	ID     string
}

// Controller is the screen/tab state machine. It is not safe for
// concurrent use; the UI loop owns it.
type Controller struct {
	ids    id.Generator
	role   sessiondto.Role
	screen Screen
	tabs   map[Screen]Tab
	epoch  uint64
	ticket Ticket
}

func New(ids id.Generator) *Controller {
	if ids == nil {
		ids = id.UUID{}
	}
	c := &Controller{ids: ids}
	c.reset("")
	return c
}

func (c *Controller) Role() sessiondto.Role { return c.role }

func (c *Controller) Screen() Screen { return c.screen }

// Tab is the selected tab of the current screen.
func (c *Controller) Tab() Tab { return c.tabs[c.screen] }

func (c *Controller) Ticket() Ticket { return c.ticket }

// SignIn routes to the role's home screen and starts a new epoch, so
// everything issued before is stale.
func (c *Controller) SignIn(role sessiondto.Role) (Ticket, error) {
	if Home(role) == ScreenLogin {
		return Ticket{}, fmt.Errorf("%w: role %q", apperrors.ErrInvalidInput, role)
	}
	c.reset(role)
	return c.ticket, nil
}

// SignOut returns to the login screen.
func (c *Controller) SignOut() Ticket {
	c.reset("")
	return c.ticket
}

func (c *Controller) reset(role sessiondto.Role) {
	c.epoch++
	c.role = role
	c.screen = Home(role)
	c.tabs = map[Screen]Tab{}
	for s, tabs := range screenTabs {
		c.tabs[s] = tabs[0]
	}
	c.issue()
}

// Goto moves to screen when the role may reach it. A rejected move leaves
// everything unchanged.
func (c *Controller) Goto(s Screen) (Ticket, error) {
	if s == ScreenLoading || !allowed(c.role, s) {
		return c.ticket, fmt.Errorf("%w: %s", apperrors.ErrScreenNotAllowed, s)
	}
	c.screen = s
	c.issue()
	return c.ticket, nil
}

// GoBack leaves the report screen for the role's home screen.
func (c *Controller) GoBack() Ticket {
	if c.screen == ScreenReport {
		c.screen = Home(c.role)
		c.issue()
	}
	return c.ticket
}

// SelectTab switches tab on the current screen. Reselecting the current tab
// still issues a fresh ticket so its content reloads.
func (c *Controller) SelectTab(t Tab) (Ticket, error) {
	if !hasTab(c.screen, t) {
		return c.ticket, fmt.Errorf("%w: %s on %s", apperrors.ErrTabNotOnScreen, t, c.screen)
	}
	c.tabs[c.screen] = t
	c.issue()
	return c.ticket, nil
}

// Refresh keeps the current tab and issues a fresh ticket, so loads started
// before the refresh are dropped.
func (c *Controller) Refresh() Ticket {
	c.issue()
	return c.ticket
}

// CycleTab selects the next (delta 1) or previous (delta -1) tab.
func (c *Controller) CycleTab(delta int) (Ticket, bool) {
	tabs := screenTabs[c.screen]
	if len(tabs) == 0 {
		return c.ticket, false
	}
	idx := 0
	for i, t := range tabs {
		if t == c.Tab() {
			idx = i
		}
	}
	idx = ((idx+delta)%len(tabs) + len(tabs)) % len(tabs)
	t, _ := c.SelectTab(tabs[idx])
	return t, true
}

// Accept reports whether t is the current context.
func (c *Controller) Accept(t Ticket) bool {
	return t == c.ticket
}

// Within reports whether t was issued on the current screen in the current
// epoch, regardless of later tab switches.
func (c *Controller) Within(t Ticket) bool {
	return t.Epoch == c.epoch && t.Screen == c.screen
}

// Current reports whether t was issued in the current epoch.
func (c *Controller) Current(t Ticket) bool {
	return t.Epoch == c.epoch
}

func (c *Controller) issue() {
	c.ticket = Ticket{Epoch: c.epoch, Screen: c.screen, Tab: c.tabs[c.screen], ID: c.ids.New()}
}

func hasTab(s Screen, t Tab) bool {
	for _, candidate := range screenTabs[s] {
		if candidate == t {
			return true
		}
	}
	return false
}
