package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "learnobs/internal/modules/auth/dto"
	directorydto "learnobs/internal/modules/directory/dto"
	sessiondto "learnobs/internal/modules/session/dto"
	"learnobs/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

type SubmitLoginMsg struct{ Input authdto.LoginInput }

type SubmitRegisterMsg struct{ Input authdto.RegisterInput }

// ─── fields ──────────────────────────────────────────────────────────────────

type field int

const (
	regName field = iota
	regEmail
	regRole
	regPassword
	regConfirm
	regChild
	regCount
)

var registerRoles = []sessiondto.Role{sessiondto.RoleObserver, sessiondto.RoleParent}

// ─── model ───────────────────────────────────────────────────────────────────

// Model holds the sign-in and registration forms. Which one is shown is
// decided by the caller through SetRegistering.
type Model struct {
	email    textinput.Model
	password textinput.Model
	loginAt  int

	register    [regCount]textinput.Model
	registerAt  field
	role        int
	children    []directorydto.Child
	child       int
	registering bool

	width int
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func New() Model {
	m := Model{
		email:    newInput("you@example.com", false),
		password: newInput("password", true),
		child:    -1,
	}
	m.register[regName] = newInput("full name", false)
	m.register[regEmail] = newInput("you@example.com", false)
	m.register[regPassword] = newInput("at least 8 characters", true)
	m.register[regConfirm] = newInput("repeat password", true)
	m.email.Focus()
	return m
}

// SetRegistering switches between the two forms. Both keep their input.
func (m *Model) SetRegistering(on bool) {
	m.registering = on
	m.focus()
}

func (m Model) Registering() bool { return m.registering }

// SetChildren fills the child selector used by parent registration.
func (m *Model) SetChildren(children []directorydto.Child) {
	m.children = children
	if m.child >= len(children) {
		m.child = -1
	}
}

// Reset clears credentials after a sign-out or a completed registration.
func (m *Model) Reset() {
	m.password.SetValue("")
	for i := range m.register {
		m.register[i].SetValue("")
	}
	m.role, m.child, m.loginAt, m.registerAt = 0, -1, 0, 0
	m.focus()
}

// PrefillEmail copies a registered address into the sign-in form.
func (m *Model) PrefillEmail(email string) { m.email.SetValue(email) }

func (m *Model) SetWidth(w int) { m.width = w }

func (m Model) selectedRole() sessiondto.Role { return registerRoles[m.role] }

func (m *Model) focus() {
	m.email.Blur()
	m.password.Blur()
	for i := range m.register {
		m.register[i].Blur()
	}
	if m.registering {
		if m.registerAt != regRole && m.registerAt != regChild {
			m.register[m.registerAt].Focus()
		}
		return
	}
	if m.loginAt == 0 {
		m.email.Focus()
	} else {
		m.password.Focus()
	}
}

func (m *Model) move(delta int) {
	if !m.registering {
		m.loginAt = (m.loginAt + delta + 2) % 2
		m.focus()
		return
	}
	last := regConfirm
	if m.selectedRole() == sessiondto.RoleParent {
		last = regChild
	}
	n := int(last) + 1
	m.registerAt = field((int(m.registerAt) + delta + n) % n)
	m.focus()
}

func (m *Model) cycle(delta int) {
	switch m.registerAt {
	case regRole:
		m.role = (m.role + delta + len(registerRoles)) % len(registerRoles)
	case regChild:
		if len(m.children) == 0 {
			return
		}
		n := len(m.children)
		if m.child < 0 {
			m.child = 0
			return
		}
		m.child = (m.child + delta + n) % n
	}
}

func (m Model) submit() tea.Cmd {
	if !m.registering {
		in := authdto.LoginInput{
			Email:    strings.TrimSpace(m.email.Value()),
			Password: m.password.Value(),
		}
		return func() tea.Msg { return SubmitLoginMsg{Input: in} }
	}
	in := authdto.RegisterInput{
		Name:     strings.TrimSpace(m.register[regName].Value()),
		Email:    strings.TrimSpace(m.register[regEmail].Value()),
		Role:     string(m.selectedRole()),
		Password: m.register[regPassword].Value(),
		Confirm:  m.register[regConfirm].Value(),
	}
	if in.Role == string(sessiondto.RoleParent) && m.child >= 0 && m.child < len(m.children) {
		in.ChildID = m.children[m.child].ID
	}
	return func() tea.Msg { return SubmitRegisterMsg{Input: in} }
}

func (m Model) lastField() bool {
	if !m.registering {
		return m.loginAt == 1
	}
	if m.selectedRole() == sessiondto.RoleParent {
		return m.registerAt == regChild
	}
	return m.registerAt == regConfirm
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "down":
			m.move(1)
			return m, nil
		case "up":
			m.move(-1)
			return m, nil
		case "left", "right":
			if m.registering && (m.registerAt == regRole || m.registerAt == regChild) {
				delta := 1
				if k.String() == "left" {
					delta = -1
				}
				m.cycle(delta)
				return m, nil
			}
		case "enter":
			if m.lastField() {
				return m, m.submit()
			}
			m.move(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	if !m.registering {
		if m.loginAt == 0 {
			m.email, cmd = m.email.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		return m, cmd
	}
	if m.registerAt != regRole && m.registerAt != regChild {
		m.register[m.registerAt], cmd = m.register[m.registerAt].Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func label(s string, active bool) string {
	if active {
		return theme.Cursor.Render("› " + s)
	}
	return theme.Muted.Render("  " + s)
}

func (m Model) View() string {
	var sb strings.Builder
	if !m.registering {
		sb.WriteString(theme.Title.Render("Sign in") + "\n\n")
		sb.WriteString(label("Email", m.loginAt == 0) + "\n  " + m.email.View() + "\n\n")
		sb.WriteString(label("Password", m.loginAt == 1) + "\n  " + m.password.View() + "\n\n")
		sb.WriteString(theme.Muted.Render("↑/↓ move  enter next/submit  tab register"))
		return theme.Pane.Width(m.formWidth()).Render(sb.String())
	}

	sb.WriteString(theme.Title.Render("Create account") + "\n\n")
	text := func(f field, name string) {
		sb.WriteString(label(name, m.registerAt == f) + "\n  " + m.register[f].View() + "\n")
	}
	text(regName, "Full name")
	text(regEmail, "Email")
	sb.WriteString(label("Role", m.registerAt == regRole) + "\n  ‹ " + string(m.selectedRole()) + " ›\n")
	text(regPassword, "Password")
	text(regConfirm, "Confirm password")
	if m.selectedRole() == sessiondto.RoleParent {
		child := "select your child"
		if m.child >= 0 && m.child < len(m.children) {
			child = m.children[m.child].Name
		} else if len(m.children) == 0 {
			child = "no children available"
		}
		sb.WriteString(label("Child", m.registerAt == regChild) + "\n  ‹ " + child + " ›\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓ move  ←/→ choose  enter next/submit  tab sign in"))
	return theme.Pane.Width(m.formWidth()).Render(sb.String())
}

func (m Model) formWidth() int {
	if m.width <= 0 || m.width > 64 {
		return 60
	}
	return m.width - 4
}
