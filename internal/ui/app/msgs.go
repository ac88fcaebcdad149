package app

import (
	tea "github.com/charmbracelet/bubbletea"

	processingdto "learnobs/internal/modules/processing/dto"
	sessiondto "learnobs/internal/modules/session/dto"
	"learnobs/internal/ui/nav"
)

// ─── async messages ──────────────────────────────────────────────────────────

type restoredMsg struct {
	session sessiondto.Session
	ok      bool
}

type signedInMsg struct {
	session sessiondto.Session
	err     error
}

type registeredMsg struct {
	email string
	err   error
}

// loadedMsg carries fetched tab data. apply runs only when ticket is still
// the current one.
type loadedMsg struct {
	ticket   nav.Ticket
	apply    func(*Model) tea.Cmd
	err      error
	fallback string
}

// actionMsg is the outcome of a mutation started from the UI.
type actionMsg struct {
	ticket   nav.Ticket
	ok       string
	err      error
	fallback string
	reload   bool
	after    func(*Model) tea.Cmd
}

type processedMsg struct {
	ticket nav.Ticket
	job    processingdto.Job
	result processingdto.Result
	err    error
}

type dismissMsg struct{ id uint64 }
