package domain

import (
	"strings"

	apperrors "learnobs/internal/platform/errors"
)

type Message struct {
	ID          string
	SenderID    string
	SenderName  string
	RecipientID string
	ChildID     string
	Content     string
	Timestamp   string
}

// Thread is one conversation plus a header naming who it is with.
type Thread struct {
	Messages    []Message
	Counterpart string
}

// ObserverHeader names the child an observer-parent thread is about.
func ObserverHeader(childName string) string {
	if childName == "" {
		return ""
	}
	return "Discussing: " + childName
}

// ParentHeader names the observer a parent is talking to.
func ParentHeader(observerName string) string {
	if observerName == "" {
		return ""
	}
	return "Chatting with: " + observerName + " (Observer)"
}

// Outgoing is a message about to be sent. For parents the recipient is
// resolved by the service from the child.
type Outgoing struct {
	SenderID      string
	RecipientID   string
	RecipientType string
	ChildID       string
	Content       string
}

const RecipientObserver = "observer"

func ObserverMessage(senderID, parentID, content string) (Outgoing, error) {
	content = strings.TrimSpace(content)
	if strings.TrimSpace(parentID) == "" || content == "" {
		return Outgoing{}, apperrors.Validation("Please select a parent and enter a message")
	}
	if senderID == "" {
		return Outgoing{}, apperrors.ErrNoSession
	}
	return Outgoing{SenderID: senderID, RecipientID: parentID, Content: content}, nil
}

func ParentMessage(senderID, childID, content string) (Outgoing, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Outgoing{}, apperrors.Validation("Please enter a message")
	}
	if senderID == "" {
		return Outgoing{}, apperrors.ErrNoSession
	}
	return Outgoing{SenderID: senderID, RecipientType: RecipientObserver, ChildID: childID, Content: content}, nil
}
