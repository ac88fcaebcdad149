package out

import (
	"context"
	"net/http"

	"learnobs/internal/modules/messages/domain"
	messagesout "learnobs/internal/modules/messages/port/out"
	"learnobs/internal/platform/gateway"
)

type HTTPMessages struct {
	api gateway.Caller
}

func NewHTTPMessages(api gateway.Caller) messagesout.Repository {
	return &HTTPMessages{api: api}
}

type messageWire struct {
	ID          gateway.ID `json:"id"`
	SenderID    gateway.ID `json:"sender_id"`
	SenderName  string     `json:"sender_name"`
	RecipientID gateway.ID `json:"recipient_id"`
	ChildID     gateway.ID `json:"child_id"`
	Content     string     `json:"content"`
	Timestamp   string     `json:"timestamp"`
}

type nameWire struct {
	Name string `json:"name"`
}

func (r *HTTPMessages) Thread(ctx context.Context, observerID, parentID string) (messagesout.Conversation, error) {
	endpoint := gateway.Path("messages", map[string]string{"observer_id": observerID, "parent_id": parentID})
	env, err := r.api.Call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return messagesout.Conversation{}, err
	}
	var resp struct {
		Messages     []messageWire `json:"messages"`
		ChildInfo    *nameWire     `json:"child_info"`
		ObserverInfo *nameWire     `json:"observer_info"`
	}
	if err := env.Decode(&resp); err != nil {
		return messagesout.Conversation{}, err
	}
	conv := messagesout.Conversation{Messages: make([]domain.Message, 0, len(resp.Messages))}
	for _, m := range resp.Messages {
		conv.Messages = append(conv.Messages, domain.Message{
			ID:          m.ID.String(),
			SenderID:    m.SenderID.String(),
			SenderName:  m.SenderName,
			RecipientID: m.RecipientID.String(),
			ChildID:     m.ChildID.String(),
			Content:     m.Content,
			Timestamp:   m.Timestamp,
		})
	}
	if resp.ChildInfo != nil {
		conv.ChildName = resp.ChildInfo.Name
	}
	if resp.ObserverInfo != nil {
		conv.ObserverName = resp.ObserverInfo.Name
	}
	return conv, nil
}

func (r *HTTPMessages) Send(ctx context.Context, msg domain.Outgoing) error {
	payload := struct {
		SenderID      string `json:"sender_id"`
		RecipientID   string `json:"recipient_id,omitempty"`
		RecipientType string `json:"recipient_type,omitempty"`
		ChildID       string `json:"child_id,omitempty"`
		Content       string `json:"content"`
	}{msg.SenderID, msg.RecipientID, msg.RecipientType, msg.ChildID, msg.Content}
	_, err := r.api.Call(ctx, http.MethodPost, "messages", payload)
	return err
}
