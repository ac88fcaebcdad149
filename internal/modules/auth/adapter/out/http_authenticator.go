package out

import (
	"context"
	"net/http"

	"learnobs/internal/modules/auth/domain"
	authout "learnobs/internal/modules/auth/port/out"
	"learnobs/internal/platform/gateway"
)

type HTTPAuthenticator struct {
	api gateway.Caller
}

func NewHTTPAuthenticator(api gateway.Caller) authout.Authenticator {
	return &HTTPAuthenticator{api: api}
}

type userWire struct {
	ID      gateway.ID `json:"id"`
	Name    string     `json:"name"`
	Role    string     `json:"role"`
	Email   string     `json:"email"`
	ChildID gateway.ID `json:"child_id"`
}

func (a *HTTPAuthenticator) Login(ctx context.Context, email, password string) (domain.User, error) {
	env, err := a.api.Call(ctx, http.MethodPost, "login", map[string]string{"email": email, "password": password})
	if err != nil {
		return domain.User{}, err
	}
	var resp struct {
		User userWire `json:"user"`
	}
	if err := env.Decode(&resp); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:      resp.User.ID.String(),
		Name:    resp.User.Name,
		Role:    resp.User.Role,
		Email:   resp.User.Email,
		ChildID: resp.User.ChildID.String(),
	}, nil
}

func (a *HTTPAuthenticator) Register(ctx context.Context, reg domain.Registration) error {
	payload := map[string]string{
		"name":     reg.Name,
		"email":    reg.Email,
		"role":     reg.Role,
		"password": reg.Password,
		"child_id": reg.ChildID,
	}
	_, err := a.api.Call(ctx, http.MethodPost, "register", payload)
	return err
}
