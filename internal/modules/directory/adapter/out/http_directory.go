package out

import (
	"context"
	"net/http"

	"learnobs/internal/modules/directory/dto"
	directoryout "learnobs/internal/modules/directory/port/out"
	"learnobs/internal/platform/gateway"
)

type HTTPDirectory struct {
	api gateway.Caller
}

func NewHTTPDirectory(api gateway.Caller) directoryout.Directory {
	return &HTTPDirectory{api: api}
}

type childWire struct {
	ID           gateway.ID `json:"id"`
	Name         string     `json:"name"`
	Age          any        `json:"age"`
	Grade        any        `json:"grade"`
	ObserverName string     `json:"observer_name"`
}

func (c childWire) toDTO() dto.Child {
	return dto.Child{ID: c.ID.String(), Name: c.Name, Age: scalar(c.Age), Grade: scalar(c.Grade), ObserverName: c.ObserverName}
}

type personWire struct {
	ID        gateway.ID `json:"id"`
	Name      string     `json:"name"`
	ChildName string     `json:"child_name"`
}

func (d *HTTPDirectory) Children(ctx context.Context) ([]dto.Child, error) {
	return d.children(ctx, "children")
}

func (d *HTTPDirectory) ObserverChildren(ctx context.Context, observerID string) ([]dto.Child, error) {
	return d.children(ctx, gateway.Path("observer/children", map[string]string{"observer_id": observerID}))
}

func (d *HTTPDirectory) AdminChildren(ctx context.Context) ([]dto.Child, error) {
	return d.children(ctx, "admin/children")
}

func (d *HTTPDirectory) Child(ctx context.Context, id string) (dto.Child, error) {
	env, err := d.api.Call(ctx, http.MethodGet, gateway.Segment("children", id), nil)
	if err != nil {
		return dto.Child{}, err
	}
	var resp struct {
		Child childWire `json:"child"`
	}
	if err := env.Decode(&resp); err != nil {
		return dto.Child{}, err
	}
	return resp.Child.toDTO(), nil
}

func (d *HTTPDirectory) Parents(ctx context.Context) ([]dto.Parent, error) {
	env, err := d.api.Call(ctx, http.MethodGet, "parents", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Parents []personWire `json:"parents"`
	}
	if err := env.Decode(&resp); err != nil {
		return nil, err
	}
	out := make([]dto.Parent, 0, len(resp.Parents))
	for _, p := range resp.Parents {
		out = append(out, dto.Parent{ID: p.ID.String(), Name: p.Name, ChildName: p.ChildName})
	}
	return out, nil
}

func (d *HTTPDirectory) AdminObservers(ctx context.Context) ([]dto.Observer, error) {
	env, err := d.api.Call(ctx, http.MethodGet, "admin/observers", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Observers []personWire `json:"observers"`
	}
	if err := env.Decode(&resp); err != nil {
		return nil, err
	}
	out := make([]dto.Observer, 0, len(resp.Observers))
	for _, o := range resp.Observers {
		out = append(out, dto.Observer{ID: o.ID.String(), Name: o.Name})
	}
	return out, nil
}

func (d *HTTPDirectory) children(ctx context.Context, endpoint string) ([]dto.Child, error) {
	env, err := d.api.Call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Children []childWire `json:"children"`
	}
	if err := env.Decode(&resp); err != nil {
		return nil, err
	}
	out := make([]dto.Child, 0, len(resp.Children))
	for _, c := range resp.Children {
		out = append(out, c.toDTO())
	}
	return out, nil
}
