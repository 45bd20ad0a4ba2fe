package client

import (
	"context"

	sdk "github.com/faciam-dev/customfields/sdk"
)

type localClient struct{ svc sdk.Service }

// NewLocalService wraps an existing sdk.Service as a Client.
func NewLocalService(svc sdk.Service) Client { return &localClient{svc: svc} }

func (l *localClient) ListSelection(ctx context.Context, typeName string) ([]sdk.CustomField, error) {
	return l.svc.ListSelectionFields(ctx, typeName)
}

func (l *localClient) CreateSelection(ctx context.Context, typeName string, in sdk.SelectionFieldInput) (sdk.CustomField, error) {
	return l.svc.CreateSelectionField(ctx, typeName, in)
}

func (l *localClient) PlainTypes(ctx context.Context) ([]PlainType, error) {
	pts, err := l.svc.ListPlainTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PlainType, 0, len(pts))
	for _, p := range pts {
		out = append(out, PlainType{ID: p.ID, Name: string(p.Name), ValueColumn: p.ValueColumn()})
	}
	return out, nil
}

func (l *localClient) Mode() string { return "local" }
