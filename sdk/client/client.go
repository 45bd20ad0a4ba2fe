// Package client exposes the custom field operations over HTTP or a local
// sdk.Service behind one interface.
package client

import (
	"context"

	sdk "github.com/faciam-dev/customfields/sdk"
)

// PlainType is a catalog entry as served by GET /plain-types.
type PlainType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ValueColumn string `json:"value_column"`
}

// Client provides access to selection custom fields.
type Client interface {
	ListSelection(ctx context.Context, typeName string) ([]sdk.CustomField, error)
	CreateSelection(ctx context.Context, typeName string, in sdk.SelectionFieldInput) (sdk.CustomField, error)
	PlainTypes(ctx context.Context) ([]PlainType, error)
	Mode() string
}
