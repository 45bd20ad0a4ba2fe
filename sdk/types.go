package sdk

import "github.com/faciam-dev/customfields/internal/customfield/store"

// Types shared with the storage layer.
type (
	CustomField         = store.CustomField
	PlainType           = store.PlainType
	SelectionType       = store.SelectionType
	SelectionValue      = store.SelectionValue
	SelectionTarget     = store.SelectionTarget
	SelectionFieldInput = store.SelectionFieldInput
	SelectionInput      = store.SelectionInput
	SelectionValueInput = store.SelectionValueInput
)

// Errors returned by Service operations.
var (
	ErrValidation        = store.ErrValidation
	ErrPlainTypeNotFound = store.ErrPlainTypeNotFound
)
