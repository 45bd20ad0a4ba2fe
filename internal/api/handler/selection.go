package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/faciam-dev/customfields/internal/api/schema"
	"github.com/faciam-dev/customfields/internal/customfield/audit"
	"github.com/faciam-dev/customfields/internal/customfield/store"
	"github.com/faciam-dev/customfields/internal/events"
	"github.com/faciam-dev/customfields/internal/logger"
	"github.com/faciam-dev/customfields/internal/server/middleware"
	"github.com/faciam-dev/customfields/pkg/metrics"
	"github.com/faciam-dev/customfields/pkg/plaintype"
)

// SelectionHandler serves selection custom fields.
type SelectionHandler struct {
	Store    *store.Store
	Recorder *audit.Recorder
}

type listSelectionInput struct {
	Type string `path:"type" doc:"Plain type name, e.g. integer"`
}

type listSelectionOutput struct {
	Body []store.CustomField
}

type createSelectionInput struct {
	Type string `path:"type" doc:"Plain type the selection values are typed as"`
	Body schema.SelectionFieldBody
}

type createSelectionOutput struct {
	Body store.CustomField
}

type listPlainTypesOutput struct {
	Body []schema.PlainTypeEntry
}

// RegisterSelection mounts the selection and plain type operations.
func RegisterSelection(api huma.API, h *SelectionHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listSelectionFields",
		Method:      http.MethodGet,
		Path:        "/selection",
		Summary:     "List selection custom fields",
		Tags:        []string{"Selection"},
	}, func(ctx context.Context, _ *struct{}) (*listSelectionOutput, error) {
		return h.list(ctx, &listSelectionInput{})
	})
	huma.Register(api, huma.Operation{
		OperationID: "listSelectionFieldsByType",
		Method:      http.MethodGet,
		Path:        "/selection/{type}",
		Summary:     "List selection custom fields over a plain type",
		Tags:        []string{"Selection"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "createSelectionField",
		Method:        http.MethodPost,
		Path:          "/selection/{type}",
		Summary:       "Create selection custom field",
		Tags:          []string{"Selection"},
		Errors:        []int{http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity},
		DefaultStatus: http.StatusOK,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "listPlainTypes",
		Method:      http.MethodGet,
		Path:        "/plain-types",
		Summary:     "List plain types",
		Tags:        []string{"PlainType"},
	}, h.plainTypes)
}

func (h *SelectionHandler) list(ctx context.Context, in *listSelectionInput) (*listSelectionOutput, error) {
	fields, err := h.Store.ListSelectionFields(ctx, in.Type)
	if err != nil {
		return nil, mapError(err)
	}
	return &listSelectionOutput{Body: fields}, nil
}

func (h *SelectionHandler) create(ctx context.Context, in *createSelectionInput) (*createSelectionOutput, error) {
	label := typeLabel(in.Type)
	cf, err := h.Store.CreateSelectionField(ctx, in.Type, in.Body.Input())
	if err != nil {
		metrics.SelectionCreates.WithLabelValues(label, "error").Inc()
		return nil, mapError(err)
	}
	metrics.SelectionCreates.WithLabelValues(label, "ok").Inc()

	actor := middleware.UserFromContext(ctx)
	if actor == "" {
		actor = "anonymous"
	}
	if err := h.Recorder.Write(ctx, actor, nil, &cf); err != nil {
		logger.L.Error("audit write", "field", cf.ID, "err", err)
		metrics.AuditErrors.WithLabelValues("add").Inc()
	} else {
		metrics.AuditEvents.WithLabelValues("add").Inc()
	}
	events.Emit(ctx, events.New(events.SelectionCreated, cf))
	return &createSelectionOutput{Body: cf}, nil
}

func (h *SelectionHandler) plainTypes(ctx context.Context, _ *struct{}) (*listPlainTypesOutput, error) {
	pts, err := h.Store.ListPlainTypes(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &listPlainTypesOutput{Body: schema.PlainTypesFrom(pts)}, nil
}

// mapError converts store errors into HTTP errors.
func mapError(err error) error {
	var ce *store.ConstraintError
	switch {
	case errors.Is(err, store.ErrSelectionRequired):
		return huma.NewError(http.StatusUnprocessableEntity, "Selection data needs to be provided", &huma.ErrorDetail{Location: "body.selection", Message: "required"})
	case errors.Is(err, store.ErrValidation):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, store.ErrPlainTypeNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.As(err, &ce):
		if ce.Unique {
			return huma.Error409Conflict("custom field already exists", ce)
		}
		return huma.Error422UnprocessableEntity("constraint violated", ce)
	default:
		logger.L.Error("request failed", "err", err)
		return huma.Error500InternalServerError("internal error")
	}
}

// typeLabel keeps the metric label set bounded to the plain type catalog.
func typeLabel(name string) string {
	k, err := plaintype.ParseKind(name)
	if err != nil {
		return "unknown"
	}
	return k.String()
}
