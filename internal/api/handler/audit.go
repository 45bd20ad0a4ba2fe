package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/faciam-dev/customfields/internal/api/schema"
	"github.com/faciam-dev/customfields/internal/auditlog"
	"github.com/faciam-dev/customfields/internal/logger"
)

// AuditHandler serves the audit trail of custom field changes.
type AuditHandler struct {
	Repo *auditlog.Repo
}

type auditListParams struct {
	CustomFieldID int64  `query:"custom_field_id" minimum:"0"`
	Action        string `query:"action" doc:"add, update or delete"`
	Actor         string `query:"actor"`
	Limit         int    `query:"limit" minimum:"0" maximum:"200"`
}

type auditListOutput struct {
	Body []schema.AuditLogEntry
}

type auditDiffParams struct {
	ID int64 `path:"id"`
}

type auditDiffOutput struct {
	Body auditlog.Diff
}

// RegisterAudit mounts the audit log operations.
func RegisterAudit(api huma.API, h *AuditHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listAuditLogs",
		Method:      http.MethodGet,
		Path:        "/audit-logs",
		Summary:     "List audit log entries, newest first",
		Tags:        []string{"Audit"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID: "getAuditDiff",
		Method:      http.MethodGet,
		Path:        "/audit-logs/{id}/diff",
		Summary:     "Unified diff of one audit log entry",
		Tags:        []string{"Audit"},
	}, h.diff)
}

func (h *AuditHandler) list(ctx context.Context, p *auditListParams) (*auditListOutput, error) {
	recs, err := h.Repo.List(ctx, auditlog.Filter{CustomFieldID: p.CustomFieldID, Action: p.Action, Actor: p.Actor, Limit: p.Limit})
	if err != nil {
		logger.L.Error("list audit logs", "err", err)
		return nil, huma.Error500InternalServerError("internal error")
	}
	return &auditListOutput{Body: schema.AuditLogsFrom(recs)}, nil
}

func (h *AuditHandler) diff(ctx context.Context, p *auditDiffParams) (*auditDiffOutput, error) {
	rec, err := h.Repo.FindByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, huma.Error404NotFound("not found")
		}
		logger.L.Error("find audit log", "id", p.ID, "err", err)
		return nil, huma.Error500InternalServerError("internal error")
	}
	return &auditDiffOutput{Body: rec.Diff()}, nil
}
