package schema

import "github.com/faciam-dev/customfields/internal/auditlog"

// AuditLogEntry is one row of the audit trail.
type AuditLogEntry struct {
	ID            int64  `json:"id"`
	Actor         string `json:"actor"`
	Action        string `json:"action"`
	CustomFieldID *int64 `json:"custom_field_id,omitempty"`
	AppliedAt     string `json:"applied_at"`
}

// AuditLogsFrom converts stored records into response entries.
func AuditLogsFrom(recs []auditlog.Record) []AuditLogEntry {
	out := make([]AuditLogEntry, 0, len(recs))
	for _, r := range recs {
		e := AuditLogEntry{ID: r.ID, Actor: r.Actor, Action: r.Action, AppliedAt: r.AppliedAt}
		if r.CustomFieldID.Valid {
			id := r.CustomFieldID.Int64
			e.CustomFieldID = &id
		}
		out = append(out, e)
	}
	return out
}
