package dto

// AuditLogResponse entrada del log de auditoría.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id"`
	Action    string         `json:"action"`
	Module    string         `json:"module"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// AuditLogListResponse listado paginado del log de auditoría.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Total int                `json:"total"`
	Page  PageResponse       `json:"page"`
}
