package repository

import (
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// AuditLogFilter filtros de consulta del log de auditoría.
type AuditLogFilter struct {
	Module    string
	Action    string
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	// Search contención de texto libre sobre los payloads JSON old/new.
	Search string
	Limit  int
	Offset int
}

// AuditLogRepository puerto del log de auditoría transversal.
// Append-only: solo escritura y consulta filtrada.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(filter AuditLogFilter) ([]*entity.AuditLog, int, error)
	Modules() ([]string, error)
	Actions() ([]string, error)
}
