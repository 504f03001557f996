package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/application/actor"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// AuditUseCase consulta filtrada del log de auditoría transversal.
// La escritura pertenece a cada módulo; aquí solo se lee.
type AuditUseCase struct {
	audit repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(audit repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{audit: audit}
}

// List consulta el log con filtros por módulo, acción, actor, rango de fechas
// y búsqueda de texto libre sobre los payloads JSON.
func (uc *AuditUseCase) List(ctx context.Context, act actor.Actor, filter repository.AuditLogFilter) (*dto.AuditLogListResponse, error) {
	if !act.Can(actor.CapViewAuditLogs) {
		return nil, domain.ErrForbidden
	}
	logs, total, err := uc.audit.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.AuditLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    l.Action,
			Module:    l.Module,
			OldValues: l.OldValues,
			NewValues: l.NewValues,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Total: total,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Modules módulos distintos presentes en el log.
func (uc *AuditUseCase) Modules(ctx context.Context, act actor.Actor) ([]string, error) {
	if !act.Can(actor.CapViewAuditLogs) {
		return nil, domain.ErrForbidden
	}
	return uc.audit.Modules()
}

// Actions acciones distintas presentes en el log.
func (uc *AuditUseCase) Actions(ctx context.Context, act actor.Actor) ([]string, error) {
	if !act.Can(actor.CapViewAuditLogs) {
		return nil, domain.ErrForbidden
	}
	return uc.audit.Actions()
}
