package borrowing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Activos-api/internal/application/actor"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// Approve aprueba una solicitud: pending -> borrowed. Solo personal del
// departamento de origen (dueño del ítem) puede aprobar.
func (uc *UseCase) Approve(ctx context.Context, act actor.Actor, id string, in dto.ApproveBorrowingRequest) (*dto.BorrowingResponse, error) {
	if !act.Can(actor.CapApproveBorrowings) {
		return nil, domain.ErrForbidden
	}
	var b *entity.Borrowing
	err := uc.txRunner.Run(ctx, func(
		borrowingRepo repository.BorrowingRepository,
		historyRepo repository.BorrowingHistoryRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		var err error
		b, err = borrowingRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if err := requireOriginDepartment(act, b); err != nil {
			return err
		}
		if b.Status != entity.BorrowingStatusPending {
			return domain.ErrInvalidTransition
		}
		oldStatus := b.Status
		b.Status = entity.BorrowingStatusBorrowed
		if in.Remarks != nil && *in.Remarks != "" {
			b.Remarks = *in.Remarks
		}
		b.UpdatedAt = time.Now()
		if err := borrowingRepo.Update(b); err != nil {
			return err
		}
		return record(historyRepo, auditRepo, transitionRecord{
			Borrowing: b,
			Actor:     act,
			Action:    entity.HistoryActionApproved,
			OldStatus: &oldStatus,
			NewStatus: &b.Status,
			Notes:     notesOr(in.Remarks, "Request approved"),
			AuditNew:  map[string]any{"borrowing_id": b.ID, "remarks": b.Remarks},
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b, nil), nil
}

// Reject rechaza una solicitud: pending -> rejected. El remark es obligatorio
// y no puede ser vacío; queda como remarks del préstamo y notas del historial.
func (uc *UseCase) Reject(ctx context.Context, act actor.Actor, id string, in dto.RejectBorrowingRequest) (*dto.BorrowingResponse, error) {
	if !act.Can(actor.CapRejectBorrowings) {
		return nil, domain.ErrForbidden
	}
	remark := strings.TrimSpace(in.Remarks)
	if remark == "" {
		return nil, domain.NewValidationError("remarks es obligatorio para rechazar", map[string]string{"remarks": "obligatorio"})
	}
	var b *entity.Borrowing
	err := uc.txRunner.Run(ctx, func(
		borrowingRepo repository.BorrowingRepository,
		historyRepo repository.BorrowingHistoryRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		var err error
		b, err = borrowingRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if err := requireOriginDepartment(act, b); err != nil {
			return err
		}
		if b.Status != entity.BorrowingStatusPending {
			return domain.ErrInvalidTransition
		}
		oldStatus := b.Status
		b.Status = entity.BorrowingStatusRejected
		b.Remarks = remark
		b.UpdatedAt = time.Now()
		if err := borrowingRepo.Update(b); err != nil {
			return err
		}
		return record(historyRepo, auditRepo, transitionRecord{
			Borrowing: b,
			Actor:     act,
			Action:    entity.HistoryActionRejected,
			OldStatus: &oldStatus,
			NewStatus: &b.Status,
			Notes:     remark,
			AuditNew:  map[string]any{"borrowing_id": b.ID, "remarks": remark},
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b, nil), nil
}

// Return devuelve un ítem prestado: borrowed -> returned. Fija return_date;
// los remarks reemplazan los existentes solo si vienen en la petición.
func (uc *UseCase) Return(ctx context.Context, act actor.Actor, id string, in dto.ReturnBorrowingRequest) (*dto.BorrowingResponse, error) {
	if !act.Can(actor.CapReturnBorrowedItems) {
		return nil, domain.ErrForbidden
	}
	returnDate, err := dto.ParseDate(in.ReturnDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"return_date": "formato esperado YYYY-MM-DD"})
	}
	var b *entity.Borrowing
	err = uc.txRunner.Run(ctx, func(
		borrowingRepo repository.BorrowingRepository,
		historyRepo repository.BorrowingHistoryRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		var err error
		b, err = borrowingRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status != entity.BorrowingStatusBorrowed {
			return domain.ErrInvalidTransition
		}
		oldStatus := b.Status
		b.Status = entity.BorrowingStatusReturned
		b.ReturnDate = &returnDate
		if in.Remarks != nil && *in.Remarks != "" {
			b.Remarks = *in.Remarks
		}
		b.UpdatedAt = time.Now()
		if err := borrowingRepo.Update(b); err != nil {
			return err
		}
		return record(historyRepo, auditRepo, transitionRecord{
			Borrowing: b,
			Actor:     act,
			Action:    entity.HistoryActionReturned,
			OldStatus: &oldStatus,
			NewStatus: &b.Status,
			Notes:     notesOr(in.Remarks, "Item returned"),
			AuditNew: map[string]any{
				"borrowing_id": b.ID,
				"return_date":  dto.FormatDate(returnDate),
				"remarks":      b.Remarks,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b, nil), nil
}

// Override transición administrativa nombrada: fija cualquier estado válido desde
// un estado no terminal. Es la única vía hacia "lost". No fija return_date ni
// libera la unidad; es una corrección manual, no una devolución.
func (uc *UseCase) Override(ctx context.Context, act actor.Actor, id string, in dto.OverrideBorrowingRequest) (*dto.BorrowingResponse, error) {
	if !act.Can(actor.CapEditBorrowings) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidBorrowingStatus(in.Status) {
		return nil, domain.NewValidationError("estado desconocido", map[string]string{"status": "estado desconocido"})
	}
	var b *entity.Borrowing
	err := uc.txRunner.Run(ctx, func(
		borrowingRepo repository.BorrowingRepository,
		historyRepo repository.BorrowingHistoryRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		var err error
		b, err = borrowingRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if entity.TerminalBorrowingStatus(b.Status) || b.Status == in.Status {
			return domain.ErrInvalidTransition
		}
		oldStatus := b.Status
		b.Status = in.Status
		if in.Remarks != nil && *in.Remarks != "" {
			b.Remarks = *in.Remarks
		}
		b.UpdatedAt = time.Now()
		if err := borrowingRepo.Update(b); err != nil {
			return err
		}
		return record(historyRepo, auditRepo, transitionRecord{
			Borrowing: b,
			Actor:     act,
			Action:    entity.HistoryActionOverridden,
			OldStatus: &oldStatus,
			NewStatus: &b.Status,
			Notes:     notesOr(in.Remarks, "Status overridden"),
			AuditNew:  map[string]any{"borrowing_id": b.ID, "status": b.Status, "remarks": b.Remarks},
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b, nil), nil
}

// Delete borra un préstamo desde cualquier estado. La entrada de auditoría se
// escribe ANTES de quitar la fila para capturar el snapshot previo; el historial
// del préstamo se conserva.
func (uc *UseCase) Delete(ctx context.Context, act actor.Actor, id string) error {
	if !act.Can(actor.CapDeleteBorrowings) {
		return domain.ErrForbidden
	}
	return uc.txRunner.Run(ctx, func(
		borrowingRepo repository.BorrowingRepository,
		_ repository.BorrowingHistoryRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		b, err := borrowingRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if err := auditRepo.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    act.UserIDPtr(),
			Action:    "deleted",
			Module:    entity.AuditModuleBorrowings,
			OldValues: borrowingSnapshot(b),
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return borrowingRepo.Delete(id)
	})
}

// requireOriginDepartment exige que el actor pertenezca al departamento de origen
// cuando este se conoce (aprueba/rechaza el dueño del ítem).
func requireOriginDepartment(act actor.Actor, b *entity.Borrowing) error {
	if b.OriginDepartmentID == nil {
		return nil
	}
	if act.DepartmentID == nil || *act.DepartmentID != *b.OriginDepartmentID {
		return domain.ErrForbidden
	}
	return nil
}

func notesOr(remarks *string, fallback string) string {
	if remarks != nil && *remarks != "" {
		return *remarks
	}
	return fallback
}
