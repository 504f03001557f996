package borrowing

import (
	"context"
	"time"

	"github.com/jhoicas/Activos-api/internal/application/actor"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// Update edición genérica de un préstamo. Revalida las mismas reglas de la creación,
// recalcula origin_department_id si cambió el ítem referenciado y escribe al historial
// un mapa changes campo -> {old, new} SOLO si al menos un campo difiere.
//
// Único cambio de estado admitido por esta vía: pending -> borrowed, idéntico en
// comportamiento a Approve (se conservan ambos caminos a propósito). Cualquier otro
// cambio de estado se rechaza; para eso existe Override.
func (uc *UseCase) Update(ctx context.Context, act actor.Actor, id string, in dto.UpdateBorrowingRequest) (*dto.BorrowingResponse, error) {
	if !act.Can(actor.CapEditBorrowings) {
		return nil, domain.ErrForbidden
	}
	borrowDate, expectedReturn, err := validateBorrowingCore(
		in.UserID, in.BorrowerName, in.AssetSerialID, in.ComputerID,
		in.BorrowDate, in.ExpectedReturnDate, in.Status,
	)
	if err != nil {
		return nil, err
	}
	returnDate, err := dto.ParseDatePtr(in.ReturnDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"return_date": "formato esperado YYYY-MM-DD"})
	}
	if err := uc.checkReferences(in.UserID, in.DepartmentID); err != nil {
		return nil, err
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

		newStatus := b.Status
		if in.Status != nil && *in.Status != "" && *in.Status != b.Status {
			// Carve-out heredado: la edición genérica puede aprobar (pending -> borrowed).
			if b.Status != entity.BorrowingStatusPending || *in.Status != entity.BorrowingStatusBorrowed {
				return domain.ErrInvalidTransition
			}
			newStatus = entity.BorrowingStatusBorrowed
		}

		origin := b.OriginDepartmentID
		itemChanged := !strPtrEq(in.AssetSerialID, b.AssetSerialID) || !strPtrEq(in.ComputerID, b.ComputerID)
		if itemChanged {
			origin, err = uc.resolveOriginDepartment(in.AssetSerialID, in.ComputerID)
			if err != nil {
				return err
			}
		}

		oldStatus := b.Status
		changes := entity.ChangeSet{}
		changePtr(changes, "user_id", b.UserID, in.UserID)
		changePtr(changes, "borrower_name", b.BorrowerName, in.BorrowerName)
		changePtr(changes, "department_id", b.DepartmentID, in.DepartmentID)
		changePtr(changes, "origin_department_id", b.OriginDepartmentID, origin)
		changePtr(changes, "asset_serial_id", b.AssetSerialID, in.AssetSerialID)
		changePtr(changes, "computer_id", b.ComputerID, in.ComputerID)
		changeDate(changes, "borrow_date", &b.BorrowDate, &borrowDate)
		changeDate(changes, "expected_return_date", &b.ExpectedReturnDate, &expectedReturn)
		if in.ReturnDate != nil {
			changeDate(changes, "return_date", b.ReturnDate, returnDate)
		}
		if newStatus != b.Status {
			changes["status"] = entity.Change{Old: b.Status, New: newStatus}
		}
		if in.Remarks != nil && *in.Remarks != b.Remarks {
			changes["remarks"] = entity.Change{Old: b.Remarks, New: *in.Remarks}
		}

		if len(changes) == 0 {
			return nil
		}

		b.UserID = in.UserID
		b.BorrowerName = in.BorrowerName
		b.DepartmentID = in.DepartmentID
		b.OriginDepartmentID = origin
		b.AssetSerialID = in.AssetSerialID
		b.ComputerID = in.ComputerID
		b.BorrowDate = borrowDate
		b.ExpectedReturnDate = expectedReturn
		if in.ReturnDate != nil {
			b.ReturnDate = returnDate
		}
		b.Status = newStatus
		if in.Remarks != nil {
			b.Remarks = *in.Remarks
		}
		b.UpdatedAt = time.Now()

		if err := borrowingRepo.Update(b); err != nil {
			return err
		}

		auditOld := map[string]any{}
		auditNew := map[string]any{}
		for field, ch := range changes {
			auditOld[field] = ch.Old
			auditNew[field] = ch.New
		}
		return record(historyRepo, auditRepo, transitionRecord{
			Borrowing: b,
			Actor:     act,
			Action:    entity.HistoryActionUpdated,
			OldStatus: &oldStatus,
			NewStatus: &b.Status,
			Notes:     "Borrowing details updated",
			Changes:   changes,
			AuditOld:  auditOld,
			AuditNew:  auditNew,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b, nil), nil
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func changePtr(changes entity.ChangeSet, field string, oldV, newV *string) {
	if strPtrEq(oldV, newV) {
		return
	}
	changes[field] = entity.Change{Old: derefAny(oldV), New: derefAny(newV)}
}

func changeDate(changes entity.ChangeSet, field string, oldV, newV *time.Time) {
	switch {
	case oldV == nil && newV == nil:
		return
	case oldV != nil && newV != nil && oldV.Equal(*newV):
		return
	}
	changes[field] = entity.Change{Old: formatAny(oldV), New: formatAny(newV)}
}

func derefAny(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func formatAny(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dto.FormatDate(*t)
}
