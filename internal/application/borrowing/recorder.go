package borrowing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Activos-api/internal/application/actor"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// transitionRecord es el evento interno de una transición aceptada. Se abanica a
// los dos sinks del ledger (historial del préstamo + auditoría transversal) desde
// un único punto, para que no puedan divergir entre call sites.
type transitionRecord struct {
	Borrowing *entity.Borrowing
	Actor     actor.Actor
	Action    string
	OldStatus *string
	NewStatus *string
	Notes     string
	Changes   entity.ChangeSet
	// AuditOld/AuditNew payloads del log de auditoría; si AuditNew es nil para una
	// acción constructiva, se usa el snapshot del préstamo.
	AuditOld map[string]any
	AuditNew map[string]any
}

// record escribe exactamente una fila de historial y una entrada de auditoría,
// dentro de la transacción del caller.
func record(historyRepo repository.BorrowingHistoryRepository, auditRepo repository.AuditLogRepository, rec transitionRecord) error {
	if err := historyRepo.Create(&entity.BorrowingHistory{
		ID:          uuid.New().String(),
		BorrowingID: rec.Borrowing.ID,
		UserID:      rec.Actor.UserIDPtr(),
		Action:      rec.Action,
		OldStatus:   rec.OldStatus,
		NewStatus:   rec.NewStatus,
		Notes:       rec.Notes,
		Changes:     rec.Changes,
		CreatedAt:   time.Now(),
	}); err != nil {
		return err
	}
	auditNew := rec.AuditNew
	if auditNew == nil {
		auditNew = borrowingSnapshot(rec.Borrowing)
	}
	return auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    rec.Actor.UserIDPtr(),
		Action:    rec.Action,
		Module:    entity.AuditModuleBorrowings,
		OldValues: rec.AuditOld,
		NewValues: auditNew,
		CreatedAt: time.Now(),
	})
}

// borrowingSnapshot payload de auditoría con los nombres de campo persistidos.
func borrowingSnapshot(b *entity.Borrowing) map[string]any {
	snap := map[string]any{
		"id":                   b.ID,
		"status":               b.Status,
		"borrow_date":          dto.FormatDate(b.BorrowDate),
		"expected_return_date": dto.FormatDate(b.ExpectedReturnDate),
		"remarks":              b.Remarks,
	}
	putPtr(snap, "user_id", b.UserID)
	putPtr(snap, "borrower_name", b.BorrowerName)
	putPtr(snap, "department_id", b.DepartmentID)
	putPtr(snap, "origin_department_id", b.OriginDepartmentID)
	putPtr(snap, "asset_serial_id", b.AssetSerialID)
	putPtr(snap, "computer_id", b.ComputerID)
	if b.ReturnDate != nil {
		snap["return_date"] = dto.FormatDate(*b.ReturnDate)
	}
	return snap
}

func putPtr(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}
