// Package borrowing implementa el motor del ciclo de vida de préstamos:
// creación con resolución del departamento de origen, aprobación, rechazo,
// devolución, edición genérica, override administrativo y borrado con auditoría.
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
	"github.com/jhoicas/Activos-api/internal/domain/lending"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// UseCase motor de préstamos. Las transiciones corren dentro de TxRunner para que
// el cambio de estado, su fila de historial y la entrada de auditoría sean atómicos.
type UseCase struct {
	txRunner    TxRunner
	borrowings  repository.BorrowingRepository
	histories   repository.BorrowingHistoryRepository
	serials     repository.AssetSerialRepository
	assets      repository.AssetRepository
	computers   repository.ComputerRepository
	users       repository.UserRepository
	departments repository.DepartmentRepository
}

// NewUseCase construye el motor con sus colaboradores de solo lectura.
func NewUseCase(
	txRunner TxRunner,
	borrowings repository.BorrowingRepository,
	histories repository.BorrowingHistoryRepository,
	serials repository.AssetSerialRepository,
	assets repository.AssetRepository,
	computers repository.ComputerRepository,
	users repository.UserRepository,
	departments repository.DepartmentRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		borrowings:  borrowings,
		histories:   histories,
		serials:     serials,
		assets:      assets,
		computers:   computers,
		users:       users,
		departments: departments,
	}
}

// Create registra un préstamo nuevo. El departamento de origen se resuelve desde el
// activo de la unidad serializada (o el departamento del computador) y queda como
// snapshot en origin_department_id. Si solicitante y origen se conocen y difieren,
// el préstamo nace pending; si no, borrowed salvo estado explícito válido del caller.
func (uc *UseCase) Create(ctx context.Context, act actor.Actor, in dto.CreateBorrowingRequest) (*dto.BorrowingResponse, error) {
	if !act.Can(actor.CapCreateBorrowings) {
		return nil, domain.ErrForbidden
	}
	borrowDate, expectedReturn, err := validateBorrowingCore(
		in.UserID, in.BorrowerName, in.AssetSerialID, in.ComputerID,
		in.BorrowDate, in.ExpectedReturnDate, in.Status,
	)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(in.UserID, in.DepartmentID); err != nil {
		return nil, err
	}
	origin, err := uc.resolveOriginDepartment(in.AssetSerialID, in.ComputerID)
	if err != nil {
		return nil, err
	}

	explicit := ""
	if in.Status != nil {
		explicit = *in.Status
	}
	status := lending.InitialStatus(in.DepartmentID, origin, explicit)

	now := time.Now()
	b := &entity.Borrowing{
		ID:                 uuid.New().String(),
		UserID:             in.UserID,
		BorrowerName:       in.BorrowerName,
		DepartmentID:       in.DepartmentID,
		OriginDepartmentID: origin,
		AssetSerialID:      in.AssetSerialID,
		ComputerID:         in.ComputerID,
		BorrowDate:         borrowDate,
		ExpectedReturnDate: expectedReturn,
		Status:             status,
		Remarks:            in.Remarks,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = uc.txRunner.Run(ctx, func(
		borrowingRepo repository.BorrowingRepository,
		historyRepo repository.BorrowingHistoryRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := borrowingRepo.Create(b); err != nil {
			return err
		}
		return record(historyRepo, auditRepo, transitionRecord{
			Borrowing: b,
			Actor:     act,
			Action:    entity.HistoryActionCreated,
			NewStatus: &b.Status,
			Notes:     "Borrowing request created",
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b, nil), nil
}

// GetByID obtiene un préstamo con su historial y los campos derivados de lectura.
func (uc *UseCase) GetByID(ctx context.Context, act actor.Actor, id string) (*dto.BorrowingResponse, error) {
	b, err := uc.borrowings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if !canView(act, b) {
		return nil, domain.ErrForbidden
	}
	histories, err := uc.histories.ListByBorrowing(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(b, histories), nil
}

// List lista préstamos aplicando el alcance de visibilidad del actor:
// todos, los de su departamento (solicitante u origen), o solo los propios.
func (uc *UseCase) List(ctx context.Context, act actor.Actor, filter repository.BorrowingFilter) (*dto.BorrowingListResponse, error) {
	switch {
	case act.Can(actor.CapViewAllBorrowings):
		// sin recorte
	case act.Can(actor.CapViewDepartmentBorrowings):
		if act.DepartmentID != nil {
			filter.ScopeDepartmentID = *act.DepartmentID
		}
	case act.Can(actor.CapViewOwnBorrowings):
		filter.ScopeUserID = act.UserID
	default:
		return nil, domain.ErrForbidden
	}
	list, err := uc.borrowings.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BorrowingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *uc.toResponse(b, nil))
	}
	return &dto.BorrowingListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// History devuelve el historial append-only de un préstamo.
// Funciona incluso si el préstamo ya fue borrado: las filas se conservan.
func (uc *UseCase) History(ctx context.Context, act actor.Actor, borrowingID string) ([]dto.BorrowingHistoryResponse, error) {
	if !act.CanAny(actor.CapViewAllBorrowings, actor.CapViewDepartmentBorrowings, actor.CapViewOwnBorrowings) {
		return nil, domain.ErrForbidden
	}
	histories, err := uc.histories.ListByBorrowing(borrowingID)
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(histories), nil
}

// checkReferences falla duro ante ids desconocidos de usuario o departamento.
func (uc *UseCase) checkReferences(userID, departmentID *string) error {
	if userID != nil {
		u, err := uc.users.GetByID(*userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NewValidationError("referencia inválida", map[string]string{"user_id": "no existe"})
		}
	}
	if departmentID != nil {
		d, err := uc.departments.GetByID(*departmentID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.NewValidationError("referencia inválida", map[string]string{"department_id": "no existe"})
		}
	}
	return nil
}

// resolveOriginDepartment departamento propietario del ítem referenciado:
// el del activo de la unidad serializada, o el del computador.
func (uc *UseCase) resolveOriginDepartment(serialID, computerID *string) (*string, error) {
	if serialID != nil {
		serial, err := uc.serials.GetByID(*serialID)
		if err != nil {
			return nil, err
		}
		if serial == nil {
			return nil, domain.NewValidationError("referencia inválida", map[string]string{"asset_serial_id": "no existe"})
		}
		asset, err := uc.assets.GetByID(serial.AssetID)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, domain.ErrNotFound
		}
		return asset.DepartmentID, nil
	}
	if computerID != nil {
		computer, err := uc.computers.GetByID(*computerID)
		if err != nil {
			return nil, err
		}
		if computer == nil {
			return nil, domain.NewValidationError("referencia inválida", map[string]string{"computer_id": "no existe"})
		}
		return computer.DepartmentID, nil
	}
	return nil, nil
}

// validateBorrowingCore reglas comunes de creación y edición: XOR de prestatario,
// XOR de ítem, fechas parseables y expected_return_date >= borrow_date.
// Todo se rechaza antes de cualquier escritura.
func validateBorrowingCore(
	userID, borrowerName, serialID, computerID *string,
	borrowDateStr, expectedReturnStr string,
	status *string,
) (time.Time, time.Time, error) {
	fields := map[string]string{}

	hasUser := userID != nil && *userID != ""
	hasName := borrowerName != nil && strings.TrimSpace(*borrowerName) != ""
	if hasUser == hasName {
		fields["borrower"] = "se requiere exactamente uno de user_id o borrower_name"
	}
	hasSerial := serialID != nil && *serialID != ""
	hasComputer := computerID != nil && *computerID != ""
	if hasSerial == hasComputer {
		fields["item"] = "se requiere exactamente uno de asset_serial_id o computer_id"
	}
	if status != nil && *status != "" && !entity.ValidBorrowingStatus(*status) {
		fields["status"] = "estado desconocido"
	}

	var borrowDate, expectedReturn time.Time
	var err error
	if borrowDate, err = dto.ParseDate(borrowDateStr); err != nil {
		fields["borrow_date"] = "formato esperado YYYY-MM-DD"
	}
	if expectedReturn, err = dto.ParseDate(expectedReturnStr); err != nil {
		fields["expected_return_date"] = "formato esperado YYYY-MM-DD"
	}
	if len(fields) == 0 && expectedReturn.Before(borrowDate) {
		fields["expected_return_date"] = "debe ser igual o posterior a borrow_date"
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, domain.NewValidationError("datos de préstamo inválidos", fields)
	}
	return borrowDate, expectedReturn, nil
}

// canView política de visibilidad de un préstamo individual.
func canView(act actor.Actor, b *entity.Borrowing) bool {
	if act.Can(actor.CapViewAllBorrowings) {
		return true
	}
	if act.Can(actor.CapViewDepartmentBorrowings) && act.DepartmentID != nil {
		if (b.DepartmentID != nil && *b.DepartmentID == *act.DepartmentID) ||
			(b.OriginDepartmentID != nil && *b.OriginDepartmentID == *act.DepartmentID) {
			return true
		}
	}
	if act.Can(actor.CapViewOwnBorrowings) && b.UserID != nil && *b.UserID == act.UserID {
		return true
	}
	return false
}

// toResponse arma la respuesta con los campos derivados, nunca persistidos.
func (uc *UseCase) toResponse(b *entity.Borrowing, histories []*entity.BorrowingHistory) *dto.BorrowingResponse {
	now := time.Now()
	return &dto.BorrowingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		BorrowerName:       b.BorrowerName,
		DepartmentID:       b.DepartmentID,
		OriginDepartmentID: b.OriginDepartmentID,
		AssetSerialID:      b.AssetSerialID,
		ComputerID:         b.ComputerID,
		BorrowDate:         dto.FormatDate(b.BorrowDate),
		ExpectedReturnDate: dto.FormatDate(b.ExpectedReturnDate),
		ReturnDate:         dto.FormatDatePtr(b.ReturnDate),
		Status:             b.Status,
		Remarks:            b.Remarks,
		DaysBorrowed:       lending.DaysBorrowed(b, now),
		IsOverdue:          lending.IsOverdue(b, now),
		DaysOverdue:        lending.DaysOverdue(b, now),
		Histories:          toHistoryResponses(histories),
	}
}

func toHistoryResponses(histories []*entity.BorrowingHistory) []dto.BorrowingHistoryResponse {
	if len(histories) == 0 {
		return nil
	}
	out := make([]dto.BorrowingHistoryResponse, 0, len(histories))
	for _, h := range histories {
		out = append(out, dto.BorrowingHistoryResponse{
			ID:          h.ID,
			BorrowingID: h.BorrowingID,
			UserID:      h.UserID,
			Action:      h.Action,
			OldStatus:   h.OldStatus,
			NewStatus:   h.NewStatus,
			Notes:       h.Notes,
			Changes:     h.Changes,
			CreatedAt:   h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
