// Package registry implementa el registro de unidades serializadas: altas con
// guard de capacidad atómico, generación de asset tags y auditoría.
package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Activos-api/internal/application/actor"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// UseCase registro de unidades serializadas.
type UseCase struct {
	txRunner   TxRunner
	serials    repository.AssetSerialRepository
	borrowings repository.BorrowingRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, serials repository.AssetSerialRepository, borrowings repository.BorrowingRepository) *UseCase {
	return &UseCase{txRunner: txRunner, serials: serials, borrowings: borrowings}
}

// Create registra una unidad nueva. El guard de capacidad y el insert corren en una
// transacción con la fila del activo bloqueada: dos altas simultáneas sobre el mismo
// activo no pueden pasar el guard juntas y exceder la cantidad declarada.
func (uc *UseCase) Create(ctx context.Context, act actor.Actor, in dto.CreateSerialRequest) (*dto.SerialResponse, error) {
	if !act.Can(actor.CapManageSerialNumbers) {
		return nil, domain.ErrForbidden
	}
	if err := validateSerialInput(in.AssetID, in.SerialNumber, in.Status); err != nil {
		return nil, err
	}
	lastMaint, err := dto.ParseDatePtr(in.LastMaintenanceDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"last_maintenance_date": "formato esperado YYYY-MM-DD"})
	}
	nextMaint, err := dto.ParseDatePtr(in.NextMaintenanceDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"next_maintenance_date": "formato esperado YYYY-MM-DD"})
	}

	status := entity.SerialStatusAvailable
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}

	now := time.Now()
	serial := &entity.AssetSerial{
		ID:                  uuid.New().String(),
		AssetID:             in.AssetID,
		SerialNumber:        in.SerialNumber,
		Condition:           in.Condition,
		Status:              status,
		AssignedTo:          in.AssignedTo,
		Notes:               in.Notes,
		LastMaintenanceDate: lastMaint,
		NextMaintenanceDate: nextMaint,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = uc.txRunner.Run(ctx, func(
		serialRepo repository.AssetSerialRepository,
		assetRepo repository.AssetRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		// Bloquea la fila del activo: serializa guard + insert frente a altas concurrentes.
		asset, err := assetRepo.GetForUpdate(in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		count, err := serialRepo.CountByAsset(in.AssetID)
		if err != nil {
			return err
		}
		if count >= asset.Quantity {
			return &domain.CapacityError{AssetName: asset.Name, CurrentCount: count, MaxQuantity: asset.Quantity}
		}
		if in.AssetTag != nil && *in.AssetTag != "" {
			serial.AssetTag = *in.AssetTag
		} else {
			// Secuencia durable por activo: no retrocede al borrar unidades,
			// así un tag liberado nunca se reutiliza.
			seq, err := assetRepo.NextTagSequence(asset.ID)
			if err != nil {
				return err
			}
			serial.AssetTag = fmt.Sprintf("%s-%04d", tagPrefix(asset.Name), seq)
		}
		if err := serialRepo.Create(serial); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    act.UserIDPtr(),
			Action:    "created",
			Module:    entity.AuditModuleAssetSerials,
			NewValues: serialSnapshot(serial),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(serial)
}

// Update edita una unidad. Si se reasigna a otro activo, el guard de capacidad
// se vuelve a correr contra el activo destino.
func (uc *UseCase) Update(ctx context.Context, act actor.Actor, id string, in dto.UpdateSerialRequest) (*dto.SerialResponse, error) {
	if !act.Can(actor.CapManageSerialNumbers) {
		return nil, domain.ErrForbidden
	}
	if err := validateSerialInput(in.AssetID, in.SerialNumber, in.Status); err != nil {
		return nil, err
	}
	lastMaint, err := dto.ParseDatePtr(in.LastMaintenanceDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"last_maintenance_date": "formato esperado YYYY-MM-DD"})
	}
	nextMaint, err := dto.ParseDatePtr(in.NextMaintenanceDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"next_maintenance_date": "formato esperado YYYY-MM-DD"})
	}

	var updated *entity.AssetSerial
	err = uc.txRunner.Run(ctx, func(
		serialRepo repository.AssetSerialRepository,
		assetRepo repository.AssetRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		serial, err := serialRepo.GetByID(id)
		if err != nil {
			return err
		}
		if serial == nil {
			return domain.ErrNotFound
		}
		if in.AssetID != serial.AssetID {
			dest, err := assetRepo.GetForUpdate(in.AssetID)
			if err != nil {
				return err
			}
			if dest == nil {
				return domain.ErrNotFound
			}
			count, err := serialRepo.CountByAsset(in.AssetID)
			if err != nil {
				return err
			}
			if count >= dest.Quantity {
				return &domain.CapacityError{AssetName: dest.Name, CurrentCount: count, MaxQuantity: dest.Quantity}
			}
		}

		before := serialSnapshot(serial)
		serial.AssetID = in.AssetID
		serial.SerialNumber = in.SerialNumber
		if in.AssetTag != nil && *in.AssetTag != "" {
			serial.AssetTag = *in.AssetTag
		}
		if in.Condition != nil {
			serial.Condition = *in.Condition
		}
		if in.Status != nil && *in.Status != "" {
			serial.Status = *in.Status
		}
		if in.AssignedTo != nil {
			serial.AssignedTo = *in.AssignedTo
		}
		if in.Notes != nil {
			serial.Notes = *in.Notes
		}
		if in.LastMaintenanceDate != nil {
			serial.LastMaintenanceDate = lastMaint
		}
		if in.NextMaintenanceDate != nil {
			serial.NextMaintenanceDate = nextMaint
		}
		serial.UpdatedAt = time.Now()

		if err := serialRepo.Update(serial); err != nil {
			return err
		}
		updated = serial

		oldVals, newVals := diffSnapshots(before, serialSnapshot(serial))
		if len(newVals) == 0 {
			return nil
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    act.UserIDPtr(),
			Action:    "updated",
			Module:    entity.AuditModuleAssetSerials,
			OldValues: oldVals,
			NewValues: newVals,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated)
}

// Delete borra una unidad sin condiciones. No revisa préstamos abiertos que la
// referencien; el historial del préstamo conserva el id huérfano.
// La entrada de auditoría se escribe antes del borrado para capturar el snapshot.
func (uc *UseCase) Delete(ctx context.Context, act actor.Actor, id string) error {
	if !act.Can(actor.CapManageSerialNumbers) {
		return domain.ErrForbidden
	}
	return uc.txRunner.Run(ctx, func(
		serialRepo repository.AssetSerialRepository,
		_ repository.AssetRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		serial, err := serialRepo.GetByID(id)
		if err != nil {
			return err
		}
		if serial == nil {
			return domain.ErrNotFound
		}
		if err := auditRepo.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    act.UserIDPtr(),
			Action:    "deleted",
			Module:    entity.AuditModuleAssetSerials,
			OldValues: serialSnapshot(serial),
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return serialRepo.Delete(id)
	})
}

// GetByID obtiene una unidad con su estado efectivo derivado.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SerialResponse, error) {
	serial, err := uc.serials.GetByID(id)
	if err != nil {
		return nil, err
	}
	if serial == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(serial)
}

// List lista unidades con filtros y estado efectivo derivado.
func (uc *UseCase) List(ctx context.Context, filter repository.SerialFilter) (*dto.SerialListResponse, error) {
	serials, err := uc.serials.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SerialResponse, 0, len(serials))
	for _, s := range serials {
		resp, err := uc.toResponse(s)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.SerialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// toResponse arma la respuesta con el estado efectivo: el workflow de préstamos no
// escribe el estado almacenado, así que la disponibilidad se deriva del préstamo
// abierto más reciente en cada lectura.
func (uc *UseCase) toResponse(s *entity.AssetSerial) (*dto.SerialResponse, error) {
	effective := s.Status
	if s.Status == entity.SerialStatusAvailable {
		active, err := uc.borrowings.ActiveExistsForSerial(s.ID)
		if err != nil {
			return nil, err
		}
		if active {
			effective = entity.SerialStatusInUse
		}
	}
	return &dto.SerialResponse{
		ID:                  s.ID,
		AssetID:             s.AssetID,
		SerialNumber:        s.SerialNumber,
		AssetTag:            s.AssetTag,
		Condition:           s.Condition,
		Status:              s.Status,
		EffectiveStatus:     effective,
		AssignedTo:          s.AssignedTo,
		Notes:               s.Notes,
		LastMaintenanceDate: dto.FormatDatePtr(s.LastMaintenanceDate),
		NextMaintenanceDate: dto.FormatDatePtr(s.NextMaintenanceDate),
	}, nil
}

func validateSerialInput(assetID, serialNumber string, status *string) error {
	fields := map[string]string{}
	if assetID == "" {
		fields["asset_id"] = "obligatorio"
	}
	if strings.TrimSpace(serialNumber) == "" {
		fields["serial_number"] = "obligatorio"
	}
	if status != nil && *status != "" && !entity.ValidSerialStatus(*status) {
		fields["status"] = "estado desconocido"
	}
	if len(fields) > 0 {
		return domain.NewValidationError("datos de unidad inválidos", fields)
	}
	return nil
}

// tagPrefix primeros 3 caracteres alfanuméricos del nombre del activo, en mayúsculas.
func tagPrefix(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= 3 {
				break
			}
		}
	}
	return strings.ToUpper(b.String())
}

// serialSnapshot payload de auditoría con los nombres de campo persistidos.
func serialSnapshot(s *entity.AssetSerial) map[string]any {
	snap := map[string]any{
		"id":            s.ID,
		"asset_id":      s.AssetID,
		"serial_number": s.SerialNumber,
		"asset_tag":     s.AssetTag,
		"condition":     s.Condition,
		"status":        s.Status,
		"assigned_to":   s.AssignedTo,
		"notes":         s.Notes,
	}
	if s.LastMaintenanceDate != nil {
		snap["last_maintenance_date"] = dto.FormatDate(*s.LastMaintenanceDate)
	}
	if s.NextMaintenanceDate != nil {
		snap["next_maintenance_date"] = dto.FormatDate(*s.NextMaintenanceDate)
	}
	return snap
}

// diffSnapshots valores old/new de las claves que cambiaron.
func diffSnapshots(before, after map[string]any) (map[string]any, map[string]any) {
	oldVals := map[string]any{}
	newVals := map[string]any{}
	for k, newV := range after {
		oldV, had := before[k]
		if !had || oldV != newV {
			oldVals[k] = oldV
			newVals[k] = newV
		}
	}
	return oldVals, newVals
}
