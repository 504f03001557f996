package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Activos-api/internal/application/actor"
	"github.com/jhoicas/Activos-api/internal/application/dto"
	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/catalog"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// AssetUseCase CRUD del catálogo de activos. Las lecturas incluyen la
// reconciliación de cantidades: conteos por estado derivados de las unidades
// vivas en cada consulta, nunca un contador almacenado.
type AssetUseCase struct {
	assets  repository.AssetRepository
	serials repository.AssetSerialRepository
	audit   repository.AuditLogRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(assets repository.AssetRepository, serials repository.AssetSerialRepository, audit repository.AuditLogRepository) *AssetUseCase {
	return &AssetUseCase{assets: assets, serials: serials, audit: audit}
}

// Create crea un tipo de activo con su cantidad declarada (techo de capacidad).
func (uc *AssetUseCase) Create(ctx context.Context, act actor.Actor, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if !act.Can(actor.CapManageAssets) {
		return nil, domain.ErrForbidden
	}
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "obligatorio"
	}
	if in.CategoryID == "" {
		fields["category_id"] = "obligatorio"
	}
	if in.Quantity < 0 {
		fields["quantity"] = "debe ser >= 0"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("datos de activo inválidos", fields)
	}

	purchaseDate, err := dto.ParseDatePtr(in.PurchaseDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"purchase_date": "formato esperado YYYY-MM-DD"})
	}
	retirementDate, err := dto.ParseDatePtr(in.RetirementDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"retirement_date": "formato esperado YYYY-MM-DD"})
	}
	warrantyExpiry, err := dto.ParseDatePtr(in.WarrantyExpiryDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"warranty_expiry_date": "formato esperado YYYY-MM-DD"})
	}
	lastCal, err := dto.ParseDatePtr(in.LastCalibrationDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"last_calibration_date": "formato esperado YYYY-MM-DD"})
	}
	nextCal, err := dto.ParseDatePtr(in.NextCalibrationDate)
	if err != nil {
		return nil, domain.NewValidationError("fecha inválida", map[string]string{"next_calibration_date": "formato esperado YYYY-MM-DD"})
	}

	now := time.Now()
	asset := &entity.Asset{
		ID:                        uuid.New().String(),
		CategoryID:                in.CategoryID,
		DepartmentID:              in.DepartmentID,
		Name:                      in.Name,
		Description:               in.Description,
		Quantity:                  in.Quantity,
		MinQuantity:               in.MinQuantity,
		MaxQuantity:               in.MaxQuantity,
		PurchasePrice:             in.PurchasePrice,
		CurrentValue:              in.CurrentValue,
		DepreciationRate:          in.DepreciationRate,
		PurchaseDate:              purchaseDate,
		ExpectedLifespanMonths:    in.ExpectedLifespanMonths,
		RetirementDate:            retirementDate,
		WarrantyExpiryDate:        warrantyExpiry,
		RequiresLicense:           in.RequiresLicense,
		LicenseDetails:            in.LicenseDetails,
		RequiresCalibration:       in.RequiresCalibration,
		LastCalibrationDate:       lastCal,
		NextCalibrationDate:       nextCal,
		CalibrationIntervalMonths: in.CalibrationIntervalMonths,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if err := uc.assets.Create(asset); err != nil {
		return nil, err
	}
	_ = uc.audit.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    act.UserIDPtr(),
		Action:    "created",
		Module:    entity.AuditModuleAssets,
		NewValues: map[string]any{"id": asset.ID, "name": asset.Name, "quantity": asset.Quantity},
		CreatedAt: time.Now(),
	})
	return uc.toResponse(asset)
}

// GetByID obtiene un activo con su reconciliación de cantidades.
func (uc *AssetUseCase) GetByID(ctx context.Context, id string) (*dto.AssetResponse, error) {
	asset, err := uc.assets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(asset)
}

// Update edita un activo. Campos nil no se tocan.
func (uc *AssetUseCase) Update(ctx context.Context, act actor.Actor, id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	if !act.Can(actor.CapManageAssets) {
		return nil, domain.ErrForbidden
	}
	asset, err := uc.assets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID != nil {
		asset.CategoryID = *in.CategoryID
	}
	if in.DepartmentID != nil {
		asset.DepartmentID = in.DepartmentID
	}
	if in.Name != nil {
		asset.Name = *in.Name
	}
	if in.Description != nil {
		asset.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.NewValidationError("datos de activo inválidos", map[string]string{"quantity": "debe ser >= 0"})
		}
		asset.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		asset.MinQuantity = in.MinQuantity
	}
	if in.MaxQuantity != nil {
		asset.MaxQuantity = in.MaxQuantity
	}
	if in.PurchasePrice != nil {
		asset.PurchasePrice = in.PurchasePrice
	}
	if in.CurrentValue != nil {
		asset.CurrentValue = in.CurrentValue
	}
	if in.DepreciationRate != nil {
		asset.DepreciationRate = in.DepreciationRate
	}
	if in.PurchaseDate != nil {
		d, err := dto.ParseDatePtr(in.PurchaseDate)
		if err != nil {
			return nil, domain.NewValidationError("fecha inválida", map[string]string{"purchase_date": "formato esperado YYYY-MM-DD"})
		}
		asset.PurchaseDate = d
	}
	if in.RetirementDate != nil {
		d, err := dto.ParseDatePtr(in.RetirementDate)
		if err != nil {
			return nil, domain.NewValidationError("fecha inválida", map[string]string{"retirement_date": "formato esperado YYYY-MM-DD"})
		}
		asset.RetirementDate = d
	}
	if in.WarrantyExpiryDate != nil {
		d, err := dto.ParseDatePtr(in.WarrantyExpiryDate)
		if err != nil {
			return nil, domain.NewValidationError("fecha inválida", map[string]string{"warranty_expiry_date": "formato esperado YYYY-MM-DD"})
		}
		asset.WarrantyExpiryDate = d
	}
	asset.UpdatedAt = time.Now()
	if err := uc.assets.Update(asset); err != nil {
		return nil, err
	}
	_ = uc.audit.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    act.UserIDPtr(),
		Action:    "updated",
		Module:    entity.AuditModuleAssets,
		NewValues: map[string]any{"id": asset.ID, "name": asset.Name, "quantity": asset.Quantity},
		CreatedAt: time.Now(),
	})
	return uc.toResponse(asset)
}

// Delete borra un activo. Auditoría antes del borrado (acción destructiva).
func (uc *AssetUseCase) Delete(ctx context.Context, act actor.Actor, id string) error {
	if !act.Can(actor.CapManageAssets) {
		return domain.ErrForbidden
	}
	asset, err := uc.assets.GetByID(id)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	if err := uc.audit.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    act.UserIDPtr(),
		Action:    "deleted",
		Module:    entity.AuditModuleAssets,
		OldValues: map[string]any{"id": asset.ID, "name": asset.Name, "quantity": asset.Quantity},
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}
	return uc.assets.Delete(id)
}

// List lista activos con su reconciliación.
func (uc *AssetUseCase) List(ctx context.Context, categoryID, departmentID string, limit, offset int) (*dto.AssetListResponse, error) {
	list, err := uc.assets.List(categoryID, departmentID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		resp, err := uc.toResponse(a)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// toResponse arma la respuesta recalculando conteos y flags desde las unidades.
func (uc *AssetUseCase) toResponse(a *entity.Asset) (*dto.AssetResponse, error) {
	counts, err := uc.serials.CountByStatus(a.ID)
	if err != nil {
		return nil, err
	}
	summary := catalog.SummaryFromCounts(counts)
	now := time.Now()
	return &dto.AssetResponse{
		ID:                  a.ID,
		CategoryID:          a.CategoryID,
		DepartmentID:        a.DepartmentID,
		Name:                a.Name,
		Description:         a.Description,
		Quantity:            a.Quantity,
		MinQuantity:         a.MinQuantity,
		MaxQuantity:         a.MaxQuantity,
		QuantityAvailable:   summary.Available,
		QuantityInUse:       summary.InUse,
		QuantityMaintenance: summary.Maintenance,
		QuantityRetired:     summary.Retired,
		QuantityDisposed:    summary.Disposed,
		IsLowStock:          catalog.IsLowStock(a, summary.Available),
		IsOverStock:         catalog.IsOverStock(a),
		PurchasePrice:       a.PurchasePrice,
		CurrentValue:        a.CurrentValue,
		DepreciationRate:    a.DepreciationRate,
		PurchaseDate:        dto.FormatDatePtr(a.PurchaseDate),
		DepreciatedValue:    catalog.DepreciatedValue(a, now),
		RetirementDate:      dto.FormatDatePtr(a.RetirementDate),
		WarrantyExpiryDate:  dto.FormatDatePtr(a.WarrantyExpiryDate),
		IsUnderWarranty:     catalog.IsUnderWarranty(a, now),
		IsCalibrationDue:    catalog.IsCalibrationDue(a, now),
		IsNearingRetirement: catalog.IsNearingRetirement(a, now),
		RequiresLicense:     a.RequiresLicense,
		LicenseDetails:      a.LicenseDetails,
		RequiresCalibration: a.RequiresCalibration,
	}, nil
}
