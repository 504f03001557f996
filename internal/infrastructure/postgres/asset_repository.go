package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Activos-api/internal/domain"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, category_id, department_id, name, description,
		quantity, min_quantity, max_quantity,
		purchase_price, current_value, depreciation_rate, purchase_date,
		expected_lifespan_months, retirement_date, warranty_expiry_date,
		requires_license, license_details,
		requires_calibration, last_calibration_date, next_calibration_date, calibration_interval_months,
		tag_sequence, created_at, updated_at`

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de persistencia para activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un nuevo activo. TagSequence inicia en 0.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.CategoryID, asset.DepartmentID, asset.Name, asset.Description,
		asset.Quantity, asset.MinQuantity, asset.MaxQuantity,
		asset.PurchasePrice, asset.CurrentValue, asset.DepreciationRate, asset.PurchaseDate,
		asset.ExpectedLifespanMonths, asset.RetirementDate, asset.WarrantyExpiryDate,
		asset.RequiresLicense, asset.LicenseDetails,
		asset.RequiresCalibration, asset.LastCalibrationDate, asset.NextCalibrationDate, asset.CalibrationIntervalMonths,
		asset.TagSequence, asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	return r.get(id, "")
}

// GetForUpdate obtiene un activo bloqueando su fila (SELECT FOR UPDATE).
// Serializa el guard de capacidad frente a inserciones concurrentes de unidades.
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *AssetRepo) get(id, suffix string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1` + suffix
	var a entity.Asset
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CategoryID, &a.DepartmentID, &a.Name, &a.Description,
		&a.Quantity, &a.MinQuantity, &a.MaxQuantity,
		&a.PurchasePrice, &a.CurrentValue, &a.DepreciationRate, &a.PurchaseDate,
		&a.ExpectedLifespanMonths, &a.RetirementDate, &a.WarrantyExpiryDate,
		&a.RequiresLicense, &a.LicenseDetails,
		&a.RequiresCalibration, &a.LastCalibrationDate, &a.NextCalibrationDate, &a.CalibrationIntervalMonths,
		&a.TagSequence, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &a, nil
}

// Update actualiza un activo existente. tag_sequence no se toca aquí (ver NextTagSequence).
func (r *AssetRepo) Update(asset *entity.Asset) error {
	query := `
		UPDATE assets SET category_id = $2, department_id = $3, name = $4, description = $5,
			quantity = $6, min_quantity = $7, max_quantity = $8,
			purchase_price = $9, current_value = $10, depreciation_rate = $11, purchase_date = $12,
			expected_lifespan_months = $13, retirement_date = $14, warranty_expiry_date = $15,
			requires_license = $16, license_details = $17,
			requires_calibration = $18, last_calibration_date = $19, next_calibration_date = $20,
			calibration_interval_months = $21, updated_at = $22
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.CategoryID, asset.DepartmentID, asset.Name, asset.Description,
		asset.Quantity, asset.MinQuantity, asset.MaxQuantity,
		asset.PurchasePrice, asset.CurrentValue, asset.DepreciationRate, asset.PurchaseDate,
		asset.ExpectedLifespanMonths, asset.RetirementDate, asset.WarrantyExpiryDate,
		asset.RequiresLicense, asset.LicenseDetails,
		asset.RequiresCalibration, asset.LastCalibrationDate, asset.NextCalibrationDate,
		asset.CalibrationIntervalMonths, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

// Delete elimina un activo por ID.
func (r *AssetRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// List lista activos con filtros opcionales y paginación.
func (r *AssetRepo) List(categoryID, departmentID string, limit, offset int) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets
		WHERE ($1 = '' OR category_id = $1)
		  AND ($2 = '' OR department_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, categoryID, departmentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		var a entity.Asset
		if err := rows.Scan(
			&a.ID, &a.CategoryID, &a.DepartmentID, &a.Name, &a.Description,
			&a.Quantity, &a.MinQuantity, &a.MaxQuantity,
			&a.PurchasePrice, &a.CurrentValue, &a.DepreciationRate, &a.PurchaseDate,
			&a.ExpectedLifespanMonths, &a.RetirementDate, &a.WarrantyExpiryDate,
			&a.RequiresLicense, &a.LicenseDetails,
			&a.RequiresCalibration, &a.LastCalibrationDate, &a.NextCalibrationDate, &a.CalibrationIntervalMonths,
			&a.TagSequence, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// NextTagSequence incrementa y devuelve el contador durable de tags del activo.
// Se llama con la fila ya bloqueada por GetForUpdate dentro de la misma tx.
func (r *AssetRepo) NextTagSequence(id string) (int, error) {
	var seq int
	err := r.q.QueryRow(context.Background(),
		`UPDATE assets SET tag_sequence = tag_sequence + 1 WHERE id = $1 RETURNING tag_sequence`,
		id,
	).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("next tag sequence: %w", err)
	}
	return seq, nil
}
