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

var _ repository.AssetSerialRepository = (*AssetSerialRepo)(nil)

const serialColumns = `id, asset_id, serial_number, asset_tag, condition, status,
		assigned_to, notes, last_maintenance_date, next_maintenance_date, created_at, updated_at`

// AssetSerialRepo implementación de AssetSerialRepository sobre PostgreSQL (usable con pool o tx).
type AssetSerialRepo struct {
	q Querier
}

// NewAssetSerialRepository construye el adaptador de unidades serializadas. Pasar pool o tx (Querier).
func NewAssetSerialRepository(q Querier) *AssetSerialRepo {
	return &AssetSerialRepo{q: q}
}

// Create persiste una unidad. serial_number y asset_tag tienen constraint único global.
func (r *AssetSerialRepo) Create(serial *entity.AssetSerial) error {
	query := `
		INSERT INTO asset_serial_numbers (` + serialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		serial.ID, serial.AssetID, serial.SerialNumber, serial.AssetTag, serial.Condition, serial.Status,
		serial.AssignedTo, serial.Notes, serial.LastMaintenanceDate, serial.NextMaintenanceDate,
		serial.CreatedAt, serial.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset serial: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *AssetSerialRepo) GetByID(id string) (*entity.AssetSerial, error) {
	query := `SELECT ` + serialColumns + ` FROM asset_serial_numbers WHERE id = $1`
	var s entity.AssetSerial
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.AssetID, &s.SerialNumber, &s.AssetTag, &s.Condition, &s.Status,
		&s.AssignedTo, &s.Notes, &s.LastMaintenanceDate, &s.NextMaintenanceDate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset serial: %w", err)
	}
	return &s, nil
}

// Update actualiza una unidad existente.
func (r *AssetSerialRepo) Update(serial *entity.AssetSerial) error {
	query := `
		UPDATE asset_serial_numbers SET asset_id = $2, serial_number = $3, asset_tag = $4,
			condition = $5, status = $6, assigned_to = $7, notes = $8,
			last_maintenance_date = $9, next_maintenance_date = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		serial.ID, serial.AssetID, serial.SerialNumber, serial.AssetTag,
		serial.Condition, serial.Status, serial.AssignedTo, serial.Notes,
		serial.LastMaintenanceDate, serial.NextMaintenanceDate, serial.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update asset serial: %w", err)
	}
	return nil
}

// Delete elimina una unidad por ID.
func (r *AssetSerialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM asset_serial_numbers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset serial: %w", err)
	}
	return nil
}

// List lista unidades con filtros opcionales y paginación.
func (r *AssetSerialRepo) List(filter repository.SerialFilter) ([]*entity.AssetSerial, error) {
	query := `SELECT ` + serialColumns + ` FROM asset_serial_numbers
		WHERE ($1 = '' OR asset_id = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR serial_number ILIKE '%' || $3 || '%' OR asset_tag ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		filter.AssetID, filter.Status, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list asset serials: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssetSerial
	for rows.Next() {
		var s entity.AssetSerial
		if err := rows.Scan(
			&s.ID, &s.AssetID, &s.SerialNumber, &s.AssetTag, &s.Condition, &s.Status,
			&s.AssignedTo, &s.Notes, &s.LastMaintenanceDate, &s.NextMaintenanceDate,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset serial: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountByAsset número de unidades registradas para un activo (insumo del guard de capacidad).
func (r *AssetSerialRepo) CountByAsset(assetID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM asset_serial_numbers WHERE asset_id = $1`, assetID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count asset serials: %w", err)
	}
	return count, nil
}

// CountByStatus conteo por estado para la reconciliación de cantidades.
func (r *AssetSerialRepo) CountByStatus(assetID string) (map[string]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT status, COUNT(*) FROM asset_serial_numbers WHERE asset_id = $1 GROUP BY status`, assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("count serials by status: %w", err)
	}
	defer rows.Close()
	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan serial count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
