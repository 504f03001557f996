package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.BorrowingRepository = (*BorrowingRepo)(nil)

const borrowingColumns = `id, user_id, borrower_name, department_id, origin_department_id,
		asset_serial_id, computer_id, borrow_date, expected_return_date, return_date,
		status, remarks, created_at, updated_at`

// BorrowingRepo implementación de BorrowingRepository sobre PostgreSQL (usable con pool o tx).
type BorrowingRepo struct {
	q Querier
}

// NewBorrowingRepository construye el adaptador de préstamos. Pasar pool o tx (Querier).
func NewBorrowingRepository(q Querier) *BorrowingRepo {
	return &BorrowingRepo{q: q}
}

// Create persiste un nuevo préstamo.
func (r *BorrowingRepo) Create(b *entity.Borrowing) error {
	query := `
		INSERT INTO borrowings (` + borrowingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.UserID, b.BorrowerName, b.DepartmentID, b.OriginDepartmentID,
		b.AssetSerialID, b.ComputerID, b.BorrowDate, b.ExpectedReturnDate, b.ReturnDate,
		b.Status, b.Remarks, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert borrowing: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *BorrowingRepo) GetByID(id string) (*entity.Borrowing, error) {
	return r.get(id, "")
}

// GetForUpdate obtiene el préstamo bloqueando su fila (SELECT FOR UPDATE), para que
// la transición y su registro en el historial sean atómicos frente a escritores concurrentes.
func (r *BorrowingRepo) GetForUpdate(id string) (*entity.Borrowing, error) {
	return r.get(id, " FOR UPDATE")
}

func (r *BorrowingRepo) get(id, suffix string) (*entity.Borrowing, error) {
	query := `SELECT ` + borrowingColumns + ` FROM borrowings WHERE id = $1` + suffix
	var b entity.Borrowing
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.UserID, &b.BorrowerName, &b.DepartmentID, &b.OriginDepartmentID,
		&b.AssetSerialID, &b.ComputerID, &b.BorrowDate, &b.ExpectedReturnDate, &b.ReturnDate,
		&b.Status, &b.Remarks, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get borrowing: %w", err)
	}
	return &b, nil
}

// Update actualiza un préstamo existente.
func (r *BorrowingRepo) Update(b *entity.Borrowing) error {
	query := `
		UPDATE borrowings SET user_id = $2, borrower_name = $3, department_id = $4,
			origin_department_id = $5, asset_serial_id = $6, computer_id = $7,
			borrow_date = $8, expected_return_date = $9, return_date = $10,
			status = $11, remarks = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.UserID, b.BorrowerName, b.DepartmentID,
		b.OriginDepartmentID, b.AssetSerialID, b.ComputerID,
		b.BorrowDate, b.ExpectedReturnDate, b.ReturnDate,
		b.Status, b.Remarks, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update borrowing: %w", err)
	}
	return nil
}

// Delete elimina un préstamo por ID. El historial no se toca (sin FK en cascada).
func (r *BorrowingRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM borrowings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete borrowing: %w", err)
	}
	return nil
}

// List lista préstamos con filtros opcionales, scoping de visibilidad y paginación.
func (r *BorrowingRepo) List(filter repository.BorrowingFilter) ([]*entity.Borrowing, error) {
	query := `SELECT ` + borrowingColumns + ` FROM borrowings
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR user_id = $2)
		  AND ($3 = '' OR department_id = $3)
		  AND ($4 = '' OR department_id = $4 OR origin_department_id = $4)
		  AND ($5 = '' OR user_id = $5)
		ORDER BY created_at DESC LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(context.Background(), query,
		filter.Status, filter.UserID, filter.DepartmentID,
		filter.ScopeDepartmentID, filter.ScopeUserID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list borrowings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Borrowing
	for rows.Next() {
		var b entity.Borrowing
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.BorrowerName, &b.DepartmentID, &b.OriginDepartmentID,
			&b.AssetSerialID, &b.ComputerID, &b.BorrowDate, &b.ExpectedReturnDate, &b.ReturnDate,
			&b.Status, &b.Remarks, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan borrowing: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ActiveExistsForSerial indica si la unidad tiene un préstamo en estado pending o borrowed.
func (r *BorrowingRepo) ActiveExistsForSerial(serialID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (
			SELECT 1 FROM borrowings
			WHERE asset_serial_id = $1 AND status IN ('pending', 'borrowed')
		)`, serialID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("active borrowing exists: %w", err)
	}
	return exists, nil
}
