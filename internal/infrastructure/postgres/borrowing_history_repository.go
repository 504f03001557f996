package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.BorrowingHistoryRepository = (*BorrowingHistoryRepo)(nil)

// BorrowingHistoryRepo implementación del historial append-only de préstamos.
// No expone Update ni Delete: las filas sobreviven al borrado del préstamo.
type BorrowingHistoryRepo struct {
	q Querier
}

// NewBorrowingHistoryRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewBorrowingHistoryRepository(q Querier) *BorrowingHistoryRepo {
	return &BorrowingHistoryRepo{q: q}
}

// Create persiste una fila del historial. Changes se serializa como JSONB.
func (r *BorrowingHistoryRepo) Create(h *entity.BorrowingHistory) error {
	var changes []byte
	if len(h.Changes) > 0 {
		var err error
		changes, err = json.Marshal(h.Changes)
		if err != nil {
			return fmt.Errorf("marshal changes: %w", err)
		}
	}
	query := `
		INSERT INTO borrowing_histories (id, borrowing_id, user_id, action, old_status, new_status, notes, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.BorrowingID, h.UserID, h.Action, h.OldStatus, h.NewStatus, h.Notes, changes, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert borrowing history: %w", err)
	}
	return nil
}

// ListByBorrowing lista el historial de un préstamo, más reciente primero.
func (r *BorrowingHistoryRepo) ListByBorrowing(borrowingID string) ([]*entity.BorrowingHistory, error) {
	query := `
		SELECT id, borrowing_id, user_id, action, old_status, new_status, notes, changes, created_at
		FROM borrowing_histories WHERE borrowing_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, borrowingID)
	if err != nil {
		return nil, fmt.Errorf("list borrowing history: %w", err)
	}
	defer rows.Close()
	var list []*entity.BorrowingHistory
	for rows.Next() {
		var h entity.BorrowingHistory
		var changes []byte
		if err := rows.Scan(
			&h.ID, &h.BorrowingID, &h.UserID, &h.Action, &h.OldStatus, &h.NewStatus,
			&h.Notes, &changes, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan borrowing history: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &h.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal changes: %w", err)
			}
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
