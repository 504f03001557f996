package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// BorrowingHistoryRepository puerto del historial append-only de préstamos.
// No hay Update ni Delete: las filas sobreviven incluso al borrado del préstamo.
type BorrowingHistoryRepository interface {
	Create(h *entity.BorrowingHistory) error
	ListByBorrowing(borrowingID string) ([]*entity.BorrowingHistory, error)
}
