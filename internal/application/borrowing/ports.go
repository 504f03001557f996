package borrowing

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que cada transición, su fila de historial y su entrada
// de auditoría se confirmen o deshagan juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		borrowingRepo repository.BorrowingRepository,
		historyRepo repository.BorrowingHistoryRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
