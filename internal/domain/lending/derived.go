// Package lending contiene servicios de dominio puros del ciclo de préstamos:
// campos derivados de lectura y reglas de la máquina de estados.
package lending

import (
	"math"
	"time"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

// DaysBorrowed días completos entre borrow_date y return_date (o now si no hay devolución).
// Puede ser negativo si las fechas están invertidas; se conserva, no es error.
func DaysBorrowed(b *entity.Borrowing, now time.Time) int {
	end := now
	if b.ReturnDate != nil {
		end = *b.ReturnDate
	}
	return wholeDays(b.BorrowDate, end)
}

// IsOverdue indica préstamo vencido: no devuelto y fecha esperada en el pasado.
func IsOverdue(b *entity.Borrowing, now time.Time) bool {
	return b.Status != entity.BorrowingStatusReturned && now.After(b.ExpectedReturnDate)
}

// DaysOverdue días completos de atraso; solo tiene sentido cuando IsOverdue es true.
func DaysOverdue(b *entity.Borrowing, now time.Time) int {
	if !IsOverdue(b, now) {
		return 0
	}
	return wholeDays(b.ExpectedReturnDate, now)
}

// InitialStatus resuelve el estado inicial de un préstamo nuevo:
// solicitante y origen conocidos y distintos -> pending; si no, el estado
// explícito del caller o borrowed por defecto.
func InitialStatus(requesterDept, originDept *string, explicit string) string {
	if originDept != nil && requesterDept != nil && *originDept != *requesterDept {
		return entity.BorrowingStatusPending
	}
	if explicit != "" {
		return explicit
	}
	return entity.BorrowingStatusBorrowed
}

func wholeDays(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
