package entity

import "time"

// Estados de un préstamo.
const (
	BorrowingStatusPending  = "pending"
	BorrowingStatusBorrowed = "borrowed"
	BorrowingStatusReturned = "returned"
	BorrowingStatusLost     = "lost"
	BorrowingStatusRejected = "rejected"
)

// ValidBorrowingStatus indica si s es un estado de préstamo reconocido.
func ValidBorrowingStatus(s string) bool {
	switch s {
	case BorrowingStatusPending, BorrowingStatusBorrowed, BorrowingStatusReturned,
		BorrowingStatusLost, BorrowingStatusRejected:
		return true
	}
	return false
}

// TerminalBorrowingStatus indica si s es un estado final (sin re-entrada).
func TerminalBorrowingStatus(s string) bool {
	return s == BorrowingStatusReturned || s == BorrowingStatusRejected
}

// Borrowing representa un préstamo de una unidad serializada o de un computador.
// Exactamente uno de UserID/BorrowerName y exactamente uno de AssetSerialID/ComputerID.
// OriginDepartmentID es un snapshot al momento de la creación del departamento
// propietario del ítem; no se recalcula aunque el ítem cambie de dueño después.
type Borrowing struct {
	ID           string
	UserID       *string
	BorrowerName *string
	DepartmentID *string // departamento solicitante

	OriginDepartmentID *string

	AssetSerialID *string
	ComputerID    *string

	BorrowDate         time.Time
	ExpectedReturnDate time.Time
	ReturnDate         *time.Time

	Status  string
	Remarks string

	CreatedAt time.Time
	UpdatedAt time.Time
}
