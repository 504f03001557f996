package entity

import "time"

// Acciones registradas en el historial de préstamos.
const (
	HistoryActionCreated    = "created"
	HistoryActionApproved   = "approved"
	HistoryActionRejected   = "rejected"
	HistoryActionReturned   = "returned"
	HistoryActionUpdated    = "updated"
	HistoryActionOverridden = "status_overridden"
)

// Change captura el valor anterior y nuevo de un campo editado.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// ChangeSet es el mapa campo -> {old, new} persistido como JSON en el historial.
type ChangeSet map[string]Change

// BorrowingHistory es una fila append-only del historial de un préstamo.
// Exactamente una fila por transición aceptada; sobrevive al borrado del préstamo.
type BorrowingHistory struct {
	ID          string
	BorrowingID string
	UserID      *string // actor; nulo para acciones de sistema
	Action      string
	OldStatus   *string
	NewStatus   *string
	Notes       string
	Changes     ChangeSet

	CreatedAt time.Time
}
