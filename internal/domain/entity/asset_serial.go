package entity

import "time"

// Estados de una unidad serializada.
const (
	SerialStatusAvailable   = "available"
	SerialStatusInUse       = "in_use"
	SerialStatusMaintenance = "maintenance"
	SerialStatusRetired     = "retired"
	SerialStatusDisposed    = "disposed"
)

// ValidSerialStatus indica si s es un estado de unidad reconocido.
func ValidSerialStatus(s string) bool {
	switch s {
	case SerialStatusAvailable, SerialStatusInUse, SerialStatusMaintenance,
		SerialStatusRetired, SerialStatusDisposed:
		return true
	}
	return false
}

// AssetSerial representa una unidad física individual de un Asset.
// SerialNumber y AssetTag son únicos a nivel global.
// El motor de préstamos nunca escribe Status; la disponibilidad efectiva
// se deriva en lectura a partir del préstamo abierto más reciente.
type AssetSerial struct {
	ID           string
	AssetID      string
	SerialNumber string
	AssetTag     string
	Condition    string
	Status       string
	AssignedTo   string
	Notes        string

	LastMaintenanceDate *time.Time
	NextMaintenanceDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
