package entity

import "time"

// Módulos conocidos del log de auditoría.
const (
	AuditModuleAssets       = "assets"
	AuditModuleAssetSerials = "asset_serial_numbers"
	AuditModuleBorrowings   = "borrowings"
)

// AuditLog es una entrada del log de auditoría transversal a todos los módulos.
// Acciones constructivas se registran después de la mutación; las destructivas
// antes, para capturar el snapshot previo al borrado.
type AuditLog struct {
	ID        string
	UserID    *string
	Action    string
	Module    string
	OldValues map[string]any
	NewValues map[string]any

	CreatedAt time.Time
}
