// Package actor define el contexto explícito del actor que ejecuta cada operación.
// Reemplaza cualquier lectura ambiental de "usuario actual": todos los casos de uso
// reciben un Actor y deciden autorización contra sus capacidades.
package actor

// Capacidades reconocidas (mismos nombres que el almacén de permisos externo).
const (
	CapViewAllBorrowings        = "view all borrowings"
	CapViewDepartmentBorrowings = "view department borrowings"
	CapViewOwnBorrowings        = "view own borrowings"
	CapCreateBorrowings         = "create borrowings"
	CapEditBorrowings           = "edit borrowings"
	CapDeleteBorrowings         = "delete borrowings"
	CapApproveBorrowings        = "approve borrowing requests"
	CapRejectBorrowings         = "reject borrowing requests"
	CapReturnBorrowedItems      = "return borrowed items"
	CapManageAssets             = "manage assets"
	CapManageSerialNumbers      = "manage serial numbers"
	CapViewAuditLogs            = "view audit logs"
)

// Actor identidad y capacidades del solicitante de una operación.
type Actor struct {
	UserID       string
	DepartmentID *string
	capabilities map[string]struct{}
}

// New construye un actor con sus capacidades.
func New(userID string, departmentID *string, capabilities ...string) Actor {
	caps := make(map[string]struct{}, len(capabilities))
	for _, c := range capabilities {
		caps[c] = struct{}{}
	}
	return Actor{UserID: userID, DepartmentID: departmentID, capabilities: caps}
}

// Can indica si el actor tiene la capacidad dada.
func (a Actor) Can(capability string) bool {
	_, ok := a.capabilities[capability]
	return ok
}

// CanAny indica si el actor tiene al menos una de las capacidades dadas.
func (a Actor) CanAny(capabilities ...string) bool {
	for _, c := range capabilities {
		if a.Can(c) {
			return true
		}
	}
	return false
}

// Capabilities devuelve la lista de capacidades (para serializar en el token).
func (a Actor) Capabilities() []string {
	out := make([]string, 0, len(a.capabilities))
	for c := range a.capabilities {
		out = append(out, c)
	}
	return out
}

// UserIDPtr devuelve el UserID como puntero, o nil si está vacío (filas de historial).
func (a Actor) UserIDPtr() *string {
	if a.UserID == "" {
		return nil
	}
	id := a.UserID
	return &id
}
