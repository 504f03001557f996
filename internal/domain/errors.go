package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// CapacityError indica que registrar otra unidad superaría la cantidad declarada del activo.
// Es un rechazo duro, nunca un recorte silencioso.
type CapacityError struct {
	AssetName    string
	CurrentCount int
	MaxQuantity  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"el activo '%s' tiene una cantidad declarada de %d y ya tiene %d unidades registradas",
		e.AssetName, e.MaxQuantity, e.CurrentCount,
	)
}

// ValidationError agrupa errores de validación por campo, rechazados antes de cualquier escritura.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError crea un error de validación con mensaje y campos opcionales.
func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}
