package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// BorrowingFilter filtros de listado de préstamos.
type BorrowingFilter struct {
	Status       string
	UserID       string
	DepartmentID string
	// ScopeDepartmentID limita a préstamos donde el departamento solicitante
	// u origen coincide (visibilidad departamental).
	ScopeDepartmentID string
	// ScopeUserID limita a préstamos propios del usuario.
	ScopeUserID string
	Limit       int
	Offset      int
}

// BorrowingRepository puerto de persistencia para préstamos.
type BorrowingRepository interface {
	Create(b *entity.Borrowing) error
	GetByID(id string) (*entity.Borrowing, error)
	// GetForUpdate obtiene el préstamo bloqueando su fila, para que la transición
	// y su registro en el historial sean atómicos frente a escritores concurrentes.
	GetForUpdate(id string) (*entity.Borrowing, error)
	Update(b *entity.Borrowing) error
	Delete(id string) error
	List(filter BorrowingFilter) ([]*entity.Borrowing, error)
	// ActiveExistsForSerial indica si la unidad tiene un préstamo en estado
	// pending o borrowed (insumo del estado efectivo derivado).
	ActiveExistsForSerial(serialID string) (bool, error)
}
