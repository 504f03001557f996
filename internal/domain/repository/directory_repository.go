package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// Puertos de directorio: lecturas por id para los colaboradores externos al núcleo.

// UserRepository lookup de usuarios.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
}

// DepartmentRepository lookup de departamentos.
type DepartmentRepository interface {
	GetByID(id string) (*entity.Department, error)
	List(limit, offset int) ([]*entity.Department, error)
}

// CategoryRepository lookup de categorías.
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
	List(limit, offset int) ([]*entity.Category, error)
}

// ComputerRepository lookup de computadores.
type ComputerRepository interface {
	GetByID(id string) (*entity.Computer, error)
	List(departmentID string, limit, offset int) ([]*entity.Computer, error)
}
