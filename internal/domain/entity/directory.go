package entity

import "time"

// Entidades de directorio: colaboradores de solo lectura para el núcleo de préstamos.

// User usuario del sistema (la autenticación vive fuera de este núcleo).
type User struct {
	ID           string
	Name         string
	Email        string
	DepartmentID *string
	CreatedAt    time.Time
}

// Department departamento organizacional, propietario de activos y solicitante de préstamos.
type Department struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Category categoría del catálogo de activos.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Computer equipo de cómputo prestable directamente (sin pasar por el registro de seriales).
type Computer struct {
	ID           string
	Name         string
	SerialNumber string
	DepartmentID *string
	Status       string
	CreatedAt    time.Time
}
