package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// AssetRepository puerto de persistencia para el catálogo de activos.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	// GetForUpdate obtiene el activo bloqueando su fila (SELECT FOR UPDATE).
	// Serializa el guard de capacidad frente a inserciones concurrentes de unidades.
	GetForUpdate(id string) (*entity.Asset, error)
	Update(asset *entity.Asset) error
	Delete(id string) error
	List(categoryID, departmentID string, limit, offset int) ([]*entity.Asset, error)
	// NextTagSequence incrementa y devuelve el contador durable de tags del activo.
	// Nunca retrocede, aunque se borren unidades.
	NextTagSequence(id string) (int, error)
}
