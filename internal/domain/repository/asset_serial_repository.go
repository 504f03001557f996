package repository

import "github.com/jhoicas/Activos-api/internal/domain/entity"

// SerialFilter filtros de listado de unidades serializadas.
type SerialFilter struct {
	AssetID string
	Status  string
	Search  string // contención sobre serial_number
	Limit   int
	Offset  int
}

// AssetSerialRepository puerto de persistencia para unidades serializadas.
type AssetSerialRepository interface {
	Create(serial *entity.AssetSerial) error
	GetByID(id string) (*entity.AssetSerial, error)
	Update(serial *entity.AssetSerial) error
	Delete(id string) error
	List(filter SerialFilter) ([]*entity.AssetSerial, error)
	// CountByAsset número de unidades registradas para un activo (insumo del guard de capacidad).
	CountByAsset(assetID string) (int, error)
	// CountByStatus conteo por estado (GROUP BY status) para la reconciliación de cantidades.
	CountByStatus(assetID string) (map[string]int, error)
}
