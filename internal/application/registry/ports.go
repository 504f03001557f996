package registry

import (
	"context"

	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Hace atómicos el guard de capacidad y el insert de la unidad
// frente a altas concurrentes sobre el mismo activo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		serialRepo repository.AssetSerialRepository,
		assetRepo repository.AssetRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
