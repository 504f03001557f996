package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Activos-api/internal/application/borrowing"
	"github.com/jhoicas/Activos-api/internal/application/registry"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ registry.TxRunner = (*RegistryTxRunner)(nil)
var _ borrowing.TxRunner = (*BorrowingTxRunner)(nil)

// RegistryTxRunner ejecuta callbacks del registro de unidades dentro de una
// transacción PostgreSQL (guard de capacidad + tag + inserción + auditoría).
type RegistryTxRunner struct {
	pool *pgxpool.Pool
}

// NewRegistryTxRunner construye el runner con el pool.
func NewRegistryTxRunner(pool *pgxpool.Pool) *RegistryTxRunner {
	return &RegistryTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *RegistryTxRunner) Run(ctx context.Context, fn func(
	serialRepo repository.AssetSerialRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAssetSerialRepository(tx), NewAssetRepository(tx), NewAuditLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// BorrowingTxRunner ejecuta callbacks del workflow de préstamos dentro de una
// transacción PostgreSQL (transición + historial + auditoría, atómicos).
type BorrowingTxRunner struct {
	pool *pgxpool.Pool
}

// NewBorrowingTxRunner construye el runner con el pool.
func NewBorrowingTxRunner(pool *pgxpool.Pool) *BorrowingTxRunner {
	return &BorrowingTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *BorrowingTxRunner) Run(ctx context.Context, fn func(
	borrowingRepo repository.BorrowingRepository,
	historyRepo repository.BorrowingHistoryRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBorrowingRepository(tx), NewBorrowingHistoryRepository(tx), NewAuditLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
