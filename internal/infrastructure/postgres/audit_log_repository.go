package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del log de auditoría append-only sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador del log de auditoría. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada. Los snapshots old/new se serializan como JSONB.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	oldValues, err := marshalValues(log.OldValues)
	if err != nil {
		return err
	}
	newValues, err := marshalValues(log.NewValues)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO audit_logs (id, user_id, action, module, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(context.Background(), query,
		log.ID, log.UserID, log.Action, log.Module, oldValues, newValues, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List consulta entradas con filtros y devuelve también el total sin paginar.
// La búsqueda de texto libre aplica sobre la representación textual de los payloads JSON.
func (r *AuditLogRepo) List(filter repository.AuditLogFilter) ([]*entity.AuditLog, int, error) {
	where := `
		WHERE ($1 = '' OR module = $1)
		  AND ($2 = '' OR action = $2)
		  AND ($3 = '' OR user_id = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)
		  AND ($6 = '' OR old_values::text ILIKE '%' || $6 || '%' OR new_values::text ILIKE '%' || $6 || '%')`

	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM audit_logs`+where,
		filter.Module, filter.Action, filter.UserID, filter.StartDate, filter.EndDate, filter.Search,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query := `
		SELECT id, user_id, action, module, old_values, new_values, created_at
		FROM audit_logs` + where + `
		ORDER BY created_at DESC LIMIT $7 OFFSET $8`
	rows, err := r.q.Query(context.Background(), query,
		filter.Module, filter.Action, filter.UserID, filter.StartDate, filter.EndDate, filter.Search,
		filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var oldValues, newValues []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Module, &oldValues, &newValues, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		if err := unmarshalValues(oldValues, &l.OldValues); err != nil {
			return nil, 0, err
		}
		if err := unmarshalValues(newValues, &l.NewValues); err != nil {
			return nil, 0, err
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// Modules módulos distintos presentes en el log.
func (r *AuditLogRepo) Modules() ([]string, error) {
	return r.distinct("module")
}

// Actions acciones distintas presentes en el log.
func (r *AuditLogRepo) Actions() ([]string, error) {
	return r.distinct("action")
}

func (r *AuditLogRepo) distinct(column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM audit_logs ORDER BY %s`, column, column)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func marshalValues(values map[string]any) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal audit values: %w", err)
	}
	return b, nil
}

func unmarshalValues(raw []byte, dst *map[string]any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal audit values: %w", err)
	}
	return nil
}
