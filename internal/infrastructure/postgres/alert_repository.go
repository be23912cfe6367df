package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, product_id, log_id, alert_type, message, status, created_at, resolved_at, resolved_by`

// Create persiste una alerta nueva.
func (r *AlertRepo) Create(alert *entity.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ProductID, alert.LogID, alert.AlertType, alert.Message,
		alert.Status, alert.CreatedAt, alert.ResolvedAt, alert.ResolvedBy,
	)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(id string) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	var a entity.Alert
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ProductID, &a.LogID, &a.AlertType, &a.Message,
		&a.Status, &a.CreatedAt, &a.ResolvedAt, &a.ResolvedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

// ListFiltered lista alertas con filtros conjuntivos y paginación.
func (r *AlertRepo) ListFiltered(filter repository.AlertFilter, limit, offset int) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE 1=1`
	query, args := appendAlertFilter(query, nil, filter)
	pos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// CountFiltered cuenta las alertas que cumplen el filtro.
func (r *AlertRepo) CountFiltered(filter repository.AlertFilter) (int, error) {
	query := `SELECT COUNT(*) FROM alerts WHERE 1=1`
	query, args := appendAlertFilter(query, nil, filter)
	var count int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return count, nil
}

// ListUnresolved lista las alertas pendientes, más recientes primero.
func (r *AlertRepo) ListUnresolved() ([]*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM alerts
		WHERE status = 'UNRESOLVED'
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list unresolved alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ExistsUnresolvedForLog deduplicación del escaneo: ya hay alerta pendiente
// para ese movimiento.
func (r *AlertRepo) ExistsUnresolvedForLog(logID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE status = 'UNRESOLVED' AND log_id = $1
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, logID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists unresolved for log: %w", err)
	}
	return exists, nil
}

// MarkResolved transición UNRESOLVED -> RESOLVED. La condición de estado en el
// WHERE cierra la carrera entre dos resoluciones concurrentes: la segunda no
// afecta filas y recibe ErrAlreadyResolved.
func (r *AlertRepo) MarkResolved(alertID, resolvedBy string, resolvedAt time.Time) error {
	query := `
		UPDATE alerts
		SET status = 'RESOLVED', resolved_at = $1, resolved_by = $2
		WHERE id = $3 AND status = 'UNRESOLVED'`
	tag, err := r.q.Exec(context.Background(), query, resolvedAt, resolvedBy, alertID)
	if err != nil {
		return fmt.Errorf("mark resolved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyResolved
	}
	return nil
}

// CountUnresolved cuenta las alertas pendientes.
func (r *AlertRepo) CountUnresolved() (int, error) {
	var count int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM alerts WHERE status = 'UNRESOLVED'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unresolved alerts: %w", err)
	}
	return count, nil
}

// CountCreatedOnDate cuenta alertas creadas en una fecha.
func (r *AlertRepo) CountCreatedOnDate(date time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM alerts WHERE created_at::date = $1::date`
	var count int
	if err := r.q.QueryRow(context.Background(), query, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("count alerts on date: %w", err)
	}
	return count, nil
}

func scanAlerts(rows pgx.Rows) ([]*entity.Alert, error) {
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.LogID, &a.AlertType, &a.Message,
			&a.Status, &a.CreatedAt, &a.ResolvedAt, &a.ResolvedBy); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// appendAlertFilter añade las condiciones opcionales del filtro y sus args.
func appendAlertFilter(query string, args []any, filter repository.AlertFilter) (string, []any) {
	pos := len(args) + 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Status != "" && filter.Status != "ALL" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.FromDate)
		pos++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.ToDate)
		pos++
	}
	return query, args
}
