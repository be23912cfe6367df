package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

// MovementLogRepo implementación de la bitácora sobre PostgreSQL (usable con pool o tx).
// Append-only: no expone update ni delete.
type MovementLogRepo struct {
	q Querier
}

// NewMovementLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementLogRepository(q Querier) *MovementLogRepo {
	return &MovementLogRepo{q: q}
}

const movementColumns = `id, product_id, user_id, action_type, quantity, timestamp, notes, from_location_id, to_location_id`

// Create persiste una entrada de la bitácora.
func (r *MovementLogRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.UserID, movement.ActionType,
		movement.Quantity, movement.Timestamp, movement.Notes,
		movement.FromLocationID, movement.ToLocationID,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *MovementLogRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.UserID, &m.ActionType, &m.Quantity,
		&m.Timestamp, &m.Notes, &m.FromLocationID, &m.ToLocationID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListFiltered lista la bitácora con filtros conjuntivos y paginación.
func (r *MovementLogRepo) ListFiltered(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	query, args := appendMovementFilter(query, nil, filter)
	pos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.UserID, &m.ActionType, &m.Quantity,
			&m.Timestamp, &m.Notes, &m.FromLocationID, &m.ToLocationID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountFiltered cuenta las entradas que cumplen el filtro.
func (r *MovementLogRepo) CountFiltered(filter repository.MovementFilter) (int, error) {
	query := `SELECT COUNT(*) FROM movements WHERE 1=1`
	query, args := appendMovementFilter(query, nil, filter)
	var count int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

// FindOverdueCheckouts devuelve los CHECK_OUT anteriores a cutoff sin un
// CHECK_IN posterior del mismo producto (check-out abierto, heurística a
// nivel de producto).
func (r *MovementLogRepo) FindOverdueCheckouts(cutoff time.Time) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE action_type = 'CHECK_OUT'
		  AND timestamp < $1
		  AND NOT EXISTS (
			SELECT 1 FROM movements m2
			WHERE m2.product_id = movements.product_id
			  AND m2.action_type = 'CHECK_IN'
			  AND m2.timestamp > movements.timestamp
		  )
		ORDER BY timestamp DESC`
	rows, err := r.q.Query(context.Background(), query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("find overdue checkouts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.UserID, &m.ActionType, &m.Quantity,
			&m.Timestamp, &m.Notes, &m.FromLocationID, &m.ToLocationID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByActionOnDate cuenta movimientos de un tipo en una fecha (día local de la BD).
func (r *MovementLogRepo) CountByActionOnDate(actionType string, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM movements
		WHERE action_type = $1 AND timestamp::date = $2::date`
	var count int
	if err := r.q.QueryRow(context.Background(), query, actionType, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by action on date: %w", err)
	}
	return count, nil
}

// SumQuantityByProductAndActionOnDate suma cantidades por producto de un tipo
// de acción en una fecha.
func (r *MovementLogRepo) SumQuantityByProductAndActionOnDate(actionType string, date time.Time) ([]repository.ProductActionSum, error) {
	query := `
		SELECT product_id, COALESCE(SUM(quantity), 0)
		FROM movements
		WHERE action_type = $1 AND timestamp::date = $2::date
		GROUP BY product_id`
	rows, err := r.q.Query(context.Background(), query, actionType, date)
	if err != nil {
		return nil, fmt.Errorf("sum by product and action: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductActionSum
	for rows.Next() {
		var s repository.ProductActionSum
		if err := rows.Scan(&s.ProductID, &s.Total); err != nil {
			return nil, fmt.Errorf("scan product action sum: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// appendMovementFilter añade las condiciones opcionales del filtro y sus args.
func appendMovementFilter(query string, args []any, filter repository.MovementFilter) (string, []any) {
	pos := len(args) + 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, filter.UserID)
		pos++
	}
	if filter.ActionType != "" && filter.ActionType != "ALL" {
		query += fmt.Sprintf(" AND action_type = $%d", pos)
		args = append(args, filter.ActionType)
		pos++
	}
	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", pos)
		args = append(args, *filter.FromDate)
		pos++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", pos)
		args = append(args, *filter.ToDate)
		pos++
	}
	return query, args
}
