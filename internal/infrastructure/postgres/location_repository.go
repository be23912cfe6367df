package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación. Nombre duplicado devuelve domain.ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `INSERT INTO locations (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, location.ID, location.Name, location.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT id, name, created_at FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, id).Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// GetByName obtiene una ubicación por nombre exacto.
func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	query := `SELECT id, name, created_at FROM locations WHERE name = $1`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, name).Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by name: %w", err)
	}
	return &l, nil
}

// List lista todas las ubicaciones ordenadas por nombre.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, created_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina una ubicación no referenciada. Stock o traslados que la
// apuntan devuelven domain.ErrConflict.
func (r *LocationRepo) Delete(id string) error {
	ctx := context.Background()
	var referenced bool
	query := `
		SELECT EXISTS (SELECT 1 FROM stock_entries WHERE location_id = $1)
		    OR EXISTS (SELECT 1 FROM movements WHERE from_location_id = $1 OR to_location_id = $1)`
	if err := r.q.QueryRow(ctx, query, id).Scan(&referenced); err != nil {
		return fmt.Errorf("check location references: %w", err)
	}
	if referenced {
		return domain.ErrConflict
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureDefaults siembra las ubicaciones por defecto. Idempotente: el nombre
// único absorbe los conflictos de arranques repetidos.
func (r *LocationRepo) EnsureDefaults() error {
	ctx := context.Background()
	query := `
		INSERT INTO locations (id, name, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO NOTHING`
	for _, name := range entity.DefaultLocationNames {
		if _, err := r.q.Exec(ctx, query, uuid.New().String(), name); err != nil {
			return fmt.Errorf("seed location %q: %w", name, err)
		}
	}
	return nil
}
