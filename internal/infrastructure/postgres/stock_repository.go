package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetQuantity obtiene la cantidad actual; la ausencia de fila es 0, no error.
func (r *StockRepo) GetQuantity(productID, locationID string) (int64, error) {
	query := `
		SELECT quantity FROM stock_entries
		WHERE product_id = $1 AND location_id = $2`
	var qty int64
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get quantity: %w", err)
	}
	return qty, nil
}

// GetQuantityForUpdate obtiene la cantidad y bloquea la fila (SELECT FOR UPDATE).
// Una fila ausente no se puede bloquear, así que primero se materializa en
// cero con ON CONFLICT DO NOTHING: dos primeras entradas concurrentes del
// mismo par se serializan sobre esa fila en lugar de leer ambas "sin fila" y
// pisarse el upsert. Las filas en cero que queden las retira CleanupZeroRows
// dentro de la misma transacción. Espera acotada por el lock_timeout; al
// agotarse devuelve domain.ErrLockTimeout.
func (r *StockRepo) GetQuantityForUpdate(productID, locationID string) (int64, error) {
	seed := `
		INSERT INTO stock_entries (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, productID, locationID); err != nil {
		if isLockNotAvailable(err) {
			return 0, domain.ErrLockTimeout
		}
		return 0, fmt.Errorf("seed stock row: %w", err)
	}
	query := `
		SELECT quantity FROM stock_entries
		WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var qty int64
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		if isLockNotAvailable(err) {
			return 0, domain.ErrLockTimeout
		}
		return 0, fmt.Errorf("get quantity for update: %w", err)
	}
	return qty, nil
}

// Increment aplica un delta con signo. El valor nuevo se calcula en la
// aplicación tras la lectura bajo bloqueo, no con un clamp escondido en SQL:
// fila nueva max(0, delta); fila existente max(0, cantidad+delta).
func (r *StockRepo) Increment(productID, locationID string, delta int64) error {
	current, err := r.GetQuantityForUpdate(productID, locationID)
	if err != nil {
		return err
	}
	newQty := current + delta
	if newQty < 0 {
		// Último recurso contra deriva; la guarda real es la pre-verificación
		// del motor de inventario.
		newQty = 0
	}
	query := `
		INSERT INTO stock_entries (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(context.Background(), query, productID, locationID, newQty); err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// SumForProduct suma el stock del producto en todas las ubicaciones.
func (r *StockRepo) SumForProduct(productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM stock_entries
		WHERE product_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum for product: %w", err)
	}
	return total, nil
}

// CleanupZeroRows borra filas con cantidad <= 0 (higiene de almacenamiento).
func (r *StockRepo) CleanupZeroRows() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM stock_entries WHERE quantity <= 0`); err != nil {
		return fmt.Errorf("cleanup zero rows: %w", err)
	}
	return nil
}

// ListByProduct stock del producto por ubicación, con nombre resuelto (qty > 0).
func (r *StockRepo) ListByProduct(productID string) ([]*entity.LocationStock, error) {
	query := `
		SELECT l.id, l.name, s.quantity
		FROM stock_entries s
		JOIN locations l ON l.id = s.location_id
		WHERE s.product_id = $1 AND s.quantity > 0
		ORDER BY l.name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocationStock
	for rows.Next() {
		var s entity.LocationStock
		if err := rows.Scan(&s.LocationID, &s.LocationName, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan location stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByLocation stock de la ubicación por producto, con metadatos resueltos (qty > 0).
func (r *StockRepo) ListByLocation(locationID string) ([]*entity.ProductStock, error) {
	query := `
		SELECT p.id, p.name, p.unit, s.quantity
		FROM stock_entries s
		JOIN products p ON p.id = s.product_id
		WHERE s.location_id = $1 AND s.quantity > 0
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductStock
	for rows.Next() {
		var s entity.ProductStock
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Unit, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan product stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
