package repository

import "github.com/tu-usuario/inventario-planta/internal/domain/entity"

// StockRepository define el puerto del libro de stock por (producto, ubicación).
// Las mutaciones solo tienen sentido dentro de una transacción (TxRunner).
type StockRepository interface {
	// GetQuantity devuelve la cantidad actual; la ausencia de fila es 0, no error.
	GetQuantity(productID, locationID string) (int64, error)
	// GetQuantityForUpdate bloquea la fila (SELECT FOR UPDATE) y devuelve la
	// cantidad. Serializa mutaciones concurrentes sobre el mismo par; si el
	// bloqueo excede el límite configurado devuelve ErrLockTimeout.
	GetQuantityForUpdate(productID, locationID string) (int64, error)
	// Increment aplica un delta con signo. Fila nueva: max(0, delta).
	// Fila existente: max(0, cantidad+delta). El clamp es último recurso
	// contra deriva; la guarda real de stock negativo es la pre-verificación
	// del motor bajo bloqueo.
	Increment(productID, locationID string, delta int64) error
	// SumForProduct suma el stock del producto en todas las ubicaciones
	// (refresco de la proyección Product.Quantity).
	SumForProduct(productID string) (int64, error)
	// CleanupZeroRows borra filas con cantidad <= 0 (higiene de almacenamiento,
	// segura dentro de la misma transacción de una mutación).
	CleanupZeroRows() error

	// Consultas de solo lectura para la capa de presentación.
	ListByProduct(productID string) ([]*entity.LocationStock, error)
	ListByLocation(locationID string) ([]*entity.ProductStock, error)
}
