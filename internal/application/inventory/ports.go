package inventory

import (
	"context"

	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: o se confirma todo (stock + proyección + bitácora) o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementLogRepository,
		productRepo repository.ProductRepository,
	) error) error
}
