package repository

import "github.com/tu-usuario/inventario-planta/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateQuantity es exclusivo del paso de proyección del motor de inventario.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, total int64) error
	List(limit, offset int) ([]*entity.Product, error)
	// Delete falla con ErrConflict si el producto está referenciado por
	// stock o por la bitácora de movimientos.
	Delete(id string) error
}
