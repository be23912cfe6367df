package repository

import "github.com/tu-usuario/inventario-planta/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByName(name string) (*entity.Location, error)
	List() ([]*entity.Location, error)
	// Delete falla con ErrConflict si la ubicación está referenciada por
	// stock o por traslados en la bitácora.
	Delete(id string) error
	// EnsureDefaults siembra las ubicaciones por defecto (idempotente).
	EnsureDefaults() error
}
