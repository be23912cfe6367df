package repository

import (
	"time"

	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
)

// MovementFilter filtros conjuntivos (AND) para listar la bitácora.
type MovementFilter struct {
	ProductID  string
	UserID     string
	ActionType string // vacío o "ALL" = todos
	FromDate   *time.Time
	ToDate     *time.Time
}

// ProductActionSum agregado por producto de un tipo de acción en una fecha.
type ProductActionSum struct {
	ProductID string
	Total     int64
}

// MovementLogRepository define el puerto de la bitácora de movimientos.
// Append-only: no hay Update ni Delete.
type MovementLogRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListFiltered(filter MovementFilter, limit, offset int) ([]*entity.Movement, error)
	CountFiltered(filter MovementFilter) (int, error)
	// FindOverdueCheckouts devuelve los CHECK_OUT más antiguos que cutoff sin
	// un CHECK_IN posterior del mismo producto (predicado de check-out
	// abierto a nivel de producto, heurístico).
	FindOverdueCheckouts(cutoff time.Time) ([]*entity.Movement, error)
	CountByActionOnDate(actionType string, date time.Time) (int, error)
	SumQuantityByProductAndActionOnDate(actionType string, date time.Time) ([]ProductActionSum, error)
}
