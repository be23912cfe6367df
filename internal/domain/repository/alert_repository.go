package repository

import (
	"time"

	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
)

// AlertFilter filtros conjuntivos (AND) para listar alertas.
type AlertFilter struct {
	ProductID string
	Status    string // vacío o "ALL" = todos
	FromDate  *time.Time
	ToDate    *time.Time
}

// AlertRepository define el puerto de persistencia para Alert.
type AlertRepository interface {
	Create(alert *entity.Alert) error
	GetByID(id string) (*entity.Alert, error)
	ListFiltered(filter AlertFilter, limit, offset int) ([]*entity.Alert, error)
	CountFiltered(filter AlertFilter) (int, error)
	ListUnresolved() ([]*entity.Alert, error)
	// ExistsUnresolvedForLog indica si ya hay una alerta sin resolver que
	// referencia ese movimiento (deduplicación del escaneo).
	ExistsUnresolvedForLog(logID string) (bool, error)
	// MarkResolved transición UNRESOLVED -> RESOLVED con sello de usuario y hora.
	MarkResolved(alertID, resolvedBy string, resolvedAt time.Time) error
	CountUnresolved() (int, error)
	CountCreatedOnDate(date time.Time) (int, error)
}
