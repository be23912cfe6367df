package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// DefaultOverdueHours umbral por defecto para considerar vencido un check-out.
const DefaultOverdueHours = 2

// UseCase deriva alertas de la bitácora de movimientos y las resuelve.
// Un check-out se considera abierto si ningún CHECK_IN del mismo producto
// ocurrió después de él: es una heurística a nivel de producto, no una
// conciliación por unidad (ver nota en DESIGN.md).
type UseCase struct {
	alertRepo   repository.AlertRepository
	movRepo     repository.MovementLogRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewUseCase construye el motor de alertas.
func NewUseCase(alertRepo repository.AlertRepository, movRepo repository.MovementLogRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{
		alertRepo:   alertRepo,
		movRepo:     movRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// ScanOverdueCheckouts busca check-outs más antiguos que thresholdHours sin
// check-in posterior del producto y crea una alerta por cada uno, deduplicando
// por movimiento: si ya existe una alerta sin resolver que referencia ese
// registro, se salta. Devuelve cuántas alertas se crearon (idempotente si no
// hay actividad nueva).
func (uc *UseCase) ScanOverdueCheckouts(ctx context.Context, thresholdHours int) (int, error) {
	if thresholdHours <= 0 {
		thresholdHours = DefaultOverdueHours
	}
	now := uc.now()
	cutoff := now.Add(-time.Duration(thresholdHours) * time.Hour)

	overdue, err := uc.movRepo.FindOverdueCheckouts(cutoff)
	if err != nil {
		return 0, fmt.Errorf("buscar check-outs vencidos: %w", err)
	}

	created := 0
	for _, mov := range overdue {
		exists, err := uc.alertRepo.ExistsUnresolvedForLog(mov.ID)
		if err != nil {
			return created, fmt.Errorf("verificar alerta existente: %w", err)
		}
		if exists {
			continue
		}

		productName := "Producto desconocido"
		if product, err := uc.productRepo.GetByID(mov.ProductID); err == nil && product != nil {
			productName = product.Name
		}
		hoursOverdue := int64(now.Sub(mov.Timestamp).Hours())

		logID := mov.ID
		alert := &entity.Alert{
			ID:        uuid.New().String(),
			ProductID: mov.ProductID,
			LogID:     &logID,
			AlertType: entity.AlertTypeOverdueCheckout,
			Message: fmt.Sprintf(
				"El producto '%s' lleva %d horas retirado sin devolución. Cantidad: %d. Retirado por el usuario %s",
				productName, hoursOverdue, mov.Quantity, mov.UserID,
			),
			Status:    entity.AlertStatusUnresolved,
			CreatedAt: now,
		}
		if err := uc.alertRepo.Create(alert); err != nil {
			return created, fmt.Errorf("crear alerta: %w", err)
		}
		created++
	}
	return created, nil
}

// Resolve transición UNRESOLVED -> RESOLVED (terminal). Resolver dos veces
// devuelve ErrAlreadyResolved sin tocar resolvedAt/resolvedBy.
func (uc *UseCase) Resolve(ctx context.Context, alertID, resolvedBy string) error {
	if alertID == "" || resolvedBy == "" {
		return domain.ErrInvalidInput
	}
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	if alert.IsResolved() {
		return domain.ErrAlreadyResolved
	}
	return uc.alertRepo.MarkResolved(alertID, resolvedBy, uc.now())
}

// ListUnresolved devuelve todas las alertas pendientes.
func (uc *UseCase) ListUnresolved(ctx context.Context) ([]*dto.AlertResponse, error) {
	list, err := uc.alertRepo.ListUnresolved()
	if err != nil {
		return nil, err
	}
	return toAlertResponses(list), nil
}

// ListFiltered consulta alertas con filtros conjuntivos opcionales. Rechaza
// from > to y recorta cotas futuras al presente.
func (uc *UseCase) ListFiltered(ctx context.Context, filter repository.AlertFilter, page dto.PageRequest) (*dto.AlertListResponse, error) {
	page.DefaultPage()
	now := uc.now()
	if filter.FromDate != nil && filter.FromDate.After(now) {
		filter.FromDate = &now
	}
	if filter.ToDate != nil && filter.ToDate.After(now) {
		filter.ToDate = &now
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.alertRepo.ListFiltered(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.alertRepo.CountFiltered(filter)
	if err != nil {
		return nil, err
	}
	return &dto.AlertListResponse{
		Alerts: toAlertResponses(list),
		Page:   dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toAlertResponses(list []*entity.Alert) []*dto.AlertResponse {
	out := make([]*dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, &dto.AlertResponse{
			ID:         a.ID,
			ProductID:  a.ProductID,
			LogID:      a.LogID,
			AlertType:  a.AlertType,
			Message:    a.Message,
			Status:     a.Status,
			CreatedAt:  a.CreatedAt,
			ResolvedAt: a.ResolvedAt,
			ResolvedBy: a.ResolvedBy,
		})
	}
	return out
}
