package usecase

import (
	"time"

	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre la bitácora y el stock
// para la capa de presentación. Solo refleja estado confirmado.
type MovementQueryUseCase struct {
	movRepo   repository.MovementLogRepository
	stockRepo repository.StockRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movRepo repository.MovementLogRepository, stockRepo repository.StockRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, stockRepo: stockRepo}
}

// ListMovements lista la bitácora con filtros conjuntivos. Rechaza from > to
// y recorta cotas futuras al presente, igual que el listado de alertas.
func (uc *MovementQueryUseCase) ListMovements(filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	now := time.Now()
	if filter.FromDate != nil && filter.FromDate.After(now) {
		filter.FromDate = &now
	}
	if filter.ToDate != nil && filter.ToDate.After(now) {
		filter.ToDate = &now
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.movRepo.ListFiltered(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountFiltered(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Movements: out,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListStockByProduct stock de un producto desglosado por ubicación (qty > 0).
func (uc *MovementQueryUseCase) ListStockByProduct(productID string) ([]*dto.LocationStockResponse, error) {
	list, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationStockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, &dto.LocationStockResponse{
			LocationID:   s.LocationID,
			LocationName: s.LocationName,
			Quantity:     s.Quantity,
		})
	}
	return out, nil
}

// ListStockByLocation stock de una ubicación desglosado por producto (qty > 0).
func (uc *MovementQueryUseCase) ListStockByLocation(locationID string) ([]*dto.ProductStockResponse, error) {
	list, err := uc.stockRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductStockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, &dto.ProductStockResponse{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Unit:        s.Unit,
			Quantity:    s.Quantity,
		})
	}
	return out, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		UserID:         m.UserID,
		ActionType:     m.ActionType,
		Quantity:       m.Quantity,
		Timestamp:      m.Timestamp,
		Notes:          m.Notes,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
	}
}
