package reports

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// DailyUseCase arma los agregados diarios que consume la capa de reportes
// (colaborador externo). Solo estado confirmado; el renderizado CSV/HTML
// queda fuera del núcleo.
type DailyUseCase struct {
	movRepo     repository.MovementLogRepository
	alertRepo   repository.AlertRepository
	productRepo repository.ProductRepository
}

// NewDailyUseCase construye el caso de uso.
func NewDailyUseCase(movRepo repository.MovementLogRepository, alertRepo repository.AlertRepository, productRepo repository.ProductRepository) *DailyUseCase {
	return &DailyUseCase{movRepo: movRepo, alertRepo: alertRepo, productRepo: productRepo}
}

// Summary agrega totales del día y el desglose por producto.
func (uc *DailyUseCase) Summary(ctx context.Context, date time.Time) (*dto.DailySummaryResponse, error) {
	checkIns, err := uc.movRepo.CountByActionOnDate(entity.ActionCheckIn, date)
	if err != nil {
		return nil, err
	}
	checkOuts, err := uc.movRepo.CountByActionOnDate(entity.ActionCheckOut, date)
	if err != nil {
		return nil, err
	}
	unresolved, err := uc.alertRepo.CountUnresolved()
	if err != nil {
		return nil, err
	}
	alertsToday, err := uc.alertRepo.CountCreatedOnDate(date)
	if err != nil {
		return nil, err
	}

	insPerProduct, err := uc.movRepo.SumQuantityByProductAndActionOnDate(entity.ActionCheckIn, date)
	if err != nil {
		return nil, err
	}
	outsPerProduct, err := uc.movRepo.SumQuantityByProductAndActionOnDate(entity.ActionCheckOut, date)
	if err != nil {
		return nil, err
	}

	ins := make(map[string]int64, len(insPerProduct))
	for _, s := range insPerProduct {
		ins[s.ProductID] = s.Total
	}
	outs := make(map[string]int64, len(outsPerProduct))
	for _, s := range outsPerProduct {
		outs[s.ProductID] = s.Total
	}

	ids := make([]string, 0, len(ins)+len(outs))
	seen := make(map[string]bool)
	for id := range ins {
		seen[id] = true
		ids = append(ids, id)
	}
	for id := range outs {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	rows := make([]dto.ProductDailyRow, 0, len(ids))
	for _, id := range ids {
		name := "Producto " + id
		unit := ""
		if product, err := uc.productRepo.GetByID(id); err == nil && product != nil {
			name = product.Name
			unit = product.Unit
		}
		rows = append(rows, dto.ProductDailyRow{
			ProductID:   id,
			ProductName: name,
			Unit:        unit,
			CheckIns:    ins[id],
			CheckOuts:   outs[id],
			NetChange:   ins[id] - outs[id],
		})
	}

	return &dto.DailySummaryResponse{
		Date:             date.Format("2006-01-02"),
		TotalCheckIns:    checkIns,
		TotalCheckOuts:   checkOuts,
		UnresolvedAlerts: unresolved,
		AlertsCreated:    alertsToday,
		PerProduct:       rows,
	}, nil
}
