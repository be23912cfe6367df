package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-planta/internal/application/reports"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/infrastructure/memory"
)

func TestDailySummary_AgregaMovimientosDelDia(t *testing.T) {
	store := memory.NewStore(time.Second)
	productRepo := memory.NewProductRepository(store)
	movRepo := memory.NewMovementLogRepository(store)
	alertRepo := memory.NewAlertRepository(store)

	product := &entity.Product{Name: "Llave inglesa", Unit: "unidad", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, productRepo.Create(product))

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	add := func(action string, qty int64, ts time.Time) {
		require.NoError(t, movRepo.Create(&entity.Movement{
			ProductID: product.ID, UserID: "u1", ActionType: action,
			Quantity: qty, Timestamp: ts,
		}))
	}
	add(entity.ActionCheckIn, 50, now)
	add(entity.ActionCheckIn, 10, now)
	add(entity.ActionCheckOut, 20, now)
	// Movimientos de ayer: fuera del resumen de hoy.
	add(entity.ActionCheckIn, 99, yesterday)
	add(entity.ActionCheckOut, 99, yesterday)

	uc := reports.NewDailyUseCase(movRepo, alertRepo, productRepo)
	out, err := uc.Summary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, now.Format("2006-01-02"), out.Date)
	assert.Equal(t, 2, out.TotalCheckIns)
	assert.Equal(t, 1, out.TotalCheckOuts)
	assert.Equal(t, 0, out.UnresolvedAlerts)

	require.Len(t, out.PerProduct, 1)
	row := out.PerProduct[0]
	assert.Equal(t, "Llave inglesa", row.ProductName)
	assert.Equal(t, int64(60), row.CheckIns)
	assert.Equal(t, int64(20), row.CheckOuts)
	assert.Equal(t, int64(40), row.NetChange)
}

func TestDailySummary_CuentaAlertas(t *testing.T) {
	store := memory.NewStore(time.Second)
	productRepo := memory.NewProductRepository(store)
	movRepo := memory.NewMovementLogRepository(store)
	alertRepo := memory.NewAlertRepository(store)

	now := time.Now()
	require.NoError(t, alertRepo.Create(&entity.Alert{
		ProductID: "p1", AlertType: entity.AlertTypeOverdueCheckout,
		Message: "pendiente", Status: entity.AlertStatusUnresolved, CreatedAt: now,
	}))
	require.NoError(t, alertRepo.Create(&entity.Alert{
		ProductID: "p1", AlertType: entity.AlertTypeOverdueCheckout,
		Message: "vieja", Status: entity.AlertStatusUnresolved, CreatedAt: now.Add(-48 * time.Hour),
	}))

	uc := reports.NewDailyUseCase(movRepo, alertRepo, productRepo)
	out, err := uc.Summary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, out.UnresolvedAlerts, "las pendientes cuentan sin importar la fecha")
	assert.Equal(t, 1, out.AlertsCreated, "solo la creada hoy")
	assert.Empty(t, out.PerProduct)
}
