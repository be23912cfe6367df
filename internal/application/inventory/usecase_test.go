package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/application/inventory"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
	"github.com/tu-usuario/inventario-planta/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

type engineFixture struct {
	store  *memory.Store
	engine *inventory.Engine
	stock  *memory.StockRepo
	movs   *memory.MovementLogRepo

	productID string
	locA      string
	locB      string
}

// newEngineFixture arma un motor sobre el almacén en memoria con un producto
// y dos ubicaciones listos para operar.
func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	store := memory.NewStore(2 * time.Second)
	productRepo := memory.NewProductRepository(store)
	locationRepo := memory.NewLocationRepository(store)

	product := &entity.Product{Name: "Widget A", Unit: "unidad", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, productRepo.Create(product))

	locA := &entity.Location{Name: "Warehouse A", CreatedAt: time.Now()}
	locB := &entity.Location{Name: "Warehouse B", CreatedAt: time.Now()}
	require.NoError(t, locationRepo.Create(locA))
	require.NoError(t, locationRepo.Create(locB))

	return &engineFixture{
		store:     store,
		engine:    inventory.NewEngine(memory.NewTxRunner(store), productRepo, locationRepo),
		stock:     memory.NewStockRepository(store),
		movs:      memory.NewMovementLogRepository(store),
		productID: product.ID,
		locA:      locA.ID,
		locB:      locB.ID,
	}
}

func (f *engineFixture) quantity(t *testing.T, locationID string) int64 {
	t.Helper()
	qty, err := f.stock.GetQuantity(f.productID, locationID)
	require.NoError(t, err)
	return qty
}

func (f *engineFixture) projection(t *testing.T) int64 {
	t.Helper()
	product, err := memory.NewProductRepository(f.store).GetByID(f.productID)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: check-in, check-out, traslado y rechazo
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_EscenarioCompleto(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	// Check-in de 100 en Warehouse A.
	mov, err := f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ActionCheckIn, mov.ActionType)
	assert.Equal(t, int64(100), f.quantity(t, f.locA))
	assert.Equal(t, int64(100), f.projection(t))

	// Check-out de 30: quedan 70.
	_, err = f.engine.CheckOut(ctx, testUserID, dto.CheckOutRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(70), f.quantity(t, f.locA))
	assert.Equal(t, int64(70), f.projection(t))

	// Traslado de 20 a Warehouse B: 50 y 20, total conservado.
	mov, err = f.engine.Transfer(ctx, testUserID, dto.TransferRequest{
		ProductID: f.productID, FromLocationID: f.locA, ToLocationID: f.locB, Quantity: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ActionTransfer, mov.ActionType)
	require.NotNil(t, mov.FromLocationID)
	require.NotNil(t, mov.ToLocationID)
	assert.Equal(t, f.locA, *mov.FromLocationID)
	assert.Equal(t, f.locB, *mov.ToLocationID)
	assert.Equal(t, int64(50), f.quantity(t, f.locA))
	assert.Equal(t, int64(20), f.quantity(t, f.locB))
	assert.Equal(t, int64(70), f.projection(t), "el traslado no cambia el total")

	// Check-out de 60 en A con solo 50 disponibles: rechazo con detalle.
	_, err = f.engine.CheckOut(ctx, testUserID, dto.CheckOutRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 60,
	})
	require.Error(t, err)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(50), insufficient.Available)
	assert.Equal(t, int64(60), insufficient.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no dejó efectos parciales.
	assert.Equal(t, int64(50), f.quantity(t, f.locA))
	assert.Equal(t, int64(70), f.projection(t))
}

func TestEngine_CheckOutTodoElStock_EliminaLaFila(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 5,
	})
	require.NoError(t, err)
	_, err = f.engine.CheckOut(ctx, testUserID, dto.CheckOutRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.quantity(t, f.locA))
	list, err := f.stock.ListByProduct(f.productID)
	require.NoError(t, err)
	assert.Empty(t, list, "las filas en cero se limpian en la misma transacción")
	assert.Equal(t, int64(0), f.projection(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_Validaciones(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	// Cantidad no positiva.
	_, err := f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.CheckOut(ctx, testUserID, dto.CheckOutRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Usuario vacío.
	_, err = f.engine.CheckIn(ctx, "  ", dto.CheckInRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto inexistente.
	_, err = f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: "no-existe", LocationID: f.locA, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Ubicación inexistente.
	_, err = f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: f.productID, LocationID: "no-existe", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Traslado con origen == destino.
	_, err = f.engine.Transfer(ctx, testUserID, dto.TransferRequest{
		ProductID: f.productID, FromLocationID: f.locA, ToLocationID: f.locA, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada de lo anterior tocó la bitácora.
	count, err := f.movs.CountFiltered(repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: sin doble gasto, sin negativos, conservación en traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_CheckOutsConcurrentes_SoloUnoGana(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 10,
	})
	require.NoError(t, err)

	// Dos retiros de 8 sobre 10 disponibles: exactamente uno debe ganar.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.CheckOut(ctx, testUserID, dto.CheckOutRequest{
				ProductID: f.productID, LocationID: f.locA, Quantity: 8,
			})
		}(i)
	}
	wg.Wait()

	okCount, insufficientCount := 0, 0
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var insufficient *domain.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int64(2), insufficient.Available)
		assert.Equal(t, int64(8), insufficient.Requested)
		insufficientCount++
	}
	assert.Equal(t, 1, okCount, "exactamente un retiro debe confirmarse")
	assert.Equal(t, 1, insufficientCount, "el otro debe rechazarse por stock insuficiente")
	assert.Equal(t, int64(2), f.quantity(t, f.locA))
	assert.Equal(t, int64(2), f.projection(t))
}

func TestEngine_PrimerosCheckInsConcurrentes_AmbosCuentan(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	// Dos primeros check-ins concurrentes sobre un par (producto, ubicación)
	// sin fila de stock previa: ninguno puede pisar al otro, el total es la
	// suma y coincide con lo que registra la bitácora.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
				ProductID: f.productID, LocationID: f.locA, Quantity: 5,
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int64(10), f.quantity(t, f.locA))
	assert.Equal(t, int64(10), f.projection(t))

	count, err := f.movs.CountFiltered(repository.MovementFilter{ActionType: entity.ActionCheckIn})
	require.NoError(t, err)
	assert.Equal(t, 2, count, "la bitácora y el stock cuentan lo mismo")
}

func TestEngine_TrasladosConcurrentes_ConservanElTotal(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 100,
	})
	require.NoError(t, err)

	// 10 traslados concurrentes de 5 unidades A -> B.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.engine.Transfer(ctx, testUserID, dto.TransferRequest{
				ProductID: f.productID, FromLocationID: f.locA, ToLocationID: f.locB, Quantity: 5,
			})
		}()
	}
	wg.Wait()

	total := f.quantity(t, f.locA) + f.quantity(t, f.locB)
	assert.Equal(t, int64(100), total, "los traslados nunca crean ni destruyen unidades")
	assert.GreaterOrEqual(t, f.quantity(t, f.locA), int64(0))
	assert.GreaterOrEqual(t, f.quantity(t, f.locB), int64(0))
	assert.Equal(t, int64(100), f.projection(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bitácora: solo mutaciones confirmadas
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_RechazoNoDejaEntradaEnBitacora(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.CheckIn(ctx, testUserID, dto.CheckInRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 3,
	})
	require.NoError(t, err)

	_, err = f.engine.CheckOut(ctx, testUserID, dto.CheckOutRequest{
		ProductID: f.productID, LocationID: f.locA, Quantity: 10,
	})
	require.Error(t, err)

	list, err := f.movs.ListFiltered(repository.MovementFilter{}, 100, 0)
	require.NoError(t, err)
	require.Len(t, list, 1, "solo el check-in confirmado aparece en la bitácora")
	assert.Equal(t, entity.ActionCheckIn, list[0].ActionType)
}
