package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

// Engine orquesta el libro de stock y la bitácora para implementar
// check-in, check-out y traslado como operaciones atómicas con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback.
//
// Orden de efectos en el camino feliz: bloquear -> validar -> mutar stock ->
// limpiar filas en cero -> refrescar proyección -> registrar en bitácora ->
// commit. La bitácora se escribe al final para que solo existan entradas de
// mutaciones confirmadas.
type Engine struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewEngine construye el motor de inventario.
func NewEngine(txRunner TxRunner, productRepo repository.ProductRepository, locationRepo repository.LocationRepository) *Engine {
	return &Engine{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// CheckIn ingresa unidades de un producto en una ubicación.
func (e *Engine) CheckIn(ctx context.Context, userID string, in dto.CheckInRequest) (*entity.Movement, error) {
	if err := e.validateCommon(userID, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	if err := e.requireLocation(in.LocationID); err != nil {
		return nil, err
	}

	var created *entity.Movement
	err := e.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementLogRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila aunque un check-in nunca falle por disponibilidad:
		// serializa con check-outs y traslados concurrentes del mismo par.
		if _, err := stockRepo.GetQuantityForUpdate(in.ProductID, in.LocationID); err != nil {
			return err
		}
		if err := stockRepo.Increment(in.ProductID, in.LocationID, in.Quantity); err != nil {
			return err
		}
		mov, err := e.finishMutation(stockRepo, movRepo, productRepo, &entity.Movement{
			ProductID:  in.ProductID,
			UserID:     userID,
			ActionType: entity.ActionCheckIn,
			Quantity:   in.Quantity,
			Notes:      in.Notes,
		})
		created = mov
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CheckOut retira unidades de un producto de una ubicación. Si la cantidad
// disponible bajo bloqueo es menor a la solicitada, la transacción se revierte
// completa y se devuelve *domain.InsufficientStockError.
func (e *Engine) CheckOut(ctx context.Context, userID string, in dto.CheckOutRequest) (*entity.Movement, error) {
	if err := e.validateCommon(userID, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	if err := e.requireLocation(in.LocationID); err != nil {
		return nil, err
	}

	var created *entity.Movement
	err := e.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementLogRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquear-verificar-escribir dentro de una sola transacción: un
		// segundo check-out concurrente sobre el mismo par espera el bloqueo
		// y observa la cantidad ya actualizada (evita el doble gasto).
		available, err := stockRepo.GetQuantityForUpdate(in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if available < in.Quantity {
			return &domain.InsufficientStockError{Available: available, Requested: in.Quantity}
		}
		if err := stockRepo.Increment(in.ProductID, in.LocationID, -in.Quantity); err != nil {
			return err
		}
		mov, err := e.finishMutation(stockRepo, movRepo, productRepo, &entity.Movement{
			ProductID:  in.ProductID,
			UserID:     userID,
			ActionType: entity.ActionCheckOut,
			Quantity:   in.Quantity,
			Notes:      in.Notes,
		})
		created = mov
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Transfer mueve unidades entre dos ubicaciones como un único movimiento
// atómico: débito en origen y crédito en destino jamás son observables por
// separado fuera de la transacción. Registra UNA entrada TRANSFER con ambas
// ubicaciones.
func (e *Engine) Transfer(ctx context.Context, userID string, in dto.TransferRequest) (*entity.Movement, error) {
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidInput
	}
	if err := e.validateCommon(userID, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	if err := e.requireLocation(in.FromLocationID); err != nil {
		return nil, err
	}
	if err := e.requireLocation(in.ToLocationID); err != nil {
		return nil, err
	}

	var created *entity.Movement
	err := e.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementLogRepository,
		productRepo repository.ProductRepository,
	) error {
		// Mismo bloqueo y verificación que check-out sobre el origen.
		available, err := stockRepo.GetQuantityForUpdate(in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		if available < in.Quantity {
			return &domain.InsufficientStockError{Available: available, Requested: in.Quantity}
		}
		if err := stockRepo.Increment(in.ProductID, in.FromLocationID, -in.Quantity); err != nil {
			return err
		}
		if err := stockRepo.Increment(in.ProductID, in.ToLocationID, in.Quantity); err != nil {
			return err
		}
		from, to := in.FromLocationID, in.ToLocationID
		mov, err := e.finishMutation(stockRepo, movRepo, productRepo, &entity.Movement{
			ProductID:      in.ProductID,
			UserID:         userID,
			ActionType:     entity.ActionTransfer,
			Quantity:       in.Quantity,
			Notes:          in.Notes,
			FromLocationID: &from,
			ToLocationID:   &to,
		})
		created = mov
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// validateCommon precondiciones compartidas: usuario explícito, cantidad
// positiva y producto existente. Todo antes de tocar la transacción.
func (e *Engine) validateCommon(userID, productID string, quantity int64) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrInvalidInput
	}
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	product, err := e.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (e *Engine) requireLocation(locationID string) error {
	loc, err := e.locationRepo.GetByID(locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return nil
}

// finishMutation cierre común del camino feliz: limpieza de filas en cero,
// refresco de la proyección Product.Quantity y registro en la bitácora.
func (e *Engine) finishMutation(
	stockRepo repository.StockRepository,
	movRepo repository.MovementLogRepository,
	productRepo repository.ProductRepository,
	mov *entity.Movement,
) (*entity.Movement, error) {
	if err := stockRepo.CleanupZeroRows(); err != nil {
		return nil, err
	}
	total, err := stockRepo.SumForProduct(mov.ProductID)
	if err != nil {
		return nil, err
	}
	if err := productRepo.UpdateQuantity(mov.ProductID, total); err != nil {
		return nil, err
	}
	mov.ID = uuid.New().String()
	mov.Timestamp = time.Now()
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
