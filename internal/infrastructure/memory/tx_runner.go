package memory

import (
	"context"

	"github.com/tu-usuario/inventario-planta/internal/application/inventory"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el almacén en memoria: toma el slot de
// escritor, clona el estado, ejecuta fn contra repositorios atados al clon y
// confirma intercambiando el estado. Si fn falla, el clon se descarta y el
// estado confirmado queda intacto.
type TxRunner struct {
	store *Store
}

func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementLogRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := r.store.acquireWriter(ctx); err != nil {
		return err
	}
	defer r.store.releaseWriter()

	r.store.mu.RLock()
	staged := r.store.st.clone()
	r.store.mu.RUnlock()

	sess := &txSession{st: staged}
	if err := fn(
		NewStockRepository(sess),
		NewMovementLogRepository(sess),
		NewProductRepository(sess),
	); err != nil {
		return err
	}

	r.store.mu.Lock()
	r.store.st = staged
	r.store.mu.Unlock()
	return nil
}
