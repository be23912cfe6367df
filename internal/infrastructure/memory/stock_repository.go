package memory

import (
	"sort"
	"time"

	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo libro de stock en memoria.
type StockRepo struct {
	sess Session
}

func NewStockRepository(sess Session) *StockRepo {
	return &StockRepo{sess: sess}
}

func (r *StockRepo) GetQuantity(productID, locationID string) (int64, error) {
	var qty int64
	err := r.sess.read(func(st *state) error {
		if e, ok := st.stock[stockKey{productID, locationID}]; ok {
			qty = e.Quantity
		}
		return nil
	})
	return qty, err
}

// GetQuantityForUpdate equivale a GetQuantity: el slot único de escritor ya
// serializa las mutaciones, no hay bloqueo por fila que tomar.
func (r *StockRepo) GetQuantityForUpdate(productID, locationID string) (int64, error) {
	return r.GetQuantity(productID, locationID)
}

func (r *StockRepo) Increment(productID, locationID string, delta int64) error {
	return r.sess.write(func(st *state) error {
		key := stockKey{productID, locationID}
		var current int64
		if e, ok := st.stock[key]; ok {
			current = e.Quantity
		}
		newQty := current + delta
		if newQty < 0 {
			newQty = 0
		}
		st.stock[key] = &entity.StockEntry{
			ProductID:  productID,
			LocationID: locationID,
			Quantity:   newQty,
			UpdatedAt:  time.Now(),
		}
		return nil
	})
}

func (r *StockRepo) SumForProduct(productID string) (int64, error) {
	var total int64
	err := r.sess.read(func(st *state) error {
		for k, e := range st.stock {
			if k.productID == productID {
				total += e.Quantity
			}
		}
		return nil
	})
	return total, err
}

func (r *StockRepo) CleanupZeroRows() error {
	return r.sess.write(func(st *state) error {
		for k, e := range st.stock {
			if e.Quantity <= 0 {
				delete(st.stock, k)
			}
		}
		return nil
	})
}

func (r *StockRepo) ListByProduct(productID string) ([]*entity.LocationStock, error) {
	var list []*entity.LocationStock
	err := r.sess.read(func(st *state) error {
		for k, e := range st.stock {
			if k.productID != productID || e.Quantity <= 0 {
				continue
			}
			name := ""
			if l, ok := st.locations[k.locationID]; ok {
				name = l.Name
			}
			list = append(list, &entity.LocationStock{
				LocationID:   k.locationID,
				LocationName: name,
				Quantity:     e.Quantity,
			})
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].LocationName < list[j].LocationName })
	return list, err
}

func (r *StockRepo) ListByLocation(locationID string) ([]*entity.ProductStock, error) {
	var list []*entity.ProductStock
	err := r.sess.read(func(st *state) error {
		for k, e := range st.stock {
			if k.locationID != locationID || e.Quantity <= 0 {
				continue
			}
			ps := &entity.ProductStock{ProductID: k.productID, Quantity: e.Quantity}
			if p, ok := st.products[k.productID]; ok {
				ps.ProductName = p.Name
				ps.Unit = p.Unit
			}
			list = append(list, ps)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ProductName < list[j].ProductName })
	return list, err
}
