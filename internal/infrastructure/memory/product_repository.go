package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	sess Session
}

func NewProductRepository(sess Session) *ProductRepo {
	return &ProductRepo{sess: sess}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return r.sess.write(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *product
		st.products[product.ID] = &cp
		return nil
	})
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sess.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(product *entity.Product) error {
	return r.sess.write(func(st *state) error {
		p, ok := st.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		p.Name = product.Name
		p.Description = product.Description
		p.Unit = product.Unit
		p.UpdatedAt = product.UpdatedAt
		return nil
	})
}

func (r *ProductRepo) UpdateQuantity(productID string, total int64) error {
	return r.sess.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.Quantity = total
		p.UpdatedAt = time.Now()
		return nil
	})
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	err := r.sess.read(func(st *state) error {
		for _, p := range st.products {
			cp := *p
			all = append(all, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepo) Delete(id string) error {
	return r.sess.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for k := range st.stock {
			if k.productID == id {
				return domain.ErrConflict
			}
		}
		for _, m := range st.movements {
			if m.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}
