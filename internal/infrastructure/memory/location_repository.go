package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo registro de ubicaciones en memoria.
type LocationRepo struct {
	sess Session
}

func NewLocationRepository(sess Session) *LocationRepo {
	return &LocationRepo{sess: sess}
}

func (r *LocationRepo) Create(location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	return r.sess.write(func(st *state) error {
		for _, l := range st.locations {
			if l.Name == location.Name {
				return domain.ErrDuplicate
			}
		}
		cp := *location
		st.locations[location.ID] = &cp
		return nil
	})
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.sess.read(func(st *state) error {
		if l, ok := st.locations[id]; ok {
			cp := *l
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	var out *entity.Location
	err := r.sess.read(func(st *state) error {
		for _, l := range st.locations {
			if l.Name == name {
				cp := *l
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) List() ([]*entity.Location, error) {
	var list []*entity.Location
	err := r.sess.read(func(st *state) error {
		for _, l := range st.locations {
			cp := *l
			list = append(list, &cp)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, err
}

func (r *LocationRepo) Delete(id string) error {
	return r.sess.write(func(st *state) error {
		if _, ok := st.locations[id]; !ok {
			return domain.ErrNotFound
		}
		for k := range st.stock {
			if k.locationID == id {
				return domain.ErrConflict
			}
		}
		for _, m := range st.movements {
			if (m.FromLocationID != nil && *m.FromLocationID == id) ||
				(m.ToLocationID != nil && *m.ToLocationID == id) {
				return domain.ErrConflict
			}
		}
		delete(st.locations, id)
		return nil
	})
}

func (r *LocationRepo) EnsureDefaults() error {
	return r.sess.write(func(st *state) error {
		for _, name := range entity.DefaultLocationNames {
			exists := false
			for _, l := range st.locations {
				if l.Name == name {
					exists = true
					break
				}
			}
			if exists {
				continue
			}
			id := uuid.New().String()
			st.locations[id] = &entity.Location{ID: id, Name: name, CreatedAt: time.Now()}
		}
		return nil
	})
}
