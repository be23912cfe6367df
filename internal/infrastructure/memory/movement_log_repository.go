package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

// MovementLogRepo bitácora de movimientos en memoria (append-only).
type MovementLogRepo struct {
	sess Session
}

func NewMovementLogRepository(sess Session) *MovementLogRepo {
	return &MovementLogRepo{sess: sess}
}

func (r *MovementLogRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	return r.sess.write(func(st *state) error {
		cp := *movement
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r *MovementLogRepo) GetByID(id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.sess.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				cp := *m
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func matchesMovement(m *entity.Movement, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.UserID != "" && m.UserID != f.UserID {
		return false
	}
	if f.ActionType != "" && f.ActionType != "ALL" && m.ActionType != f.ActionType {
		return false
	}
	if f.FromDate != nil && m.Timestamp.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && m.Timestamp.After(*f.ToDate) {
		return false
	}
	return true
}

func (r *MovementLogRepo) ListFiltered(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := r.sess.read(func(st *state) error {
		for _, m := range st.movements {
			if matchesMovement(m, filter) {
				cp := *m
				list = append(list, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *MovementLogRepo) CountFiltered(filter repository.MovementFilter) (int, error) {
	count := 0
	err := r.sess.read(func(st *state) error {
		for _, m := range st.movements {
			if matchesMovement(m, filter) {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *MovementLogRepo) FindOverdueCheckouts(cutoff time.Time) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := r.sess.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ActionType != entity.ActionCheckOut || !m.Timestamp.Before(cutoff) {
				continue
			}
			resolved := false
			for _, other := range st.movements {
				if other.ProductID == m.ProductID &&
					other.ActionType == entity.ActionCheckIn &&
					other.Timestamp.After(m.Timestamp) {
					resolved = true
					break
				}
			}
			if !resolved {
				cp := *m
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	return list, err
}

func (r *MovementLogRepo) CountByActionOnDate(actionType string, date time.Time) (int, error) {
	count := 0
	err := r.sess.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ActionType == actionType && sameDate(m.Timestamp, date) {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *MovementLogRepo) SumQuantityByProductAndActionOnDate(actionType string, date time.Time) ([]repository.ProductActionSum, error) {
	totals := make(map[string]int64)
	err := r.sess.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ActionType == actionType && sameDate(m.Timestamp, date) {
				totals[m.ProductID] += m.Quantity
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	var list []repository.ProductActionSum
	for id, total := range totals {
		list = append(list, repository.ProductActionSum{ProductID: id, Total: total})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}
