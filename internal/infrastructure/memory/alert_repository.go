package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas en memoria.
type AlertRepo struct {
	sess Session
}

func NewAlertRepository(sess Session) *AlertRepo {
	return &AlertRepo{sess: sess}
}

func (r *AlertRepo) Create(alert *entity.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	return r.sess.write(func(st *state) error {
		cp := *alert
		st.alerts[alert.ID] = &cp
		return nil
	})
}

func (r *AlertRepo) GetByID(id string) (*entity.Alert, error) {
	var out *entity.Alert
	err := r.sess.read(func(st *state) error {
		if a, ok := st.alerts[id]; ok {
			cp := *a
			out = &cp
		}
		return nil
	})
	return out, err
}

func matchesAlert(a *entity.Alert, f repository.AlertFilter) bool {
	if f.ProductID != "" && a.ProductID != f.ProductID {
		return false
	}
	if f.Status != "" && f.Status != "ALL" && a.Status != f.Status {
		return false
	}
	if f.FromDate != nil && a.CreatedAt.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && a.CreatedAt.After(*f.ToDate) {
		return false
	}
	return true
}

func (r *AlertRepo) ListFiltered(filter repository.AlertFilter, limit, offset int) ([]*entity.Alert, error) {
	var list []*entity.Alert
	err := r.sess.read(func(st *state) error {
		for _, a := range st.alerts {
			if matchesAlert(a, filter) {
				cp := *a
				list = append(list, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *AlertRepo) CountFiltered(filter repository.AlertFilter) (int, error) {
	count := 0
	err := r.sess.read(func(st *state) error {
		for _, a := range st.alerts {
			if matchesAlert(a, filter) {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *AlertRepo) ListUnresolved() ([]*entity.Alert, error) {
	return r.ListFiltered(repository.AlertFilter{Status: entity.AlertStatusUnresolved}, 0, 0)
}

func (r *AlertRepo) ExistsUnresolvedForLog(logID string) (bool, error) {
	exists := false
	err := r.sess.read(func(st *state) error {
		for _, a := range st.alerts {
			if a.Status == entity.AlertStatusUnresolved && a.LogID != nil && *a.LogID == logID {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *AlertRepo) MarkResolved(alertID, resolvedBy string, resolvedAt time.Time) error {
	return r.sess.write(func(st *state) error {
		a, ok := st.alerts[alertID]
		if !ok {
			return domain.ErrNotFound
		}
		if a.Status != entity.AlertStatusUnresolved {
			return domain.ErrAlreadyResolved
		}
		a.Status = entity.AlertStatusResolved
		at := resolvedAt
		by := resolvedBy
		a.ResolvedAt = &at
		a.ResolvedBy = &by
		return nil
	})
}

func (r *AlertRepo) CountUnresolved() (int, error) {
	return r.CountFiltered(repository.AlertFilter{Status: entity.AlertStatusUnresolved})
}

func (r *AlertRepo) CountCreatedOnDate(date time.Time) (int, error) {
	count := 0
	err := r.sess.read(func(st *state) error {
		for _, a := range st.alerts {
			if sameDate(a.CreatedAt, date) {
				count++
			}
		}
		return nil
	})
	return count, err
}
