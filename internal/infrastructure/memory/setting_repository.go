package memory

import (
	"strconv"

	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo almacén clave/valor en memoria.
type SettingRepo struct {
	sess Session
}

func NewSettingRepository(sess Session) *SettingRepo {
	return &SettingRepo{sess: sess}
}

func (r *SettingRepo) Get(key string) (string, error) {
	var value string
	found := false
	err := r.sess.read(func(st *state) error {
		value, found = st.settings[key]
		return nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (r *SettingRepo) Set(key, value string) error {
	return r.sess.write(func(st *state) error {
		st.settings[key] = value
		return nil
	})
}

func (r *SettingRepo) GetInt(key string, def int) (int, error) {
	value, err := r.Get(key)
	if err != nil {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, nil
	}
	return n, nil
}
