package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo almacén clave/valor de configuración operativa sobre PostgreSQL.
type SettingRepo struct {
	q Querier
}

func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Get devuelve el valor de la clave o domain.ErrNotFound.
func (r *SettingRepo) Get(key string) (string, error) {
	var value string
	err := r.q.QueryRow(context.Background(), `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// Set hace upsert del valor.
func (r *SettingRepo) Set(key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.q.Exec(context.Background(), query, key, value); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// GetInt devuelve la clave como entero, o def si falta o no parsea.
func (r *SettingRepo) GetInt(key string, def int) (int, error) {
	value, err := r.Get(key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return def, nil
		}
		return def, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, nil
	}
	return n, nil
}
