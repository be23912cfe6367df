package repository

import "github.com/tu-usuario/inventario-planta/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Create(user *entity.User) error
	// EnsureAdminSeeded crea el admin por defecto si no existe ningún usuario.
	EnsureAdminSeeded(username, passwordHash string) error
}
