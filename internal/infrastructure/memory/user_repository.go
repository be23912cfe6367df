package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	sess Session
}

func NewUserRepository(sess Session) *UserRepo {
	return &UserRepo{sess: sess}
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	var out *entity.User
	err := r.sess.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			cp := *u
			out = &cp
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrUserNotFound
	}
	return out, nil
}

func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var out *entity.User
	err := r.sess.read(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				cp := *u
				out = &cp
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrUserNotFound
	}
	return out, nil
}

func (r *UserRepo) Create(user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.sess.write(func(st *state) error {
		for _, u := range st.users {
			if u.Username == user.Username {
				return domain.ErrDuplicate
			}
		}
		cp := *user
		st.users[user.ID] = &cp
		return nil
	})
}

func (r *UserRepo) EnsureAdminSeeded(username, passwordHash string) error {
	return r.sess.write(func(st *state) error {
		if len(st.users) > 0 {
			return nil
		}
		id := uuid.New().String()
		st.users[id] = &entity.User{
			ID:           id,
			Username:     username,
			PasswordHash: passwordHash,
			Role:         "admin",
			CreatedAt:    time.Now(),
		}
		return nil
	})
}
