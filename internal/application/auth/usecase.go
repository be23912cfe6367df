package auth

import (
	"errors"

	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/domain"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
	"github.com/tu-usuario/inventario-planta/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase colaborador de identidad: autentica y emite el token del que sale
// el userID explícito que recibe cada mutación del inventario.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales (bcrypt) y emite un JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// SeedAdminIfMissing crea el usuario admin por defecto en el primer arranque.
// Solo para desarrollo; en producción cambiar la contraseña de inmediato.
func (uc *UseCase) SeedAdminIfMissing(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.EnsureAdminSeeded(username, string(hash))
}
