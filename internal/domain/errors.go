package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyResolved   = errors.New("la alerta ya fue resuelta")
	ErrLockTimeout       = errors.New("tiempo de espera del bloqueo agotado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
)

// InsufficientStockError lleva el detalle disponible/solicitado para que el
// caller pueda ajustar la petición. Envuelve ErrInsufficientStock, así que
// errors.Is(err, ErrInsufficientStock) sigue funcionando.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
