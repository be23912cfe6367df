package entity

import "time"

// Tipos de movimiento registrados en la bitácora.
const (
	ActionCheckIn  = "CHECK_IN"
	ActionCheckOut = "CHECK_OUT"
	ActionTransfer = "TRANSFER"
)

// Movement es una entrada de la bitácora de movimientos (append-only).
// Nunca se modifica ni se borra: es la fuente de verdad de "qué pasó cuándo"
// y la entrada de la derivación de alertas.
// FromLocationID/ToLocationID solo aplican a TRANSFER (una única entrada por
// traslado, registrando ambas ubicaciones).
type Movement struct {
	ID             string
	ProductID      string
	UserID         string
	ActionType     string
	Quantity       int64 // siempre > 0; el signo lo da ActionType
	Timestamp      time.Time
	Notes          string
	FromLocationID *string
	ToLocationID   *string
}
