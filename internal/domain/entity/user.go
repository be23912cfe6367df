package entity

import "time"

// User usuario que ejecuta acciones sobre el inventario. El motor nunca lee
// estado ambiente: el ID del usuario se pasa explícito en cada mutación.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
