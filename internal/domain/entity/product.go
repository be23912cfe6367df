package entity

import "time"

// Product representa un producto del inventario de planta.
// Quantity es una proyección cacheada: suma del stock en todas las ubicaciones,
// recalculada por el motor de inventario después de cada mutación confirmada.
// Nunca se escribe directamente fuera de ese paso de proyección.
type Product struct {
	ID          string
	Name        string // no puede estar en blanco
	Description string
	Unit        string // unidad de medida (no puede estar en blanco)
	Quantity    int64  // proyección derivada de stock_entries
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
