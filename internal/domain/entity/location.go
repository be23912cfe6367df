package entity

import "time"

// Location representa una ubicación de almacenamiento con nombre único.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// DefaultLocationNames ubicaciones sembradas en el primer arranque.
// Un producto sin ubicación explícita se asigna a la primera.
var DefaultLocationNames = []string{"Warehouse A", "Warehouse B", "Storage C"}
