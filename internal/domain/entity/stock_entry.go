package entity

import "time"

// StockEntry representa el stock actual de un producto en una ubicación.
// Clave compuesta (ProductID, LocationID). Invariante: Quantity >= 0 siempre;
// las filas en cero son elegibles para limpieza perezosa.
type StockEntry struct {
	ProductID  string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}

// LocationStock cantidad de un producto en una ubicación, con nombre resuelto
// (consulta de solo lectura para la capa de presentación).
type LocationStock struct {
	LocationID   string
	LocationName string
	Quantity     int64
}

// ProductStock cantidad de un producto en una ubicación dada, con metadatos
// del producto resueltos.
type ProductStock struct {
	ProductID   string
	ProductName string
	Unit        string
	Quantity    int64
}
