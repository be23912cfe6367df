package dto

import "time"

// CheckInRequest body para POST /api/inventory/check-in.
type CheckInRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

// CheckOutRequest body para POST /api/inventory/check-out.
type CheckOutRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	Notes          string `json:"notes,omitempty"`
}

// MovementResponse entrada de la bitácora en respuestas HTTP.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	UserID         string    `json:"user_id"`
	ActionType     string    `json:"action_type"`
	Quantity       int64     `json:"quantity"`
	Timestamp      time.Time `json:"timestamp"`
	Notes          string    `json:"notes,omitempty"`
	FromLocationID *string   `json:"from_location_id,omitempty"`
	ToLocationID   *string   `json:"to_location_id,omitempty"`
}

// MovementListResponse listado paginado de la bitácora.
type MovementListResponse struct {
	Movements []*MovementResponse `json:"movements"`
	Page      PageResponse        `json:"page"`
}

// LocationStockResponse stock de un producto desglosado por ubicación.
type LocationStockResponse struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"quantity"`
}

// ProductStockResponse stock de una ubicación desglosado por producto.
type ProductStockResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Unit        string `json:"unit"`
	Quantity    int64  `json:"quantity"`
}
