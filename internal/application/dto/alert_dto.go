package dto

import "time"

// AlertResponse representación HTTP de una alerta.
type AlertResponse struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	LogID      *string    `json:"log_id,omitempty"`
	AlertType  string     `json:"alert_type"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy *string    `json:"resolved_by,omitempty"`
}

// AlertListResponse listado paginado de alertas.
type AlertListResponse struct {
	Alerts []*AlertResponse `json:"alerts"`
	Page   PageResponse     `json:"page"`
}

// ScanResponse resultado de un escaneo manual de check-outs vencidos.
type ScanResponse struct {
	AlertsCreated int `json:"alerts_created"`
}
