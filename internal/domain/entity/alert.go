package entity

import "time"

// Estados y tipos de alerta.
const (
	AlertStatusUnresolved = "UNRESOLVED"
	AlertStatusResolved   = "RESOLVED"

	AlertTypeOverdueCheckout = "OVERDUE_CHECKOUT"
)

// Alert es creada por el motor de alertas al detectar un check-out vencido.
// Transición única UNRESOLVED -> RESOLVED (terminal). LogID referencia el
// movimiento que la disparó (solo lookup, no ownership).
type Alert struct {
	ID         string
	ProductID  string
	LogID      *string
	AlertType  string
	Message    string
	Status     string
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ResolvedBy *string
}

// IsResolved indica si la alerta ya alcanzó su estado terminal.
func (a *Alert) IsResolved() bool { return a.Status == AlertStatusResolved }
