package dto

// ProductDailyRow agregado diario por producto.
type ProductDailyRow struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Unit        string `json:"unit"`
	CheckIns    int64  `json:"check_ins"`
	CheckOuts   int64  `json:"check_outs"`
	NetChange   int64  `json:"net_change"`
}

// DailySummaryResponse agregados del día para la capa de presentación.
// Solo refleja estado confirmado; el renderizado (CSV/HTML) queda fuera.
type DailySummaryResponse struct {
	Date              string            `json:"date"` // yyyy-MM-dd
	TotalCheckIns     int               `json:"total_check_ins"`
	TotalCheckOuts    int               `json:"total_check_outs"`
	UnresolvedAlerts  int               `json:"unresolved_alerts"`
	AlertsCreated     int               `json:"alerts_created_today"`
	PerProduct        []ProductDailyRow `json:"per_product"`
}
