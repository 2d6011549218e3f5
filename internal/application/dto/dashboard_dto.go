package dto

import "github.com/shopspring/decimal"

// ProfitPointDTO profit final de una importación para la gráfica de evolución.
type ProfitPointDTO struct {
	ImportID  int64           `json:"import_id"`
	Label     string          `json:"label"`
	DateLabel string          `json:"date_label"` // ej: "3 ene"
	Currency  string          `json:"currency"`
	Profit    decimal.Decimal `json:"profit"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// ActiveReport es null cuando aún no hay importaciones.
type DashboardSummaryDTO struct {
	ActiveReport *ProfitReportResponse `json:"active_report"`

	// Últimas 10 importaciones en orden cronológico.
	ProfitHistory []ProfitPointDTO `json:"profit_history"`
	MaxAbsProfit  decimal.Decimal  `json:"max_abs_profit"` // escala de la gráfica, mínimo 1

	ImportCount  int `json:"import_count"`
	ProductCount int `json:"product_count"`
}
