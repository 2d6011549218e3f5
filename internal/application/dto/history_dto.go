package dto

import "github.com/shopspring/decimal"

// Modos de agrupación del historial.
const (
	HistoryByWeek  = "week"
	HistoryByMonth = "month"
	HistoryByYear  = "year"
)

// HistoryItemDTO importación dentro de un grupo con su profit final.
type HistoryItemDTO struct {
	Import      ImportResponse  `json:"import"`
	FinalProfit decimal.Decimal `json:"final_profit"`
}

// HistoryGroupDTO importaciones de un mismo periodo. Los totales se separan por moneda
// porque un periodo puede mezclar países.
type HistoryGroupDTO struct {
	Key          string                     `json:"key"`
	Label        string                     `json:"label"`
	Items        []HistoryItemDTO           `json:"items"`
	TotalProfits map[string]decimal.Decimal `json:"total_profits"`
}

// HistoryResponse historial agrupado, periodos más recientes primero.
type HistoryResponse struct {
	Mode   string            `json:"mode"`
	Groups []HistoryGroupDTO `json:"groups"`
}
