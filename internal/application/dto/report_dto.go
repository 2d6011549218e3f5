package dto

import "github.com/jhoicas/Coinnecta-api/internal/domain/profit"

// ProfitReportResponse P&L de una importación junto con sus metadatos.
type ProfitReportResponse struct {
	Import ImportResponse `json:"import"`
	Report *profit.Report `json:"report"`
}
