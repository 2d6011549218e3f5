package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateStats totales de un reporte de pedidos. Montos en moneda local del país
// de la importación. Son hechos de solo lectura producidos por la ingesta.
type AggregateStats struct {
	TotalOrders      int             `json:"total_orders"`
	Delivered        int             `json:"delivered"`
	Rejected         int             `json:"rejected"`
	Cancelled        int             `json:"cancelled"`
	OfficeClaims     int             `json:"office_claims"`
	Incidents        int             `json:"incidents"`
	InTransitRefused int             `json:"in_transit_refused"`
	ReceivedRefused  int             `json:"received_refused"`
	InRoute          int             `json:"in_route"`
	Shipped          int             `json:"shipped"`
	BilledRevenue    decimal.Decimal `json:"billed_revenue"`
	ProductCost      decimal.Decimal `json:"product_cost"`
	ShippingCost     decimal.Decimal `json:"shipping_cost"`
	ReturnShipping   decimal.Decimal `json:"return_shipping"`
	IncidentRevenue  decimal.Decimal `json:"incident_revenue"`
}

// ImportBatch una carga de reporte de pedidos. ID es el instante de creación en
// milisegundos Unix y define el orden (más reciente primero).
type ImportBatch struct {
	ID          int64
	WorkspaceID string
	Country     string
	FileName    string
	DisplayName string // editable; vacío = usar FileName
	Notes       string
	Stats       AggregateStats
	CreatedAt   time.Time
}

// Label nombre visible de la importación.
func (b *ImportBatch) Label() string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	return b.FileName
}
