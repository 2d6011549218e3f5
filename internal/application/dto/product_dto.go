package dto

import (
	"time"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// ProductRequest entrada para previsualizar, crear o reemplazar un producto.
// Los montos aceptan texto libre; lo no numérico vale 0.
type ProductRequest struct {
	Name       string `json:"name" validate:"max=200"`
	Country    string `json:"country"`
	SalePrice  Amount `json:"sale_price"`
	Cost       Amount `json:"cost"`
	Shipping   Amount `json:"shipping"`
	TargetCPA  Amount `json:"target_cpa"`
	IncludeIVA bool   `json:"include_iva"`
	// Sobrescriben los supuestos guardados solo en la previsualización.
	ConfirmationPct *Amount `json:"confirmation_pct,omitempty"`
	DeliveryPct     *Amount `json:"delivery_pct,omitempty"`
}

// Draft convierte la entrada en un borrador de dominio.
func (r ProductRequest) Draft() entity.ProductDraft {
	return entity.ProductDraft{
		Name:       r.Name,
		Country:    r.Country,
		SalePrice:  r.SalePrice.Dec(),
		Cost:       r.Cost.Dec(),
		Shipping:   r.Shipping.Dec(),
		TargetCPA:  r.TargetCPA.Dec(),
		IncludeIVA: r.IncludeIVA,
	}
}

// RateAssumptionsDTO supuestos de confirmación/entrega en porcentaje.
type RateAssumptionsDTO struct {
	ConfirmationPct Amount `json:"confirmation_pct"`
	DeliveryPct     Amount `json:"delivery_pct"`
}

// ProductPreviewResponse métricas calculadas sin guardar. Metrics es null cuando
// el precio de venta es 0.
type ProductPreviewResponse struct {
	Metrics     *entity.ProductMetrics `json:"metrics"`
	Assumptions RateAssumptionsDTO     `json:"assumptions"`
	Currency    string                 `json:"currency"`
}

// ProductResponse salida de un producto guardado.
type ProductResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Country    string                `json:"country"`
	Currency   string                `json:"currency"`
	SalePrice  Amount                `json:"sale_price"`
	Cost       Amount                `json:"cost"`
	Shipping   Amount                `json:"shipping"`
	TargetCPA  Amount                `json:"target_cpa"`
	IncludeIVA bool                  `json:"include_iva"`
	Metrics    entity.ProductMetrics `json:"metrics"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
