// Package orders clasifica filas de un reporte de pedidos del proveedor logístico y
// las acumula en entity.AggregateStats.
package orders

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// Bucket categoría de un pedido según su estatus.
type Bucket int

const (
	BucketOther Bucket = iota
	BucketDelivered
	BucketRejected
	BucketCancelled
	BucketOfficeClaim
	BucketIncident
	BucketInTransitRefused
	BucketReceivedRefused
	BucketInRoute
)

func (b Bucket) String() string {
	switch b {
	case BucketDelivered:
		return "delivered"
	case BucketRejected:
		return "rejected"
	case BucketCancelled:
		return "cancelled"
	case BucketOfficeClaim:
		return "office_claim"
	case BucketIncident:
		return "incident"
	case BucketInTransitRefused:
		return "in_transit_refused"
	case BucketReceivedRefused:
		return "received_refused"
	case BucketInRoute:
		return "in_route"
	default:
		return "other"
	}
}

// Estatus normalizados (mayúsculas, sin tildes, espacios simples).
var statusBuckets = map[string]Bucket{
	"ENTREGADO":                          BucketDelivered,
	"RECHAZADO":                          BucketRejected,
	"CANCELADO":                          BucketCancelled,
	"RECLAME EN OFICINA":                 BucketOfficeClaim,
	"NOVEDAD":                            BucketIncident,
	"DEVOLUCION":                         BucketInTransitRefused,
	"EN PROCESO DE DEVOLUCION":           BucketInTransitRefused,
	"REHUSADO - RECEPCIONADO EN ALMACEN": BucketReceivedRefused,
	"EN BODEGA TRANSPORTADORA":           BucketInRoute,
	"EN REPARTO":                         BucketInRoute,
	"REENVIO":                            BucketInRoute,
	"TELEMERCADEO":                       BucketInRoute,
}

// Row fila de un reporte de pedidos ya leída del archivo.
type Row struct {
	Status        string
	PurchaseValue decimal.Decimal // VALOR DE COMPRA EN PRODUCTOS
	Freight       decimal.Decimal // PRECIO FLETE
	ReturnFreight decimal.Decimal // COSTO DEVOLUCION FLETE
	SupplierTotal decimal.Decimal // TOTAL EN PRECIOS DE PROVEEDOR
}

// Classify asigna el estatus a su categoría. Ignora mayúsculas, tildes y espacios extra.
func Classify(status string) Bucket {
	if b, ok := statusBuckets[Normalize(status)]; ok {
		return b
	}
	return BucketOther
}

// Normalize pasa s a mayúsculas, elimina diacríticos y colapsa espacios.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.TrimPrefix(out, "\ufeff")
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}

// Tally acumula las filas en estadísticas agregadas. Los fletes y devoluciones de flete
// se suman para todas las filas; ingresos y costo de producto solo para entregados.
func Tally(rows []Row) entity.AggregateStats {
	s := entity.AggregateStats{
		BilledRevenue:   decimal.Zero,
		ProductCost:     decimal.Zero,
		ShippingCost:    decimal.Zero,
		ReturnShipping:  decimal.Zero,
		IncidentRevenue: decimal.Zero,
	}
	for _, r := range rows {
		s.TotalOrders++
		s.ShippingCost = s.ShippingCost.Add(r.Freight)
		s.ReturnShipping = s.ReturnShipping.Add(r.ReturnFreight)

		switch Classify(r.Status) {
		case BucketDelivered:
			s.Delivered++
			s.BilledRevenue = s.BilledRevenue.Add(r.PurchaseValue)
			s.ProductCost = s.ProductCost.Add(r.SupplierTotal)
		case BucketRejected:
			s.Rejected++
		case BucketCancelled:
			s.Cancelled++
		case BucketOfficeClaim:
			s.OfficeClaims++
		case BucketIncident:
			s.Incidents++
			s.IncidentRevenue = s.IncidentRevenue.Add(r.PurchaseValue)
		case BucketInTransitRefused:
			s.InTransitRefused++
		case BucketReceivedRefused:
			s.ReceivedRefused++
		case BucketInRoute:
			s.InRoute++
		}
	}
	s.Shipped = s.TotalOrders - s.Rejected - s.Cancelled - s.OfficeClaims
	return s
}
