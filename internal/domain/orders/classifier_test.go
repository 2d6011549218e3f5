package orders_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Coinnecta-api/internal/domain/orders"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClassify(t *testing.T) {
	cases := map[string]orders.Bucket{
		"ENTREGADO":                          orders.BucketDelivered,
		"  entregado ":                       orders.BucketDelivered,
		"RECHAZADO":                          orders.BucketRejected,
		"Cancelado":                          orders.BucketCancelled,
		"RECLAME EN OFICINA":                 orders.BucketOfficeClaim,
		"NOVEDAD":                            orders.BucketIncident,
		"DEVOLUCION":                         orders.BucketInTransitRefused,
		"EN PROCESO DE DEVOLUCIÓN":           orders.BucketInTransitRefused,
		"REHUSADO - RECEPCIONADO EN ALMACÉN": orders.BucketReceivedRefused,
		"REHUSADO - RECEPCIONADO EN ALMACEN": orders.BucketReceivedRefused,
		"EN BODEGA TRANSPORTADORA":           orders.BucketInRoute,
		"en  reparto":                        orders.BucketInRoute,
		"REENVÍO":                            orders.BucketInRoute,
		"TELEMERCADEO":                       orders.BucketInRoute,
		"PENDIENTE":                          orders.BucketOther,
		"":                                   orders.BucketOther,
	}
	for status, want := range cases {
		assert.Equal(t, want, orders.Classify(status), "estatus %q", status)
	}
}

func TestTally(t *testing.T) {
	rows := []orders.Row{
		{Status: "ENTREGADO", PurchaseValue: dec("100000"), Freight: dec("12000"), SupplierTotal: dec("35000")},
		{Status: "ENTREGADO", PurchaseValue: dec("80000"), Freight: dec("12000"), SupplierTotal: dec("30000")},
		{Status: "NOVEDAD", PurchaseValue: dec("90000"), Freight: dec("12000")},
		{Status: "RECHAZADO", PurchaseValue: dec("70000"), Freight: dec("12000"), ReturnFreight: dec("9000")},
		{Status: "CANCELADO", PurchaseValue: dec("60000")},
		{Status: "RECLAME EN OFICINA", Freight: dec("12000")},
		{Status: "DEVOLUCION", Freight: dec("12000"), ReturnFreight: dec("9000")},
		{Status: "EN REPARTO", Freight: dec("12000")},
		{Status: "OTRO ESTADO", Freight: dec("1000")},
	}

	s := orders.Tally(rows)

	assert.Equal(t, 9, s.TotalOrders)
	assert.Equal(t, 2, s.Delivered)
	assert.Equal(t, 1, s.Incidents)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 1, s.OfficeClaims)
	assert.Equal(t, 1, s.InTransitRefused)
	assert.Equal(t, 1, s.InRoute)
	assert.Equal(t, 6, s.Shipped, "enviados = total - rechazados - cancelados - reclamos")

	assert.True(t, s.BilledRevenue.Equal(dec("180000")), "solo entregados facturan")
	assert.True(t, s.ProductCost.Equal(dec("65000")), "costo proveedor solo de entregados")
	assert.True(t, s.IncidentRevenue.Equal(dec("90000")))
	assert.True(t, s.ShippingCost.Equal(dec("85000")), "el flete se suma para todas las filas")
	assert.True(t, s.ReturnShipping.Equal(dec("18000")))
}

func TestTally_Vacio(t *testing.T) {
	s := orders.Tally(nil)
	assert.Zero(t, s.TotalOrders)
	assert.True(t, s.BilledRevenue.IsZero())
	assert.Equal(t, "0", s.ShippingCost.String())
}
