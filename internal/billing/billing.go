// Package billing turns a complete order configuration into an itemized
// bill. Compute is pure; identical input yields identical output.
package billing

import (
	"math"

	"refuel-rescue/internal/domain"
)

const (
	// DeliveryCharge is the flat delivery fee, independent of distance
	// and quantity.
	DeliveryCharge = 50.0
	// GSTPercent applies to the base amount plus the delivery charge.
	GSTPercent = 18.0
)

// Compute prices a complete order configuration. Incomplete input is a
// precondition violation and returns domain.ErrIncomplete; a partial
// bill is never produced. Intermediate sums keep full floating
// precision; rounding is left to the presentation boundary.
func Compute(cfg domain.OrderConfiguration) (domain.BillBreakdown, error) {
	if !cfg.Complete() {
		return domain.BillBreakdown{}, domain.ErrIncomplete
	}
	unitPrice, _ := cfg.FuelType.UnitPrice()
	base := *cfg.QuantityLiters * unitPrice
	// Dividing last keeps 18% of an exact subtotal like 498.75 at
	// 89.775, which displays as 89.78.
	gst := (base + DeliveryCharge) * GSTPercent / 100
	return domain.BillBreakdown{
		BaseAmount:     base,
		DeliveryCharge: DeliveryCharge,
		GST:            gst,
		Total:          base + DeliveryCharge + gst,
	}, nil
}

// Round2 rounds a monetary amount to two decimals for display.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
