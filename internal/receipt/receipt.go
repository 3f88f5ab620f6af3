// Package receipt renders a billed order into the textual fuel bill and
// hands it to the document sink.
package receipt

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"refuel-rescue/internal/billing"
	"refuel-rescue/internal/docs"
	"refuel-rescue/internal/domain"
)

const (
	Filename = "fuel-bill.txt"
	MimeType = "text/plain"

	// FallbackStationLabel is used when no station was explicitly
	// selected before submit.
	FallbackStationLabel = "Nearest Available Station"
)

// Render produces the receipt body for a complete, billed configuration.
// Monetary amounts are rounded to two decimals here, at the presentation
// boundary.
func Render(cfg domain.OrderConfiguration, bill domain.BillBreakdown, stationLabel string) string {
	if stationLabel == "" {
		stationLabel = FallbackStationLabel
	}
	unitPrice, _ := cfg.FuelType.UnitPrice()
	deliveryLabel, _ := cfg.Delivery.Label()

	var b strings.Builder
	b.WriteString("Refuel Rescue - Fuel Delivery Bill\n")
	b.WriteString("----------------------------------\n")
	fmt.Fprintf(&b, "Station: %s\n", stationLabel)
	b.WriteString("Delivery To: Your Location\n")
	fmt.Fprintf(&b, "Fuel Type: %s\n", strings.ToUpper(string(*cfg.FuelType)))
	fmt.Fprintf(&b, "Quantity: %g L\n", *cfg.QuantityLiters)
	fmt.Fprintf(&b, "Rate: ₹%.2f/L\n", unitPrice)
	fmt.Fprintf(&b, "Delivery Time: %s\n", deliveryLabel)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Base Amount: ₹%.2f\n", billing.Round2(bill.BaseAmount))
	fmt.Fprintf(&b, "Delivery Charge: ₹%.2f\n", billing.Round2(bill.DeliveryCharge))
	fmt.Fprintf(&b, "GST (18%%): ₹%.2f\n", billing.Round2(bill.GST))
	b.WriteString("----------------------------------\n")
	fmt.Fprintf(&b, "Total Amount: ₹%.2f\n", billing.Round2(bill.Total))
	return b.String()
}

// Emitter renders receipts and saves them through the document sink.
type Emitter struct {
	Sink docs.Sink
	now  func() time.Time
}

func NewEmitter(sink docs.Sink) *Emitter {
	return &Emitter{Sink: sink, now: func() time.Time { return time.Now().UTC() }}
}

// Emit renders and saves the receipt. The sink write is fire-and-forget:
// a failed save is logged and the document is still returned so the
// order flow completes.
func (e *Emitter) Emit(ctx context.Context, cfg domain.OrderConfiguration, bill domain.BillBreakdown, stationLabel string) (docs.Document, error) {
	if !cfg.Complete() {
		return docs.Document{}, domain.ErrIncomplete
	}
	doc := docs.Document{
		ID:        uuid.NewString(),
		Filename:  Filename,
		MimeType:  MimeType,
		Content:   Render(cfg, bill, stationLabel),
		CreatedAt: e.now(),
	}
	if e.Sink != nil {
		if err := e.Sink.Save(ctx, doc); err != nil {
			log.Printf("receipt save failed id=%s: %v", doc.ID, err)
		}
	}
	return doc, nil
}
