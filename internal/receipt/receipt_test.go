package receipt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"refuel-rescue/internal/billing"
	"refuel-rescue/internal/docs"
	"refuel-rescue/internal/domain"
)

func testConfig() domain.OrderConfiguration {
	fuel := domain.FuelPetrol
	liters := 10.0
	cfg := domain.NewOrderConfiguration()
	cfg.FuelType = &fuel
	cfg.QuantityLiters = &liters
	return cfg
}

func TestRenderContainsAllLines(t *testing.T) {
	cfg := testConfig()
	bill, err := billing.Compute(cfg)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	body := Render(cfg, bill, "Shell Koramangala")
	for _, want := range []string{
		"Station: Shell Koramangala",
		"Fuel Type: PETROL",
		"Quantity: 10 L",
		"Rate: ₹102.50/L",
		"Delivery Time: As Soon As Possible (30-45 mins)",
		"Base Amount: ₹1025.00",
		"Delivery Charge: ₹50.00",
		"GST (18%): ₹193.50",
		"Total Amount: ₹1268.50",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("receipt missing %q:\n%s", want, body)
		}
	}
}

func TestRenderFallbackStationLabel(t *testing.T) {
	cfg := testConfig()
	bill, _ := billing.Compute(cfg)
	body := Render(cfg, bill, "")
	if !strings.Contains(body, "Station: Nearest Available Station") {
		t.Fatalf("expected fallback station label:\n%s", body)
	}
}

func TestRenderRoundsDieselGST(t *testing.T) {
	fuel := domain.FuelDiesel
	liters := 5.0
	cfg := domain.NewOrderConfiguration()
	cfg.FuelType = &fuel
	cfg.QuantityLiters = &liters
	bill, _ := billing.Compute(cfg)
	body := Render(cfg, bill, "")
	if !strings.Contains(body, "GST (18%): ₹89.78") {
		t.Fatalf("expected rounded gst line:\n%s", body)
	}
	if !strings.Contains(body, "Total Amount: ₹588.53") {
		t.Fatalf("expected rounded total line:\n%s", body)
	}
}

type captureSink struct {
	saved []docs.Document
	err   error
}

func (c *captureSink) Save(ctx context.Context, doc docs.Document) error {
	c.saved = append(c.saved, doc)
	return c.err
}

func TestEmitSavesDocument(t *testing.T) {
	sink := &captureSink{}
	emitter := NewEmitter(sink)
	cfg := testConfig()
	bill, _ := billing.Compute(cfg)

	doc, err := emitter.Emit(context.Background(), cfg, bill, "Shell")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if doc.Filename != Filename || doc.MimeType != MimeType {
		t.Fatalf("unexpected artifact naming: %+v", doc)
	}
	if doc.ID == "" {
		t.Fatalf("expected document id")
	}
	if len(sink.saved) != 1 || sink.saved[0].ID != doc.ID {
		t.Fatalf("expected document handed to sink")
	}
}

func TestEmitSinkFailureNotSurfaced(t *testing.T) {
	sink := &captureSink{err: errors.New("disk full")}
	emitter := NewEmitter(sink)
	cfg := testConfig()
	bill, _ := billing.Compute(cfg)

	if _, err := emitter.Emit(context.Background(), cfg, bill, ""); err != nil {
		t.Fatalf("expected save failure to be swallowed, got %v", err)
	}
}

func TestEmitRejectsIncomplete(t *testing.T) {
	emitter := NewEmitter(&captureSink{})
	if _, err := emitter.Emit(context.Background(), domain.NewOrderConfiguration(), domain.BillBreakdown{}, ""); !errors.Is(err, domain.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}
