package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"refuel-rescue/internal/docs"
	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/places"
	"refuel-rescue/internal/receipt"
	"refuel-rescue/internal/service"
	"refuel-rescue/internal/transport"
)

func newTestHandler(t *testing.T) (http.Handler, *docs.FSStore) {
	t.Helper()
	store, err := docs.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	source := &places.StaticSource{Stations: []domain.Station{
		{ID: "near", Name: "Near Fuels", Location: domain.Coordinate{Lat: 12.975, Lng: 77.596}},
		{ID: "far", Name: "Far Fuels", Location: domain.Coordinate{Lat: 13.00, Lng: 77.63}},
	}}
	svc := service.New(source, nil, receipt.NewEmitter(store), places.DefaultRadiusMeters)
	return NewServer(svc, store), store
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestOrderFlowEndToEnd(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/sessions", map[string]any{
		"coordinate": map[string]float64{"lat": 12.9716, "lng": 77.5946},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var session transport.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(session.Stations) != 2 || !session.Stations[0].Nearest {
		t.Fatalf("expected ranked stations with nearest flag, got %+v", session.Stations)
	}

	base := "/sessions/" + session.ID
	if rec := doJSON(t, handler, http.MethodPost, base+"/order", nil); rec.Code != http.StatusOK {
		t.Fatalf("start order: expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodPatch, base+"/order", map[string]any{
		"station_id":      "near",
		"fuel_type":       "petrol",
		"quantity_liters": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit order: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var edited transport.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&edited); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !edited.Order.SubmitEnabled || edited.Bill == nil || edited.Bill.Total != 1268.50 {
		t.Fatalf("expected complete order with bill preview, got %+v", edited)
	}

	rec = doJSON(t, handler, http.MethodPost, base+"/order/submit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var submitted transport.SubmitResponse
	if err := json.NewDecoder(rec.Body).Decode(&submitted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if submitted.Bill.Total != 1268.50 || submitted.ReceiptID == "" {
		t.Fatalf("unexpected submit response: %+v", submitted)
	}
	if submitted.Session.Order.State != string(domain.OrderStateIdle) {
		t.Fatalf("expected idle session after submit")
	}

	rec = doJSON(t, handler, http.MethodGet, "/receipts/"+submitted.ReceiptID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "fuel-bill.txt") {
		t.Fatalf("expected attachment filename, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "Total Amount: ₹1268.50") {
		t.Fatalf("unexpected receipt body:\n%s", rec.Body.String())
	}
}

func TestStartSessionWithDenialUsesFallback(t *testing.T) {
	handler, _ := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/sessions", map[string]any{"denied": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var session transport.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !session.UsedFallback || session.Origin.Lat != 12.9716 || session.Origin.Lng != 77.5946 {
		t.Fatalf("expected fallback origin, got %+v", session)
	}
}

func TestSubmitIncompleteReturns422(t *testing.T) {
	handler, _ := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/sessions", map[string]any{
		"coordinate": map[string]float64{"lat": 12.9716, "lng": 77.5946},
	})
	var session transport.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	base := "/sessions/" + session.ID
	if rec := doJSON(t, handler, http.MethodPost, base+"/order", nil); rec.Code != http.StatusOK {
		t.Fatalf("start order failed: %d", rec.Code)
	}
	rec = doJSON(t, handler, http.MethodPost, base+"/order/submit", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "incomplete_configuration") {
		t.Fatalf("expected incomplete_configuration code, got %s", rec.Body.String())
	}
}

func TestInvalidQuantityReturns422(t *testing.T) {
	handler, _ := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodPost, "/sessions", map[string]any{
		"coordinate": map[string]float64{"lat": 12.9716, "lng": 77.5946},
	})
	var session transport.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}
	base := "/sessions/" + session.ID
	doJSON(t, handler, http.MethodPost, base+"/order", nil)
	rec = doJSON(t, handler, http.MethodPatch, base+"/order", map[string]any{"quantity_liters": 0})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownSessionReturns404(t *testing.T) {
	handler, _ := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodGet, "/sessions/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUnknownReceiptReturns404(t *testing.T) {
	handler, _ := newTestHandler(t)
	rec := doJSON(t, handler, http.MethodGet, "/receipts/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
