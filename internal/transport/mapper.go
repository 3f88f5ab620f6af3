package transport

import (
	"time"

	"refuel-rescue/internal/billing"
	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/geo"
	"refuel-rescue/internal/service"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type StationResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Location   Coordinate `json:"location"`
	DistanceKm float64    `json:"distance_km"`
	Nearest    bool       `json:"nearest"`
}

type OrderResponse struct {
	State             string   `json:"state"`
	SelectedStationID *string  `json:"selected_station_id,omitempty"`
	FuelType          *string  `json:"fuel_type,omitempty"`
	QuantityLiters    *float64 `json:"quantity_liters,omitempty"`
	DeliveryTime      string   `json:"delivery_time"`
	DeliveryLabel     string   `json:"delivery_label"`
	SubmitEnabled     bool     `json:"submit_enabled"`
}

// BillResponse carries display amounts, rounded to two decimals at this
// presentation boundary.
type BillResponse struct {
	BaseAmount     float64 `json:"base_amount"`
	DeliveryCharge float64 `json:"delivery_charge"`
	GST            float64 `json:"gst"`
	Total          float64 `json:"total"`
}

type SessionResponse struct {
	ID           string            `json:"id"`
	Origin       Coordinate        `json:"origin"`
	UsedFallback bool              `json:"used_fallback"`
	Stations     []StationResponse `json:"stations"`
	Order        OrderResponse     `json:"order"`
	Bill         *BillResponse     `json:"bill,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type SubmitResponse struct {
	ReceiptID string          `json:"receipt_id"`
	Bill      BillResponse    `json:"bill"`
	Session   SessionResponse `json:"session"`
}

func FromSession(view *service.SessionView) SessionResponse {
	stations := make([]StationResponse, 0, len(view.Ranked))
	for _, ranked := range view.Ranked {
		stations = append(stations, StationResponse{
			ID:         ranked.ID,
			Name:       ranked.Name,
			Location:   Coordinate{Lat: ranked.Location.Lat, Lng: ranked.Location.Lng},
			DistanceKm: geo.RoundKm(ranked.DistanceKm),
			Nearest:    view.Nearest != nil && view.Nearest.ID == ranked.ID,
		})
	}
	resp := SessionResponse{
		ID:           view.ID,
		Origin:       Coordinate{Lat: view.Origin.Lat, Lng: view.Origin.Lng},
		UsedFallback: view.UsedFallback,
		Stations:     stations,
		Order:        fromOrder(view),
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
	}
	if view.Bill != nil {
		bill := FromBill(*view.Bill)
		resp.Bill = &bill
	}
	return resp
}

func fromOrder(view *service.SessionView) OrderResponse {
	cfg := view.Config
	resp := OrderResponse{
		State:         string(view.State),
		DeliveryTime:  string(cfg.Delivery),
		SubmitEnabled: view.SubmitEnabled,
	}
	if label, ok := cfg.Delivery.Label(); ok {
		resp.DeliveryLabel = label
	}
	if cfg.SelectedStation != nil {
		id := cfg.SelectedStation.ID
		resp.SelectedStationID = &id
	}
	if cfg.FuelType != nil {
		fuel := string(*cfg.FuelType)
		resp.FuelType = &fuel
	}
	if cfg.QuantityLiters != nil {
		liters := *cfg.QuantityLiters
		resp.QuantityLiters = &liters
	}
	return resp
}

func FromBill(bill domain.BillBreakdown) BillResponse {
	return BillResponse{
		BaseAmount:     billing.Round2(bill.BaseAmount),
		DeliveryCharge: billing.Round2(bill.DeliveryCharge),
		GST:            billing.Round2(bill.GST),
		Total:          billing.Round2(bill.Total),
	}
}

func FromSubmit(result *service.SubmitResult) SubmitResponse {
	return SubmitResponse{
		ReceiptID: result.ReceiptID,
		Bill:      FromBill(result.Bill),
		Session:   FromSession(result.Session),
	}
}
