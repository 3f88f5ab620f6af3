package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"refuel-rescue/internal/docs"
	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/location"
	"refuel-rescue/internal/metrics"
	"refuel-rescue/internal/service"
	"refuel-rescue/internal/transport"
)

type Server struct {
	svc      *service.Service
	receipts docs.Store
}

func NewServer(svc *service.Service, receipts docs.Store) http.Handler {
	s := &Server{svc: svc, receipts: receipts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Get("/{id}", s.handleGetSession)
		r.Post("/{id}/location", s.handleRefreshLocation)
		r.Post("/{id}/stations/refresh", s.handleRefreshStations)
		r.Post("/{id}/order", s.handleStartOrder)
		r.Patch("/{id}/order", s.handleEditOrder)
		r.Delete("/{id}/order", s.handleCancelOrder)
		r.Post("/{id}/order/submit", s.handleSubmitOrder)
	})

	r.Get("/receipts/{id}", s.handleDownloadReceipt)

	return r
}

func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

// locationRequest carries the browser's geolocation result: either a
// coordinate or an explicit denial. A missing coordinate counts as a
// denial and triggers the fallback policy.
type locationRequest struct {
	Coordinate *transport.Coordinate `json:"coordinate"`
	Denied     bool                  `json:"denied"`
}

func (req locationRequest) source() location.Source {
	if req.Denied || req.Coordinate == nil {
		return location.DeniedSource{}
	}
	return &location.StaticSource{Coordinate: domain.Coordinate{
		Lat: req.Coordinate.Lat,
		Lng: req.Coordinate.Lng,
	}}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := s.svc.StartSession(r.Context(), req.source())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, transport.FromSession(view))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transport.FromSession(view))
}

func (s *Server) handleRefreshLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	view, err := s.svc.RefreshLocation(r.Context(), chi.URLParam(r, "id"), req.source())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transport.FromSession(view))
}

func (s *Server) handleRefreshStations(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.RefreshStations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transport.FromSession(view))
}

func (s *Server) handleStartOrder(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.StartOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transport.FromSession(view))
}

type editOrderRequest struct {
	StationID      *string  `json:"station_id"`
	FuelType       *string  `json:"fuel_type"`
	QuantityLiters *float64 `json:"quantity_liters"`
	DeliveryTime   *string  `json:"delivery_time"`
}

func (s *Server) handleEditOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	var req editOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var view *service.SessionView
	var err error
	if req.StationID != nil {
		if view, err = s.svc.SelectStation(r.Context(), sessionID, *req.StationID); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.FuelType != nil {
		if view, err = s.svc.SetFuelType(r.Context(), sessionID, domain.FuelType(*req.FuelType)); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.QuantityLiters != nil {
		if view, err = s.svc.SetQuantity(r.Context(), sessionID, *req.QuantityLiters); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.DeliveryTime != nil {
		if view, err = s.svc.SetDelivery(r.Context(), sessionID, domain.DeliveryOption(*req.DeliveryTime)); err != nil {
			writeError(w, err)
			return
		}
	}
	if view == nil {
		writeError(w, fmt.Errorf("no fields to edit: %w", domain.ErrInvalid))
		return
	}
	respondJSON(w, http.StatusOK, transport.FromSession(view))
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transport.FromSession(view))
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.SubmitOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transport.FromSubmit(result))
}

func (s *Server) handleDownloadReceipt(w http.ResponseWriter, r *http.Request) {
	if s.receipts == nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	doc, err := s.receipts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc.Content))
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", domain.ErrInvalid)
	}
	return nil
}
