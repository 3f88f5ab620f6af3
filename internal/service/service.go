package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"refuel-rescue/internal/billing"
	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/geo"
	"refuel-rescue/internal/location"
	"refuel-rescue/internal/metrics"
	"refuel-rescue/internal/notify"
	"refuel-rescue/internal/places"
	"refuel-rescue/internal/receipt"
)

const (
	msgLocationFallback = "Location access denied. Using default location."
	msgEnableLocation   = "Unable to detect your location. Please enable location services."
	msgStationsFailed   = "Could not load nearby stations. Please try again."
	msgOrderPlaced      = "Order placed successfully! Delivery details sent to your phone."
)

// Service orchestrates sessions: location acquisition with fallback,
// station ranking via the place source, the order state machine and
// receipt emission on submit.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session

	places   places.Source
	notifier notify.Notifier
	emitter  *receipt.Emitter

	radiusMeters int
	fallback     domain.Coordinate
	now          func() time.Time
}

func New(placeSource places.Source, notifier notify.Notifier, emitter *receipt.Emitter, radiusMeters int) *Service {
	if radiusMeters <= 0 {
		radiusMeters = places.DefaultRadiusMeters
	}
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &Service{
		sessions:     make(map[string]*Session),
		places:       placeSource,
		notifier:     notifier,
		emitter:      emitter,
		radiusMeters: radiusMeters,
		fallback:     location.DefaultFallback,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// StartSession creates a session, acquires a location fix from src and
// runs the first ranking pass. Denial or any other source failure falls
// back to the default coordinate and fires exactly one error
// notification; it is never fatal.
func (s *Service) StartSession(ctx context.Context, src location.Source) (*SessionView, error) {
	now := s.now()
	session := &Session{
		id:        uuid.NewString(),
		state:     domain.OrderStateIdle,
		config:    domain.NewOrderConfiguration(),
		createdAt: now,
		updatedAt: now,
	}
	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	s.acquireLocation(ctx, session, src)
	return s.refreshStations(ctx, session)
}

// RefreshLocation re-acquires the coordinate on explicit user action and
// re-runs the ranking pass against the new origin.
func (s *Service) RefreshLocation(ctx context.Context, sessionID string, src location.Source) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.acquireLocation(ctx, session, src)
	return s.refreshStations(ctx, session)
}

// RefreshStations re-runs the place lookup and ranking for the current
// origin. If a newer refresh is issued while this one is in flight, the
// stale result is discarded and the last-issued request wins.
func (s *Service) RefreshStations(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.refreshStations(ctx, session)
}

// GetSession returns a snapshot of the session.
func (s *Service) GetSession(sessionID string) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view(), nil
}

// StartOrder opens the order configuration. It requires a usable origin:
// with the zero-sentinel origin the action fails and the user is asked
// to enable location.
func (s *Service) StartOrder(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.origin.IsZero() {
		s.send(ctx, session.id, notify.KindError, msgEnableLocation)
		return nil, fmt.Errorf("origin not set: %w", domain.ErrPrecondition)
	}
	if session.state != domain.OrderStateIdle {
		return nil, domain.ErrConflict
	}
	session.state = domain.OrderStateConfiguring
	session.config = domain.NewOrderConfiguration()
	session.updatedAt = s.now()
	return session.view(), nil
}

// SelectStation records an explicit station choice from the ranked list
// or map. Selection is optional; it never gates completeness.
func (s *Service) SelectStation(ctx context.Context, sessionID, stationID string) (*SessionView, error) {
	return s.edit(sessionID, func(session *Session) error {
		for _, ranked := range session.ranking.Ranked {
			if ranked.ID == stationID {
				st := ranked.Station
				session.config.SelectedStation = &st
				return nil
			}
		}
		return fmt.Errorf("station %q not in current ranking: %w", stationID, domain.ErrNotFound)
	})
}

func (s *Service) SetFuelType(ctx context.Context, sessionID string, fuel domain.FuelType) (*SessionView, error) {
	return s.edit(sessionID, func(session *Session) error {
		if !fuel.Valid() {
			return fmt.Errorf("unknown fuel type %q: %w", fuel, domain.ErrInvalid)
		}
		session.config.FuelType = &fuel
		return nil
	})
}

// SetQuantity applies the input-boundary rule: only quantities of at
// least one liter are accepted; rejected input leaves the configuration
// unchanged.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, liters float64) (*SessionView, error) {
	return s.edit(sessionID, func(session *Session) error {
		if err := domain.ValidateQuantity(liters); err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrInvalid)
		}
		session.config.QuantityLiters = &liters
		return nil
	})
}

func (s *Service) SetDelivery(ctx context.Context, sessionID string, opt domain.DeliveryOption) (*SessionView, error) {
	return s.edit(sessionID, func(session *Session) error {
		if !opt.Valid() {
			return fmt.Errorf("unknown delivery option %q: %w", opt, domain.ErrInvalid)
		}
		session.config.Delivery = opt
		return nil
	})
}

// CancelOrder discards all edits and returns to idle.
func (s *Service) CancelOrder(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != domain.OrderStateConfiguring {
		return nil, domain.ErrPrecondition
	}
	session.state = domain.OrderStateIdle
	session.config = domain.NewOrderConfiguration()
	session.updatedAt = s.now()
	return session.view(), nil
}

// SubmitResult is what a successful submit hands back: the bill, the
// emitted receipt id and the post-reset session snapshot.
type SubmitResult struct {
	Bill      domain.BillBreakdown
	ReceiptID string
	Session   *SessionView
}

// SubmitOrder bills a complete configuration, emits the receipt, fires
// the success notification and resets the session to idle with a fresh
// default configuration. Incomplete configurations are rejected before
// any billing happens.
func (s *Service) SubmitOrder(ctx context.Context, sessionID string) (*SubmitResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != domain.OrderStateConfiguring {
		return nil, domain.ErrPrecondition
	}
	if !session.config.Complete() {
		return nil, domain.ErrIncomplete
	}
	bill, err := billing.Compute(session.config)
	if err != nil {
		return nil, err
	}
	doc, err := s.emitter.Emit(ctx, session.config, bill, s.stationLabel(session))
	if err != nil {
		return nil, err
	}
	session.state = domain.OrderStateSubmitted
	s.send(ctx, session.id, notify.KindSuccess, msgOrderPlaced)
	metrics.OrdersSubmitted.Inc()

	// The submitted order is terminal; the session starts over clean.
	session.state = domain.OrderStateIdle
	session.config = domain.NewOrderConfiguration()
	session.updatedAt = s.now()
	return &SubmitResult{Bill: bill, ReceiptID: doc.ID, Session: session.view()}, nil
}

func (s *Service) session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (s *Service) edit(sessionID string, fn func(*Session) error) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != domain.OrderStateConfiguring {
		return nil, domain.ErrPrecondition
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.updatedAt = s.now()
	return session.view(), nil
}

func (s *Service) acquireLocation(ctx context.Context, session *Session, src location.Source) {
	coord, err := src.Current(ctx)
	if err == nil {
		err = domain.ValidateCoordinate(coord)
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err != nil {
		session.origin = s.fallback
		session.usedFallback = true
		session.updatedAt = s.now()
		metrics.LocationFallbacks.Inc()
		s.send(ctx, session.id, notify.KindError, msgLocationFallback)
		return
	}
	session.origin = coord
	session.usedFallback = false
	session.updatedAt = s.now()
}

func (s *Service) refreshStations(ctx context.Context, session *Session) (*SessionView, error) {
	session.mu.Lock()
	session.rankGen++
	gen := session.rankGen
	if session.cancelRank != nil {
		session.cancelRank()
	}
	lookupCtx, cancel := context.WithCancel(ctx)
	// Canceling again when a newer pass already preempted this one is a
	// no-op; the deferred call just releases the final pass's context.
	defer cancel()
	session.cancelRank = cancel
	origin := session.origin
	session.mu.Unlock()

	stations, err := s.places.Nearby(lookupCtx, origin, s.radiusMeters)

	session.mu.Lock()
	defer session.mu.Unlock()
	if gen != session.rankGen {
		// A newer lookup superseded this one; drop the result.
		metrics.StaleRankingsDropped.Inc()
		return session.view(), nil
	}
	if err != nil {
		// Provider failure degrades to an empty candidate set; the
		// session stays usable.
		metrics.PlaceLookups.WithLabelValues("error").Inc()
		log.Printf("place lookup failed session=%s: %v", session.id, err)
		s.send(ctx, session.id, notify.KindError, msgStationsFailed)
		session.ranking = geo.Ranking{}
		session.updatedAt = s.now()
		return session.view(), nil
	}
	metrics.PlaceLookups.WithLabelValues("ok").Inc()
	session.ranking = geo.Rank(origin, stations)
	metrics.RankingPasses.Inc()
	session.updatedAt = s.now()
	return session.view(), nil
}

// stationLabel resolves the receipt's station line. Caller holds the
// session mutex.
func (s *Service) stationLabel(session *Session) string {
	if session.config.SelectedStation != nil {
		return session.config.SelectedStation.Name
	}
	return ""
}

func (s *Service) send(ctx context.Context, sessionID, kind, message string) {
	metrics.NotificationsSent.WithLabelValues(kind).Inc()
	if err := s.notifier.Notify(ctx, notify.New(sessionID, kind, message)); err != nil {
		log.Printf("notify error session=%s kind=%s: %v", sessionID, kind, err)
	}
}
