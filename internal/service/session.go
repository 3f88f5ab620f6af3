package service

import (
	"context"
	"sync"
	"time"

	"refuel-rescue/internal/billing"
	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/geo"
)

// Session holds one user's mutable state: the origin coordinate, the
// latest ranking pass and the in-progress order configuration. All
// mutations go through the session mutex, so concurrent edits to one
// session observe a single serialized history.
type Session struct {
	mu sync.Mutex

	id           string
	origin       domain.Coordinate
	usedFallback bool
	ranking      geo.Ranking
	state        domain.OrderState
	config       domain.OrderConfiguration

	// rankGen identifies the last-issued place lookup; results from a
	// superseded lookup are discarded, and cancelRank aborts the
	// in-flight request when a newer one starts.
	rankGen    uint64
	cancelRank context.CancelFunc

	createdAt time.Time
	updatedAt time.Time
}

// SessionView is a copied-out snapshot safe to hand to transports.
type SessionView struct {
	ID            string
	Origin        domain.Coordinate
	UsedFallback  bool
	Ranked        []domain.RankedStation
	Nearest       *domain.RankedStation
	State         domain.OrderState
	Config        domain.OrderConfiguration
	SubmitEnabled bool
	Bill          *domain.BillBreakdown
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// view builds a snapshot. Caller holds s.mu.
func (s *Session) view() *SessionView {
	ranked := make([]domain.RankedStation, len(s.ranking.Ranked))
	copy(ranked, s.ranking.Ranked)
	var nearest *domain.RankedStation
	if s.ranking.Nearest != nil {
		n := *s.ranking.Nearest
		nearest = &n
	}
	v := &SessionView{
		ID:            s.id,
		Origin:        s.origin,
		UsedFallback:  s.usedFallback,
		Ranked:        ranked,
		Nearest:       nearest,
		State:         s.state,
		Config:        s.config,
		SubmitEnabled: s.state == domain.OrderStateConfiguring && s.config.Complete(),
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.updatedAt,
	}
	// Bill preview recomputed fresh on every snapshot, never stored.
	if s.state == domain.OrderStateConfiguring && s.config.Complete() {
		if bill, err := billing.Compute(s.config); err == nil {
			v.Bill = &bill
		}
	}
	return v
}
