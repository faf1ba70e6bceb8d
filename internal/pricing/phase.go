package pricing

import (
	"time"

	"github.com/aoacon/conference-backend/internal/domain"
)

// PhaseResolver maps a submission instant onto the pricing phase. The
// cutoffs are inclusive: an instant exactly at a boundary still belongs
// to the earlier phase.
type PhaseResolver struct {
	EarlyBirdEnd time.Time
	RegularEnd   time.Time
}

// NewPhaseResolver builds a resolver from the two phase cutoffs
func NewPhaseResolver(earlyBirdEnd, regularEnd time.Time) *PhaseResolver {
	return &PhaseResolver{
		EarlyBirdEnd: earlyBirdEnd,
		RegularEnd:   regularEnd,
	}
}

// Resolve returns the phase in effect at the given instant
func (r *PhaseResolver) Resolve(now time.Time) domain.BookingPhase {
	if !now.After(r.EarlyBirdEnd) {
		return domain.PhaseEarlyBird
	}
	if !now.After(r.RegularEnd) {
		return domain.PhaseRegular
	}
	return domain.PhaseSpot
}
